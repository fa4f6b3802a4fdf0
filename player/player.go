package player

import (
	"github.com/chewxy/math32"
	"github.com/echolume/echolume/assert"
	"github.com/echolume/echolume/game"
	"github.com/echolume/echolume/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Config holds the capsule dimensions and movement tuning for a controller.
type Config struct {
	Radius    float32
	Height    float32
	EyeHeight float32

	WalkSpeed   float32
	SprintSpeed float32
	JumpSpeed   float32
	Gravity     float32
	StepHeight  float32

	// VelocitySweep toggles the pre-integration sweep cast that halts
	// horizontal velocity just short of a surface within one sub-step.
	VelocitySweep bool
}

// DefaultConfig returns the standard capsule tuning.
func DefaultConfig() Config {
	return Config{
		Radius:        game.DefaultCollisionRadius,
		Height:        game.DefaultCollisionHeight,
		EyeHeight:     game.DefaultEyeHeight,
		WalkSpeed:     game.DefaultWalkSpeed,
		SprintSpeed:   game.DefaultSprintSpeed,
		JumpSpeed:     game.DefaultJumpSpeed,
		Gravity:       game.DefaultGravity,
		StepHeight:    game.DefaultStepHeight,
		VelocitySweep: true,
	}
}

// Controller validates and advances a single player capsule against the
// static world. It exclusively owns the player's position and velocity; no
// other component mutates them.
type Controller struct {
	log   *logrus.Logger
	world *world.World
	conf  Config

	// pos is the eye position; the capsule foot sits at pos.Y()-EyeHeight.
	pos mgl32.Vec3
	vel mgl32.Vec3

	yaw, pitch float32
	onGround   bool

	safePos mgl32.Vec3
	hasSafe bool

	ringDirs [game.RingSamples]mgl32.Vec3
}

// NewController creates a movement controller at the world origin.
func NewController(log *logrus.Logger, w *world.World, conf Config) *Controller {
	assert.IsTrue(conf.Radius > 0, "player: collision radius must be positive, got %f", conf.Radius)
	assert.IsTrue(conf.Height > 0, "player: collision height must be positive, got %f", conf.Height)
	assert.IsTrue(conf.EyeHeight >= conf.Height, "player: eye height %f below collision height %f", conf.EyeHeight, conf.Height)

	c := &Controller{log: log, world: w, conf: conf}
	for i := range c.ringDirs {
		ang := 2 * math32.Pi * float32(i) / game.RingSamples
		c.ringDirs[i] = mgl32.Vec3{math32.Cos(ang), 0, math32.Sin(ang)}
	}
	c.pos = mgl32.Vec3{0, conf.EyeHeight, 0}
	c.safePos, c.hasSafe = c.pos, true
	return c
}

// Teleport moves the player immediately and records the destination as the
// new rollback anchor.
func (c *Controller) Teleport(pos mgl32.Vec3) {
	c.pos = pos
	c.vel = mgl32.Vec3{}
	c.safePos, c.hasSafe = pos, true
	c.onGround = false
}

// Position returns the player's eye position.
func (c *Controller) Position() mgl32.Vec3 {
	return c.pos
}

// Velocity returns the player's current velocity.
func (c *Controller) Velocity() mgl32.Vec3 {
	return c.vel
}

// Rotation returns the player's yaw and pitch in degrees.
func (c *Controller) Rotation() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// OnGround reports whether the player stood on geometry after the last tick.
func (c *Controller) OnGround() bool {
	return c.onGround
}

// SafePosition returns the last recorded penetration-free position.
func (c *Controller) SafePosition() mgl32.Vec3 {
	return c.safePos
}
