package echolume

import (
	"math/rand"
	"time"

	"github.com/echolume/echolume/geom"
	"github.com/echolume/echolume/player"
	"github.com/echolume/echolume/scan"
	"github.com/echolume/echolume/settings"
	"github.com/echolume/echolume/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// Engine wires the simulation core together: the world's mesh set and index
// builder, the movement controller and the scan layer. Everything runs
// synchronously inside Tick on a single goroutine; the only amortization is
// the index builder's wall clock budget.
type Engine struct {
	log *logrus.Logger
	set settings.Settings

	world  *world.World
	player *player.Controller
	scan   *scan.Controller

	buildBudget time.Duration
	elapsed     float32
	tick        uint64
}

// New returns a new Engine using the given settings. A nil logger falls back
// to a default logrus instance.
func New(log *logrus.Logger, set settings.Settings) *Engine {
	if log == nil {
		log = logrus.New()
		log.Formatter = &logrus.TextFormatter{ForceColors: true}
	}

	w := world.New(log)

	playerConf := player.Config{
		Radius:        set.Player.Radius,
		Height:        set.Player.Height,
		EyeHeight:     set.Player.EyeHeight,
		WalkSpeed:     set.Player.WalkSpeed,
		SprintSpeed:   set.Player.SprintSpeed,
		JumpSpeed:     set.Player.JumpSpeed,
		Gravity:       set.Player.Gravity,
		StepHeight:    set.Player.StepHeight,
		VelocitySweep: set.Player.VelocitySweep,
	}

	bufConf := scan.BufferConfig{
		Capacity:     set.Buffer.Capacity,
		CellSize:     set.Buffer.CellSize,
		MaxPerCell:   set.Buffer.MaxPerCell,
		Lifetime:     set.Buffer.Lifetime,
		MinIntensity: set.Buffer.MinIntensity,
		MaxIntensity: set.Buffer.MaxIntensity,
		FadeEpsilon:  set.Buffer.FadeEpsilon,
		BaseColor:    mgl32.Vec3{set.Buffer.BaseColorR, set.Buffer.BaseColorG, set.Buffer.BaseColorB},
	}

	scanConf := scan.Config{
		MaxDistance:    set.Scan.MaxDistance,
		BurstRays:      set.Scan.BurstRays,
		AzimuthSteps:   set.Scan.AzimuthSteps,
		ElevationSteps: set.Scan.ElevationSteps,
		ViewSamplesX:   set.Scan.ViewSamplesX,
		ViewSamplesY:   set.Scan.ViewSamplesY,
		SweepLines:     set.Scan.SweepLines,
		SweepColumns:   set.Scan.SweepColumns,
		SweepDuration:  set.Scan.SweepDuration,
		SweepPitchSpan: set.Scan.SweepPitchSpan,
	}

	return &Engine{
		log:         log,
		set:         set,
		world:       w,
		player:      player.NewController(log, w, playerConf),
		scan:        scan.NewController(log, w, scan.NewBuffer(bufConf), scanConf, rand.New(rand.NewSource(time.Now().UnixNano()))),
		buildBudget: time.Duration(set.Index.BudgetMs) * time.Millisecond,
	}
}

// Tick advances the whole core by one frame: index building under budget,
// movement, then the scan layer.
func (e *Engine) Tick(in player.Input, dt float32) {
	e.tick++
	e.elapsed += dt

	e.world.Indexer().Build(e.buildBudget)
	e.player.Tick(in, dt)
	e.scan.Tick(e.view(), e.elapsed)
}

// Burst fires one scan burst from the player's eye.
func (e *Engine) Burst() {
	e.scan.Burst(e.view(), e.elapsed)
}

// ScanView runs a full-view scan from the player's current camera.
func (e *Engine) ScanView() {
	e.scan.ScanView(e.view(), e.elapsed)
}

// StartSweep begins an animated sweep; a sweep already in progress is
// discarded.
func (e *Engine) StartSweep() {
	e.scan.StartSweep(e.elapsed)
}

// ReplaceMeshes swaps the static collision geometry, e.g. after a world load.
func (e *Engine) ReplaceMeshes(meshes []*geom.Mesh) {
	e.world.ReplaceMeshes(meshes)
}

// World returns the static world.
func (e *Engine) World() *world.World {
	return e.world
}

// Player returns the movement controller.
func (e *Engine) Player() *player.Controller {
	return e.player
}

// Scan returns the scan controller.
func (e *Engine) Scan() *scan.Controller {
	return e.scan
}

// Elapsed returns the accumulated simulation time in seconds.
func (e *Engine) Elapsed() float32 {
	return e.elapsed
}

func (e *Engine) view() scan.View {
	yaw, pitch := e.player.Rotation()
	return scan.View{
		Eye:    e.player.Position(),
		Yaw:    yaw,
		Pitch:  pitch,
		FOV:    e.set.Camera.FOV,
		Aspect: e.set.Camera.Aspect,
	}
}
