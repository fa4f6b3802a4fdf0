package player

import (
	"github.com/chewxy/math32"
	"github.com/echolume/echolume/game"
	"github.com/go-gl/mathgl/mgl32"
)

var down = mgl32.Vec3{0, -1, 0}

// Tick consumes one frame's input and advances the player. The frame delta is
// sliced into sub-steps no longer than game.MaxSubStep so high speeds cannot
// tunnel through thin geometry.
func (c *Controller) Tick(in Input, dt float32) {
	if dt <= 0 {
		return
	}

	c.yaw = game.WrapYaw(c.yaw + in.YawDelta)
	c.pitch = game.ClampFloat32(c.pitch+in.PitchDelta, -game.MaxPitch, game.MaxPitch)

	for remaining := dt; remaining > 1e-6; {
		step := math32.Min(remaining, game.MaxSubStep)
		c.subStep(in, step)
		remaining -= step
	}
}

func (c *Controller) subStep(in Input, dt float32) {
	wish := mgl32.Vec3{}
	forward, right := game.YawBasis(c.yaw)
	if in.Forward {
		wish = wish.Add(forward)
	}
	if in.Backward {
		wish = wish.Sub(forward)
	}
	if in.Right {
		wish = wish.Add(right)
	}
	if in.Left {
		wish = wish.Sub(right)
	}
	if wish.LenSqr() > 0 {
		wish = wish.Normalize()
	}

	speed := c.conf.WalkSpeed
	if in.Sprint {
		speed = c.conf.SprintSpeed
	}
	wishVel := wish.Mul(speed)

	if in.Fly {
		c.flyStep(in, wishVel, speed, dt)
		return
	}

	// Horizontal smoothing is applied once per sub-step rather than scaled by
	// dt; shorter sub-steps converge onto the wish velocity faster.
	c.vel[0] += (wishVel.X() - c.vel[0]) * game.HorizontalBlendPerStep
	c.vel[2] += (wishVel.Z() - c.vel[2]) * game.HorizontalBlendPerStep

	c.vel[1] -= c.conf.Gravity * dt

	if c.world.Empty() {
		// Free flight: nothing to collide with or stand on.
		c.pos = c.pos.Add(c.vel.Mul(dt))
		c.onGround = false
		return
	}

	c.groundProbe()
	if c.onGround && in.Jump {
		c.vel[1] = c.conf.JumpSpeed
		c.onGround = false
	}

	if c.conf.VelocitySweep {
		c.sweepVelocity(dt)
	}

	c.pos = c.pos.Add(c.vel.Mul(dt))

	push := c.resolvePenetration()
	if push > game.DeepPenetrationFrac*c.conf.Radius {
		// Deep penetration, e.g. a spawn inside geometry. Roll back instead
		// of trying to shove the capsule through.
		if c.hasSafe {
			c.pos = c.safePos
		}
		c.vel[0], c.vel[2] = 0, 0
		return
	}

	if push < game.SafePushThreshold {
		c.safePos, c.hasSafe = c.pos, true
	} else if c.onGround {
		c.tryStepUp()
	}
}

func (c *Controller) flyStep(in Input, wishVel mgl32.Vec3, speed, dt float32) {
	vert := float32(0)
	if in.Jump {
		vert += speed
	}
	if in.Sink {
		vert -= speed
	}
	c.vel = mgl32.Vec3{wishVel.X(), vert, wishVel.Z()}
	c.pos = c.pos.Add(c.vel.Mul(dt))
	c.onGround = false
}

func (c *Controller) foot() float32 {
	return c.pos.Y() - c.conf.EyeHeight
}

// groundProbe casts a short downward ray from above the foot. A hit within
// collision height of the foot while the player is not rising snaps the eye
// to hit+EyeHeight and zeroes vertical velocity.
func (c *Controller) groundProbe() {
	foot := c.foot()
	origin := mgl32.Vec3{c.pos.X(), foot + c.conf.StepHeight, c.pos.Z()}

	if hit, ok := c.world.Cast(origin, down, c.conf.StepHeight+c.conf.Height); ok {
		if c.vel[1] <= 0 && math32.Abs(foot-hit.Point.Y()) <= c.conf.Height {
			c.pos[1] = hit.Point.Y() + c.conf.EyeHeight
			c.vel[1] = 0
			c.onGround = true
			return
		}
	}
	c.onGround = false
}

// sweepVelocity casts along the horizontal velocity from mid-capsule height
// and scales the velocity down so this sub-step halts just short of the
// surface, leaving a skin of clearance.
func (c *Controller) sweepVelocity(dt float32) {
	hz := game.Vec3Horizontal(c.vel)
	hzSpeed := hz.Len()
	if hzSpeed < 1e-4 {
		return
	}

	dir := hz.Mul(1 / hzSpeed)
	travel := hzSpeed*dt + c.conf.Radius
	origin := mgl32.Vec3{c.pos.X(), c.foot() + c.conf.Height*0.5, c.pos.Z()}

	if hit, ok := c.world.Cast(origin, dir, travel); ok && hit.Distance < travel {
		scale := math32.Max(0, hit.Distance-game.CollisionSkin) / travel
		c.vel[0] *= scale
		c.vel[2] *= scale
	}
}

func (c *Controller) ringOffsets() [2]float32 {
	// Near-foot and near-head sample heights, relative to the foot.
	return [2]float32{c.conf.Radius, c.conf.Height - c.conf.Radius}
}

// resolvePenetration pushes the capsule out of any surface closer than its
// radius, sampling two height rings with game.RingSamples horizontal probes
// each for up to game.RingPasses passes. The velocity component pointing into
// each offending surface is zeroed, which produces sliding. The accumulated
// push magnitude is returned.
func (c *Controller) resolvePenetration() float32 {
	backoff := c.conf.Radius
	total := float32(0)

	for pass := 0; pass < game.RingPasses; pass++ {
		any := false
		for _, offset := range c.ringOffsets() {
			for _, dir := range c.ringDirs {
				center := mgl32.Vec3{c.pos.X(), c.foot() + offset, c.pos.Z()}
				origin := center.Sub(dir.Mul(backoff))

				hit, ok := c.world.Cast(origin, dir, backoff+c.conf.Radius)
				if !ok {
					continue
				}
				depth := c.conf.Radius - (hit.Distance - backoff)
				if depth <= 1e-4 {
					continue
				}

				push := ringPushDir(hit.Normal, dir)
				c.pos = c.pos.Add(push.Mul(depth))
				total += depth
				any = true

				if into := c.vel.Dot(push); into < 0 {
					c.vel = c.vel.Sub(push.Mul(into))
				}
			}
		}
		if !any {
			break
		}
	}
	return total
}

// ringPushDir resolves the direction a penetrating sample pushes the capsule:
// the surface normal projected to horizontal, unless the normal is near
// vertical, in which case the probe ray is retraced backwards.
func ringPushDir(normal, rayDir mgl32.Vec3) mgl32.Vec3 {
	hz := game.Vec3Horizontal(normal)
	if math32.Abs(normal.Y()) < 0.7 && hz.LenSqr() > 1e-8 {
		return hz.Normalize()
	}
	return rayDir.Mul(-1)
}

// tryStepUp tentatively raises the capsule onto low ledges. The raised
// position is kept, and recorded as safe, only if the ring probes come back
// clear.
func (c *Controller) tryStepUp() {
	raise := math32.Min(c.conf.StepHeight, game.StepUpHeightFrac*c.conf.Height)
	raised := c.pos.Add(mgl32.Vec3{0, raise, 0})
	if c.ringsClearAt(raised) {
		c.pos = raised
		c.safePos, c.hasSafe = raised, true
	}
}

// ringsClearAt re-runs the ring probes at a hypothetical position without
// mutating any state.
func (c *Controller) ringsClearAt(pos mgl32.Vec3) bool {
	backoff := c.conf.Radius
	foot := pos.Y() - c.conf.EyeHeight

	for _, offset := range c.ringOffsets() {
		center := mgl32.Vec3{pos.X(), foot + offset, pos.Z()}
		for _, dir := range c.ringDirs {
			origin := center.Sub(dir.Mul(backoff))
			hit, ok := c.world.Cast(origin, dir, backoff+c.conf.Radius)
			if ok && c.conf.Radius-(hit.Distance-backoff) > 1e-4 {
				return false
			}
		}
	}
	return true
}
