package game

const (
	DefaultGravity     = float32(18.0)
	DefaultWalkSpeed   = float32(3.2)
	DefaultSprintSpeed = float32(5.6)
	DefaultJumpSpeed   = float32(7.0)

	DefaultCollisionRadius = float32(0.35)
	DefaultCollisionHeight = float32(1.5)
	DefaultEyeHeight       = float32(1.62)
	DefaultStepHeight      = float32(0.6)

	// MaxSubStep bounds a single integration step so fast movement cannot
	// tunnel through thin geometry within one frame.
	MaxSubStep = float32(0.02)

	// HorizontalBlendPerStep is applied once per sub-step rather than scaled
	// by dt, so shorter sub-steps converge onto the wish velocity faster.
	HorizontalBlendPerStep = float32(0.25)

	CollisionSkin = float32(0.02)

	RingSamples = 24
	RingPasses  = 2

	// DeepPenetrationFrac of the capsule radius in accumulated push within a
	// single sub-step triggers a rollback to the last safe position.
	DeepPenetrationFrac = float32(0.6)
	SafePushThreshold   = float32(0.01)

	StepUpHeightFrac = float32(0.8)

	MaxPitch = float32(89.0)
)
