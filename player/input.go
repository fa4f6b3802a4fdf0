package player

// Input is a single tick's worth of normalized player intent. Key states are
// plain booleans and look deltas arrive already sensitivity-scaled; raw
// device polling happens upstream.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool

	Jump   bool
	Sprint bool

	// Sink lowers the player while free-flying; it has no effect otherwise.
	Sink bool

	// Fly toggles creative free-flight for this tick, bypassing gravity and
	// collision entirely.
	Fly bool

	YawDelta   float32
	PitchDelta float32
}
