package scan

import (
	"math/rand"
	"time"

	"github.com/echolume/echolume/assert"
	"github.com/echolume/echolume/game"
	"github.com/echolume/echolume/world"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// View is the camera state a scan samples from.
type View struct {
	Eye        mgl32.Vec3
	Yaw, Pitch float32

	// FOV is the horizontal field of view in degrees; the vertical span is
	// derived from the aspect ratio.
	FOV    float32
	Aspect float32
}

// Config tunes the three scan patterns.
type Config struct {
	MaxDistance float32

	// Burst fires BurstRays rays per call along an azimuth/elevation raster
	// of AzimuthSteps x ElevationSteps cells; the raster cursor survives
	// between calls so repeated bursts progressively cover the sphere.
	BurstRays      int
	AzimuthSteps   int
	ElevationSteps int

	ViewSamplesX int
	ViewSamplesY int

	SweepLines    int
	SweepColumns  int
	SweepDuration float32
	// SweepPitchSpan is the total vertical angle in degrees a sweep covers,
	// centered on the horizon.
	SweepPitchSpan float32
}

// DefaultConfig returns the standard scan tuning.
func DefaultConfig() Config {
	return Config{
		MaxDistance:    40,
		BurstRays:      200,
		AzimuthSteps:   48,
		ElevationSteps: 24,
		ViewSamplesX:   64,
		ViewSamplesY:   36,
		SweepLines:     60,
		SweepColumns:   90,
		SweepDuration:  2,
		SweepPitchSpan: 150,
	}
}

// Beam is the single ephemeral sweep beam visual. It is presentation state
// only and never a point source.
type Beam struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

type sweepSession struct {
	startTime float32
	duration  float32
	lines     int
	columns   int
	processed int
}

// Controller orchestrates the scan patterns, routing every ray through the
// world's ray query service and every hit into the point buffer it owns.
type Controller struct {
	log   *logrus.Logger
	world *world.World
	buf   *Buffer
	conf  Config
	rng   *rand.Rand

	burstCursor int
	sweep       *sweepSession

	beam    Beam
	beamSet bool
}

// NewController creates a scan controller. A nil rng falls back to a
// time-seeded source; tests inject a seeded one for deterministic beams.
func NewController(log *logrus.Logger, w *world.World, buf *Buffer, conf Config, rng *rand.Rand) *Controller {
	assert.IsTrue(conf.MaxDistance > 0, "scan: max distance must be positive, got %f", conf.MaxDistance)
	assert.IsTrue(conf.BurstRays >= 1, "scan: burst ray count must be at least 1, got %d", conf.BurstRays)
	assert.IsTrue(conf.AzimuthSteps >= 1 && conf.ElevationSteps >= 1, "scan: burst raster must be at least 1x1, got %dx%d", conf.AzimuthSteps, conf.ElevationSteps)
	assert.IsTrue(conf.ViewSamplesX >= 1 && conf.ViewSamplesY >= 1, "scan: view sample grid must be at least 1x1, got %dx%d", conf.ViewSamplesX, conf.ViewSamplesY)
	assert.IsTrue(conf.SweepLines >= 1 && conf.SweepColumns >= 1, "scan: sweep grid must be at least 1x1, got %dx%d", conf.SweepLines, conf.SweepColumns)
	assert.IsTrue(conf.SweepDuration > 0, "scan: sweep duration must be positive, got %f", conf.SweepDuration)

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{log: log, world: w, buf: buf, conf: conf, rng: rng}
}

// Buffer returns the point buffer owned by this controller.
func (s *Controller) Buffer() *Buffer {
	return s.buf
}

// Tick advances an active sweep and runs the point fade sweep. It is called
// once per render tick while the scan layer is active.
func (s *Controller) Tick(view View, now float32) {
	if s.sweep != nil {
		s.advanceSweep(view, now)
	}
	s.buf.FadeUpdate(now)
}

// Burst fires a batch of rays across the rotating spherical raster around the
// eye. Repeated calls advance the raster cursor so coverage accumulates.
func (s *Controller) Burst(view View, now float32) {
	total := s.conf.AzimuthSteps * s.conf.ElevationSteps
	for i := 0; i < s.conf.BurstRays; i++ {
		cell := (s.burstCursor + i) % total
		aIdx := cell % s.conf.AzimuthSteps
		eIdx := cell / s.conf.AzimuthSteps

		yaw := (float32(aIdx)+0.5)/float32(s.conf.AzimuthSteps)*360 - 180
		pitch := (float32(eIdx)+0.5)/float32(s.conf.ElevationSteps)*180 - 90
		s.castAndWrite(view.Eye, game.DirectionVector(yaw, pitch), now)
	}
	s.burstCursor = (s.burstCursor + s.conf.BurstRays) % total
}

// ScanView runs one immediate pass over a sample grid spanning the current
// view's field of view.
func (s *Controller) ScanView(view View, now float32) {
	assert.IsTrue(view.Aspect > 0, "scan: view aspect must be positive, got %f", view.Aspect)

	vSpan := view.FOV / view.Aspect
	for y := 0; y < s.conf.ViewSamplesY; y++ {
		v := (float32(y) + 0.5) / float32(s.conf.ViewSamplesY)
		pitch := game.ClampFloat32(view.Pitch+(v-0.5)*vSpan, -90, 90)

		for x := 0; x < s.conf.ViewSamplesX; x++ {
			u := (float32(x) + 0.5) / float32(s.conf.ViewSamplesX)
			yaw := view.Yaw + (u-0.5)*view.FOV
			s.castAndWrite(view.Eye, game.DirectionVector(yaw, pitch), now)
		}
	}
}

// StartSweep begins an animated top-to-bottom sweep. Starting a new sweep
// while one is active discards the in-progress session: last call wins.
func (s *Controller) StartSweep(now float32) {
	s.sweep = &sweepSession{
		startTime: now,
		duration:  s.conf.SweepDuration,
		lines:     s.conf.SweepLines,
		columns:   s.conf.SweepColumns,
	}
	s.beamSet = false
}

// SweepActive reports whether a sweep session is in progress.
func (s *Controller) SweepActive() bool {
	return s.sweep != nil
}

// CurrentBeam returns the sweep's single beam visual, if one is lit.
func (s *Controller) CurrentBeam() (Beam, bool) {
	return s.beam, s.beamSet
}

func (s *Controller) advanceSweep(view View, now float32) {
	sw := s.sweep
	progress := game.ClampFloat32((now-sw.startTime)/sw.duration, 0, 1)
	target := int(progress * float32(sw.lines))

	for line := sw.processed; line < target; line++ {
		frac := (float32(line) + 0.5) / float32(sw.lines)
		pitch := (frac - 0.5) * s.conf.SweepPitchSpan
		beamCol := s.rng.Intn(sw.columns)

		for col := 0; col < sw.columns; col++ {
			u := (float32(col) + 0.5) / float32(sw.columns)
			yaw := view.Yaw + (u-0.5)*view.FOV
			dir := game.DirectionVector(yaw, pitch)
			s.castAndWrite(view.Eye, dir, now)

			if col == beamCol {
				s.beam = Beam{Origin: view.Eye, Dir: dir}
				s.beamSet = true
			}
		}
	}
	sw.processed = target

	if progress >= 1 {
		s.sweep = nil
		s.beamSet = false
	}
}

func (s *Controller) castAndWrite(origin, dir mgl32.Vec3, now float32) bool {
	hit, ok := s.world.Cast(origin, dir, s.conf.MaxDistance)
	if !ok {
		return false
	}
	return s.buf.Write(hit.Point, s.buf.IntensityFor(hit.Distance, s.conf.MaxDistance), now)
}
