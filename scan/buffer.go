package scan

import (
	"encoding/binary"

	"github.com/chewxy/math32"
	"github.com/echolume/echolume/assert"
	"github.com/echolume/echolume/game"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/zeebo/xxh3"
)

// BufferConfig tunes the point arena and its density limiting.
type BufferConfig struct {
	// Capacity is the fixed slot count; once full, the oldest slots are
	// overwritten in ring order.
	Capacity int

	// CellSize is the edge length of a density voxel. MaxPerCell caps how
	// many points a single voxel accepts within one clear-cycle; zero or
	// negative disables the gate.
	CellSize   float32
	MaxPerCell int

	// Lifetime is the point fade duration in seconds; zero or negative keeps
	// points lit forever.
	Lifetime float32

	MinIntensity float32
	MaxIntensity float32

	// FadeEpsilon is the smallest per-channel color change worth rewriting a
	// slot for during a fade sweep.
	FadeEpsilon float32

	BaseColor mgl32.Vec3
}

// DefaultBufferConfig returns the standard point arena tuning.
func DefaultBufferConfig() BufferConfig {
	return BufferConfig{
		Capacity:     131072,
		CellSize:     0.05,
		MaxPerCell:   6,
		Lifetime:     60,
		MinIntensity: 0.05,
		MaxIntensity: 1,
		FadeEpsilon:  1.0 / 255.0,
		BaseColor:    mgl32.Vec3{0.35, 0.78, 1.0},
	}
}

// Buffer is a fixed-capacity arena of scan points stored as parallel arrays
// addressed by slot index. Slots are recycled forever; there is no individual
// deletion, only overwrite. It is owned exclusively by the scan controller.
type Buffer struct {
	conf BufferConfig

	positions     []mgl32.Vec3
	colors        []mgl32.Vec3
	spawnTimes    []float32
	baseIntensity []float32

	// written advances monotonically; the write slot is written mod capacity.
	written uint64

	cells map[uint64]int
}

// NewBuffer allocates the point arena once; it is never resized.
func NewBuffer(conf BufferConfig) *Buffer {
	assert.IsTrue(conf.Capacity > 0, "scan: buffer capacity must be positive, got %d", conf.Capacity)
	assert.IsTrue(conf.MaxPerCell <= 0 || conf.CellSize > 0, "scan: density cell size must be positive, got %f", conf.CellSize)

	return &Buffer{
		conf:          conf,
		positions:     make([]mgl32.Vec3, conf.Capacity),
		colors:        make([]mgl32.Vec3, conf.Capacity),
		spawnTimes:    make([]float32, conf.Capacity),
		baseIntensity: make([]float32, conf.Capacity),
		cells:         map[uint64]int{},
	}
}

// IntensityFor maps a hit distance to a point intensity.
func (b *Buffer) IntensityFor(dist, maxDist float32) float32 {
	f := 1 - dist/maxDist
	return game.ClampFloat32(f*f, b.conf.MinIntensity, b.conf.MaxIntensity)
}

// Write stores a point into the next ring slot, overwriting the oldest entry
// once the cursor has wrapped. The write is rejected if the point's density
// voxel already holds its quota for this clear-cycle.
func (b *Buffer) Write(pos mgl32.Vec3, intensity, now float32) bool {
	if b.conf.MaxPerCell > 0 {
		key := b.cellKey(pos)
		if b.cells[key] >= b.conf.MaxPerCell {
			pointsRejected.Inc()
			return false
		}
		b.cells[key]++
	}

	slot := int(b.written % uint64(b.conf.Capacity))
	b.positions[slot] = pos
	b.colors[slot] = b.conf.BaseColor.Mul(intensity)
	b.spawnTimes[slot] = now
	b.baseIntensity[slot] = intensity
	b.written++

	pointsWritten.Inc()
	return true
}

func (b *Buffer) cellKey(pos mgl32.Vec3) uint64 {
	var raw [12]byte
	for i := 0; i < 3; i++ {
		binary.LittleEndian.PutUint32(raw[i*4:], uint32(int32(math32.Floor(pos[i]/b.conf.CellSize))))
	}
	return xxh3.Hash(raw[:])
}

// FadeUpdate recomputes every live slot's displayed color from its age. Slots
// whose change stays under FadeEpsilon keep their previous value. The sweep
// is O(capacity) per tick, which the fixed capacity ceiling keeps bounded.
func (b *Buffer) FadeUpdate(now float32) {
	if b.conf.Lifetime <= 0 {
		return
	}

	for i := 0; i < b.Live(); i++ {
		age := now - b.spawnTimes[i]
		remaining := game.ClampFloat32(1-age/b.conf.Lifetime, 0, 1)
		if remaining <= 0 {
			b.colors[i] = mgl32.Vec3{}
			continue
		}

		want := b.conf.BaseColor.Mul(b.baseIntensity[i] * remaining)
		delta := game.AbsVec32(want.Sub(b.colors[i]))
		if math32.Max(delta[0], math32.Max(delta[1], delta[2])) < b.conf.FadeEpsilon {
			continue
		}
		b.colors[i] = want
	}
}

// Clear resets the write cursor, zeroes the arena and forgets all density
// counts.
func (b *Buffer) Clear() {
	b.written = 0
	for i := range b.positions {
		b.positions[i] = mgl32.Vec3{}
		b.colors[i] = mgl32.Vec3{}
		b.spawnTimes[i] = 0
		b.baseIntensity[i] = 0
	}
	clear(b.cells)
}

// Live returns the number of slots holding a written point.
func (b *Buffer) Live() int {
	if b.written >= uint64(b.conf.Capacity) {
		return b.conf.Capacity
	}
	return int(b.written)
}

// Capacity returns the fixed slot count.
func (b *Buffer) Capacity() int {
	return b.conf.Capacity
}

// Positions exposes the backing position array for the renderer. Only the
// first Live() entries are meaningful.
func (b *Buffer) Positions() []mgl32.Vec3 {
	return b.positions
}

// Colors exposes the backing color array for the renderer. Only the first
// Live() entries are meaningful.
func (b *Buffer) Colors() []mgl32.Vec3 {
	return b.colors
}
