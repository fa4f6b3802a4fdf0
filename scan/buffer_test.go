package scan

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func ringBufferConfig(capacity int) BufferConfig {
	conf := DefaultBufferConfig()
	conf.Capacity = capacity
	conf.MaxPerCell = 0
	conf.Lifetime = 0
	return conf
}

func TestWriteWrapsOverwritingOldest(t *testing.T) {
	b := NewBuffer(ringBufferConfig(4))

	for i := 0; i < 5; i++ {
		require.True(t, b.Write(mgl32.Vec3{float32(i), 0, 0}, 1, 0))
	}

	require.Equal(t, 4, b.Live())
	// The fifth write lands back on slot 0, evicting the first point.
	require.Equal(t, mgl32.Vec3{4, 0, 0}, b.Positions()[0])
	require.Equal(t, mgl32.Vec3{1, 0, 0}, b.Positions()[1])
}

func TestLiveNeverExceedsCapacity(t *testing.T) {
	b := NewBuffer(ringBufferConfig(8))
	for i := 0; i < 100; i++ {
		b.Write(mgl32.Vec3{float32(i), 0, 0}, 1, 0)
		require.LessOrEqual(t, b.Live(), b.Capacity())
	}
	require.Equal(t, 8, b.Live())
}

func TestDensityGateCapsCell(t *testing.T) {
	conf := ringBufferConfig(64)
	conf.CellSize = 1
	conf.MaxPerCell = 2
	b := NewBuffer(conf)

	// Three points inside the same voxel: only the quota gets through.
	require.True(t, b.Write(mgl32.Vec3{0.1, 0.1, 0.1}, 1, 0))
	require.True(t, b.Write(mgl32.Vec3{0.2, 0.2, 0.2}, 1, 0))
	require.False(t, b.Write(mgl32.Vec3{0.3, 0.3, 0.3}, 1, 0))

	// A neighboring voxel has its own quota.
	require.True(t, b.Write(mgl32.Vec3{1.5, 0.1, 0.1}, 1, 0))

	// Clearing forgets the density counts.
	b.Clear()
	require.Equal(t, 0, b.Live())
	require.True(t, b.Write(mgl32.Vec3{0.1, 0.1, 0.1}, 1, 0))
}

func TestFadeReachesExactZero(t *testing.T) {
	conf := ringBufferConfig(4)
	conf.Lifetime = 10
	b := NewBuffer(conf)

	b.Write(mgl32.Vec3{1, 2, 3}, 1, 0)
	require.Equal(t, conf.BaseColor, b.Colors()[0])

	b.FadeUpdate(5)
	half := b.Colors()[0]
	require.Less(t, half.X(), conf.BaseColor.X())
	require.Greater(t, half.X(), float32(0))

	// At and beyond the lifetime the color is forced to exactly zero, not an
	// epsilon-close residue.
	b.FadeUpdate(10)
	require.Equal(t, mgl32.Vec3{}, b.Colors()[0])
	b.FadeUpdate(20)
	require.Equal(t, mgl32.Vec3{}, b.Colors()[0])
}

func TestFadeEpsilonSkipsTinyChanges(t *testing.T) {
	conf := ringBufferConfig(4)
	conf.Lifetime = 1000
	conf.FadeEpsilon = 0.5
	b := NewBuffer(conf)

	b.Write(mgl32.Vec3{1, 0, 0}, 1, 0)
	before := b.Colors()[0]
	b.FadeUpdate(1)
	require.Equal(t, before, b.Colors()[0])
}

func TestIntensityForClampsAndFalls(t *testing.T) {
	b := NewBuffer(ringBufferConfig(4))

	require.Equal(t, b.conf.MaxIntensity, b.IntensityFor(0, 40))
	require.Equal(t, b.conf.MinIntensity, b.IntensityFor(40, 40))
	require.Greater(t, b.IntensityFor(10, 40), b.IntensityFor(30, 40))
}
