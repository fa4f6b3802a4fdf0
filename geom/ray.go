package geom

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line with a bounded reach. Dir is expected to be normalized.
type Ray struct {
	Origin  mgl32.Vec3
	Dir     mgl32.Vec3
	MaxDist float32
}

// Hit describes a ray intersection against a mesh surface.
type Hit struct {
	Point    mgl32.Vec3
	Distance float32
	Normal   mgl32.Vec3
	Mesh     int32
}

// rayRecips caches per-axis direction reciprocals for slab tests. Axes with a
// near-zero direction component are marked parallel and tested by containment.
type rayRecips struct {
	inv mgl32.Vec3
	par [3]bool
}

func newRayRecips(dir mgl32.Vec3) rayRecips {
	const eps = 1e-12
	rr := rayRecips{}
	for i := 0; i < 3; i++ {
		if d := dir[i]; d > eps || d < -eps {
			rr.inv[i] = 1 / d
		} else {
			rr.par[i] = true
		}
	}
	return rr
}

func rayBox(origin mgl32.Vec3, rr rayRecips, bb cube.BBox) (float32, bool) {
	tmin, tmax := float32(0), float32(math32.MaxFloat32)
	min, max := bb.Min(), bb.Max()

	for i := 0; i < 3; i++ {
		if rr.par[i] {
			if origin[i] < min[i] || origin[i] > max[i] {
				return 0, false
			}
			continue
		}

		t1 := (min[i] - origin[i]) * rr.inv[i]
		t2 := (max[i] - origin[i]) * rr.inv[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// RayAABB returns the entry distance of the ray into the bounding box, or
// false if the ray never enters it. An origin inside the box yields zero.
func RayAABB(origin, dir mgl32.Vec3, bb cube.BBox) (float32, bool) {
	return rayBox(origin, newRayRecips(dir), bb)
}
