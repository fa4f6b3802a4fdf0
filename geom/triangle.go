package geom

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Triangle is a single world-space triangle.
type Triangle struct {
	V0, V1, V2 mgl32.Vec3
}

// IntersectRay runs a Möller–Trumbore intersection test without backface
// culling and returns the hit distance along dir.
func (t Triangle) IntersectRay(origin, dir mgl32.Vec3, maxDist float32) (float32, bool) {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	pvec := dir.Cross(edge2)
	det := edge1.Dot(pvec)
	if math32.Abs(det) < 1e-8 {
		return 0, false
	}
	invDet := 1 / det

	tvec := origin.Sub(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	qvec := tvec.Cross(edge1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(qvec) * invDet
	if dist < 1e-5 || dist > maxDist {
		return 0, false
	}
	return dist, true
}

// Normal returns the normalized geometric normal. Degenerate triangles yield
// the zero vector.
func (t Triangle) Normal() mgl32.Vec3 {
	n := t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0))
	if n.LenSqr() < 1e-12 {
		return mgl32.Vec3{}
	}
	return n.Normalize()
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (t Triangle) Bounds() cube.BBox {
	return cube.Box(
		math32.Min(t.V0[0], math32.Min(t.V1[0], t.V2[0])),
		math32.Min(t.V0[1], math32.Min(t.V1[1], t.V2[1])),
		math32.Min(t.V0[2], math32.Min(t.V1[2], t.V2[2])),
		math32.Max(t.V0[0], math32.Max(t.V1[0], t.V2[0])),
		math32.Max(t.V0[1], math32.Max(t.V1[1], t.V2[1])),
		math32.Max(t.V0[2], math32.Max(t.V1[2], t.V2[2])),
	)
}

// Centroid returns the triangle's centroid.
func (t Triangle) Centroid() mgl32.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}
