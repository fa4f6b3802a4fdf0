package geom

import (
	"github.com/echolume/echolume/assert"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an immutable triangle mesh baked into world space at creation.
// Geometry changes after load are unsupported; the spatial index is built at
// most once and never rebuilt.
type Mesh struct {
	id     int32
	tris   []Triangle
	bounds cube.BBox
	index  *BVH
}

// NewMesh bakes the given local-space triangle list (three vertices per
// triangle) through the world transform.
func NewMesh(id int32, vertices []mgl32.Vec3, transform mgl32.Mat4) *Mesh {
	assert.IsTrue(len(vertices)%3 == 0, "geom: mesh %d vertex count %d is not a multiple of 3", id, len(vertices))

	m := &Mesh{id: id, tris: make([]Triangle, 0, len(vertices)/3)}
	for i := 0; i+2 < len(vertices); i += 3 {
		m.tris = append(m.tris, Triangle{
			V0: mgl32.TransformCoordinate(vertices[i], transform),
			V1: mgl32.TransformCoordinate(vertices[i+1], transform),
			V2: mgl32.TransformCoordinate(vertices[i+2], transform),
		})
	}

	if len(m.tris) > 0 {
		m.bounds = m.tris[0].Bounds()
		for _, tri := range m.tris[1:] {
			m.bounds = boxUnion(m.bounds, tri.Bounds())
		}
	}
	return m
}

// ID returns the mesh's runtime ID.
func (m *Mesh) ID() int32 {
	return m.id
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.tris)
}

// Indexable reports whether the mesh carries geometry a spatial index can be
// built over.
func (m *Mesh) Indexable() bool {
	return len(m.tris) > 0
}

// Indexed reports whether the mesh's spatial index has been built.
func (m *Mesh) Indexed() bool {
	return m.index != nil
}

// BuildIndex builds the mesh's spatial index. It is expected to be called at
// most once, from the index build queue.
func (m *Mesh) BuildIndex() {
	m.index = NewBVH(m.tris)
}

// Bounds returns the mesh's world-space bounding box.
func (m *Mesh) Bounds() cube.BBox {
	return m.bounds
}

// Cast intersects a ray with the mesh. Indexed meshes use first-hit BVH
// traversal; un-indexed meshes fall back to brute-force triangle testing so
// the world never behaves partially solid while indexes warm up.
func (m *Mesh) Cast(origin, dir mgl32.Vec3, maxDist float32) (Hit, bool) {
	var (
		dist  float32
		tri   Triangle
		found bool
	)

	if m.index != nil {
		dist, tri, found = m.index.FirstHit(origin, dir, maxDist)
	} else {
		for _, candidate := range m.tris {
			if d, ok := candidate.IntersectRay(origin, dir, maxDist); ok && (!found || d < dist) {
				dist, tri, found = d, candidate, true
			}
		}
	}
	if !found {
		return Hit{}, false
	}

	normal := tri.Normal()
	if normal.Dot(dir) > 0 {
		normal = normal.Mul(-1)
	}
	return Hit{
		Point:    origin.Add(dir.Mul(dist)),
		Distance: dist,
		Normal:   normal,
		Mesh:     m.id,
	}, true
}
