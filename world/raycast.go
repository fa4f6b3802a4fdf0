package world

import (
	"github.com/echolume/echolume/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// Cast intersects a single ray against every mesh in the world and returns
// the nearest per-mesh result. Indexed meshes answer with first-hit BVH
// traversal, which approximates the true nearest hit and must not be relied
// on for exact queries; un-indexed meshes are brute-forced rather than
// skipped so the world never turns partially solid during index warm-up.
func (w *World) Cast(origin, dir mgl32.Vec3, maxDist float32) (geom.Hit, bool) {
	raysCast.Inc()

	var (
		best  geom.Hit
		found bool
	)
	nearest := maxDist
	for _, m := range w.meshes {
		if entry, ok := geom.RayAABB(origin, dir, m.Bounds()); !ok || entry > nearest {
			continue
		}
		if hit, ok := m.Cast(origin, dir, nearest); ok {
			best, found = hit, true
			nearest = hit.Distance
		}
	}

	if found {
		rayHits.Inc()
	}
	return best, found
}
