package geom

import (
	"math/rand"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

func randomTriangles(rng *rand.Rand, n int) []Triangle {
	tris := make([]Triangle, n)
	for i := range tris {
		center := mgl32.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
			rng.Float32()*20 - 10,
		}
		tris[i] = Triangle{
			V0: center,
			V1: center.Add(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()}),
			V2: center.Add(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()}),
		}
	}
	return tris
}

func bruteNearest(tris []Triangle, origin, dir mgl32.Vec3, maxDist float32) (float32, bool) {
	best, found := float32(0), false
	for _, tri := range tris {
		if d, ok := tri.IntersectRay(origin, dir, maxDist); ok && (!found || d < best) {
			best, found = d, true
		}
	}
	return best, found
}

func TestBVHAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tris := randomTriangles(rng, 500)
	bvh := NewBVH(tris)

	for i := 0; i < 500; i++ {
		origin := mgl32.Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10}
		dir := mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		if dir.LenSqr() < 1e-6 {
			continue
		}
		dir = dir.Normalize()

		bruteDist, bruteOK := bruteNearest(tris, origin, dir, 50)
		bvhDist, _, bvhOK := bvh.FirstHit(origin, dir, 50)

		if bruteOK != bvhOK {
			t.Fatalf("ray %d: brute force hit=%v but BVH hit=%v", i, bruteOK, bvhOK)
		}
		// First-hit traversal may legally return a hit beyond the true
		// nearest, but never one nearer than it.
		if bvhOK && bvhDist < bruteDist-1e-4 {
			t.Fatalf("ray %d: BVH hit at %f nearer than brute force nearest %f", i, bvhDist, bruteDist)
		}
	}
}

func TestBVHEmpty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, _, ok := bvh.FirstHit(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, 10); ok {
		t.Fatal("expected no hit from an empty BVH")
	}
}

func TestRayAABB(t *testing.T) {
	box := cube.Box(0, 0, 0, 1, 1, 1)

	if entry, ok := RayAABB(mgl32.Vec3{-1, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}, box); !ok || entry < 0.99 || entry > 1.01 {
		t.Fatalf("expected entry distance 1, got %f (hit=%v)", entry, ok)
	}
	if entry, ok := RayAABB(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{0, 1, 0}, box); !ok || entry != 0 {
		t.Fatalf("expected zero entry distance from inside, got %f (hit=%v)", entry, ok)
	}
	if _, ok := RayAABB(mgl32.Vec3{-1, 2, 0.5}, mgl32.Vec3{1, 0, 0}, box); ok {
		t.Fatal("expected miss for a ray passing above the box")
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := Triangle{
		V0: mgl32.Vec3{-1, -1, 2},
		V1: mgl32.Vec3{1, -1, 2},
		V2: mgl32.Vec3{0, 1, 2},
	}

	dist, ok := tri.IntersectRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, 10)
	if !ok || dist < 1.999 || dist > 2.001 {
		t.Fatalf("expected hit at distance 2, got %f (hit=%v)", dist, ok)
	}
	if _, ok := tri.IntersectRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, 10); ok {
		t.Fatal("expected miss behind the ray origin")
	}
	if _, ok := tri.IntersectRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 1}, 1.5); ok {
		t.Fatal("expected miss beyond max distance")
	}
}

func TestMeshCastFlipsNormalAgainstRay(t *testing.T) {
	floor := NewMesh(1, []mgl32.Vec3{
		{-5, 0, -5}, {5, 0, -5}, {5, 0, 5},
		{-5, 0, -5}, {5, 0, 5}, {-5, 0, 5},
	}, mgl32.Ident4())

	above, ok := floor.Cast(mgl32.Vec3{0, 3, 0}, mgl32.Vec3{0, -1, 0}, 10)
	if !ok || above.Normal.Y() <= 0 {
		t.Fatalf("expected upward-facing normal from above, got %v (hit=%v)", above.Normal, ok)
	}
	below, ok := floor.Cast(mgl32.Vec3{0, -3, 0}, mgl32.Vec3{0, 1, 0}, 10)
	if !ok || below.Normal.Y() >= 0 {
		t.Fatalf("expected downward-facing normal from below, got %v (hit=%v)", below.Normal, ok)
	}
}

func TestMeshTransformBakesWorldSpace(t *testing.T) {
	mesh := NewMesh(2, []mgl32.Vec3{
		{-1, 0, -1}, {1, 0, -1}, {0, 0, 1},
	}, mgl32.Translate3D(0, 4, 0))

	hit, ok := mesh.Cast(mgl32.Vec3{0, 10, 0}, mgl32.Vec3{0, -1, 0}, 20)
	if !ok {
		t.Fatal("expected hit on translated mesh")
	}
	if hit.Point.Y() < 3.999 || hit.Point.Y() > 4.001 {
		t.Fatalf("expected hit at y=4, got %v", hit.Point)
	}
	if hit.Mesh != 2 {
		t.Fatalf("expected mesh ID 2, got %d", hit.Mesh)
	}
}
