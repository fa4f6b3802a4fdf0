package geom

import (
	"sort"
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

const bvhMaxLeafSize = 4

type bvhNode struct {
	bounds cube.BBox
	left   *bvhNode
	right  *bvhNode
	leaf   []Triangle // non-nil => leaf
}

// BVH is a median-split bounding volume hierarchy over a fixed triangle set.
// It is built once per mesh and never updated afterwards.
type BVH struct {
	root *bvhNode
}

var bvhStackPool = sync.Pool{
	New: func() interface{} {
		s := make([]*bvhNode, 0, 64)
		return &s
	},
}

// NewBVH builds a hierarchy over the given triangles. The input slice is
// copied so callers may keep their ordering.
func NewBVH(tris []Triangle) *BVH {
	if len(tris) == 0 {
		return &BVH{}
	}
	owned := make([]Triangle, len(tris))
	copy(owned, tris)
	return &BVH{root: buildBVHNode(owned)}
}

func buildBVHNode(tris []Triangle) *bvhNode {
	bounds := tris[0].Bounds()
	for _, tri := range tris[1:] {
		bounds = boxUnion(bounds, tri.Bounds())
	}

	if len(tris) <= bvhMaxLeafSize {
		return &bvhNode{bounds: bounds, leaf: tris}
	}

	// Split along the axis with the widest centroid spread; a degenerate
	// spread falls back to the box's longest extent.
	cmin := tris[0].Centroid()
	cmax := cmin
	for _, tri := range tris[1:] {
		c := tri.Centroid()
		for i := 0; i < 3; i++ {
			if c[i] < cmin[i] {
				cmin[i] = c[i]
			}
			if c[i] > cmax[i] {
				cmax[i] = c[i]
			}
		}
	}

	axis := 0
	spread := cmax.Sub(cmin)
	if spread[1] > spread[axis] {
		axis = 1
	}
	if spread[2] > spread[axis] {
		axis = 2
	}
	if spread[axis] <= 1e-9 {
		ext := bounds.Max().Sub(bounds.Min())
		axis = 0
		if ext[1] > ext[axis] {
			axis = 1
		}
		if ext[2] > ext[axis] {
			axis = 2
		}
	}

	sort.Slice(tris, func(i, j int) bool {
		return tris[i].Centroid()[axis] < tris[j].Centroid()[axis]
	})

	mid := len(tris) / 2
	return &bvhNode{
		bounds: bounds,
		left:   buildBVHNode(tris[:mid]),
		right:  buildBVHNode(tris[mid:]),
	}
}

// FirstHit traverses the hierarchy near-to-far and returns the first leaf
// intersection found. This approximates (but does not guarantee) the true
// nearest hit, which is acceptable for visual and gameplay queries only.
func (b *BVH) FirstHit(origin, dir mgl32.Vec3, maxDist float32) (dist float32, tri Triangle, ok bool) {
	if b.root == nil {
		return 0, Triangle{}, false
	}
	rr := newRayRecips(dir)

	stackPtr := bvhStackPool.Get().(*[]*bvhNode)
	stack := (*stackPtr)[:0]
	defer func() {
		*stackPtr = stack[:0]
		bvhStackPool.Put(stackPtr)
	}()

	stack = append(stack, b.root)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entry, hit := rayBox(origin, rr, node.bounds)
		if !hit || entry > maxDist {
			continue
		}

		if node.leaf != nil {
			best, found := float32(0), false
			var bestTri Triangle
			for _, leafTri := range node.leaf {
				if d, intersects := leafTri.IntersectRay(origin, dir, maxDist); intersects && (!found || d < best) {
					best, bestTri, found = d, leafTri, true
				}
			}
			if found {
				return best, bestTri, true
			}
			continue
		}

		// Push the far child first so the near one is traversed next.
		lEntry, lOK := rayBox(origin, rr, node.left.bounds)
		rEntry, rOK := rayBox(origin, rr, node.right.bounds)
		lOK = lOK && lEntry <= maxDist
		rOK = rOK && rEntry <= maxDist

		if lOK && rOK {
			if lEntry < rEntry {
				stack = append(stack, node.right, node.left)
			} else {
				stack = append(stack, node.left, node.right)
			}
		} else if lOK {
			stack = append(stack, node.left)
		} else if rOK {
			stack = append(stack, node.right)
		}
	}
	return 0, Triangle{}, false
}

func boxUnion(a, b cube.BBox) cube.BBox {
	return cube.Box(
		min32(a.Min()[0], b.Min()[0]),
		min32(a.Min()[1], b.Min()[1]),
		min32(a.Min()[2], b.Min()[2]),
		max32(a.Max()[0], b.Max()[0]),
		max32(a.Max()[1], b.Max()[1]),
		max32(a.Max()[2], b.Max()[2]),
	)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
