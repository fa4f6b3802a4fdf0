package world

import (
	"sort"
	"time"

	"github.com/echolume/echolume/elerror"
	"github.com/echolume/echolume/game"
	"github.com/echolume/echolume/geom"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// DefaultBuildBudget is sized to fit inside one render tick's slack.
const DefaultBuildBudget = 6 * time.Millisecond

// buildIndex is swapped out by tests to simulate build failures.
var buildIndex = (*geom.Mesh).BuildIndex

// Indexer incrementally builds mesh spatial indexes under a per-call wall
// clock budget. Cheapest meshes are built first so partial coverage becomes
// useful as soon as possible; everything else stays queued for the next call.
type Indexer struct {
	log    *logrus.Logger
	queue  *orderedmap.OrderedMap[int32, *geom.Mesh]
	failed map[int32]struct{}

	buildTimes []float64

	// now is swapped out by tests to make budget checks deterministic.
	now func() time.Time
}

// NewIndexer creates an idle index builder.
func NewIndexer(log *logrus.Logger) *Indexer {
	return &Indexer{
		log:    log,
		queue:  orderedmap.NewOrderedMap[int32, *geom.Mesh](),
		failed: map[int32]struct{}{},
		now:    time.Now,
	}
}

// Register enqueues a mesh for index building. Meshes that are already
// indexed, carry no indexable geometry, previously failed a build, or are
// already queued are ignored.
func (ix *Indexer) Register(m *geom.Mesh) {
	if m.Indexed() || !m.Indexable() {
		return
	}
	if _, excluded := ix.failed[m.ID()]; excluded {
		return
	}
	if _, queued := ix.queue.Get(m.ID()); queued {
		return
	}
	ix.queue.Set(m.ID(), m)
	indexQueueDepth.Set(float64(ix.queue.Len()))
}

// Build pops queued meshes in ascending triangle count and builds their
// indexes until elapsed wall time exceeds budget. The budget is only checked
// between meshes; a single in-flight build is never interrupted. A build
// panic excludes that mesh from indexed queries permanently, degrading its
// ray casts to brute-force triangle testing.
func (ix *Indexer) Build(budget time.Duration) {
	if budget <= 0 {
		budget = DefaultBuildBudget
	}
	if ix.queue.Len() == 0 {
		return
	}

	pending := make([]*geom.Mesh, 0, ix.queue.Len())
	for el := ix.queue.Front(); el != nil; el = el.Next() {
		pending = append(pending, el.Value)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].TriangleCount() < pending[j].TriangleCount()
	})

	// The first mesh always builds; the budget only gates the ones after it.
	start := ix.now()
	for i, m := range pending {
		if i > 0 && ix.now().Sub(start) > budget {
			break
		}
		ix.buildOne(m)
		ix.queue.Delete(m.ID())
	}
	indexQueueDepth.Set(float64(ix.queue.Len()))
}

func (ix *Indexer) buildOne(m *geom.Mesh) {
	defer func() {
		if r := recover(); r != nil {
			err := elerror.New("index build failed for mesh %d (%d triangles): %v", m.ID(), m.TriangleCount(), r)
			sentry.CaptureException(err)
			ix.log.Errorf("world: %v", err)
			ix.failed[m.ID()] = struct{}{}
			indexBuildFailures.Inc()
		}
	}()

	buildStart := time.Now()
	buildIndex(m)
	ix.buildTimes = append(ix.buildTimes, float64(time.Since(buildStart).Microseconds()))
	indexBuilds.Inc()
}

// Pending returns the number of meshes still queued for indexing.
func (ix *Indexer) Pending() int {
	return ix.queue.Len()
}

// Excluded reports whether a mesh failed its build and is permanently locked
// out of indexed queries.
func (ix *Indexer) Excluded(id int32) bool {
	_, ok := ix.failed[id]
	return ok
}

// Reset drops all queued meshes. Failure exclusions survive a reset.
func (ix *Indexer) Reset() {
	ix.queue = orderedmap.NewOrderedMap[int32, *geom.Mesh]()
	indexQueueDepth.Set(0)
}

// BuildTimeStats returns the mean and standard deviation of completed index
// build times in microseconds, for diagnostics.
func (ix *Indexer) BuildTimeStats() (mean, stdDev float64) {
	return game.Mean(ix.buildTimes), game.StandardDeviation(ix.buildTimes)
}
