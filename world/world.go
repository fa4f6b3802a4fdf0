package world

import (
	"github.com/echolume/echolume/geom"
	"github.com/sirupsen/logrus"
)

// World owns the static mesh set and the index build queue. It is not safe
// for concurrent use; every query and mutation happens on the tick goroutine.
type World struct {
	log     *logrus.Logger
	meshes  []*geom.Mesh
	indexer *Indexer
}

// New creates an empty world.
func New(log *logrus.Logger) *World {
	return &World{
		log:     log,
		indexer: NewIndexer(log),
	}
}

// Indexer returns the world's spatial index builder.
func (w *World) Indexer() *Indexer {
	return w.indexer
}

// ReplaceMeshes swaps the full static mesh set, e.g. on world load. Every
// mesh without a built index is re-registered for incremental building.
func (w *World) ReplaceMeshes(meshes []*geom.Mesh) {
	w.meshes = meshes
	w.indexer.Reset()
	for _, m := range meshes {
		w.indexer.Register(m)
	}
	w.log.Infof("world: mesh set replaced (%d meshes, %d queued for indexing)", len(meshes), w.indexer.Pending())
}

// Meshes returns the current static mesh set.
func (w *World) Meshes() []*geom.Mesh {
	return w.meshes
}

// Empty reports whether the world holds no collision geometry.
func (w *World) Empty() bool {
	return len(w.meshes) == 0
}
