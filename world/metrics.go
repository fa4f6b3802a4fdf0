package world

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	raysCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "world_rays_cast",
		Help: "The number of rays cast against the static mesh set.",
	})

	rayHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "world_ray_hits",
		Help: "The number of ray casts that intersected geometry.",
	})

	indexQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "world_index_queue_depth",
		Help: "The number of meshes waiting for a spatial index build.",
	})

	indexBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "world_index_builds",
		Help: "The number of completed spatial index builds.",
	})

	indexBuildFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "world_index_build_failures",
		Help: "The number of spatial index builds that failed and were excluded.",
	})
)
