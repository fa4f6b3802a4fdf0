package scan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pointsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scan_points_written",
		Help: "The number of scan points written into the point buffer.",
	})

	pointsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scan_points_rejected",
		Help: "The number of scan points rejected by the density gate.",
	})
)
