package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsProcessedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "uav_uploads_processed_total",
		Help: "Total number of uploads processed, by media kind and status",
	}, []string{"kind", "status"})

	ProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "uav_processing_duration_seconds",
		Help:    "Duration of the media processing pipeline",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"kind"})

	DetectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "uav_detections_total",
		Help: "Total number of objects detected across all uploads",
	})
)
