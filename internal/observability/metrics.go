package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "emoup",
		Name:      "notes_ingested_total",
		Help:      "Total number of notes stored and classified",
	})

	EmotionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emoup",
		Name:      "emotions_recorded_total",
		Help:      "Total number of emotion events appended, by label",
	}, []string{"emotion"})

	ClassificationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "emoup",
		Name:      "classification_failures_total",
		Help:      "Total number of failed emotion classifications",
	})

	PlaylistsRecommended = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "emoup",
		Name:      "playlists_recommended_total",
		Help:      "Total number of playlists served, by driving emotion",
	}, []string{"emotion"})

	RendersQueued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "emoup",
		Name:      "renders_queued_total",
		Help:      "Total number of deepfake render jobs published",
	})

	RenderQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "emoup",
		Name:      "render_queue_depth",
		Help:      "Number of render jobs waiting in the queue",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "emoup",
		Name:      "render_duration_seconds",
		Help:      "Duration of deepfake render jobs",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "emoup",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
