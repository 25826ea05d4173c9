package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Slides-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint"},
	)

	// Generation outcomes
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "generations_total",
			Help:      "Total presentation generation runs",
		},
		[]string{"status"},
	)

	// Slides produced per run
	SlidesPerGeneration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "slides_per_generation",
			Help:      "Number of slides produced per generation run",
			Buckets:   []float64{1, 3, 5, 8, 10, 15, 20, 25},
		},
	)

	// Upstream completion calls
	CompletionCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "completion_calls_total",
			Help:      "Total chat completion calls to the model provider",
		},
		[]string{"model", "status"},
	)

	// Completion call duration
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "completion_duration_seconds",
			Help:      "Chat completion call duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 75},
		},
		[]string{"model"},
	)

	// Token usage
	TokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "tokens_total",
			Help:      "Total tokens consumed by completion calls",
		},
		[]string{"model", "kind"},
	)

	// Image lookups
	ImageLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "decksnap",
			Subsystem: "slides_api",
			Name:      "image_lookups_total",
			Help:      "Total image search lookups",
		},
		[]string{"status"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordGeneration records one finished generation run
func RecordGeneration(status string, slideCount int) {
	GenerationsTotal.WithLabelValues(status).Inc()
	SlidesPerGeneration.Observe(float64(slideCount))
}

// RecordCompletionCall records one upstream chat completion call
func RecordCompletionCall(model, status string, duration time.Duration) {
	CompletionCallsTotal.WithLabelValues(model, status).Inc()
	CompletionDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordTokenUsage records prompt and completion token consumption
func RecordTokenUsage(model string, promptTokens, completionTokens int) {
	TokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	TokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
}

// RecordImageLookup records one image search attempt
func RecordImageLookup(status string) {
	ImageLookupsTotal.WithLabelValues(status).Inc()
}
