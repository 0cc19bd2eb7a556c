package service

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// itineraryMetrics holds Prometheus metrics for itinerary operations.
type itineraryMetrics struct {
	operations      *prometheus.CounterVec
	normalizeWrites prometheus.Counter
	randomTripStops prometheus.Histogram
}

var (
	metricsInstance *itineraryMetrics
	metricsOnce     sync.Once
	defaultRegistry = prometheus.DefaultRegisterer
)

func newItineraryMetrics() *itineraryMetrics {
	metricsOnce.Do(func() {
		metricsInstance = &itineraryMetrics{
			operations: promauto.With(defaultRegistry).NewCounterVec(prometheus.CounterOpts{
				Name: "itinerary_operations_total",
				Help: "Itinerary operations by operation and outcome",
			}, []string{"operation", "result"}),
			normalizeWrites: promauto.With(defaultRegistry).NewCounter(prometheus.CounterOpts{
				Name: "itinerary_normalization_rewrites_total",
				Help: "Stop positions rewritten while restoring 1..N ordering",
			}),
			randomTripStops: promauto.With(defaultRegistry).NewHistogram(prometheus.HistogramOpts{
				Name:    "itinerary_random_trip_stops",
				Help:    "Number of stops in generated random trips",
				Buckets: prometheus.LinearBuckets(2, 1, 7),
			}),
		}
	})
	return metricsInstance
}

// resetMetricsForTesting swaps in a fresh registry. Only call from tests.
func resetMetricsForTesting() {
	defaultRegistry = prometheus.NewRegistry()
	metricsInstance = nil
	metricsOnce = sync.Once{}
}

// ObserveNormalization records how many stop positions one normalization rewrote.
// It is handed to the postgres store as its normalize observer.
func ObserveNormalization(rewritten int) {
	if rewritten > 0 {
		newItineraryMetrics().normalizeWrites.Add(float64(rewritten))
	}
}
