package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of the recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Recommendation results served straight from the cache
	RecommendCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recommend_cache_hits_total",
		Help: "Recommendation requests answered from cache",
	})

	// Completed model training runs (startup and admin-triggered)
	ModelTrainingsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "model_trainings_total",
		Help: "Completed model training runs",
	})

	// Holdout RMSE of the model currently being served
	ModelRMSE = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "model_holdout_rmse",
		Help: "Holdout RMSE of the currently served model",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequestsTotal,
		RecommendCacheHitsTotal,
		ModelTrainingsTotal,
		ModelRMSE,
	)
}
