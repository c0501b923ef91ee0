package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"textinsight/internal/models"
)

// Backend request outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeEmpty = "empty"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textinsight_analyses_total",
			Help: "Total analyses produced by sentiment and insight source",
		},
		[]string{"sentiment", "source"},
	)

	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "textinsight_backend_requests_total",
			Help: "Total generative backend requests by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	analyzeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "textinsight_analyze_duration_seconds",
			Help:    "Time spent building one analysis",
			Buckets: prometheus.DefBuckets,
		},
	)

	storedAnalysesDesc = prometheus.NewDesc(
		"textinsight_stored_analyses",
		"Number of stored analyses by sentiment",
		[]string{"sentiment"},
		nil,
	)
)

// SentimentCounter reports how many stored analyses carry each label.
type SentimentCounter interface {
	CountAnalysesBySentiment(ctx context.Context) ([]models.SentimentCount, error)
}

// StoredAnalysesCollector is a custom Prometheus collector that reads
// per-sentiment totals from the store on each scrape.
type StoredAnalysesCollector struct {
	counter SentimentCounter
}

// Describe sends the metric descriptor to the channel.
func (c *StoredAnalysesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- storedAnalysesDesc
}

// Collect queries the store and emits one gauge per sentiment.
func (c *StoredAnalysesCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	counts, err := c.counter.CountAnalysesBySentiment(ctx)
	if err != nil {
		slog.Error("failed to collect stored analysis metrics", "error", err)
		return
	}
	for _, sc := range counts {
		ch <- prometheus.MustNewConstMetric(
			storedAnalysesDesc,
			prometheus.GaugeValue,
			float64(sc.Count),
			string(sc.Sentiment),
		)
	}
}

var registerOnce sync.Once

// Init registers all collectors with the default registry. counter may be
// nil when no store is configured or the store cannot count.
// Must be called once at startup.
func Init(counter SentimentCounter) {
	registerOnce.Do(func() {
		prometheus.MustRegister(analysesTotal, backendRequestsTotal, analyzeDuration)
		if counter != nil {
			prometheus.MustRegister(&StoredAnalysesCollector{counter: counter})
		}
	})
}

// RecordAnalysis records one completed analysis.
func RecordAnalysis(sentiment models.Sentiment, source string, elapsed time.Duration) {
	analysesTotal.WithLabelValues(string(sentiment), source).Inc()
	analyzeDuration.Observe(elapsed.Seconds())
}

// RecordBackendRequest records the outcome of one generative backend call.
func RecordBackendRequest(provider, outcome string) {
	backendRequestsTotal.WithLabelValues(provider, outcome).Inc()
}
