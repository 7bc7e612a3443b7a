package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "football_stats"

var (
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "provider_requests_total",
		Help:      "API-Football requests by resource and outcome.",
	}, []string{"resource", "outcome"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "provider_request_duration_seconds",
		Help:      "API-Football request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource"})

	ingestEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "ingest_entries_total",
		Help:      "Entries processed by the ingestion pipeline.",
	}, []string{"domain", "outcome"})

	upsertedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "upserted_rows_total",
		Help:      "Rows written by bulk upserts.",
	}, []string{"table"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "cache_lookups_total",
		Help:      "Read cache lookups by cache and result.",
	}, []string{"cache", "result"})

	chunkRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "chunk_runs_total",
		Help:      "Chunk executions of update-all jobs.",
	}, []string{"domain", "outcome"})
)

func ObserveProviderRequest(resource, outcome string, elapsed time.Duration) {
	providerRequests.WithLabelValues(resource, outcome).Inc()
	providerLatency.WithLabelValues(resource).Observe(elapsed.Seconds())
}

func AddIngestCounts(domain string, success, failed int) {
	if success > 0 {
		ingestEntries.WithLabelValues(domain, "success").Add(float64(success))
	}
	if failed > 0 {
		ingestEntries.WithLabelValues(domain, "error").Add(float64(failed))
	}
}

func AddUpsertedRows(table string, rows int64) {
	if rows > 0 {
		upsertedRows.WithLabelValues(table).Add(float64(rows))
	}
}

func IncChunkRun(domain, outcome string) {
	chunkRuns.WithLabelValues(domain, outcome).Inc()
}

// CacheLookupObserver returns a hook counting hits and misses for the named cache.
func CacheLookupObserver(name string) func(hit bool) {
	hit := cacheLookups.WithLabelValues(name, "hit")
	miss := cacheLookups.WithLabelValues(name, "miss")
	return func(ok bool) {
		if ok {
			hit.Inc()
			return
		}
		miss.Inc()
	}
}
