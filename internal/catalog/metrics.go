package catalog

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Records        prometheus.Gauge
	SearchResults  prometheus.Histogram
	LookupMisses   prometheus.Counter
	RejectedLimits prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Records: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Number of records in the loaded catalog",
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_search_results",
			Help:    "Number of records returned per search",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 24},
		}),
		LookupMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_lookup_misses_total",
			Help: "Fetch-by-id requests for unknown product ids",
		}),
		RejectedLimits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "catalog_rejected_limits_total",
			Help: "Searches rejected because of an invalid limit",
		}),
	}

	reg.MustRegister(m.Records, m.SearchResults, m.LookupMisses, m.RejectedLimits)
	return m
}
