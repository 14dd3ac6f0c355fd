package metrics

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"relieflink/internal/db"
)

var (
	requestsDesc = prometheus.NewDesc(
		"relieflink_requests",
		"Number of requests by status",
		[]string{"status"},
		nil,
	)
	responsesDesc = prometheus.NewDesc(
		"relieflink_responses",
		"Number of responses by acceptance",
		[]string{"accepted"},
		nil,
	)
	activityDesc = prometheus.NewDesc(
		"relieflink_activity_entries_total",
		"Total audit trail entries by action",
		[]string{"action"},
		nil,
	)
)

// StoreCollector is a custom Prometheus collector that reads request,
// response and audit counts from the database on each scrape.
type StoreCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *StoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- requestsDesc
	ch <- responsesDesc
	ch <- activityDesc
}

// Collect queries the database for current counts and emits them.
func (c *StoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	statuses, err := c.db.CountRequestsByStatus(ctx)
	if err != nil {
		slog.Error("failed to collect request metrics", "error", err)
		return
	}
	for _, s := range statuses {
		ch <- prometheus.MustNewConstMetric(
			requestsDesc,
			prometheus.GaugeValue,
			float64(s.Count),
			s.Status,
		)
	}

	acceptances, err := c.db.CountResponsesByAcceptance(ctx)
	if err != nil {
		slog.Error("failed to collect response metrics", "error", err)
		return
	}
	for _, a := range acceptances {
		ch <- prometheus.MustNewConstMetric(
			responsesDesc,
			prometheus.GaugeValue,
			float64(a.Count),
			strconv.FormatBool(a.Accepted),
		)
	}

	actions, err := c.db.CountActivityByAction(ctx)
	if err != nil {
		slog.Error("failed to collect activity metrics", "error", err)
		return
	}
	for _, a := range actions {
		ch <- prometheus.MustNewConstMetric(
			activityDesc,
			prometheus.CounterValue,
			float64(a.Count),
			a.Action,
		)
	}
}

var initOnce sync.Once

// Init registers the custom collector. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&StoreCollector{db: database})
	})
}
