package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"jobhunter/internal/db"
)

var (
	applicationsDesc = prometheus.NewDesc(
		"jobhunter_applications_total",
		"Total application count by type and status",
		[]string{"type", "status"},
		nil,
	)
	activeJobsDesc = prometheus.NewDesc(
		"jobhunter_jobs_active",
		"Number of active job postings",
		nil,
		nil,
	)
)

// ApplicationCollector is a custom Prometheus collector that reads
// application counts from the database on each scrape.
type ApplicationCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *ApplicationCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- applicationsDesc
	ch <- activeJobsDesc
}

// Collect queries the database for application counts and emits them as
// counters.
func (c *ApplicationCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.GetApplicationCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect application metrics", "error", err)
		return
	}
	for _, count := range counts {
		ch <- prometheus.MustNewConstMetric(
			applicationsDesc,
			prometheus.CounterValue,
			float64(count.Count),
			count.Type,
			count.Status,
		)
	}

	active, err := c.db.CountActiveJobs(context.Background())
	if err != nil {
		slog.Error("failed to collect job metrics", "error", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(activeJobsDesc, prometheus.GaugeValue, float64(active))
}

var initOnce sync.Once

// Init registers the custom collector. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&ApplicationCollector{db: database})
	})
}
