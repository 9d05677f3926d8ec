package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector gathers the counters the background jobs report against.
type Collector struct {
	logsMaterialized prometheus.Counter
	materializeFail  prometheus.Counter
	rollupsWritten   prometheus.Counter
	rollupFail       prometheus.Counter
	jobDuration      *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logsMaterialized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "habithub_logs_materialized_total",
			Help: "Daily log rows created by the materializer.",
		}),
		materializeFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "habithub_materialize_failures_total",
			Help: "Per-habit failures during daily materialization.",
		}),
		rollupsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "habithub_weekly_rollups_total",
			Help: "Weekly performance rows written.",
		}),
		rollupFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "habithub_rollup_failures_total",
			Help: "Per-user failures during the weekly rollup.",
		}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "habithub_job_duration_seconds",
			Help:    "Background job run duration.",
			Buckets: prometheus.DefBuckets,
		}, []string{"job"}),
	}

	reg.MustRegister(
		c.logsMaterialized,
		c.materializeFail,
		c.rollupsWritten,
		c.rollupFail,
		c.jobDuration,
	)

	return c
}

func (c *Collector) RecordLogMaterialized()  { c.logsMaterialized.Inc() }
func (c *Collector) RecordMaterializeError() { c.materializeFail.Inc() }
func (c *Collector) RecordRollupWritten()    { c.rollupsWritten.Inc() }
func (c *Collector) RecordRollupError()      { c.rollupFail.Inc() }

func (c *Collector) RecordJobDuration(job string, d time.Duration) {
	c.jobDuration.WithLabelValues(job).Observe(d.Seconds())
}
