// Package metrics exports reactive engine counters to Prometheus.
package metrics

import (
	"github.com/delaneyj/signalgraph/reactive"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "signalgraph"

// StatsSource is implemented by *reactive.ReactiveSystem.
type StatsSource interface {
	Stats() reactive.Stats
}

// Collector reads the engine counters on every scrape. Counters are atomics,
// so scraping from another goroutine does not race with the engine.
type Collector struct {
	src StatsSource

	writes     *prometheus.Desc
	recomputes *prometheus.Desc
	effectRuns *prometheus.Desc
	flushes    *prometheus.Desc
	errors     *prometheus.Desc
	pending    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector labels every series with system so several engines can share
// one registry.
func NewCollector(src StatsSource, system string) *Collector {
	labels := prometheus.Labels{"system": system}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", name), help, nil, labels)
	}
	return &Collector{
		src:        src,
		writes:     desc("writes_total", "Source writes that changed a value."),
		recomputes: desc("recomputes_total", "Derived node recomputations."),
		effectRuns: desc("effect_runs_total", "Effect executions."),
		flushes:    desc("flushes_total", "Effect queue flushes."),
		errors:     desc("errors_total", "Failures reported by getters, effects and flushes."),
		pending:    desc("pending_effects", "Effects waiting for the next flush."),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.writes
	ch <- c.recomputes
	ch <- c.effectRuns
	ch <- c.flushes
	ch <- c.errors
	ch <- c.pending
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.src.Stats()
	counter := func(d *prometheus.Desc, v uint64) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.writes, s.Writes)
	counter(c.recomputes, s.Recomputes)
	counter(c.effectRuns, s.EffectRuns)
	counter(c.flushes, s.Flushes)
	counter(c.errors, s.Errors)
	ch <- prometheus.MustNewConstMetric(c.pending, prometheus.GaugeValue, float64(s.PendingEffects))
}
