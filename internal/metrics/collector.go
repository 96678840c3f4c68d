// Package metrics records managed-object cache refreshes as Prometheus
// metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result label values for UpdatesTotal.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Config represents metrics configuration
type Config struct {
	Namespace   string            `mapstructure:"namespace" yaml:"namespace"`
	Subsystem   string            `mapstructure:"subsystem" yaml:"subsystem"`
	ConstLabels map[string]string `mapstructure:"labels" yaml:"labels"`
}

// DefaultConfig returns the default metric naming.
func DefaultConfig() Config {
	return Config{
		Namespace: "udisks",
		Subsystem: "cache",
	}
}

// Collector tracks cache refreshes. A nil *Collector is valid and records
// nothing.
type Collector struct {
	updatesTotal   *prometheus.CounterVec
	updateDuration prometheus.Histogram
	objects        prometheus.Gauge
	lastSuccess    prometheus.Gauge
}

// NewCollector creates the cache metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer, config Config) (*Collector, error) {
	if config.Namespace == "" && config.Subsystem == "" {
		config = DefaultConfig()
	}

	c := &Collector{
		updatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_total",
			Help:        "Full refreshes of the managed-object cache by result.",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),
		updateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "update_duration_seconds",
			Help:        "Duration of GetManagedObjects round trips.",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 3},
		}),
		objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "objects",
			Help:        "Managed objects in the current snapshot.",
			ConstLabels: config.ConstLabels,
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "last_success_timestamp_seconds",
			Help:        "Unix time of the last successful refresh.",
			ConstLabels: config.ConstLabels,
		}),
	}

	if reg == nil {
		return c, nil
	}

	for _, m := range []prometheus.Collector{c.updatesTotal, c.updateDuration, c.objects, c.lastSuccess} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register cache metric: %w", err)
		}
	}

	return c, nil
}

// ObserveUpdate records one refresh attempt. objects is only applied on
// success since a failed refresh keeps the previous snapshot.
func (c *Collector) ObserveUpdate(start time.Time, objects int, err error) {
	if c == nil {
		return
	}

	c.updateDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.updatesTotal.WithLabelValues(ResultFailure).Inc()
		return
	}

	c.updatesTotal.WithLabelValues(ResultSuccess).Inc()
	c.objects.Set(float64(objects))
	c.lastSuccess.SetToCurrentTime()
}
