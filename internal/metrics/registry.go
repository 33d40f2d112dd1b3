// Package metrics exposes registry activity as Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"docregistry/internal/model"
	"docregistry/internal/registry"
)

// RegistryCollector is a registry.Observer that counts committed changes and mirrors the
// counter state in gauges.
type RegistryCollector struct {
	events    *prometheus.CounterVec
	sequences *prometheus.GaugeVec
	year      prometheus.Gauge
}

// NewRegistryCollector creates the collectors and registers them with reg.
func NewRegistryCollector(reg prometheus.Registerer) (*RegistryCollector, error) {
	c := &RegistryCollector{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docregistry",
				Name:      "events_total",
				Help:      "Committed registry changes by event kind and document type.",
			},
			[]string{"kind", "type"},
		),
		sequences: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "docregistry",
				Name:      "sequence_value",
				Help:      "Last committed sequence value per auto-numbered type.",
			},
			[]string{"type"},
		),
		year: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "docregistry",
			Name:      "numbering_year",
			Help:      "Calendar year the sequences currently number for.",
		}),
	}
	for _, col := range []prometheus.Collector{c.events, c.sequences, c.year} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var _ registry.Observer = (*RegistryCollector)(nil)

// Observe seeds the gauges from the state the registry was opened with.
func (c *RegistryCollector) Observe(state model.CounterState) {
	c.sequences.WithLabelValues(string(model.TypeSalida)).Set(float64(state.SalidaCount))
	c.sequences.WithLabelValues(string(model.TypeInterno)).Set(float64(state.InternoCount))
	c.year.Set(float64(state.Year))
}

func (c *RegistryCollector) Notify(e registry.Event) {
	docType := ""
	if e.Document != nil {
		docType = string(e.Document.Type)
	}
	c.events.WithLabelValues(string(e.Kind), docType).Inc()
	if e.Counters != nil {
		c.Observe(*e.Counters)
	}
}
