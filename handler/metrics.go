package handler

import (
	"braces.dev/errtrace"
	"github.com/prometheus/client_golang/prometheus"
)

// Lookup results reported by [Metrics].
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// NameOther is the name label of missed lookups, the requested names of misses are not recorded.
const NameOther = "other"

// Metrics holds the Prometheus collectors updated by registries.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	lookups     *prometheus.CounterVec
	discoveries *prometheus.CounterVec
	factories   *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
// If reg is nil, the collectors are created but not registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uniresource",
			Subsystem: "handler",
			Name:      "lookups_total",
			Help:      "Handler lookups by registry, requested name and result.",
		}, []string{"registry", "name", "result"}),
		discoveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "uniresource",
			Subsystem: "handler",
			Name:      "discoveries_total",
			Help:      "Factory discoveries by registry.",
		}, []string{"registry"}),
		factories: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "uniresource",
			Subsystem: "handler",
			Name:      "factories",
			Help:      "Number of factories found by the last discovery.",
		}, []string{"registry"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.lookups, m.discoveries, m.factories} {
		if err := reg.Register(c); err != nil {
			return nil, errtrace.Wrap(err)
		}
	}
	return m, nil
}

// Collectors returns the collectors of m.
func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.lookups, m.discoveries, m.factories}
}

// Lookups returns the lookup counter for the given labels.
func (m *Metrics) Lookups(registry, name, result string) prometheus.Counter {
	return m.lookups.WithLabelValues(registry, name, result)
}

// Discoveries returns the discovery counter of the registry.
func (m *Metrics) Discoveries(registry string) prometheus.Counter {
	return m.discoveries.WithLabelValues(registry)
}

func (m *Metrics) observeLookup(registry, name string, ok bool) {
	if m == nil {
		return
	}
	res := ResultHit
	if !ok {
		name, res = NameOther, ResultMiss
	}
	m.lookups.WithLabelValues(registry, name, res).Inc()
}

func (m *Metrics) observeDiscovery(registry string, n int) {
	if m == nil {
		return
	}
	m.discoveries.WithLabelValues(registry).Inc()
	m.factories.WithLabelValues(registry).Set(float64(n))
}
