package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusProvider is a Provider backed by Prometheus collectors.
// Counters map to prometheus.Counter, up/down counters to prometheus.Gauge and
// histograms to prometheus.Histogram with the default buckets.
// Collectors are registered on first use of a name and reused afterwards.
type PrometheusProvider struct {
	factory     promauto.Factory
	namespace   string
	constLabels prometheus.Labels

	counters   instrumentSet[promCounter]
	gauges     instrumentSet[promGauge]
	histograms instrumentSet[promHistogram]
}

// PrometheusOption configures a PrometheusProvider.
type PrometheusOption func(*PrometheusProvider)

// WithNamespace prefixes every metric name with ns.
func WithNamespace(ns string) PrometheusOption {
	return func(p *PrometheusProvider) { p.namespace = ns }
}

// WithConstLabels attaches labels to every collector, e.g. {"pool": "resize"}.
func WithConstLabels(labels prometheus.Labels) PrometheusOption {
	return func(p *PrometheusProvider) {
		if p.constLabels == nil {
			p.constLabels = make(prometheus.Labels, len(labels))
		}
		for k, v := range labels {
			p.constLabels[k] = v
		}
	}
}

// NewPrometheusProvider constructs a provider registering its collectors with reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
// Registering the same metric name twice on one registerer panics, so give each pool
// either its own registerer or distinguishing const labels.
func NewPrometheusProvider(reg prometheus.Registerer, opts ...PrometheusOption) *PrometheusProvider {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &PrometheusProvider{factory: promauto.With(reg)}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *PrometheusProvider) opts(name string, cfg InstrumentConfig) prometheus.Opts {
	help := cfg.Description
	if help == "" {
		help = name
	}
	labels := prometheus.Labels{}
	for k, v := range p.constLabels {
		labels[k] = v
	}
	for k, v := range cfg.Attributes {
		labels[k] = v
	}
	return prometheus.Opts{
		Namespace:   p.namespace,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	}
}

// Counter returns a counter collector for name (registered once).
func (p *PrometheusProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return p.counters.get(name, opts, func() promCounter {
		o := p.opts(name, applyOptions(opts))
		return promCounter{p.factory.NewCounter(prometheus.CounterOpts(o))}
	})
}

// UpDownCounter returns a gauge collector for name (registered once).
func (p *PrometheusProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return p.gauges.get(name, opts, func() promGauge {
		o := p.opts(name, applyOptions(opts))
		return promGauge{p.factory.NewGauge(prometheus.GaugeOpts(o))}
	})
}

// Histogram returns a histogram collector for name (registered once).
func (p *PrometheusProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return p.histograms.get(name, opts, func() promHistogram {
		o := p.opts(name, applyOptions(opts))
		return promHistogram{p.factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   o.Namespace,
			Name:        o.Name,
			Help:        o.Help,
			ConstLabels: o.ConstLabels,
			Buckets:     prometheus.DefBuckets,
		})}
	})
}

type promCounter struct{ c prometheus.Counter }

// Add ignores negative n: Prometheus counters only go up.
func (c promCounter) Add(n int64) {
	if n > 0 {
		c.c.Add(float64(n))
	}
}

type promGauge struct{ g prometheus.Gauge }

func (g promGauge) Add(n int64) { g.g.Add(float64(n)) }

type promHistogram struct{ h prometheus.Histogram }

func (h promHistogram) Record(v float64) { h.h.Observe(v) }
