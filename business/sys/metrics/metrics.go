// Package metrics constructs the metrics the application will track.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespaceAPI   = "babybtc_api"
	namespaceChain = "babybtc_chain"
)

// Metrics holds the set of collectors the service updates. Each value owns
// its registry so tests can construct as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	Requests         *prometheus.CounterVec
	Errors           prometheus.Counter
	Panics           prometheus.Counter
	RateLimited      prometheus.Counter
	MiningAttempts   prometheus.Counter
	BlocksMined      prometheus.Counter
	Transfers        prometheus.Counter
	Rollbacks        prometheus.Counter
	ChainHeight      prometheus.Gauge
	PendingTxs       prometheus.Gauge
	WebsocketClients prometheus.Gauge
}

// New constructs and registers the application metrics.
func New() *Metrics {
	m := Metrics{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceAPI,
			Name:      "requests_total",
			Help:      "Total number of API requests",
		}, []string{"method", "code"}),

		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceAPI,
			Name:      "errors_total",
			Help:      "Total number of API requests that returned an error",
		}),

		Panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceAPI,
			Name:      "panics_total",
			Help:      "Total number of recovered panics",
		}),

		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceAPI,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		}),

		MiningAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceChain,
			Name:      "mining_attempts_total",
			Help:      "Total number of mining attempts",
		}),

		BlocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceChain,
			Name:      "blocks_mined_total",
			Help:      "Total number of blocks mined",
		}),

		Transfers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceChain,
			Name:      "transfers_total",
			Help:      "Total number of transfers queued",
		}),

		Rollbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceChain,
			Name:      "rollbacks_total",
			Help:      "Total number of simulated chain rollbacks",
		}),

		ChainHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceChain,
			Name:      "height",
			Help:      "Current number of blocks in the chain",
		}),

		PendingTxs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceChain,
			Name:      "pending_transactions",
			Help:      "Current number of pending transactions",
		}),

		WebsocketClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceAPI,
			Name:      "websocket_clients",
			Help:      "Current number of connected event stream clients",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests,
		m.Errors,
		m.Panics,
		m.RateLimited,
		m.MiningAttempts,
		m.BlocksMined,
		m.Transfers,
		m.Rollbacks,
		m.ChainHeight,
		m.PendingTxs,
		m.WebsocketClients,
	)

	return &m
}

// Handler returns the http handler that serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for inspection.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}
