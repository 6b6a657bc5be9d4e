package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	OrderTransitions  *prometheus.CounterVec
	WalletAdjustments *prometheus.CounterVec
	RequestDecisions  *prometheus.CounterVec
	ChatMessages      prometheus.Counter
	Errors            *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			OrderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_transitions_total",
				Help:      "Total escrow order status transitions by from/to state.",
			}, []string{"from", "to"}),
			WalletAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_adjustments_total",
				Help:      "Total wallet balance adjustments by kind.",
			}, []string{"kind"}),
			RequestDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "request_decisions_total",
				Help:      "Total deposit/withdraw request decisions by kind and outcome.",
			}, []string{"kind", "decision"}),
			ChatMessages: prometheus.NewCounter(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_messages_total",
				Help:      "Total chat messages stored.",
			}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.OrderTransitions,
			metricsInstance.WalletAdjustments,
			metricsInstance.RequestDecisions,
			metricsInstance.ChatMessages,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
