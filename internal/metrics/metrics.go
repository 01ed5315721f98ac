package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/GlebRadaev/coursemart/internal/domain"
)

const namespace = "coursemart"

var (
	CheckoutTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_total",
			Help:      "Checkout attempts by payment method and outcome.",
		},
		[]string{"method", "result"},
	)

	RefundTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refund_total",
			Help:      "Cancellations and course refunds by kind and outcome.",
		},
		[]string{"kind", "result"},
	)

	LedgerMovementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_movements_total",
			Help:      "Organization ledger entries by type.",
		},
		[]string{"type"},
	)

	CheckoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "checkout_duration_seconds",
			Help:      "Time spent inside the checkout transaction.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	SettlementSweepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlement_orders_total",
			Help:      "Stale cash orders handled by the settlement worker.",
		},
		[]string{"result"},
	)

	registerOnce sync.Once
)

// Register adds every collector to reg, or to the default registry when reg is nil.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		reg.MustRegister(CheckoutTotal, RefundTotal, LedgerMovementsTotal, CheckoutDuration, SettlementSweepsTotal)
	})
}

// Result turns an operation error into a low-cardinality label value.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := domain.Lookup(err); kind != nil {
		return strings.ToLower(kind.Code)
	}
	return "error"
}
