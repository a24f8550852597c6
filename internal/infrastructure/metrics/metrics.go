package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Cash session metrics
	SessionsOpened         prometheus.Counter
	SessionsClosed         prometheus.Counter
	SessionCloseDifference prometheus.Histogram
	MovementsRecorded      *prometheus.CounterVec

	// Credit metrics
	CreditsCreated  prometheus.Counter
	CreditPayments  prometheus.Counter
	CreditsSettled  prometheus.Counter
	CreditPaidTotal prometheus.Counter

	// Voucher metrics
	VouchersCreated    prometheus.Counter
	VoucherTransitions *prometheus.CounterVec
	VoucherOverrides   prometheus.Counter
	VoucherBatchSize   prometheus.Histogram

	// Database metrics
	DBErrors *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_cash_sessions_opened_total",
			Help: "Total number of cash sessions opened",
		}),
		SessionsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_cash_sessions_closed_total",
			Help: "Total number of cash sessions closed",
		}),
		SessionCloseDifference: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincore_cash_session_close_difference",
			Help:    "Signed difference between counted and expected cash at close",
			Buckets: []float64{-100, -50, -10, -1, 0, 1, 10, 50, 100},
		}),
		MovementsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_cash_movements_total",
				Help: "Total cash movements recorded by type",
			},
			[]string{"type"},
		),

		CreditsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_credit_accounts_created_total",
			Help: "Total number of credit accounts created",
		}),
		CreditPayments: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_credit_payments_total",
			Help: "Total number of credit payments applied",
		}),
		CreditsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_credit_accounts_settled_total",
			Help: "Total number of credit accounts fully settled",
		}),
		CreditPaidTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_credit_paid_amount_total",
			Help: "Cumulative amount applied to credit accounts",
		}),

		VouchersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_vouchers_created_total",
			Help: "Total number of vouchers created",
		}),
		VoucherTransitions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_voucher_transitions_total",
				Help: "Total voucher status transitions by target status",
			},
			[]string{"target"},
		),
		VoucherOverrides: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fincore_voucher_overrides_total",
			Help: "Total administrative voucher status overrides",
		}),
		VoucherBatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "fincore_voucher_batch_settlement_size",
			Help:    "Number of vouchers settled per batch",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),

		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fincore_db_errors_total",
				Help: "Total retryable database errors by SQLSTATE code",
			},
			[]string{"code"},
		),
	}
}
