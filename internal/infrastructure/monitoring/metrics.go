package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	CustomersRegisteredTotal prometheus.Counter
	EligibilityChecksTotal   *prometheus.CounterVec
	LoanDecisionsTotal       *prometheus.CounterVec
}

type PortfolioMetrics struct {
	ActiveLoans     prometheus.Gauge
	OutstandingDebt prometheus.Gauge
	LastSnapshot    prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credit_engine_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		CustomersRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "credit_engine_customers_registered_total",
				Help: "Total number of customers newly registered.",
			},
		),
		EligibilityChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_eligibility_checks_total",
				Help: "Total number of eligibility checks by outcome.",
			},
			[]string{"outcome"},
		),
		LoanDecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credit_engine_loan_decisions_total",
				Help: "Total number of loan origination decisions by outcome.",
			},
			[]string{"outcome"},
		),
	}

	Portfolio = PortfolioMetrics{
		ActiveLoans: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "credit_engine_portfolio_active_loans",
				Help: "Number of loans whose end date has not passed.",
			},
		),
		OutstandingDebt: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "credit_engine_portfolio_outstanding_debt",
				Help: "Sum of current debt across all customers.",
			},
		),
		LastSnapshot: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "credit_engine_portfolio_last_snapshot_timestamp_seconds",
				Help: "Unix time of the last successful portfolio snapshot.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordCustomerRegistered() {
	Business.CustomersRegisteredTotal.Inc()
}

func RecordEligibilityCheck(outcome string) {
	Business.EligibilityChecksTotal.WithLabelValues(outcome).Inc()
}

func RecordLoanDecision(outcome string) {
	Business.LoanDecisionsTotal.WithLabelValues(outcome).Inc()
}

func RecordPortfolioSnapshot(activeLoans int64, outstandingDebt float64, at time.Time) {
	Portfolio.ActiveLoans.Set(float64(activeLoans))
	Portfolio.OutstandingDebt.Set(outstandingDebt)
	Portfolio.LastSnapshot.Set(float64(at.Unix()))
}
