package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LedgerEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_ledger_entries_total",
			Help: "Ledger entries appended",
		},
		[]string{"type"}, // mine|withdraw|withdraw_confirm|buy_code|topup
	)

	WithdrawalVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_withdrawal_verifications_total",
			Help: "Withdrawal code verification attempts",
		},
		[]string{"result"}, // verified|rejected|missing_pending
	)

	MineClaimsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_mine_claims_total",
			Help: "Mining rewards claimed",
		},
	)

	// Gauges refreshed by the status poller.
	BalanceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_balance",
			Help: "Current wallet balance",
		},
	)
	RestrictionActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_restriction_active",
			Help: "1 when the restriction gate blocks withdraw/buy actions",
		},
	)
	MiningRemainingSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_mining_remaining_seconds",
			Help: "Seconds left on the current mining session",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(
		LedgerEntriesTotal,
		WithdrawalVerifications,
		MineClaimsTotal,
		BalanceGauge,
		RestrictionActive,
		MiningRemainingSeconds,
	)
}
