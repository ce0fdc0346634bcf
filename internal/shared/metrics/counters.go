package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negócio expostos em /metrics junto com os padrões do runtime.
var (
	BetsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bettracker_bets_recorded_total",
		Help: "Apostas inseridas no ledger, por categoria.",
	}, []string{"category"})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bettracker_status_transitions_total",
		Help: "Mudanças de status aplicadas, por status final.",
	}, []string{"status"})

	StatsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bettracker_stats_requests_total",
		Help: "Consultas de estatísticas servidas, por período e janela.",
	}, []string{"period", "window"})
)
