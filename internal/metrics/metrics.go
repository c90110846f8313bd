// metrics — клиентские счётчики Prometheus.
// Регистрируются в дефолтном реестре; наружу отдаются через /metrics
// демона (см. cmd/market-cli, режим watch).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal — исходящие запросы к API по методу и исходу.
	// code: HTTP-статус, "network" для транспортных сбоев.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_client_requests_total",
		Help: "Outgoing API requests by method and outcome.",
	}, []string{"method", "code"})

	// RenewalsTotal — продления access-токена по исходу (ok/failed).
	RenewalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "market_client_token_renewals_total",
		Help: "Access token renewals by outcome.",
	}, []string{"outcome"})

	// RollbacksTotal — откаты оптимистичных мутаций.
	RollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "market_client_optimistic_rollbacks_total",
		Help: "Optimistic mutations rolled back after a failed confirm.",
	})
)
