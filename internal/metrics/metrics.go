// Package metrics holds Prometheus instruments that are used across the
// console.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CachedHandles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cached_connection_handles",
			Help: "Number of tenant connection handles currently cached.",
		})

	TenantResolveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_total",
			Help: "Cumulative number of tenants successfully resolved.",
		})

	TenantResolveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_errors_total",
			Help: "Cumulative number of tenant resolution failures.",
		})

	QueryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_query_errors_total",
			Help: "Cumulative number of failed content queries, by entity.",
		},
		[]string{"entity"},
	)
)

func init() {
	prometheus.MustRegister(
		CachedHandles,
		TenantResolveTotal,
		TenantResolveErrorsTotal,
		QueryErrorsTotal,
	)
}
