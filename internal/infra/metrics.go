package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Feed and book health metrics, exposed on the localhost debug server.
var (
	FetchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookwatch_fetches_total", Help: "Order book fetch attempts"})
	FetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookwatch_fetch_errors_total", Help: "Failed fetch cycles by reason"},
		[]string{"reason"})
	SnapshotsAppliedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookwatch_snapshots_applied_total", Help: "Snapshots accepted by the book store"})
	SnapshotsDroppedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookwatch_snapshots_dropped_total", Help: "Snapshots rejected by the book store"},
		[]string{"reason"})
	BookStalenessSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bookwatch_book_staleness_seconds", Help: "Age of the displayed snapshot"})
	BookLevels = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bookwatch_book_levels", Help: "Resting levels in the current snapshot by side"},
		[]string{"side"})
	MockOrdersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bookwatch_mock_orders_total", Help: "Simulated orders by status"},
		[]string{"status"})
)

// MetricsHandler returns the /metrics handler with all application and
// runtime collectors registered.
func MetricsHandler() http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		FetchesTotal,
		FetchErrorsTotal,
		SnapshotsAppliedTotal,
		SnapshotsDroppedTotal,
		BookStalenessSeconds,
		BookLevels,
		MockOrdersTotal,
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
