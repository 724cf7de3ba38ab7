package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Métricas Prometheus de la aplicación. Registradas en el registry por
// defecto vía promauto; expuestas en GET /metrics.
var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_http_requests_total",
		Help: "Total de requests HTTP por método, ruta y status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "almacen_http_request_duration_seconds",
		Help:    "Duración de los requests HTTP en segundos",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Ledger
	LedgerMutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_ledger_mutations_total",
		Help: "Mutaciones del ledger de stock por motivo",
	}, []string{"reason"})

	InsufficientStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "almacen_insufficient_stock_total",
		Help: "Decrementos rechazados por stock insuficiente",
	})

	// Órdenes
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "almacen_orders_created_total",
		Help: "Órdenes creadas por tipo (purchase, transfer, receive)",
	}, []string{"kind"})

	ReceiveDiscrepanciesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "almacen_receive_discrepancies_units_total",
		Help: "Unidades faltantes auditadas en recepciones (despachado - recibido)",
	})

	// Storage
	TxRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "almacen_tx_retries_total",
		Help: "Reintentos de transacción por fallos transitorios (serialización/deadlock)",
	})
)
