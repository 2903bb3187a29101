package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "albaranes_api"

var (
	// Registry agrupa los colectores propios de la aplicación.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Peticiones HTTP en curso.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP atendidas.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms a ~10s
		},
		[]string{"method", "route"},
	)

	dbConnections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "odbc",
			Name:      "connections_total",
			Help:      "Conexiones ODBC solicitadas por resultado.",
		},
		[]string{"outcome"},
	)

	dbQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "odbc",
			Name:      "query_duration_seconds",
			Help:      "Duración de las consultas contra la base de datos heredada.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		},
		[]string{"outcome"},
	)

	dbRowsRead = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "odbc",
			Name:      "rows_read_total",
			Help:      "Filas leídas de la base de datos.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		dbConnections,
		dbQueryDuration,
		dbRowsRead,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
}

// Handler expone las métricas registradas como handler de Fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware mide cada petición HTTP. La ruta se etiqueta con el patrón registrado
// (/api/albaranes/clientes/cabeceras/:year/:month/:day) para no disparar la cardinalidad.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || (route == "/" && c.Path() != "/") {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Method())
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ObserveConnection registra el resultado de abrir una conexión ("ok" | "error").
func ObserveConnection(outcome string) {
	dbConnections.WithLabelValues(outcome).Inc()
}

// ObserveQuery registra duración y filas leídas de una consulta.
func ObserveQuery(outcome string, d time.Duration, rows int) {
	dbQueryDuration.WithLabelValues(outcome).Observe(d.Seconds())
	if rows > 0 {
		dbRowsRead.Add(float64(rows))
	}
}
