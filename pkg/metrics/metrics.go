package metrics

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores de operaciones de negocio.
var (
	SessionResolveCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "granja_session_resolve_total",
		Help: "Total de resoluciones de sesión (sign-in)",
	})

	BusinessCreateCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "granja_business_create_total",
		Help: "Total de negocios creados",
	})

	BusinessSwitchCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "granja_business_switch_total",
		Help: "Total de cambios de negocio activo",
	})

	EarningsComputeCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "granja_earnings_compute_total",
		Help: "Total de cálculos de ganancias de cuidadores",
	})

	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "granja_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(SessionResolveCounter)
	prometheus.MustRegister(BusinessCreateCounter)
	prometheus.MustRegister(BusinessSwitchCounter)
	prometheus.MustRegister(EarningsComputeCounter)
	prometheus.MustRegister(RequestDurationHistogram)
}

// Handler devuelve el handler HTTP estándar de Prometheus para /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware registra la duración de cada petición HTTP con método y ruta.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		RequestDurationHistogram.
			WithLabelValues(c.Method(), path).
			Observe(time.Since(start).Seconds())

		return err
	}
}
