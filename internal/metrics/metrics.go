package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the request and connection-operation counters
type Metrics struct {
	SuccessfulRequests *prometheus.CounterVec
	BadRequests        *prometheus.CounterVec
	ConnectionRequests *prometheus.CounterVec
	ConnectionAccepts  *prometheus.CounterVec
}

// NewMetrics creates and registers the counters on the given registerer
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SuccessfulRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_request",
				Help: "Total number of successful (2xx) HTTP requests",
			},
			[]string{"path"},
		),
		BadRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unsuccessful_request",
				Help: "Total number of unsuccessful (4xx) HTTP requests",
			},
			[]string{"path"},
		),
		ConnectionRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_connection_requests",
				Help: "Total number of successfully sent connection requests",
			},
			[]string{"path"},
		),
		ConnectionAccepts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "successful_connection_accepts",
				Help: "Total number of accepted connection requests",
			},
			[]string{"path"},
		),
	}

	reg.MustRegister(m.SuccessfulRequests)
	reg.MustRegister(m.BadRequests)
	reg.MustRegister(m.ConnectionRequests)
	reg.MustRegister(m.ConnectionAccepts)

	return m
}

// InitMetrics registers the counters on the default registry
func InitMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// Middleware counts request outcomes per route path
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if httpErr, ok := err.(*echo.HTTPError); ok {
				status = httpErr.Code
			}

			switch {
			case status >= 200 && status < 300:
				m.SuccessfulRequests.WithLabelValues(c.Path()).Inc()
			case status >= 400 && status < 500:
				m.BadRequests.WithLabelValues(c.Path()).Inc()
			}

			return err
		}
	}
}
