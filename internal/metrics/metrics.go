// Package metrics exposes Prometheus counters for the rental API.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by method, route and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Number of HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// RentalsTotal counts successfully committed rentals.
	RentalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bike_rentals_total",
		Help: "Number of bikes rented.",
	})

	// ReturnsTotal counts successfully committed returns.
	ReturnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bike_returns_total",
		Help: "Number of bikes returned.",
	})
)

// Middleware records a RequestsTotal sample for every request.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					// Echo's error handler has not run yet, so the
					// response still reads 200 for plain errors.
					status = http.StatusInternalServerError
				}
			}
			RequestsTotal.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// Handler serves the Prometheus exposition endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
