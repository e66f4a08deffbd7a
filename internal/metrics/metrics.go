package metrics

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/store"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "telemetry_http_requests_total",
			Help: "HTTP requests handled by the API, by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	readingsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "telemetry_readings_recorded_total",
			Help: "Readings accepted via the record-reading endpoint",
		},
	)
)

// Register wires the collectors into the default registry, including a
// gauge over the current size of the reading log.
func Register(readings *store.ReadingStore) {
	prometheus.MustRegister(httpRequests, readingsRecorded)
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "telemetry_readings_stored",
			Help: "Readings currently held in the in-memory store",
		},
		func() float64 {
			return float64(readings.Count())
		},
	))
}

// RequestCounter is a fiber middleware counting handled requests.
func RequestCounter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		httpRequests.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	}
}

// ReadingRecorded bumps the accepted-readings counter.
func ReadingRecorded() {
	readingsRecorded.Inc()
}
