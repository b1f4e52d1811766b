// middleware/metrics.go
package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"wodboard/metrics"
)

// Metrics records request counts and latency per matched route
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		timer := metrics.NewTimer()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		timer.ObserveDuration(metrics.APIRequestDuration.WithLabelValues(c.Method(), route))
		metrics.APIRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		return err
	}
}
