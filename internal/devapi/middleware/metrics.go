package middleware

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments requests (count, latency and sizes per matched route)
// on reg under the sachcu_devapi_ prefix.
func Metrics(reg prometheus.Registerer) echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "sachcu",
		Subsystem:  "devapi",
		Registerer: reg,
	})
}

// RenderErrors hands a handler error to the HTTP error handler immediately,
// so middleware further out observes the status code the client receives.
func RenderErrors() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := next(c); err != nil {
				c.Error(err)
			}
			return nil
		}
	}
}
