package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// httpObserver lo implementa *metrics.Metrics.
type httpObserver interface {
	ObserveHTTP(route, method string, code int, seconds float64)
}

// Metrics registra latencia y status por ruta (patrón de la ruta, no la URL concreta).
func Metrics(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		code := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		obs.ObserveHTTP(route, c.Method(), code, time.Since(start).Seconds())
		return err
	}
}
