package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/jhoicas/labinventaris/internal/application/dto"
)

// NewLimiter construye el limitador con rate en formato "<n>-<S|M|H|D>".
// Con cliente Redis el contador se comparte entre instancias; sin él queda en memoria.
func NewLimiter(rate string, client *redis.Client) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT %q: %w", rate, err)
	}
	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "labinventaris:limiter"})
		if err != nil {
			return nil, fmt.Errorf("limiter redis: %w", err)
		}
	} else {
		store = memory.NewStore()
	}
	return limiter.New(store, r), nil
}

// RateLimit limita por IP. Si el store falla deja pasar la petición y lo registra.
func RateLimit(l *limiter.Limiter, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := l.Get(c.UserContext(), c.IP())
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.FormatInt(res.Limit, 10))
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.Reset, 10))
		if res.Reached {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas peticiones, intente más tarde",
			})
		}
		return c.Next()
	}
}
