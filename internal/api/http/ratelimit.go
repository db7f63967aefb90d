package http

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/favorites-service/internal/config"
	"github.com/spec-kit/favorites-service/internal/persistence"
	apperrors "github.com/spec-kit/favorites-service/pkg/util"
)

// CredentialRateLimiter bounds unauthenticated credential endpoints per
// client IP using a fixed window counter in Redis. Redis being unreachable
// fails open; rate limiting is a guard, not a dependency.
func CredentialRateLimiter(rdb *persistence.Redis, cfg config.RateLimitConfig, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Enabled || rdb == nil || rdb.Client == nil {
			return c.Next()
		}

		key := "rl:cred:" + c.IP() + ":" + c.Path()
		ctx := c.UserContext()

		count, err := rdb.Client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			rdb.Client.Expire(ctx, key, cfg.Window())
		}

		if count > int64(cfg.LoginLimit) {
			c.Set("Retry-After", strconv.Itoa(cfg.WindowSeconds))
			return apperrors.NewDomainError("RATE_LIMITED", "too many attempts, slow down", http.StatusTooManyRequests, nil)
		}
		return c.Next()
	}
}
