package middleware

import (
	"net/http"
	"time"

	apperrors "elkarec/pkg/errors"
	"elkarec/pkg/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IPRateLimiter ограничивает частоту запросов с одного IP (используется на /auth/login).
func IPRateLimiter(r float64, burst int, logger *zap.Logger) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(r),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return utils.ErrorResponse(c, apperrors.NewHttpError(http.StatusForbidden, "Не удалось определить клиента", err, nil), logger)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("IPRateLimiter: превышен лимит запросов", zap.String("ip", identifier), zap.String("path", c.Path()))
			return utils.ErrorResponse(c, apperrors.ErrTooManyRequests, logger)
		},
	})
}
