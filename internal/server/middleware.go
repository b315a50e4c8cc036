package server

import (
	"net/http"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/metrics"
	appmw "storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// JSONボディの上限（アップロードは別枠）
const jsonBodyLimit = "1M"

func registerMiddleware(e *echo.Echo, cfg config.Config, log *zap.Logger, m *metrics.Metrics) {
	e.Use(appmw.RequestLogger(log))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
			return err
		},
	}))
	e.Use(appmw.Metrics(m))
	e.Use(echomw.Secure())

	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: strings.Split(cfg.FEURL, ","),
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
			MaxAge:       600,
		}))
	}

	//アップロードは上限8MBなので、ここでは413にしない
	e.Use(echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/upload"
		},
		Limit: jsonBodyLimit,
	}))
}

// IPごとのログイン試行制限（1分あたりLOGIN_RATE_LIMIT回）
func loginRateLimiter(perMinute int) echo.MiddlewareFunc {
	return rateLimiter(perMinute, func(c echo.Context) (string, error) {
		return c.RealIP(), nil
	})
}

func rateLimiter(perMinute int, identify echomw.Extractor) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store:               store,
		IdentifierExtractor: identify,
		//IDが取れないのはサーバー側の問題なのでerrorHandlerで500にする
		ErrorHandler: func(c echo.Context, err error) error {
			return err
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, handler.ErrorResponse{Error: "too many requests"})
		},
	})
}
