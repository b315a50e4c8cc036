package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"
	appmw "storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routeHandlers struct {
	products      *handler.ProductHandler
	adminProducts *handler.AdminProductHandler
	settings      *handler.SettingsHandler
	auth          *handler.AuthHandler
	upload        *handler.UploadHandler
	auditLogs     *handler.AuditLogHandler
	health        *handler.HealthHandler
}

// /api 配下と静的ファイル・運用系のルート
func RegisterRoutes(e *echo.Echo, cfg config.Config, h routeHandlers, verifier appmw.TokenVerifier, reg *prometheus.Registry) {
	//管理者ルートはルートごとにguardを付ける
	guard := []echo.MiddlewareFunc{appmw.AuthJWT(verifier), appmw.AdminGuard()}

	api := e.Group("/api")
	h.products.RegisterRoutes(api)
	h.adminProducts.RegisterRoutes(api, guard...)
	h.settings.RegisterRoutes(api, guard...)
	h.auth.RegisterRoutes(api, loginRateLimiter(cfg.LoginRateLimit), guard...)
	h.upload.RegisterRoutes(api, guard...)
	h.auditLogs.RegisterRoutes(api, guard...)

	e.Static("/uploads", cfg.UploadDir)
	h.health.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
}
