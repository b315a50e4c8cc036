package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/clock"
	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/idgen"
	"storefront/internal/infra/storage"
	"storefront/internal/infra/token"
	"storefront/internal/metrics"
	"storefront/internal/repository"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// サーバーが使う外部の部品
type Deps struct {
	Repos    repository.Repositories
	Registry *prometheus.Registry
	Clock    clock.Clock
	Ping     handler.Pinger // nilならDB確認なし
}

// echoを組み立てる（Startは別）
func New(cfg config.Config, log *zap.Logger, deps Deps) (*echo.Echo, error) {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}

	store, err := storage.NewLocalDiskStorage(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	m := metrics.New(deps.Registry)

	//usecaseに渡す部品
	v := validator.New()
	jwtIssuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	verifier := auth.NewPasswordVerifier(cfg.AdminPassword, cfg.AdminPasswordHash)

	//Usecase生成
	productUC := usecase.NewProductUsecase(deps.Repos.Products, deps.Repos.Tx, v, deps.Clock, log)
	settingsUC := usecase.NewSettingsUsecase(deps.Repos.Settings, deps.Repos.Tx, v, deps.Clock, log)
	auditUC := usecase.NewAuditLogUsecase(deps.Repos.AuditLogs, log)
	uploadUC := usecase.NewUploadUsecase(store, idgen.New(), deps.Clock, cfg.UploadMaxBytes, cfg.UploadMaxWidth, log)
	loginUC := auth.NewLoginUsecase(verifier, jwtIssuer, deps.Clock)
	verifyUC := auth.NewVerifyUsecase(jwtIssuer, deps.Clock)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)
	e.Server.ReadHeaderTimeout = 10 * time.Second
	e.Server.IdleTimeout = 60 * time.Second

	registerMiddleware(e, cfg, log, m)

	RegisterRoutes(e, cfg, routeHandlers{
		products:      handler.NewProductHandler(productUC),
		adminProducts: handler.NewAdminProductHandler(productUC),
		settings:      handler.NewSettingsHandler(settingsUC),
		auth:          handler.NewAuthHandler(loginUC),
		upload:        handler.NewUploadHandler(uploadUC, cfg.UploadMaxBytes, m),
		auditLogs:     handler.NewAuditLogHandler(auditUC),
		health:        handler.NewHealthHandler(deps.Ping),
	}, verifyUC, deps.Registry)

	return e, nil
}

// ctxがキャンセルされたら10秒以内に止める
func Start(ctx context.Context, e *echo.Echo, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ハンドラが返したecho.HTTPError等を {"error": "..."} にそろえる
func errorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
		}

		msg := strings.ToLower(http.StatusText(status))
		if status >= http.StatusInternalServerError {
			msg = "internal error"
			log.Error("unhandled error", zap.String("path", c.Request().URL.Path), zap.Error(err))
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, handler.ErrorResponse{Error: msg})
		}
		if err != nil {
			log.Error("write error response", zap.Error(err))
		}
	}
}
