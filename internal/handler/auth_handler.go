package handler

import (
	"errors"
	"net/http"

	"storefront/internal/logger"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	loginUC *auth.LoginUsecase // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(loginUC *auth.LoginUsecase) *AuthHandler {
	return &AuthHandler{loginUC: loginUC}
}

// /api/auth/login のリクエストボディ。
type loginRequest struct {
	Password string `json:"password"`
}

type authStatusResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

// loginはレート制限をかける
func (h *AuthHandler) RegisterRoutes(api *echo.Group, loginLimiter echo.MiddlewareFunc, guard ...echo.MiddlewareFunc) {
	api.POST("/auth/login", h.Login, loginLimiter)
	api.GET("/auth/status", h.Status, guard...)
}

// LoginはPOST /api/auth/login のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid password"})
		}
		logger.FromContext(c.Request().Context()).Error("issue token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, out)
}

// guardを通ればログイン済み
func (h *AuthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, authStatusResponse{IsAuthenticated: true})
}
