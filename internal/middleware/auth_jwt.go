package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	auth "storefront/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

const CtxAdminClaimKey = "admin_claim" // model.AdminClaim

// トークン検証（auth.VerifyUsecase）
type TokenVerifier interface {
	Execute(ctx context.Context, rawToken string) (model.AdminClaim, error)
}

// bearerAuth用のJWT検証ミドルウェア。
// ヘッダが無い・Bearerでない → 401、トークンが不正・期限切れ → 403。
func AuthJWT(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//Authorizationヘッダを取得
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claim, err := verifier.Execute(c.Request().Context(), parts[1])
			if errors.Is(err, auth.ErrTokenMissing) {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if err != nil {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			//contextへ保存
			c.Set(CtxAdminClaimKey, claim)

			return next(c)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
