package middleware

import (
	"net/http"

	"storefront/internal/domain/model"

	"github.com/labstack/echo/v4"
)

//contextに入っているクレームが管理者かどうかを確認します。

func AdminGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, ok := c.Get(CtxAdminClaimKey).(model.AdminClaim)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			if !claim.IsAdmin {
				return c.JSON(http.StatusForbidden, errorJSON("forbidden"))
			}

			return next(c)
		}
	}
}

// ハンドラからクレームを取り出す
func AdminClaimFrom(c echo.Context) (model.AdminClaim, bool) {
	claim, ok := c.Get(CtxAdminClaimKey).(model.AdminClaim)
	return claim, ok
}
