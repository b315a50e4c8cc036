package handler

import (
	"net/http"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/settings
type SettingsHandler struct {
	uc *usecase.SettingsUsecase
}

func NewSettingsHandler(uc *usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

// GETは公開、POSTは管理者のみ
func (h *SettingsHandler) RegisterRoutes(api *echo.Group, guard ...echo.MiddlewareFunc) {
	api.GET("/settings", h.get)
	api.POST("/settings", h.update, guard...)
}

func (h *SettingsHandler) get(c echo.Context) error {
	s, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// 部分更新（知らないキーはextraへ）
func (h *SettingsHandler) update(c echo.Context) error {
	var patch model.SiteSettingsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s, err := h.uc.Update(c.Request().Context(), patch)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
