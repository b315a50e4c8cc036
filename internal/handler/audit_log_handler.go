package handler

import (
	"net/http"
	"strconv"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// GET /api/admin/audit-logs
type AuditLogHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAuditLogHandler(uc *usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{uc: uc}
}

func (h *AuditLogHandler) RegisterRoutes(api *echo.Group, guard ...echo.MiddlewareFunc) {
	api.GET("/admin/audit-logs", h.list, guard...)
}

// ?action=&resourceType=&resourceId=&limit=&offset=
func (h *AuditLogHandler) list(c echo.Context) error {
	var filter repo.AuditLogFilter

	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		filter.Action = &a
	}
	if v := c.QueryParam("resourceType"); v != "" {
		rt := model.AuditResourceType(v)
		filter.ResourceType = &rt
	}
	if v := c.QueryParam("resourceId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid resourceId"})
		}
		filter.ResourceID = &id
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		filter.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		filter.Offset = o
	}

	logs, err := h.uc.List(c.Request().Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
