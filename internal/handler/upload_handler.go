package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"storefront/internal/metrics"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// multipartのヘッダ等の分だけ本体上限に余裕を持たせる
const multipartOverhead = 1 << 20

// POST /api/upload（管理者のみ）
type UploadHandler struct {
	uc       *usecase.UploadUsecase
	maxBytes int64
	metrics  *metrics.Metrics
}

func NewUploadHandler(uc *usecase.UploadUsecase, maxBytes int64, m *metrics.Metrics) *UploadHandler {
	return &UploadHandler{uc: uc, maxBytes: maxBytes, metrics: m}
}

func (h *UploadHandler) RegisterRoutes(api *echo.Group, guard ...echo.MiddlewareFunc) {
	api.POST("/upload", h.upload, guard...)
}

type uploadResponse struct {
	URL string `json:"url"`
}

func (h *UploadHandler) upload(c echo.Context) error {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, h.maxBytes+multipartOverhead)

	//フィールド名は image（無ければ file）
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		fh, err = c.FormFile("file")
	}
	if err != nil {
		h.count("rejected")
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file too large"})
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
	}

	f, err := fh.Open()
	if err != nil {
		h.count("rejected")
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read file"})
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	out, err := h.uc.Upload(req.Context(), usecase.UploadInput{
		Filename: fh.Filename,
		Body:     f,
	})
	if err != nil {
		h.count("rejected")
		return writeError(c, err)
	}

	h.count("ok")
	return c.JSON(http.StatusOK, uploadResponse{URL: out.URL})
}

func (h *UploadHandler) count(result string) {
	if h.metrics != nil {
		h.metrics.Uploads.WithLabelValues(result).Inc()
	}
}
