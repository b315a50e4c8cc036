package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// 入力エラーの1項目
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// handlerでステータスとメッセージに変換するエラー
type HTTPError struct {
	Status  int
	Message string
	Details []FieldError
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// 400 validation error（項目ごとの詳細つき）
func NewValidationError(details []FieldError) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation error",
		Details: details,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
