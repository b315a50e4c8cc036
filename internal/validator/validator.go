package validator

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"storefront/internal/usecase"

	"github.com/go-playground/validator/v10"
)

// 価格は整数の文字列（小数・符号なし）
var priceRe = regexp.MustCompile(`^\d+$`)

// アップロード済み画像のURL
const uploadsPrefix = "/uploads/"

// go-playground/validatorのラッパー。
// エラーはusecase.HTTPError（400, details付き）で返す。
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	//エラーのフィールド名はJSON名にする
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "price", func(fl validator.FieldLevel) bool {
		return priceRe.MatchString(fl.Field().String())
	})
	//空文字は「画像なし」。必須にしたい所はrequiredを併用する。
	mustRegister(v, "imageurl", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || IsImageURL(s)
	})

	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// http(s)の絶対URLか、/uploads/ で始まるパス（前後の空白は不可）
func IsImageURL(s string) bool {
	if s != strings.TrimSpace(s) {
		return false
	}
	if strings.HasPrefix(s, uploadsPrefix) && len(s) > len(uploadsPrefix) {
		return !strings.Contains(s, "..")
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (v *Validator) validate(s interface{}) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	details := make([]usecase.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, usecase.FieldError{
			Field:   fieldName(fe),
			Message: message(fe),
		})
	}
	return usecase.NewValidationError(details)
}

// "InsertProduct.imageUrls[0]" → "imageUrls[0]"
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array

	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "price":
		return "must be a whole number"
	case "imageurl":
		return "must be an http(s) URL or an /uploads/ path"
	case "min":
		if isList {
			return fmt.Sprintf("must have at least %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isList {
			return fmt.Sprintf("must have at most %s items", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return "is invalid"
	}
}
