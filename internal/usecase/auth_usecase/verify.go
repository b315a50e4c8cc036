package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain/model"
)

var (
	// 401
	ErrTokenMissing = errors.New("token missing")
	// 403（署名不正・期限切れ・管理者でない）
	ErrTokenInvalid = errors.New("token invalid")
)

// JWTを検証する約束
type TokenParser interface {
	Parse(raw string, now time.Time) (model.AdminClaim, error)
}

type VerifyUsecase struct {
	parser TokenParser
	clock  Clock
}

func NewVerifyUsecase(parser TokenParser, clock Clock) *VerifyUsecase {
	return &VerifyUsecase{parser: parser, clock: clock}
}

// トークン文字列から管理者クレームを取り出す
func (u *VerifyUsecase) Execute(ctx context.Context, rawToken string) (model.AdminClaim, error) {
	_ = ctx

	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return model.AdminClaim{}, ErrTokenMissing
	}

	claim, err := u.parser.Parse(rawToken, u.clock.Now())
	if err != nil {
		return model.AdminClaim{}, ErrTokenInvalid
	}
	if !claim.IsAdmin {
		return model.AdminClaim{}, ErrTokenInvalid
	}
	return claim, nil
}
