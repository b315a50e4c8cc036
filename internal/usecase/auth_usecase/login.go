package auth

import (
	"context"
	"errors"
	"time"
)

// handlerからusecaseに渡す入力
type LoginInput struct {
	Password string
}

// handlerがJSONにして返す
type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// パスワードが違う
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type TokenIssuer interface {
	Issue(now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードを設定済みの管理者パスワードと比べる約束
type PasswordVerifier interface {
	Verify(plain string) bool
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type LoginUsecase struct {
	verifier PasswordVerifier
	issuer   TokenIssuer
	clock    Clock
}

func NewLoginUsecase(verifier PasswordVerifier, issuer TokenIssuer, clock Clock) *LoginUsecase {
	return &LoginUsecase{
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

// ログイン処理を実行する
func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	_ = ctx

	//空パスワードは照合しない
	if in.Password == "" {
		return LoginOutput{}, ErrInvalidCredentials
	}
	if !u.verifier.Verify(in.Password) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	token, expiresAt, err := u.issuer.Issue(u.clock.Now())
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
