package token

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type adminClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

// 管理者トークンの発行と検証（HS256）
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// DI
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *JWTIssuer) Issue(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := adminClaims{
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   model.AuditActorAdmin,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// 署名・期限・isAdminを確認する。
// 期限は注入された時刻で判定する（テストで時計を進めるため）。
func (i *JWTIssuer) Parse(raw string, now time.Time) (model.AdminClaim, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var claims adminClaims
	tok, err := parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil || tok == nil || !tok.Valid {
		return model.AdminClaim{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !claims.VerifyExpiresAt(now, true) {
		return model.AdminClaim{}, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	if !claims.IsAdmin {
		return model.AdminClaim{}, fmt.Errorf("%w: not admin", ErrInvalidToken)
	}

	out := model.AdminClaim{
		IsAdmin:   true,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, nil
}
