package model

import "time"

// トークンに埋め込まれた管理者クレーム
type AdminClaim struct {
	IsAdmin   bool      `json:"isAdmin"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
