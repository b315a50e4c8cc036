package auth

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// 平文パスワードからハッシュへ。
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// bcryptハッシュ化
type BcryptPasswordHasher struct {
	cost int
}

// DI
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost}
}

// bcryptでハッシュ化
func (h *BcryptPasswordHasher) Hash(plain string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// ADMIN_PASSWORD_HASH（bcrypt）と比較
type BcryptPasswordVerifier struct {
	hashed []byte
}

// DI
func NewBcryptPasswordVerifier(hashed string) *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{hashed: []byte(hashed)}
}

func (v *BcryptPasswordVerifier) Verify(plain string) bool {
	err := bcrypt.CompareHashAndPassword(v.hashed, []byte(plain))
	return err == nil
}

// ADMIN_PASSWORD（平文）と比較。
// 長さの違いで時間が変わらないようにハッシュ同士を比べる。
type PlainPasswordVerifier struct {
	sum [sha256.Size]byte
}

// DI
func NewPlainPasswordVerifier(password string) *PlainPasswordVerifier {
	return &PlainPasswordVerifier{sum: sha256.Sum256([]byte(password))}
}

func (v *PlainPasswordVerifier) Verify(plain string) bool {
	got := sha256.Sum256([]byte(plain))
	return subtle.ConstantTimeCompare(got[:], v.sum[:]) == 1
}

// ハッシュがあればbcrypt、無ければ平文比較
func NewPasswordVerifier(password string, passwordHash string) PasswordVerifier {
	if passwordHash != "" {
		return NewBcryptPasswordVerifier(passwordHash)
	}
	return NewPlainPasswordVerifier(password)
}
