package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/clock"
	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(now time.Time) (string, time.Time, error) {
	args := m.Called(now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockTokenParser struct {
	mock.Mock
}

func (m *MockTokenParser) Parse(raw string, now time.Time) (model.AdminClaim, error) {
	args := m.Called(raw, now)
	c, _ := args.Get(0).(model.AdminClaim)
	return c, args.Error(1)
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestLoginUsecase_Success(t *testing.T) {
	issuer := new(MockTokenIssuer)
	exp := testNow.Add(24 * time.Hour)
	issuer.On("Issue", testNow).Return("signed", exp, nil).Once()

	uc := NewLoginUsecase(NewPlainPasswordVerifier("admin123"), issuer, clock.NewFakeClock(testNow))

	out, err := uc.Execute(context.Background(), LoginInput{Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, "signed", out.Token)
	assert.Equal(t, exp, out.ExpiresAt)
	issuer.AssertExpectations(t)
}

func TestLoginUsecase_WrongPassword(t *testing.T) {
	issuer := new(MockTokenIssuer)
	uc := NewLoginUsecase(NewPlainPasswordVerifier("admin123"), issuer, clock.NewFakeClock(testNow))

	_, err := uc.Execute(context.Background(), LoginInput{Password: "admin1234"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Execute(context.Background(), LoginInput{Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	issuer.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestLoginUsecase_IssuerError(t *testing.T) {
	issuer := new(MockTokenIssuer)
	issuer.On("Issue", testNow).Return("", time.Time{}, errors.New("boom")).Once()

	uc := NewLoginUsecase(NewPlainPasswordVerifier("pw"), issuer, clock.NewFakeClock(testNow))
	_, err := uc.Execute(context.Background(), LoginInput{Password: "pw"})
	assert.EqualError(t, err, "boom")
}

func TestBcryptPasswordVerifier(t *testing.T) {
	hashed, err := NewBcryptPasswordHasher(4).Hash("s3cret")
	require.NoError(t, err)

	v := NewPasswordVerifier("", hashed)
	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("s3cre"))
}

func TestNewPasswordVerifier_PrefersHash(t *testing.T) {
	hashed, err := NewBcryptPasswordHasher(4).Hash("from-hash")
	require.NoError(t, err)

	v := NewPasswordVerifier("from-plain", hashed)
	assert.True(t, v.Verify("from-hash"))
	assert.False(t, v.Verify("from-plain"))
}

func TestVerifyUsecase(t *testing.T) {
	clk := clock.NewFakeClock(testNow)
	parser := new(MockTokenParser)
	parser.On("Parse", "good", testNow).Return(model.AdminClaim{IsAdmin: true}, nil)
	parser.On("Parse", "bad", testNow).Return(model.AdminClaim{}, errors.New("signature"))
	parser.On("Parse", "user", testNow).Return(model.AdminClaim{IsAdmin: false}, nil)

	uc := NewVerifyUsecase(parser, clk)

	claim, err := uc.Execute(context.Background(), "good")
	require.NoError(t, err)
	assert.True(t, claim.IsAdmin)

	_, err = uc.Execute(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrTokenMissing)

	_, err = uc.Execute(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = uc.Execute(context.Background(), "user")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
