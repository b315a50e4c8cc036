package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"storefront/internal/clock"
	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =====================
// Mocks
// =====================

type ProdValidatorMock struct{ mock.Mock }

func (m *ProdValidatorMock) ValidateProduct(in model.InsertProduct) error {
	args := m.Called(in)
	return args.Error(0)
}

// 常にエラーを返すProductRepository（500の確認用）
type brokenProductRepo struct{ repo.ProductRepository }

func (brokenProductRepo) ListActive(ctx context.Context) ([]model.Product, error) {
	return nil, errors.New("connection refused")
}

func (brokenProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	return model.Product{}, errors.New("connection refused")
}

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleInput() model.InsertProduct {
	return model.InsertProduct{
		Name:        " Wallet ",
		Description: "Leather wallet",
		Price:       "2500",
		ImageURLs:   []string{"https://example.com/w.jpg"},
	}
}

func newProductUC(t *testing.T) (*ProductUsecase, repo.Repositories, *ProdValidatorMock, *clock.FakeClock) {
	t.Helper()
	repos := infraRepo.NewMemoryRepositories()
	v := new(ProdValidatorMock)
	v.On("ValidateProduct", mock.Anything).Return(nil).Maybe()
	clk := clock.NewFakeClock(t0)
	return NewProductUsecase(repos.Products, repos.Tx, v, clk, zap.NewNop()), repos, v, clk
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := AsHTTPError(err)
	require.True(t, ok, "want HTTPError, got %v", err)
	return he.Status
}

func TestProductUsecase_CreateThenGet(t *testing.T) {
	uc, repos, _, _ := newProductUC(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, sampleInput())
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))
	//入力はそのまま保存される（前後の空白も含む）
	assert.Equal(t, " Wallet ", created.Name)
	assert.False(t, created.Archived)
	assert.Equal(t, t0, created.CreatedAt)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, " Wallet ", got.Name)
	assert.Equal(t, "Leather wallet", got.Description)
	assert.Equal(t, "2500", got.Price)
	assert.Equal(t, []string{"https://example.com/w.jpg"}, []string(got.ImageURLs))
	assert.False(t, got.CreatedAt.Before(t0))

	logs, err := repos.AuditLogs.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionCreateProduct, logs[0].Action)
	assert.Equal(t, created.ID, logs[0].ResourceID)
	assert.Empty(t, logs[0].BeforeJSON)
	assert.Contains(t, logs[0].AfterJSON, `"name":" Wallet "`)
}

func TestProductUsecase_ValidationErrorAppendsNoAudit(t *testing.T) {
	repos := infraRepo.NewMemoryRepositories()
	v := new(ProdValidatorMock)
	v.On("ValidateProduct", mock.MatchedBy(func(in model.InsertProduct) bool {
		return in.Price == "12.50"
	})).Return(NewValidationError([]FieldError{{Field: "price", Message: "must be a whole number"}})).Once()

	uc := NewProductUsecase(repos.Products, repos.Tx, v, clock.NewFakeClock(t0), zap.NewNop())

	in := sampleInput()
	in.Price = "12.50"
	_, err := uc.Create(context.Background(), in)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	items, _ := repos.Products.ListActive(context.Background())
	assert.Empty(t, items)
	logs, _ := repos.AuditLogs.List(context.Background(), repo.AuditLogFilter{})
	assert.Empty(t, logs)
	v.AssertExpectations(t)
}

func TestProductUsecase_ArchiveTwice(t *testing.T) {
	uc, repos, _, _ := newProductUC(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, sampleInput())
	require.NoError(t, err)

	a1, err := uc.Archive(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, a1.Archived)

	a2, err := uc.Archive(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, a2.Archived)

	active, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	archived, err := uc.ListArchived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, p.ID, archived[0].ID)

	//作成 + アーカイブ1回分
	action := model.AuditActionArchiveProduct
	logs, _ := repos.AuditLogs.List(ctx, repo.AuditLogFilter{Action: &action})
	assert.Len(t, logs, 1)
}

func TestProductUsecase_UpdateNotFoundDoesNotCreate(t *testing.T) {
	uc, _, _, _ := newProductUC(t)
	ctx := context.Background()

	_, err := uc.Update(ctx, 42, sampleInput())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	items, err := uc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProductUsecase_UpdatePreservesIdentity(t *testing.T) {
	uc, _, _, clk := newProductUC(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, sampleInput())
	require.NoError(t, err)
	_, err = uc.Archive(ctx, p.ID)
	require.NoError(t, err)

	clk.Advance(time.Hour)
	in := sampleInput()
	in.Name = "Belt"
	in.ImageURLs = []string{"/uploads/1-a.png", "https://example.com/b.png"}

	u, err := uc.Update(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, p.ID, u.ID)
	assert.Equal(t, "Belt", u.Name)
	assert.True(t, u.Archived)
	assert.True(t, u.CreatedAt.Equal(p.CreatedAt))
	assert.Len(t, u.ImageURLs, 2)
}

func TestProductUsecase_Delete(t *testing.T) {
	uc, _, _, _ := newProductUC(t)
	ctx := context.Background()

	assert.Equal(t, http.StatusNotFound, statusOf(t, uc.Delete(ctx, 99)))

	p, err := uc.Create(ctx, sampleInput())
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, p.ID))

	_, err = uc.Get(ctx, p.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestProductUsecase_ZeroAndNegativeIDAreNotFound(t *testing.T) {
	uc, _, _, _ := newProductUC(t)
	ctx := context.Background()

	_, err := uc.Get(ctx, 0)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	_, err = uc.Update(ctx, -3, sampleInput())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	_, err = uc.Archive(ctx, -1)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.Equal(t, http.StatusNotFound, statusOf(t, uc.Delete(ctx, 0)))
}

func TestProductUsecase_StoreFailureIs500(t *testing.T) {
	repos := infraRepo.NewMemoryRepositories()
	uc := NewProductUsecase(brokenProductRepo{}, repos.Tx, new(ProdValidatorMock), clock.NewFakeClock(t0), zap.NewNop())

	_, err := uc.ListActive(context.Background())
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	//元のエラーは外に出さない
	assert.Equal(t, "internal error", he.Message)

	_, err = uc.Get(context.Background(), 1)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}
