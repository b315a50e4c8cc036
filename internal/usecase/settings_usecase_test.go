package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"storefront/internal/clock"
	"storefront/internal/domain/model"
	infraRepo "storefront/internal/infra/repository"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type SettingsValidatorMock struct{ mock.Mock }

func (m *SettingsValidatorMock) ValidateSettingsPatch(p model.SiteSettingsPatch) error {
	args := m.Called(p)
	return args.Error(0)
}

func patchFrom(t *testing.T, raw string) model.SiteSettingsPatch {
	t.Helper()
	var p model.SiteSettingsPatch
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestSettingsUsecase_PartialUpdate(t *testing.T) {
	repos := infraRepo.NewMemoryRepositories()
	v := new(SettingsValidatorMock)
	v.On("ValidateSettingsPatch", mock.Anything).Return(nil)
	uc := NewSettingsUsecase(repos.Settings, repos.Tx, v, clock.NewFakeClock(t0), zap.NewNop())
	ctx := context.Background()

	before, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "KoBro", before.SiteName)

	out, err := uc.Update(ctx, patchFrom(t, `{"cardSize":{"width":320}}`))
	require.NoError(t, err)
	assert.Equal(t, 320, out.CardSize.Width)
	assert.Equal(t, 400, out.CardSize.Height)

	got, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 320, got.CardSize.Width)
	assert.Equal(t, before.SiteName, got.SiteName)
	assert.Equal(t, before.Sections, got.Sections)
	assert.Equal(t, before.NavigationLinks, got.NavigationLinks)

	logs, err := repos.AuditLogs.List(ctx, repo.AuditLogFilter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionUpdateSettings, logs[0].Action)
	assert.Equal(t, model.SiteSettingsRecordID, logs[0].ResourceID)
}

func TestSettingsUsecase_UnknownKeyKeptInExtra(t *testing.T) {
	repos := infraRepo.NewMemoryRepositories()
	v := new(SettingsValidatorMock)
	v.On("ValidateSettingsPatch", mock.Anything).Return(nil)
	uc := NewSettingsUsecase(repos.Settings, repos.Tx, v, clock.NewFakeClock(t0), zap.NewNop())

	out, err := uc.Update(context.Background(), patchFrom(t, `{"bannerText":"Sale!"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `"Sale!"`, string(out.Extra["bannerText"]))
}

func TestSettingsUsecase_ValidationError(t *testing.T) {
	repos := infraRepo.NewMemoryRepositories()
	v := new(SettingsValidatorMock)
	v.On("ValidateSettingsPatch", mock.Anything).Return(NewValidationError(nil))
	uc := NewSettingsUsecase(repos.Settings, repos.Tx, v, clock.NewFakeClock(t0), zap.NewNop())

	_, err := uc.Update(context.Background(), patchFrom(t, `{"productsPerPage":0}`))
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	logs, _ := repos.AuditLogs.List(context.Background(), repo.AuditLogFilter{})
	assert.Empty(t, logs)
}

func TestAuditLogUsecase_List(t *testing.T) {
	repos := infraRepo.NewMemoryRepositories()
	ctx := context.Background()
	for i := int64(1); i <= 3; i++ {
		require.NoError(t, repos.AuditLogs.Create(ctx, model.AuditLog{
			Actor: model.AuditActorAdmin, Action: model.AuditActionCreateProduct,
			ResourceType: model.AuditResourceProduct, ResourceID: i, CreatedAt: t0,
		}))
	}

	uc := NewAuditLogUsecase(repos.AuditLogs, zap.NewNop())

	logs, err := uc.List(ctx, repo.AuditLogFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(3), logs[0].ResourceID)

	_, err = uc.List(ctx, repo.AuditLogFilter{Offset: -1})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}
