package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

func newSettingsService(t *testing.T, cache *redis.Client) SettingsService {
	t.Helper()
	db := newTestDB(t)
	return NewSettingsService(repository.NewSettingsRepository(db), cache, time.Minute, "", nopLogger())
}

func newTestCache(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSettingsGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := newSettingsService(t, nil)

	settings := svc.Get(context.Background())
	require.Equal(t, models.DefaultAdminWhatsApp, settings.AdminWhatsApp)
}

func TestSettingsUpdateStripsNonDigits(t *testing.T) {
	svc := newSettingsService(t, nil)
	ctx := context.Background()

	updated, err := svc.Update(ctx, dto.SettingsUpdateRequest{AdminWhatsApp: "+62 812-3456-7890"})
	require.NoError(t, err)
	require.Equal(t, "6281234567890", updated.AdminWhatsApp)

	require.Equal(t, "6281234567890", svc.AdminWhatsApp(ctx))
}

func TestSettingsUpdateBlankFallsBackToDefault(t *testing.T) {
	svc := newSettingsService(t, nil)

	updated, err := svc.Update(context.Background(), dto.SettingsUpdateRequest{AdminWhatsApp: "abc"})
	require.NoError(t, err)
	require.Equal(t, models.DefaultAdminWhatsApp, updated.AdminWhatsApp)
}

func TestSettingsCacheInvalidatedOnUpdate(t *testing.T) {
	cache := newTestCache(t)
	svc := newSettingsService(t, cache)
	ctx := context.Background()

	// Prime the cache with the defaults.
	require.Equal(t, models.DefaultAdminWhatsApp, svc.AdminWhatsApp(ctx))

	_, err := svc.Update(ctx, dto.SettingsUpdateRequest{AdminWhatsApp: "628111222333"})
	require.NoError(t, err)

	require.Equal(t, "628111222333", svc.AdminWhatsApp(ctx))
}
