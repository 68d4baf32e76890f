package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

func TestAdminRepositoryGetByUsernameOldestWins(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db)

	older := models.AdminUser{ID: uuid.NewString(), Username: "ustadzah.rina", Role: models.RoleSuperAdmin, CreatedAt: time.Now().Add(-2 * time.Hour)}
	newer := models.AdminUser{ID: uuid.NewString(), Username: "ustadzah.rina", Role: models.RoleLevelAdmin, CreatedAt: time.Now().Add(-1 * time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	found, err := repo.GetByUsername(context.Background(), "ustadzah.rina")
	require.NoError(t, err)
	require.Equal(t, older.ID, found.ID)
}

func TestAdminRepositoryDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db)

	admin := models.AdminUser{ID: uuid.NewString(), Username: "pak.budi", Role: models.RoleLevelAdmin}
	require.NoError(t, db.Create(&admin).Error)

	require.NoError(t, repo.Delete(context.Background(), admin.ID))
	require.ErrorIs(t, repo.Delete(context.Background(), admin.ID), gorm.ErrRecordNotFound)
}

func TestSettingsRepositoryRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepository(db)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Save(context.Background(), models.AppSettings{AdminWhatsApp: "628111222333"}))

	settings, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "628111222333", settings.AdminWhatsApp)

	// Saving again replaces the single row rather than adding one.
	require.NoError(t, repo.Save(context.Background(), models.AppSettings{AdminWhatsApp: "628999888777"}))
	settings, err = repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "628999888777", settings.AdminWhatsApp)
}
