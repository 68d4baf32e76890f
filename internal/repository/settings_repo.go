package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

// SettingsRepository stores the single application settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (models.AppSettings, error)
	Save(ctx context.Context, settings models.AppSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository constructs the settings repository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (models.AppSettings, error) {
	var settings models.AppSettings
	if err := r.db.WithContext(ctx).First(&settings, 1).Error; err != nil {
		return models.AppSettings{}, err
	}

	return settings, nil
}

// Save replaces the settings row wholesale.
func (r *settingsRepository) Save(ctx context.Context, settings models.AppSettings) error {
	settings.ID = 1
	return r.db.WithContext(ctx).Save(&settings).Error
}
