package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

// AdminRepository exposes persistence helpers for panel accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	List(ctx context.Context) ([]models.AdminUser, error)
	GetByID(ctx context.Context, id string) (models.AdminUser, error)
	GetByUsername(ctx context.Context, username string) (models.AdminUser, error)
	Delete(ctx context.Context, id string) error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository constructs the admin account repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) List(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&admins).Error; err != nil {
		return nil, err
	}

	return admins, nil
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return models.AdminUser{}, err
	}

	return admin, nil
}

// GetByUsername returns the oldest account carrying the username. Usernames
// are display labels and are not unique; the oldest wins for login so the
// bootstrap account can never be shadowed.
func (r *adminRepository) GetByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	var admin models.AdminUser
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at ASC").
		First(&admin).Error
	if err != nil {
		return models.AdminUser{}, err
	}

	return admin, nil
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AdminUser{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
