package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

// UploadRepository records stored berkas for auditing.
type UploadRepository interface {
	Create(ctx context.Context, record *models.UploadRecord) error
	ListByStudent(ctx context.Context, studentID string) ([]models.UploadRecord, error)
}

type uploadRepository struct {
	db *gorm.DB
}

// NewUploadRepository constructs the upload audit repository.
func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, record *models.UploadRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *uploadRepository) ListByStudent(ctx context.Context, studentID string) ([]models.UploadRecord, error) {
	var records []models.UploadRecord
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}
