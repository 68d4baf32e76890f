package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

// StudentFilter defines the listing filters available to the admin panel.
// Level is the visibility scope: nil means every level (super admin view).
type StudentFilter struct {
	Level    *models.SchoolLevel
	Status   models.RegistrationStatus
	Search   string
	Page     int
	PageSize int
}

// StudentRepository provides access to applicant records.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id string) (models.Student, error)
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) (models.Student, error)
	AppendDocument(ctx context.Context, id string, doc models.Document) (models.Student, error)
	CountByStatus(ctx context.Context, level *models.SchoolLevel) (map[models.RegistrationStatus]int64, error)
	CountByLevel(ctx context.Context) (map[models.SchoolLevel]int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filter.Level != nil {
		query = query.Where("level = ?", *filter.Level)
	}

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(nick_name) LIKE ?", like, like)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) (models.Student, error) {
	update := r.db.WithContext(ctx).Model(&models.Student{}).
		Where("id = ?", id).
		Update("status", status)
	if update.Error != nil {
		return models.Student{}, update.Error
	}

	if update.RowsAffected == 0 {
		return models.Student{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

// AppendDocument reloads the row inside a transaction and rewrites the whole
// document list with the new entry at the end. Existing entries are never
// dropped or reordered.
func (r *studentRepository) AppendDocument(ctx context.Context, id string, doc models.Document) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&student).Error; err != nil {
			return err
		}

		student.Documents = append(student.Documents, doc)
		return tx.Model(&models.Student{}).
			Where("id = ?", id).
			Update("documents", student.Documents).Error
	})
	if err != nil {
		return models.Student{}, err
	}

	return student, nil
}

func (r *studentRepository) CountByStatus(ctx context.Context, level *models.SchoolLevel) (map[models.RegistrationStatus]int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})
	if level != nil {
		query = query.Where("level = ?", *level)
	}

	var rows []struct {
		Status models.RegistrationStatus
		Total  int64
	}
	if err := query.Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.RegistrationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}

func (r *studentRepository) CountByLevel(ctx context.Context) (map[models.SchoolLevel]int64, error) {
	var rows []struct {
		Level models.SchoolLevel
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.Student{}).
		Select("level, COUNT(*) AS total").
		Group("level").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SchoolLevel]int64, len(rows))
	for _, row := range rows {
		counts[row.Level] = row.Total
	}

	return counts, nil
}
