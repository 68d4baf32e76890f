package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

func TestStudentRepositoryListScopesByLevel(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	seedStudent(t, db, "Budi Santoso", models.LevelSD, models.StatusPending)
	seedStudent(t, db, "Siti Aminah", models.LevelTK, models.StatusVerified)
	seedStudent(t, db, "Rina Putri", models.LevelSD, models.StatusCompleted)

	level := models.LevelSD
	students, total, err := repo.List(context.Background(), StudentFilter{Level: &level, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, s := range students {
		require.Equal(t, models.LevelSD, s.Level)
	}

	students, total, err = repo.List(context.Background(), StudentFilter{PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, students, 3)
}

func TestStudentRepositoryListSearch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	seedStudent(t, db, "Budi Santoso", models.LevelSD, models.StatusPending)
	seedStudent(t, db, "Siti Aminah", models.LevelTK, models.StatusPending)

	students, total, err := repo.List(context.Background(), StudentFilter{Search: "budi", PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "Budi Santoso", students[0].FullName)
}

func TestStudentRepositoryUpdateStatusUnrestricted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	student := seedStudent(t, db, "Budi Santoso", models.LevelSD, models.StatusPending)

	updated, err := repo.UpdateStatus(context.Background(), student.ID, models.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)

	// Backward transition is allowed: no workflow ordering is enforced.
	updated, err = repo.UpdateStatus(context.Background(), student.ID, models.StatusPending)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, updated.Status)
}

func TestStudentRepositoryUpdateStatusUnknownID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	_, err := repo.UpdateStatus(context.Background(), uuid.NewString(), models.StatusVerified)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStudentRepositoryAppendDocumentPreservesOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	student := seedStudent(t, db, "Budi Santoso", models.LevelSD, models.StatusPending)

	first := models.Document{Name: "kk.pdf", URL: "https://cdn.example.com/kk.pdf", Type: "application/pdf"}
	second := models.Document{Name: "akte.pdf", URL: "https://cdn.example.com/akte.pdf", Type: "application/pdf"}

	_, err := repo.AppendDocument(context.Background(), student.ID, first)
	require.NoError(t, err)
	updated, err := repo.AppendDocument(context.Background(), student.ID, second)
	require.NoError(t, err)

	require.Len(t, updated.Documents, 2)
	require.Equal(t, "kk.pdf", updated.Documents[0].Name)
	require.Equal(t, "akte.pdf", updated.Documents[1].Name)

	stored, err := repo.GetByID(context.Background(), student.ID)
	require.NoError(t, err)
	require.Len(t, stored.Documents, 2)
}

func TestStudentRepositoryCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)

	seedStudent(t, db, "Budi Santoso", models.LevelSD, models.StatusPending)
	seedStudent(t, db, "Siti Aminah", models.LevelSD, models.StatusPending)
	seedStudent(t, db, "Rina Putri", models.LevelSMP, models.StatusCompleted)

	counts, err := repo.CountByStatus(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), counts[models.StatusPending])
	require.Equal(t, int64(1), counts[models.StatusCompleted])

	level := models.LevelSMP
	counts, err = repo.CountByStatus(context.Background(), &level)
	require.NoError(t, err)
	require.Equal(t, int64(0), counts[models.StatusPending])
	require.Equal(t, int64(1), counts[models.StatusCompleted])
}

func seedStudent(t *testing.T, db *gorm.DB, name string, level models.SchoolLevel, status models.RegistrationStatus) models.Student {
	t.Helper()
	student := models.Student{
		ID:               uuid.NewString(),
		FullName:         name,
		NickName:         name,
		Level:            level,
		ParentPhone:      "081200001111",
		RegistrationDate: time.Now().Truncate(24 * time.Hour),
		Status:           status,
	}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Student{}, &models.AdminUser{}, &models.AppSettings{}, &models.UploadRecord{}))
	return db
}
