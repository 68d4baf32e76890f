package service

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Student{},
		&models.AdminUser{},
		&models.AppSettings{},
		&models.UploadRecord{},
	))

	return db
}

func newTestValidator() *validator.Validate {
	return validator.New()
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func superAdminActor() Actor {
	return Actor{ID: "actor-1", Username: "superadmin", Role: models.RoleSuperAdmin}
}

func levelAdminActor(level models.SchoolLevel) Actor {
	return Actor{ID: "actor-2", Username: "admin-sd", Role: models.RoleLevelAdmin, AssignedLevel: &level}
}
