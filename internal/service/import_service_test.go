package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dhia-elwidad/spmb-api/internal/models"
)

func newImportService(t *testing.T) (ImportService, StudentService) {
	t.Helper()
	students := newStudentService(t)
	return NewImportService(students, nopLogger()), students
}

func TestImportCreatesAllRows(t *testing.T) {
	importer, students := newImportService(t)
	ctx := context.Background()

	payload := []byte(`[
		{"full_name": "Budi Santoso", "nick_name": "Budi", "level": "SD", "parent_phone": "0812"},
		{"full_name": "Siti Aminah", "nick_name": "Siti", "level": "TK/PAUD", "parent_phone": "0813"}
	]`)

	response, err := importer.Import(ctx, superAdminActor(), payload)
	require.NoError(t, err)
	require.Equal(t, 2, response.Created)

	list, err := students.List(ctx, superAdminActor(), StudentListOptions{PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), list.Pagination.TotalItems)
	for _, item := range list.Items {
		require.Equal(t, models.StatusPending, item.Status)
	}
}

func TestImportRejectsUnknownLevel(t *testing.T) {
	importer, _ := newImportService(t)

	payload := []byte(`[{"full_name": "Budi", "nick_name": "Budi", "level": "KAMPUS", "parent_phone": "0812"}]`)
	_, err := importer.Import(context.Background(), superAdminActor(), payload)
	require.ErrorIs(t, err, ErrImportInvalid)
}

func TestImportRejectsMissingFields(t *testing.T) {
	importer, _ := newImportService(t)

	payload := []byte(`[{"full_name": "Budi", "level": "SD"}]`)
	_, err := importer.Import(context.Background(), superAdminActor(), payload)
	require.ErrorIs(t, err, ErrImportInvalid)
}

func TestImportRejectsEmptyArray(t *testing.T) {
	importer, _ := newImportService(t)

	_, err := importer.Import(context.Background(), superAdminActor(), []byte(`[]`))
	require.ErrorIs(t, err, ErrImportInvalid)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	importer, _ := newImportService(t)

	_, err := importer.Import(context.Background(), superAdminActor(), []byte(`{"not": "an array"`))
	require.ErrorIs(t, err, ErrImportInvalid)
}

func TestImportLevelAdminRowsLockedToAssignedLevel(t *testing.T) {
	importer, students := newImportService(t)
	ctx := context.Background()

	payload := []byte(`[{"full_name": "Budi Santoso", "nick_name": "Budi", "level": "SMA", "parent_phone": "0812"}]`)
	response, err := importer.Import(ctx, levelAdminActor(models.LevelSD), payload)
	require.NoError(t, err)
	require.Equal(t, 1, response.Created)

	list, err := students.List(ctx, superAdminActor(), StudentListOptions{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, models.LevelSD, list.Items[0].Level)
}
