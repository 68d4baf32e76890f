package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

type stubStorage struct {
	url      string
	err      error
	uploads  int
	lastName string
}

func (s *stubStorage) Upload(_ context.Context, _, name string, _ io.Reader) (string, error) {
	s.uploads++
	s.lastName = name
	return s.url, s.err
}

func newDocumentFixture(t *testing.T, storage FileStorage, maxSizeMB int) (DocumentService, *gorm.DB, string) {
	t.Helper()
	db := newTestDB(t)
	studentRepo := repository.NewStudentRepository(db)

	student := models.Student{
		ID:               "student-1",
		FullName:         "Budi Santoso",
		NickName:         "Budi",
		Level:            models.LevelSD,
		ParentPhone:      "0812",
		RegistrationDate: time.Now(),
		Status:           models.StatusPending,
	}
	require.NoError(t, studentRepo.Create(context.Background(), &student))

	svc := NewDocumentService(studentRepo, repository.NewUploadRepository(db), storage, maxSizeMB, nopLogger())
	return svc, db, student.ID
}

// makeFileHeader builds a real multipart file header the way Fiber hands it
// to the handler.
func makeFileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func pngBytes(extra int) []byte {
	header := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	return append(header, bytes.Repeat([]byte{0}, extra)...)
}

func TestAttachStoresBerkasAndAppendsDocument(t *testing.T) {
	storage := &stubStorage{url: "https://cdn.example.com/berkas/kk.png"}
	svc, db, studentID := newDocumentFixture(t, storage, 10)

	response, err := svc.Attach(context.Background(), superAdminActor(), studentID, makeFileHeader(t, "kk.png", pngBytes(64)))
	require.NoError(t, err)
	require.Equal(t, "kk.png", response.Document.Name)
	require.Equal(t, storage.url, response.Document.URL)
	require.Equal(t, "image/png", response.Document.Type)
	require.Equal(t, 1, response.Student.DocumentCount)
	require.Equal(t, 1, storage.uploads)

	// Audit row is written alongside.
	records, err := repository.NewUploadRepository(db).ListByStudent(context.Background(), studentID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "image/png", records[0].MimeType)
	require.NotEmpty(t, records[0].Checksum)
}

func TestAttachAcceptsPDF(t *testing.T) {
	storage := &stubStorage{url: "https://cdn.example.com/berkas/akte.pdf"}
	svc, _, studentID := newDocumentFixture(t, storage, 10)

	pdf := []byte("%PDF-1.4\n%test document\n")
	response, err := svc.Attach(context.Background(), superAdminActor(), studentID, makeFileHeader(t, "akte.pdf", pdf))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", response.Document.Type)
}

func TestAttachRejectsDisallowedType(t *testing.T) {
	storage := &stubStorage{url: "unused"}
	svc, _, studentID := newDocumentFixture(t, storage, 10)

	_, err := svc.Attach(context.Background(), superAdminActor(), studentID, makeFileHeader(t, "notes.txt", []byte("plain text, not a berkas")))
	require.ErrorIs(t, err, ErrBerkasTypeNotAllowed)
	require.Zero(t, storage.uploads)
}

func TestAttachRejectsOversizedFile(t *testing.T) {
	storage := &stubStorage{url: "unused"}
	svc, _, studentID := newDocumentFixture(t, storage, 1)

	_, err := svc.Attach(context.Background(), superAdminActor(), studentID, makeFileHeader(t, "big.png", pngBytes(2*1024*1024)))
	require.ErrorIs(t, err, ErrBerkasTooLarge)
	require.Zero(t, storage.uploads)
}

func TestAttachCrossLevelReadsAsNotFound(t *testing.T) {
	storage := &stubStorage{url: "unused"}
	svc, _, studentID := newDocumentFixture(t, storage, 10)

	_, err := svc.Attach(context.Background(), levelAdminActor(models.LevelSMA), studentID, makeFileHeader(t, "kk.png", pngBytes(64)))
	require.ErrorIs(t, err, ErrStudentNotFound)
	require.Zero(t, storage.uploads)
}

func TestAttachWithoutStorage(t *testing.T) {
	svc, _, studentID := newDocumentFixture(t, nil, 10)

	_, err := svc.Attach(context.Background(), superAdminActor(), studentID, makeFileHeader(t, "kk.png", pngBytes(64)))
	require.ErrorIs(t, err, ErrStorageUnavailable)
}
