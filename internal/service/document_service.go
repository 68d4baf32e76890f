package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/observability"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

var (
	// ErrBerkasTooLarge indicates the payload exceeded the configured limit.
	ErrBerkasTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrBerkasTypeNotAllowed indicates the MIME type is not permitted.
	ErrBerkasTypeNotAllowed = errors.New("file type not allowed")
	// ErrStorageUnavailable indicates no object store is configured.
	ErrStorageUnavailable = errors.New("berkas storage not configured")
)

// FileStorage abstracts the object store holding applicant berkas.
type FileStorage interface {
	Upload(ctx context.Context, scope, name string, reader io.Reader) (string, error)
}

// DocumentService validates and stores berkas, then appends the descriptor to
// the applicant's document list.
type DocumentService interface {
	Attach(ctx context.Context, actor Actor, studentID string, file *multipart.FileHeader) (dto.DocumentResponse, error)
}

type documentService struct {
	students repository.StudentRepository
	uploads  repository.UploadRepository
	storage  FileStorage
	maxSize  int64
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewDocumentService constructs the berkas service.
func NewDocumentService(students repository.StudentRepository, uploads repository.UploadRepository, storage FileStorage, maxSizeMB int, logger zerolog.Logger) DocumentService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &documentService{
		students: students,
		uploads:  uploads,
		storage:  storage,
		maxSize:  int64(maxSizeMB) * 1024 * 1024,
		logger:   logger.With().Str("component", "document_service").Logger(),
		tracer:   otel.Tracer("github.com/dhia-elwidad/spmb-api/internal/service/document"),
	}
}

func (s *documentService) Attach(ctx context.Context, actor Actor, studentID string, file *multipart.FileHeader) (dto.DocumentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "berkas.attach", trace.WithAttributes(
		attribute.String("student_id", studentID),
	))
	defer span.End()

	if s.storage == nil {
		span.RecordError(ErrStorageUnavailable)
		span.SetStatus(codes.Error, "no storage")
		return dto.DocumentResponse{}, ErrStorageUnavailable
	}

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	student, err := s.fetchScoped(ctx, actor, studentID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "student lookup failed")
		return dto.DocumentResponse{}, err
	}

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return dto.DocumentResponse{}, err
	}

	if file.Size > s.maxSize {
		observability.UploadsRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrBerkasTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.DocumentResponse{}, ErrBerkasTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return dto.DocumentResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return dto.DocumentResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.UploadsRejected().WithLabelValues("size").Inc()
		span.RecordError(ErrBerkasTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.DocumentResponse{}, ErrBerkasTooLarge
	}

	mime := mimetype.Detect(buf.Bytes()).String()
	span.SetAttributes(attribute.String("berkas.detected_mime", mime))
	if !isAllowedBerkasType(mime) {
		observability.UploadsRejected().WithLabelValues("type").Inc()
		span.RecordError(ErrBerkasTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.DocumentResponse{}, ErrBerkasTypeNotAllowed
	}

	name := strings.TrimSpace(file.Filename)
	if name == "" {
		name = "berkas"
	}

	url, err := s.storage.Upload(ctx, student.ID, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadsRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return dto.DocumentResponse{}, err
	}

	doc := models.Document{Name: name, URL: url, Type: mime}
	updated, err := s.students.AppendDocument(ctx, student.ID, doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return dto.DocumentResponse{}, err
	}

	checksum := sha256.Sum256(buf.Bytes())
	record := models.UploadRecord{
		StudentID: student.ID,
		FileName:  name,
		URL:       url,
		MimeType:  mime,
		SizeBytes: int64(buf.Len()),
		Checksum:  hex.EncodeToString(checksum[:]),
	}
	if err := s.uploads.Create(ctx, &record); err != nil {
		// The berkas itself is already attached; the audit row is best effort.
		s.logger.Warn().Err(err).Str("student_id", student.ID).Msg("failed to write upload audit record")
	}

	observability.UploadsStored().WithLabelValues(mime).Inc()
	span.SetStatus(codes.Ok, "stored")

	return dto.DocumentResponse{Document: doc, Student: dto.NewStudentResponse(updated)}, nil
}

func (s *documentService) fetchScoped(ctx context.Context, actor Actor, id string) (models.Student, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return models.Student{}, ErrStudentNotFound
	}

	admin := models.AdminUser{Role: actor.Role, AssignedLevel: actor.AssignedLevel}
	if !admin.CanAccessLevel(student.Level) {
		return models.Student{}, ErrStudentNotFound
	}

	return student, nil
}

func isAllowedBerkasType(mime string) bool {
	lower := strings.ToLower(strings.TrimSpace(mime))
	if strings.HasPrefix(lower, "image/") {
		return true
	}
	return lower == "application/pdf"
}
