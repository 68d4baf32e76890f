package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/observability"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

var (
	// ErrStudentNotFound indicates the applicant does not exist or is
	// outside the caller's level scope.
	ErrStudentNotFound = errors.New("student not found")
	// ErrInvalidStatus indicates the status is outside the closed set.
	ErrInvalidStatus = errors.New("unknown registration status")
)

// SubjectRegistrationCreated is published when an applicant row is created.
const SubjectRegistrationCreated = "spmb.registration.created"

// Actor identifies the admin performing a panel operation, as taken from the
// JWT claims.
type Actor struct {
	ID            string
	Username      string
	Role          models.UserRole
	AssignedLevel *models.SchoolLevel
}

// scope returns the level filter this actor is confined to. Super admins get
// nil (no filter). Recomputed on every call; visibility is never cached.
func (a Actor) scope() *models.SchoolLevel {
	if a.Role == models.RoleSuperAdmin {
		return nil
	}
	return a.AssignedLevel
}

// StudentListOptions are the table filters the panel may combine with the
// actor's visibility scope.
type StudentListOptions struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// StudentService orchestrates the admin-side applicant operations.
type StudentService interface {
	Create(ctx context.Context, actor Actor, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	List(ctx context.Context, actor Actor, opts StudentListOptions) (dto.StudentListResponse, error)
	Get(ctx context.Context, actor Actor, id string) (dto.StudentResponse, error)
	SetStatus(ctx context.Context, actor Actor, id string, status string) (dto.StudentResponse, error)
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	nats      *nats.Conn
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudentService constructs the applicant management service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, natsConn *nats.Conn, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		nats:      natsConn,
		logger:    logger.With().Str("component", "student_service").Logger(),
		now:       time.Now,
	}
}

// Create records a manual entry. Level admins can only ever create applicants
// in their own level: whatever the form sent, the level is forced to the
// admin's assigned one.
func (s *studentService) Create(ctx context.Context, actor Actor, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	level := models.SchoolLevel(strings.TrimSpace(payload.Level))
	if actor.Role == models.RoleLevelAdmin && actor.AssignedLevel != nil {
		level = *actor.AssignedLevel
	}
	if !level.IsValid() {
		return dto.StudentResponse{}, ErrInvalidLevel
	}

	student := models.Student{
		ID:               uuid.NewString(),
		FullName:         strings.TrimSpace(payload.FullName),
		NickName:         strings.TrimSpace(payload.NickName),
		Level:            level,
		ParentPhone:      strings.TrimSpace(payload.ParentPhone),
		RegistrationDate: s.now().Truncate(24 * time.Hour),
		Status:           models.StatusPending,
		Documents:        nil,
	}

	if err := s.repo.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	observability.RegistrationsCreated().WithLabelValues(string(level)).Inc()
	s.publishCreated(student, actor)

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context, actor Actor, opts StudentListOptions) (dto.StudentListResponse, error) {
	filter := repository.StudentFilter{
		Level:    actor.scope(),
		Search:   strings.TrimSpace(opts.Search),
		Page:     opts.Page,
		PageSize: opts.PageSize,
	}

	if opts.Status != "" {
		status := models.RegistrationStatus(strings.TrimSpace(opts.Status))
		if !status.IsValid() {
			return dto.StudentListResponse{}, ErrInvalidStatus
		}
		filter.Status = status
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.StudentListResponse{}, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(opts.Page, 1),
		PageSize:   opts.PageSize,
		TotalItems: total,
	}
	if opts.PageSize > 0 {
		pagination.TotalPages = int(math.Ceil(float64(total) / float64(opts.PageSize)))
	} else {
		pagination.TotalPages = 1
	}

	return dto.StudentListResponse{Items: items, Pagination: pagination}, nil
}

func (s *studentService) Get(ctx context.Context, actor Actor, id string) (dto.StudentResponse, error) {
	student, err := s.fetchScoped(ctx, actor, id)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

// SetStatus replaces the applicant's status. Any status of the closed set may
// be applied from any current status; no workflow ordering is enforced.
func (s *studentService) SetStatus(ctx context.Context, actor Actor, id string, status string) (dto.StudentResponse, error) {
	newStatus := models.RegistrationStatus(strings.TrimSpace(status))
	if !newStatus.IsValid() {
		return dto.StudentResponse{}, ErrInvalidStatus
	}

	if _, err := s.fetchScoped(ctx, actor, id); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

// fetchScoped loads the applicant and hides rows outside the actor's level:
// a level admin must never observe another level's records, so cross-level
// access reads as not-found.
func (s *studentService) fetchScoped(ctx context.Context, actor Actor, id string) (models.Student, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, ErrStudentNotFound
		}
		return models.Student{}, err
	}

	admin := models.AdminUser{Role: actor.Role, AssignedLevel: actor.AssignedLevel}
	if !admin.CanAccessLevel(student.Level) {
		return models.Student{}, ErrStudentNotFound
	}

	return student, nil
}

func (s *studentService) publishCreated(student models.Student, actor Actor) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"student_id": student.ID,
		"level":      student.Level,
		"status":     student.Status,
		"created_by": actor.Username,
	})
	if err != nil {
		return
	}

	if err := s.nats.Publish(SubjectRegistrationCreated, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish registration created event")
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
