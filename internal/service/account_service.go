package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

var (
	// ErrAccountNotFound indicates no panel account matches the id.
	ErrAccountNotFound = errors.New("admin account not found")
	// ErrBootstrapAccount indicates the operation targeted the permanent
	// super-admin, which can never be removed.
	ErrBootstrapAccount = errors.New("bootstrap account cannot be removed")
	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrEmptyUsername indicates a blank username was submitted.
	ErrEmptyUsername = errors.New("username must not be empty")
)

// AccountService manages panel accounts and their authentication.
type AccountService interface {
	SeedBootstrap(ctx context.Context, password string) error
	Create(ctx context.Context, payload dto.AccountCreateRequest) (dto.AccountResponse, error)
	List(ctx context.Context) ([]dto.AccountResponse, error)
	Delete(ctx context.Context, id string) error
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
}

type accountService struct {
	repo      repository.AdminRepository
	validator *validator.Validate
	jwtSecret string
	jwtExpiry time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAccountService constructs the account service.
func NewAccountService(repo repository.AdminRepository, validate *validator.Validate, jwtSecret string, jwtExpiry time.Duration, logger zerolog.Logger) AccountService {
	if jwtExpiry <= 0 {
		jwtExpiry = 12 * time.Hour
	}
	return &accountService{
		repo:      repo,
		validator: validate,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		logger:    logger.With().Str("component", "account_service").Logger(),
		now:       time.Now,
	}
}

// SeedBootstrap guarantees the permanent super-admin exists. Safe to call on
// every startup.
func (s *accountService) SeedBootstrap(ctx context.Context, password string) error {
	_, err := s.repo.GetByUsername(ctx, models.BootstrapUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.AdminUser{
		ID:           uuid.NewString(),
		Username:     models.BootstrapUsername,
		PasswordHash: string(hash),
		Role:         models.RoleSuperAdmin,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return err
	}

	s.logger.Info().Msg("bootstrap super-admin account created")
	return nil
}

// Create adds a panel account. The assigned level is stored only for level
// admins; duplicate usernames are permitted.
func (s *accountService) Create(ctx context.Context, payload dto.AccountCreateRequest) (dto.AccountResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccountResponse{}, err
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" {
		return dto.AccountResponse{}, ErrEmptyUsername
	}

	role := models.UserRole(payload.Role)
	if !role.IsValid() {
		return dto.AccountResponse{}, errors.New("unknown role")
	}

	var assignedLevel *models.SchoolLevel
	if role == models.RoleLevelAdmin {
		level := models.SchoolLevel(strings.TrimSpace(payload.AssignedLevel))
		if !level.IsValid() {
			return dto.AccountResponse{}, ErrInvalidLevel
		}
		assignedLevel = &level
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.AccountResponse{}, err
	}

	admin := models.AdminUser{
		ID:            uuid.NewString(),
		Username:      username,
		PasswordHash:  string(hash),
		Role:          role,
		AssignedLevel: assignedLevel,
	}
	if err := s.repo.Create(ctx, &admin); err != nil {
		return dto.AccountResponse{}, err
	}

	return dto.NewAccountResponse(admin), nil
}

func (s *accountService) List(ctx context.Context) ([]dto.AccountResponse, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AccountResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, dto.NewAccountResponse(admin))
	}

	return responses, nil
}

// Delete removes an account unless it is the bootstrap super-admin.
func (s *accountService) Delete(ctx context.Context, id string) error {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if admin.IsBootstrap() {
		return ErrBootstrapAccount
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	return nil
}

func (s *accountService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	admin, err := s.repo.GetByUsername(ctx, strings.TrimSpace(payload.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(s.jwtExpiry)
	claims := jwt.MapClaims{
		"sub":      admin.ID,
		"username": admin.Username,
		"role":     string(admin.Role),
		"exp":      expiresAt.Unix(),
		"iat":      s.now().Unix(),
	}
	if admin.AssignedLevel != nil {
		claims["assigned_level"] = string(*admin.AssignedLevel)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return dto.LoginResponse{}, err
	}

	return dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   dto.NewAccountResponse(admin),
	}, nil
}
