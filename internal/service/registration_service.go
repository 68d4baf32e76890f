package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/observability"
	"github.com/dhia-elwidad/spmb-api/pkg/whatsapp"
)

// ErrInvalidLevel indicates the submitted level is outside the closed set.
var ErrInvalidLevel = errors.New("unknown school level")

// SubjectRegistrationRequested is published whenever a parent asks for a
// WhatsApp hand-off link. Nothing is persisted on this path; the event is the
// only trace the system keeps.
const SubjectRegistrationRequested = "spmb.registration.requested"

// AdminPhoneProvider supplies the destination WhatsApp number.
type AdminPhoneProvider interface {
	AdminWhatsApp(ctx context.Context) string
}

// RegistrationService builds the public intake's WhatsApp hand-off links.
type RegistrationService interface {
	BuildRegistrationLink(ctx context.Context, payload dto.RegistrationRequest) (dto.RegistrationLinkResponse, error)
	BuildContactLink(ctx context.Context) dto.RegistrationLinkResponse
}

type registrationService struct {
	phones    AdminPhoneProvider
	validator *validator.Validate
	nats      *nats.Conn
	logger    zerolog.Logger
}

// NewRegistrationService constructs the public intake service.
func NewRegistrationService(phones AdminPhoneProvider, validate *validator.Validate, natsConn *nats.Conn, logger zerolog.Logger) RegistrationService {
	return &registrationService{
		phones:    phones,
		validator: validate,
		nats:      natsConn,
		logger:    logger.With().Str("component", "registration_service").Logger(),
	}
}

func (s *registrationService) BuildRegistrationLink(ctx context.Context, payload dto.RegistrationRequest) (dto.RegistrationLinkResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RegistrationLinkResponse{}, err
	}

	level := models.SchoolLevel(strings.TrimSpace(payload.Level))
	if !level.IsValid() {
		return dto.RegistrationLinkResponse{}, ErrInvalidLevel
	}

	link := whatsapp.RegistrationLink(s.phones.AdminWhatsApp(ctx), whatsapp.Registration{
		FullName:    strings.TrimSpace(payload.FullName),
		NickName:    strings.TrimSpace(payload.NickName),
		Level:       string(level),
		ParentPhone: strings.TrimSpace(payload.ParentPhone),
	})

	observability.RegistrationLinks().WithLabelValues(string(level)).Inc()
	s.publishRequested(level)

	return dto.RegistrationLinkResponse{URL: link}, nil
}

func (s *registrationService) BuildContactLink(ctx context.Context) dto.RegistrationLinkResponse {
	link := whatsapp.Link(s.phones.AdminWhatsApp(ctx), whatsapp.ContactMessage())
	return dto.RegistrationLinkResponse{URL: link}
}

// publishRequested is fire-and-forget: intake must keep working when the
// event bus is down.
func (s *registrationService) publishRequested(level models.SchoolLevel) {
	if s.nats == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"level":        level,
		"requested_at": time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if err := s.nats.Publish(SubjectRegistrationRequested, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish registration event")
	}
}
