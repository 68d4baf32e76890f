package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

const settingsCacheKey = "spmb:settings"

// SettingsService manages the single app-settings record. Reads never fail:
// a missing or unreadable row degrades to the built-in defaults.
type SettingsService interface {
	Get(ctx context.Context) dto.SettingsResponse
	Update(ctx context.Context, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error)
	AdminWhatsApp(ctx context.Context) string
}

type settingsService struct {
	repo     repository.SettingsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	fallback string
	logger   zerolog.Logger
}

// NewSettingsService constructs the settings service. The fallback phone is
// used until staff save their own number.
func NewSettingsService(repo repository.SettingsRepository, cache *redis.Client, ttl time.Duration, fallbackPhone string, logger zerolog.Logger) SettingsService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if fallbackPhone == "" {
		fallbackPhone = models.DefaultAdminWhatsApp
	}

	return &settingsService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		fallback: fallbackPhone,
		logger:   logger.With().Str("component", "settings_service").Logger(),
	}
}

func (s *settingsService) Get(ctx context.Context) dto.SettingsResponse {
	settings := s.load(ctx)
	return dto.SettingsResponse{
		AdminWhatsApp: settings.AdminWhatsApp,
		UpdatedAt:     settings.UpdatedAt,
	}
}

func (s *settingsService) Update(ctx context.Context, payload dto.SettingsUpdateRequest) (dto.SettingsResponse, error) {
	phone := digitsOnly(payload.AdminWhatsApp)
	if phone == "" {
		phone = s.fallback
	}

	settings := models.AppSettings{AdminWhatsApp: phone}
	if err := s.repo.Save(ctx, settings); err != nil {
		return dto.SettingsResponse{}, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, settingsCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate settings cache")
		}
	}

	return s.Get(ctx), nil
}

// AdminWhatsApp returns the destination number for WhatsApp hand-off links.
func (s *settingsService) AdminWhatsApp(ctx context.Context) string {
	return s.load(ctx).AdminWhatsApp
}

func (s *settingsService) load(ctx context.Context) models.AppSettings {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, settingsCacheKey).Result(); err == nil {
			var settings models.AppSettings
			if unmarshalErr := json.Unmarshal([]byte(cached), &settings); unmarshalErr == nil && settings.AdminWhatsApp != "" {
				return settings
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read settings cache")
		}
	}

	settings, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn().Err(err).Msg("failed to load settings, using defaults")
		}
		settings = models.DefaultSettings()
		settings.AdminWhatsApp = s.fallback
	}

	if s.cache != nil {
		if payload, err := json.Marshal(settings); err == nil {
			if err := s.cache.Set(ctx, settingsCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store settings cache")
			}
		}
	}

	return settings
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
