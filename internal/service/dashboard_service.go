package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/models"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
)

// DashboardService produces the panel's registration counters.
type DashboardService interface {
	Stats(ctx context.Context, actor Actor) (dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	students repository.StudentRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService builds the stats aggregator.
func NewDashboardService(students repository.StudentRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &dashboardService{
		students: students,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context, actor Actor) (dto.DashboardStatsResponse, error) {
	cacheKey := statsCacheKey(actor)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardStatsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read stats cache")
		}
	}

	scope := actor.scope()
	counts, err := s.students.CountByStatus(ctx, scope)
	if err != nil {
		return dto.DashboardStatsResponse{}, err
	}

	response := dto.DashboardStatsResponse{
		Pending:   counts[models.StatusPending],
		Verified:  counts[models.StatusVerified],
		Rejected:  counts[models.StatusRejected],
		Completed: counts[models.StatusCompleted],
	}
	for _, total := range counts {
		response.Total += total
	}

	// The per-level breakdown only makes sense for the all-levels view.
	if scope == nil {
		byLevel, err := s.students.CountByLevel(ctx)
		if err != nil {
			return dto.DashboardStatsResponse{}, err
		}
		response.ByLevel = make(map[string]int64, len(byLevel))
		for level, total := range byLevel {
			response.ByLevel[string(level)] = total
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store stats cache")
			}
		}
	}

	return response, nil
}

func statsCacheKey(actor Actor) string {
	if scope := actor.scope(); scope != nil {
		return fmt.Sprintf("spmb:stats:%s", *scope)
	}
	return "spmb:stats:all"
}
