package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dhia-elwidad/spmb-api/internal/dto"
	"github.com/dhia-elwidad/spmb-api/internal/observability"
	"github.com/dhia-elwidad/spmb-api/internal/repository"
	"github.com/dhia-elwidad/spmb-api/pkg/ai"
)

// The fixed Indonesian sentences shown when the AI digest cannot be produced.
// The dashboard treats the summary as decoration; none of these are errors.
const (
	SummaryNoRegistrations = "Belum ada pendaftar baru yang masuk hari ini."
	SummaryNoAPIKey        = "Data siap dikelola. (Fitur AI memerlukan API Key aktif)"
	SummaryUnavailable     = "Sistem AI sedang istirahat, silakan cek tabel manual."
)

const summaryCallTimeout = 15 * time.Second

// SummaryService produces the best-effort AI digest for the panel dashboard.
// It never returns an error: every failure path degrades to a fixed sentence.
type SummaryService interface {
	Summarize(ctx context.Context, actor Actor) dto.SummaryResponse
}

type summaryService struct {
	students   repository.StudentRepository
	summarizer ai.Summarizer
	cache      *redis.Client
	cacheTTL   time.Duration
	foundation string
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
	now        func() time.Time
}

// NewSummaryService constructs the dashboard summary service. A nil
// summarizer means no API key is configured; the service still works and
// reports the corresponding fallback sentence.
func NewSummaryService(students repository.StudentRepository, summarizer ai.Summarizer, cache *redis.Client, ttl time.Duration, foundation string, logger zerolog.Logger) SummaryService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &summaryService{
		students:   students,
		summarizer: summarizer,
		cache:      cache,
		cacheTTL:   ttl,
		foundation: foundation,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "summary_service").Logger(),
		now:        time.Now,
	}
}

func (s *summaryService) Summarize(ctx context.Context, actor Actor) dto.SummaryResponse {
	entries, err := s.collectEntries(ctx, actor)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to collect registrations for summary")
		return s.respond(SummaryUnavailable)
	}

	if len(entries) == 0 {
		return s.respond(SummaryNoRegistrations)
	}

	if s.summarizer == nil {
		return s.respond(SummaryNoAPIKey)
	}

	cacheKey := summaryCacheKey(actor)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return s.respond(cached)
		} else if err != nil && err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read summary cache")
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, summaryCallTimeout)
	defer cancel()

	summary, err := s.summarizer.Summarize(callCtx, ai.SummaryInput{
		FoundationName: s.foundation,
		Entries:        entries,
	})
	if err != nil {
		observability.SummaryFallbacks().Inc()
		s.logger.Warn().Err(err).Msg("ai summary failed, using fallback")
		return s.respond(SummaryUnavailable)
	}

	summary = strings.TrimSpace(s.sanitizer.Sanitize(summary))
	if summary == "" {
		observability.SummaryFallbacks().Inc()
		return s.respond(SummaryUnavailable)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, s.cacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to store summary cache")
		}
	}

	return s.respond(summary)
}

// collectEntries gathers the level/status pairs visible to the actor. Only
// these two fields ever reach the model.
func (s *summaryService) collectEntries(ctx context.Context, actor Actor) ([]ai.SummaryEntry, error) {
	students, _, err := s.students.List(ctx, repository.StudentFilter{Level: actor.scope()})
	if err != nil {
		return nil, err
	}

	entries := make([]ai.SummaryEntry, 0, len(students))
	for _, student := range students {
		entries = append(entries, ai.SummaryEntry{
			Level:  string(student.Level),
			Status: string(student.Status),
		})
	}

	return entries, nil
}

func (s *summaryService) respond(summary string) dto.SummaryResponse {
	return dto.SummaryResponse{Summary: summary, GeneratedAt: s.now()}
}

func summaryCacheKey(actor Actor) string {
	if scope := actor.scope(); scope != nil {
		return fmt.Sprintf("spmb:summary:%s", *scope)
	}
	return "spmb:summary:all"
}
