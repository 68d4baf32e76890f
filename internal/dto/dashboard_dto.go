package dto

import "time"

// DashboardStatsResponse mirrors the counters on the panel's landing cards.
type DashboardStatsResponse struct {
	Total     int64            `json:"total"`
	Pending   int64            `json:"pending"`
	Verified  int64            `json:"verified"`
	Rejected  int64            `json:"rejected"`
	Completed int64            `json:"completed"`
	ByLevel   map[string]int64 `json:"by_level,omitempty"`
}

// SummaryResponse is the best-effort AI digest shown above the applicant table.
type SummaryResponse struct {
	Summary     string    `json:"summary"`
	GeneratedAt time.Time `json:"generated_at"`
}
