package ai

import "context"

// SummaryEntry is the per-applicant slice of data shared with the model. Only
// level and status ever leave the system; no names or phone numbers.
type SummaryEntry struct {
	Level  string `json:"level"`
	Status string `json:"status,omitempty"`
}

// SummaryInput describes the registrations the summary should cover.
type SummaryInput struct {
	FoundationName string
	Entries        []SummaryEntry
}

// Summarizer produces a short natural-language digest of current
// registrations for the admin dashboard.
type Summarizer interface {
	Summarize(ctx context.Context, input SummaryInput) (string, error)
}
