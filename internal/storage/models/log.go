// Package models contains data models for storage operations.
package models

import "time"

// Outcome values recorded for a generation.
const (
	OutcomeCompleted    = "completed"    // upstream reached EOF
	OutcomeTruncated    = "truncated"    // upstream errored mid-stream
	OutcomeDisconnected = "disconnected" // client went away
	OutcomeUpstreamErr  = "upstream_error"
	OutcomeSetupErr     = "setup_error"
)

// GenerationLog records one POST /generate exchange. The prompt itself is
// never stored, only its fingerprint.
type GenerationLog struct {
	ID                string    `json:"id"`
	RequestID         string    `json:"request_id"`
	Model             string    `json:"model"`
	Provider          string    `json:"provider"`
	PromptFingerprint string    `json:"prompt_fingerprint"`
	PromptTokens      int       `json:"prompt_tokens"`
	CompletionTokens  int       `json:"completion_tokens"`
	TotalTokens       int       `json:"total_tokens"`
	ChunkCount        int       `json:"chunk_count"`
	MalformedCount    int       `json:"malformed_count"`
	StatusCode        int       `json:"status_code"`
	Outcome           string    `json:"outcome"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	DurationMs        int64     `json:"duration_ms"`
	CreatedAt         time.Time `json:"created_at"`
}

// IsError reports whether the generation failed before or during streaming.
func (l *GenerationLog) IsError() bool {
	return l.Outcome != OutcomeCompleted
}

// LogFilter contains parameters for filtering generation logs
type LogFilter struct {
	Model      string
	Outcome    string
	StatusCode *int
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}
