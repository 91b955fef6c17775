// Package storage provides the opt-in usage log: one row per generation plus
// daily aggregates, backed by SQLite.
package storage

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/mandalnilabja/pagesmith/internal/storage/models"
	"github.com/mandalnilabja/pagesmith/internal/storage/sqlite"
)

// Re-export types from models package for convenience
type (
	GenerationLog = models.GenerationLog
	LogFilter     = models.LogFilter
	DailyUsage    = models.DailyUsage
	ModelStats    = models.ModelStats
	UsageStats    = models.UsageStats
	StatsFilter   = models.StatsFilter
)

// Re-export errors from sqlite package
var (
	ErrInvalidInput  = sqlite.ErrInvalidInput
	ErrStorageClosed = sqlite.ErrStorageClosed
)

// Storage defines the interface for persistent usage data
type Storage interface {
	// Generation logging operations
	LogGeneration(log *models.GenerationLog) error
	GetGenerationLogs(filter models.LogFilter) ([]*models.GenerationLog, error)
	DeleteGenerationLogs(olderThan string) (int64, error)

	// Usage statistics operations
	GetUsageStats(filter models.StatsFilter) (*models.UsageStats, error)
	GetDailyUsage(startDate, endDate string) ([]*models.DailyUsage, error)
	UpdateDailyUsage(usage *models.DailyUsage) error

	Close() error
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (Storage, error) {
	return sqlite.New(dbPath)
}

// PromptFingerprint returns the hex BLAKE2b-256 digest of a prompt, so
// repeated prompts can be grouped without keeping their text.
func PromptFingerprint(prompt string) string {
	sum := blake2b.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
