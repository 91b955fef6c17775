package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mandalnilabja/pagesmith/internal/storage/models"
)

// LogGeneration stores a generation log entry
func (s *Storage) LogGeneration(log *models.GenerationLog) error {
	if log == nil || log.RequestID == "" || log.Outcome == "" {
		return ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStorageClosed
	}

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	log.CreatedAt = log.CreatedAt.UTC()

	_, err := s.db.Exec(`
		INSERT INTO generation_logs (id, request_id, model, provider, prompt_fingerprint,
			prompt_tokens, completion_tokens, total_tokens, chunk_count, malformed_count,
			status_code, outcome, error_message, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, log.ID, log.RequestID, log.Model, log.Provider, log.PromptFingerprint,
		log.PromptTokens, log.CompletionTokens, log.TotalTokens, log.ChunkCount, log.MalformedCount,
		log.StatusCode, log.Outcome, nullString(log.ErrorMessage), log.DurationMs, log.CreatedAt)

	return err
}

// GetGenerationLogs retrieves generation logs with filtering, newest first
func (s *Storage) GetGenerationLogs(filter models.LogFilter) ([]*models.GenerationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStorageClosed
	}

	query := `SELECT id, request_id, model, provider, prompt_fingerprint,
		prompt_tokens, completion_tokens, total_tokens, chunk_count, malformed_count,
		status_code, outcome, COALESCE(error_message, ''), duration_ms, created_at
		FROM generation_logs WHERE 1=1`

	var args []interface{}

	if filter.Model != "" {
		query += " AND model = ?"
		args = append(args, filter.Model)
	}
	if filter.Outcome != "" {
		query += " AND outcome = ?"
		args = append(args, filter.Outcome)
	}
	if filter.StatusCode != nil {
		query += " AND status_code = ?"
		args = append(args, *filter.StatusCode)
	}
	if filter.StartDate != nil {
		query += " AND created_at >= ?"
		args = append(args, filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query += " AND created_at <= ?"
		args = append(args, filter.EndDate.UTC())
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.GenerationLog
	for rows.Next() {
		var log models.GenerationLog

		err := rows.Scan(&log.ID, &log.RequestID, &log.Model, &log.Provider, &log.PromptFingerprint,
			&log.PromptTokens, &log.CompletionTokens, &log.TotalTokens, &log.ChunkCount, &log.MalformedCount,
			&log.StatusCode, &log.Outcome, &log.ErrorMessage, &log.DurationMs, &log.CreatedAt)
		if err != nil {
			return nil, err
		}

		logs = append(logs, &log)
	}

	return logs, rows.Err()
}

// DeleteGenerationLogs removes logs created before the given date (YYYY-MM-DD)
func (s *Storage) DeleteGenerationLogs(olderThan string) (int64, error) {
	if _, err := time.Parse("2006-01-02", olderThan); err != nil {
		return 0, ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}

	result, err := s.db.Exec("DELETE FROM generation_logs WHERE DATE(created_at) < ?", olderThan)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// nullString returns nil for empty strings, otherwise the string itself
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
