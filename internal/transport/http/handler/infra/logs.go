package infra

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/types"
)

// defaultLogLimit applies when ?limit= is absent.
const defaultLogLimit = 50

// DailyUsage handles GET /api/usage/daily.
func (h *Handlers) DailyUsage(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		types.WriteError(w, http.StatusNotFound, "usage logging is disabled")
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	// Default to last 30 days if not specified
	if startDate == "" {
		startDate = time.Now().UTC().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = time.Now().UTC().Format("2006-01-02")
	}

	usage, err := h.Storage.GetDailyUsage(startDate, endDate)
	if err != nil {
		h.Logger.Error("failed to load daily usage", "error", err)
		types.WriteError(w, http.StatusInternalServerError, "failed to load daily usage")
		return
	}

	writeJSON(w, map[string]any{
		"daily_usage": usage,
		"start_date":  startDate,
		"end_date":    endDate,
	})
}

// GenerationLogs handles GET /api/logs.
func (h *Handlers) GenerationLogs(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		types.WriteError(w, http.StatusNotFound, "usage logging is disabled")
		return
	}

	filter := parseLogFilter(r)

	logs, err := h.Storage.GetGenerationLogs(filter)
	if err != nil {
		h.Logger.Error("failed to load generation logs", "error", err)
		types.WriteError(w, http.StatusInternalServerError, "failed to load generation logs")
		return
	}
	if logs == nil {
		logs = []*storage.GenerationLog{}
	}

	writeJSON(w, map[string]any{
		"logs":   logs,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// parseLogFilter creates a LogFilter from query parameters.
// Unparseable values are ignored.
func parseLogFilter(r *http.Request) storage.LogFilter {
	q := r.URL.Query()
	filter := storage.LogFilter{
		Model:   q.Get("model"),
		Outcome: q.Get("outcome"),
		Limit:   defaultLogLimit,
	}

	if v := q.Get("status_code"); v != "" {
		if code, err := strconv.Atoi(v); err == nil {
			filter.StatusCode = &code
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if v := q.Get("start_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &t
		}
	}
	if v := q.Get("end_date"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			end := t.Add(24*time.Hour - time.Nanosecond)
			filter.EndDate = &end
		}
	}

	return filter
}
