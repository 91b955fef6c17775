package infra

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/types"
)

// usageCacheTTL bounds how stale /api/usage may be.
const usageCacheTTL = 10 * time.Second

// UsageStats returns aggregated generation usage, optionally filtered by
// ?model=, ?start_date= and ?end_date= (YYYY-MM-DD).
func (h *Handlers) UsageStats(w http.ResponseWriter, r *http.Request) {
	if h.Storage == nil {
		types.WriteError(w, http.StatusNotFound, "usage logging is disabled")
		return
	}

	filter, err := parseStatsFilter(r)
	if err != nil {
		types.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := "usage:" + r.URL.Query().Encode()

	// 1. Check Cache
	if h.Cache != nil {
		if value, found := h.Cache.Get(key); found {
			w.Header().Set("X-Cache", "HIT")
			writeJSON(w, value)
			return
		}
	}

	// 2. Query storage
	stats, err := h.Storage.GetUsageStats(filter)
	if err != nil {
		h.Logger.Error("failed to load usage stats", "error", err)
		types.WriteError(w, http.StatusInternalServerError, "failed to load usage stats")
		return
	}

	// 3. Set to Cache
	if h.Cache != nil {
		h.Cache.SetWithTTL(key, stats, 1, usageCacheTTL)
	}

	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, stats)
}

func parseStatsFilter(r *http.Request) (storage.StatsFilter, error) {
	q := r.URL.Query()
	filter := storage.StatsFilter{Model: q.Get("model")}

	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidDate("start_date")
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidDate("end_date")
		}
		filter.EndDate = &t
	}
	return filter, nil
}

type errInvalidDate string

func (e errInvalidDate) Error() string {
	return "invalid " + string(e) + ": want YYYY-MM-DD"
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
