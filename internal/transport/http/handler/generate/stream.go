package generate

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mandalnilabja/pagesmith/internal/provider"
	"github.com/mandalnilabja/pagesmith/internal/relay"
	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/transport/http/middleware"
	"github.com/mandalnilabja/pagesmith/internal/types"
)

// maxBodyBytes caps the inbound JSON body.
const maxBodyBytes = 1 << 20

// Generate relays a streamed completion for the posted prompt.
// Token counting runs in parallel with the upstream request to minimize latency.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID := middleware.GetRequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	var req types.GenerateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.Prompt == nil {
		types.WriteError(w, http.StatusBadRequest, types.MsgInvalidRequest)
		return
	}
	prompt := *req.Prompt

	// Start token counting in background goroutine (non-blocking)
	tokensChan := make(chan int, 1)
	go func() {
		defer close(tokensChan)
		if h.Tokenizer != nil {
			if tokens, err := h.Tokenizer.CountRequest(provider.BuildRequest(h.Provider.Model(), prompt)); err == nil {
				tokensChan <- tokens
			}
		}
	}()

	rec := &generation{
		requestID:   requestID,
		fingerprint: storage.PromptFingerprint(prompt),
		start:       start,
		promptCount: tokensChan,
	}

	body, err := h.Provider.OpenStream(r.Context(), prompt)
	if err != nil {
		rec.statusCode = http.StatusInternalServerError
		rec.err = err

		if errors.Is(err, provider.ErrUpstreamUnavailable) {
			rec.outcome = outcomeUpstreamError
			http.Error(w, types.MsgUpstreamFailed, http.StatusInternalServerError)
		} else {
			rec.outcome = outcomeSetupError
			types.WriteError(w, http.StatusInternalServerError, types.MsgGenerateFailed)
		}

		upstreamStatus := 0
		var upstreamErr *provider.UpstreamError
		if errors.As(err, &upstreamErr) {
			upstreamStatus = upstreamErr.StatusCode
		}
		h.Logger.Error("failed to open upstream stream",
			"request_id", requestID,
			"provider", h.Provider.Name(),
			"upstream_status", upstreamStatus,
			"error", err,
		)
		go h.complete(rec)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	result, err := h.Relay.Pump(r.Context(), body, relay.NewChunkWriter(w))
	rec.statusCode = http.StatusOK
	rec.result = result
	rec.err = err

	switch {
	case err == nil:
		rec.outcome = outcomeCompleted
		if result.FinishReason == types.FinishReasonLength {
			h.Logger.Warn("completion stopped at the model's length limit",
				"request_id", requestID,
				"chunks", result.Chunks,
			)
		}
	case errors.Is(err, relay.ErrDownstream) || r.Context().Err() != nil:
		rec.outcome = outcomeDisconnected
		h.Logger.Info("client disconnected mid-stream",
			"request_id", requestID,
			"chunks", result.Chunks,
			"error", err,
		)
	default:
		rec.outcome = outcomeTruncated
		h.Logger.Error("upstream stream interrupted",
			"request_id", requestID,
			"chunks", result.Chunks,
			"error", err,
		)
	}

	go h.complete(rec)
}
