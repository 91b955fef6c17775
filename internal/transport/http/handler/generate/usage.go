package generate

import (
	"time"

	"github.com/mandalnilabja/pagesmith/internal/relay"
	"github.com/mandalnilabja/pagesmith/internal/storage"
	"github.com/mandalnilabja/pagesmith/internal/storage/models"
)

// tokenCountTimeout is the maximum time to wait for token counting before proceeding.
const tokenCountTimeout = 100 * time.Millisecond

const (
	outcomeCompleted     = models.OutcomeCompleted
	outcomeTruncated     = models.OutcomeTruncated
	outcomeDisconnected  = models.OutcomeDisconnected
	outcomeUpstreamError = models.OutcomeUpstreamErr
	outcomeSetupError    = models.OutcomeSetupErr
)

// maxErrorMessage bounds the error text kept in the usage log.
const maxErrorMessage = 512

// generation accumulates what the handler learned about one request.
type generation struct {
	requestID   string
	fingerprint string
	start       time.Time
	promptCount <-chan int

	statusCode int
	outcome    string
	result     *relay.Result
	err        error
}

// complete logs the finished generation and records it to storage.
// It runs after the handler has returned so it never delays the response.
func (h *Handlers) complete(g *generation) {
	duration := time.Since(g.start)
	model := h.Provider.Model()

	// Collect token count with timeout
	var promptTokens int
	select {
	case tokens, ok := <-g.promptCount:
		if ok {
			promptTokens = tokens
		}
	case <-time.After(tokenCountTimeout):
	}

	var chunks, malformed, completionTokens int
	var finishReason string
	if g.result != nil {
		finishReason = g.result.FinishReason
		chunks = g.result.Chunks
		malformed = g.result.Malformed
		if h.Tokenizer != nil {
			if tokens, err := h.Tokenizer.CountTokens(g.result.Content(), model); err == nil {
				completionTokens = tokens
			}
		}
	}
	totalTokens := promptTokens + completionTokens

	h.Logger.Info("generation finished",
		"request_id", g.requestID,
		"outcome", g.outcome,
		"finish_reason", finishReason,
		"chunks", chunks,
		"malformed", malformed,
		"prompt_tokens", promptTokens,
		"completion_tokens", completionTokens,
		"duration_ms", duration.Milliseconds(),
	)

	if h.Storage == nil {
		return
	}

	entry := &storage.GenerationLog{
		RequestID:         g.requestID,
		Model:             model,
		Provider:          h.Provider.Name(),
		PromptFingerprint: g.fingerprint,
		PromptTokens:      promptTokens,
		CompletionTokens:  completionTokens,
		TotalTokens:       totalTokens,
		ChunkCount:        chunks,
		MalformedCount:    malformed,
		StatusCode:        g.statusCode,
		Outcome:           g.outcome,
		DurationMs:        duration.Milliseconds(),
		CreatedAt:         time.Now(),
	}
	if g.err != nil {
		entry.ErrorMessage = truncate(g.err.Error(), maxErrorMessage)
	}

	if err := h.Storage.LogGeneration(entry); err != nil {
		h.Logger.Warn("failed to record generation", "request_id", g.requestID, "error", err)
	}

	errorCount := 0
	if entry.IsError() {
		errorCount = 1
	}

	usage := &storage.DailyUsage{
		Date:             entry.CreatedAt.UTC().Format("2006-01-02"),
		Model:            model,
		RequestCount:     1,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
		ErrorCount:       errorCount,
	}
	if err := h.Storage.UpdateDailyUsage(usage); err != nil {
		h.Logger.Warn("failed to update daily usage", "request_id", g.requestID, "error", err)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
