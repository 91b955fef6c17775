// Package relay pumps an upstream chat-completions event stream into the
// downstream {"chunk": ...} line protocol.
package relay

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mandalnilabja/pagesmith/internal/types"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineSize       = 1024 * 1024

	// logPayloadLimit caps how much of a malformed line is logged.
	logPayloadLimit = 200
)

// ErrDownstream marks a Pump failure caused by the sink rather than upstream.
var ErrDownstream = errors.New("downstream write failed")

// ChunkSink receives every non-empty text fragment in arrival order.
type ChunkSink interface {
	WriteChunk(fragment string) error
}

// Result summarises one pumped stream.
type Result struct {
	// Chunks is the number of fragments forwarded downstream.
	Chunks int
	// Malformed is the number of lines that failed to decode and were skipped.
	Malformed int
	// FinishReason is the last finish_reason seen upstream, if any.
	FinishReason string

	content strings.Builder
}

// Content returns the concatenation of all forwarded fragments.
func (r *Result) Content() string {
	return r.content.String()
}

// Relay decodes upstream events and forwards their text fragments.
type Relay struct {
	logger *slog.Logger
}

// New creates a Relay. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Relay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{logger: logger}
}

// Pump reads upstream line by line until EOF, a read error, a sink error or
// ctx cancellation. Malformed lines are logged and skipped. The returned
// Result is never nil and reflects everything forwarded before the stop.
//
// Lines are split on '\n', which never occurs inside a UTF-8 multi-byte
// sequence, so a character split across reads stays buffered until its
// line is complete.
func (r *Relay) Pump(ctx context.Context, upstream io.Reader, sink ChunkSink) (*Result, error) {
	result := &Result{}

	scanner := bufio.NewScanner(upstream)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		event, err := decodeLine(scanner.Bytes())
		if err != nil {
			result.Malformed++
			r.logger.Warn("skipping malformed stream chunk",
				"error", err,
				"data", truncate(scanner.Text(), logPayloadLimit),
			)
			continue
		}
		if event == nil {
			continue
		}

		if reason := event.FinishReason(); reason != "" {
			result.FinishReason = reason
		}

		fragment := event.FirstDeltaContent()
		if fragment == "" {
			continue
		}

		if err := sink.WriteChunk(fragment); err != nil {
			return result, fmt.Errorf("%w: %w", ErrDownstream, err)
		}
		result.Chunks++
		result.content.WriteString(fragment)
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("read upstream: %w", err)
	}
	return result, ctx.Err()
}

// ExtractFragment applies the per-line rules to a single raw line and
// returns its text fragment. Blank lines, the [DONE] sentinel and events
// without content yield "" and a nil error.
func ExtractFragment(line []byte) (string, error) {
	event, err := decodeLine(line)
	if err != nil {
		return "", err
	}
	return event.FirstDeltaContent(), nil
}

// decodeLine returns nil, nil for lines that carry no event.
func decodeLine(line []byte) (*types.ChatCompletionChunk, error) {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil, nil
	}

	payload := bytes.TrimPrefix(line, []byte(types.SSEPrefix))
	if string(payload) == types.SSEDoneSentinel {
		return nil, nil
	}

	var event types.ChatCompletionChunk
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// truncate shortens s to at most n bytes for logging.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
