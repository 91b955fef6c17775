package relay

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mandalnilabja/pagesmith/internal/types"
)

func TestChunkWriter_WritesEnvelopeLines(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := NewChunkWriter(rec)

	fragments := []string{`<p class="x">`, "a & b\n", "</p>"}
	for _, f := range fragments {
		if err := cw.WriteChunk(f); err != nil {
			t.Fatalf("WriteChunk() error: %v", err)
		}
	}

	if !rec.Flushed {
		t.Error("expected response to be flushed")
	}

	body := rec.Body.String()
	if !strings.HasSuffix(body, "\n") {
		t.Fatalf("body must be newline terminated: %q", body)
	}

	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	if len(lines) != len(fragments) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(fragments), body)
	}
	for i, line := range lines {
		var env types.ChunkEnvelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			t.Fatalf("line %d is not JSON: %q", i, line)
		}
		if env.Chunk != fragments[i] {
			t.Errorf("line %d chunk = %q, want %q", i, env.Chunk, fragments[i])
		}
	}

	if lines[0] != `{"chunk":"<p class=\"x\">"}` {
		t.Errorf("HTML should not be escaped, got %s", lines[0])
	}
}
