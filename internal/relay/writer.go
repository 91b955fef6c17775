package relay

import (
	"encoding/json"
	"net/http"

	"github.com/mandalnilabja/pagesmith/internal/types"
)

// ChunkWriter writes {"chunk": ...} lines to an HTTP response and flushes
// after each one so the caller can render incrementally.
type ChunkWriter struct {
	w       http.ResponseWriter
	enc     *json.Encoder
	flusher http.Flusher
}

// NewChunkWriter wraps w. Flushing is skipped if w does not support it.
func NewChunkWriter(w http.ResponseWriter) *ChunkWriter {
	enc := json.NewEncoder(w)
	// Fragments are HTML; keep <, > and & readable on the wire.
	enc.SetEscapeHTML(false)

	flusher, _ := w.(http.Flusher)
	return &ChunkWriter{w: w, enc: enc, flusher: flusher}
}

// WriteChunk implements ChunkSink. Encode terminates each object with '\n'.
func (c *ChunkWriter) WriteChunk(fragment string) error {
	if err := c.enc.Encode(types.ChunkEnvelope{Chunk: fragment}); err != nil {
		return err
	}
	if c.flusher != nil {
		c.flusher.Flush()
	}
	return nil
}
