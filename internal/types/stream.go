package types

// ChatCompletionChunk is one partial-completion event from the upstream
// stream. Every level on the path to the text fragment is optional: the
// provider may omit choices, the delta, or the content.
type ChatCompletionChunk struct {
	ID      string        `json:"id,omitempty"`
	Model   string        `json:"model,omitempty"`
	Choices []ChunkChoice `json:"choices,omitempty"`
	Usage   *Usage        `json:"usage,omitempty"`
}

// ChunkChoice represents a choice in a streaming chunk.
type ChunkChoice struct {
	Index        int     `json:"index"`
	Delta        *Delta  `json:"delta,omitempty"`
	FinishReason *string `json:"finish_reason"` // Pointer to distinguish null from ""
}

// Delta represents the incremental content in a streaming chunk.
type Delta struct {
	Role    string  `json:"role,omitempty"`
	Content *string `json:"content,omitempty"`
}

// FirstDeltaContent returns choices[0].delta.content, or "" when any part
// of that path is absent.
func (c *ChatCompletionChunk) FirstDeltaContent() string {
	if c == nil || len(c.Choices) == 0 {
		return ""
	}
	delta := c.Choices[0].Delta
	if delta == nil || delta.Content == nil {
		return ""
	}
	return *delta.Content
}

// FinishReason returns the first choice's finish reason or "" if not final.
func (c *ChatCompletionChunk) FinishReason() string {
	if c == nil || len(c.Choices) == 0 || c.Choices[0].FinishReason == nil {
		return ""
	}
	return *c.Choices[0].FinishReason
}

// SSE framing used by the upstream provider.
const (
	// SSEPrefix is the Server-Sent Events data prefix.
	SSEPrefix = "data: "

	// SSEDoneSentinel marks the end of the upstream stream.
	SSEDoneSentinel = "[DONE]"
)

// ChunkEnvelope is the object written downstream for each fragment,
// one per line: {"chunk":"..."}
type ChunkEnvelope struct {
	Chunk string `json:"chunk"`
}
