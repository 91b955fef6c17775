package types

// Usage represents token usage statistics reported by the provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// FinishReason constants
const (
	FinishReasonStop   = "stop"
	FinishReasonLength = "length"
)
