package types

// ChatCompletionRequest is the body POSTed to the provider's
// chat-completions endpoint.
type ChatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// GenerateRequest is the inbound body of POST /generate.
// Prompt is a pointer so a missing or null field can be told apart from "".
type GenerateRequest struct {
	Prompt *string `json:"prompt"`
}
