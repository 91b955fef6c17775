package provider

import "github.com/mandalnilabja/pagesmith/internal/types"

// SystemInstruction is sent as the system message of every completion.
const SystemInstruction = `You are an expert HTML and CSS senior front developer.
Generate clean, semantic HTML with Tailwind CSS for the user's request in a single page.
Follow these requirements:
1. Keep the code under 3000 tokens
2. Use minimal external resources
3. Only include essential Tailwind classes
4. Focus on core functionality first
5. Output valid HTML5 structure
6. Include only critical inline CSS in a style tag
7. Respond with code only, no explanations
8. Use simple placeholder images from placehold.co
9. Remove the system html comments`

// userPrefix is prepended to the caller's prompt.
const userPrefix = "Create a single HTML page with inline CSS for: "

// UserContent wraps the caller's prompt into the user message text.
func UserContent(prompt string) string {
	return userPrefix + prompt
}

// Messages returns the two-message conversation sent upstream.
func Messages(prompt string) []types.Message {
	return []types.Message{
		{Role: types.RoleSystem, Content: SystemInstruction},
		{Role: types.RoleUser, Content: UserContent(prompt)},
	}
}

// BuildRequest assembles the streaming chat-completions request body.
func BuildRequest(model, prompt string) *types.ChatCompletionRequest {
	return &types.ChatCompletionRequest{
		Model:    model,
		Messages: Messages(prompt),
		Stream:   true,
	}
}
