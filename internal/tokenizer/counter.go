package tokenizer

import (
	"strings"

	"github.com/mandalnilabja/pagesmith/internal/types"
)

// Message token overhead varies by model family.
// These values are based on OpenAI's documentation.
const (
	// Per-message overhead tokens
	messageOverheadGPT4  = 3 // <|start|>role<|end|>
	messageOverheadGPT35 = 4 // Slightly different format

	// Reply priming tokens (assistant response start)
	replyPrimingTokens = 3
)

// CountMessages counts tokens for a slice of messages.
func (t *TiktokenTokenizer) CountMessages(messages []types.Message, model string) (int, error) {
	total := 0
	overhead := t.getMessageOverhead(model)

	for _, msg := range messages {
		roleTokens, err := t.CountTokens(msg.Role, model)
		if err != nil {
			return 0, err
		}
		contentTokens, err := t.CountTokens(msg.Content, model)
		if err != nil {
			return 0, err
		}
		total += roleTokens + contentTokens + overhead
	}

	total += replyPrimingTokens

	return total, nil
}

// CountRequest counts total prompt tokens for a full request.
func (t *TiktokenTokenizer) CountRequest(req *types.ChatCompletionRequest) (int, error) {
	return t.CountMessages(req.Messages, req.Model)
}

// getMessageOverhead returns the per-message token overhead for a model.
func (t *TiktokenTokenizer) getMessageOverhead(model string) int {
	if strings.HasPrefix(strings.ToLower(model), "gpt-3.5") {
		return messageOverheadGPT35
	}
	return messageOverheadGPT4
}
