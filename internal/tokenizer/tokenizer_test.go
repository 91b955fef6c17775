package tokenizer

import (
	"testing"

	"github.com/mandalnilabja/pagesmith/internal/provider"
	"github.com/mandalnilabja/pagesmith/internal/types"
)

func TestNew(t *testing.T) {
	tok := New()
	if tok == nil {
		t.Fatal("New() returned nil")
	}
	if tok.encodings == nil {
		t.Fatal("encodings map is nil")
	}
}

func TestCountTokens(t *testing.T) {
	tok := New()

	tests := []struct {
		name     string
		text     string
		model    string
		minCount int // Token counts may vary slightly
		maxCount int
	}{
		{
			name:     "simple text deepseek",
			text:     "Hello, world!",
			model:    "deepseek-coder",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "simple text gpt-4o",
			text:     "Hello, world!",
			model:    "gpt-4o",
			minCount: 3,
			maxCount: 5,
		},
		{
			name:     "empty text",
			text:     "",
			model:    "deepseek-coder",
			minCount: 0,
			maxCount: 0,
		},
		{
			name:     "html fragment",
			text:     `<div class="p-4 text-center">Hello</div>`,
			model:    "deepseek-coder",
			minCount: 8,
			maxCount: 20,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountTokens(tc.text, tc.model)
			if err != nil {
				t.Fatalf("CountTokens() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountTokens() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestResolveEncoding(t *testing.T) {
	tok := New()

	tests := []struct {
		model    string
		expected string
	}{
		{"deepseek-coder", EncodingCL100kBase},
		{"deepseek-chat", EncodingCL100kBase},
		{"DeepSeek-R1", EncodingCL100kBase},
		{"gpt-4", EncodingCL100kBase},
		{"gpt-4o-mini", EncodingO200kBase},
		{"o1-preview", EncodingO200kBase},
		{"chatgpt-4o-latest", EncodingO200kBase},
		// Unknown models default to cl100k_base
		{"mistral-7b", EncodingCL100kBase},
		{"unknown-model", EncodingCL100kBase},
	}

	for _, tc := range tests {
		t.Run(tc.model, func(t *testing.T) {
			result := tok.resolveEncoding(tc.model)
			if result != tc.expected {
				t.Errorf("resolveEncoding(%q) = %q, want %q",
					tc.model, result, tc.expected)
			}
		})
	}
}

func TestCountMessages(t *testing.T) {
	tok := New()

	tests := []struct {
		name     string
		messages []types.Message
		model    string
		minCount int
		maxCount int
	}{
		{
			name: "single user message",
			messages: []types.Message{
				{Role: types.RoleUser, Content: "Hello!"},
			},
			model:    "deepseek-coder",
			minCount: 5,
			maxCount: 10,
		},
		{
			name: "system and user messages",
			messages: []types.Message{
				{Role: types.RoleSystem, Content: "You are a helpful assistant."},
				{Role: types.RoleUser, Content: "Hello!"},
			},
			model:    "deepseek-coder",
			minCount: 12,
			maxCount: 20,
		},
		{
			name:     "empty messages",
			messages: []types.Message{},
			model:    "deepseek-coder",
			minCount: 3, // Reply priming only
			maxCount: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count, err := tok.CountMessages(tc.messages, tc.model)
			if err != nil {
				t.Fatalf("CountMessages() error: %v", err)
			}
			if count < tc.minCount || count > tc.maxCount {
				t.Errorf("CountMessages() = %d, want between %d and %d",
					count, tc.minCount, tc.maxCount)
			}
		})
	}
}

func TestCountRequest_GrowsWithPrompt(t *testing.T) {
	tok := New()

	short, err := tok.CountRequest(provider.BuildRequest("deepseek-coder", "a blog"))
	if err != nil {
		t.Fatalf("CountRequest() error: %v", err)
	}
	long, err := tok.CountRequest(provider.BuildRequest("deepseek-coder",
		"a blog with a hero section, a pricing table and a contact form"))
	if err != nil {
		t.Fatalf("CountRequest() error: %v", err)
	}

	if short <= replyPrimingTokens {
		t.Errorf("short request counted %d tokens, expected system instruction to be counted", short)
	}
	if long <= short {
		t.Errorf("longer prompt counted %d tokens, short counted %d", long, short)
	}
}

func TestGetMessageOverhead(t *testing.T) {
	tok := New()
	if got := tok.getMessageOverhead("gpt-3.5-turbo"); got != messageOverheadGPT35 {
		t.Errorf("gpt-3.5 overhead = %d, want %d", got, messageOverheadGPT35)
	}
	if got := tok.getMessageOverhead("deepseek-coder"); got != messageOverheadGPT4 {
		t.Errorf("deepseek overhead = %d, want %d", got, messageOverheadGPT4)
	}
}
