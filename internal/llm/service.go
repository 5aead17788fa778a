package llm

import (
	"context"
	"regexp"
	"strings"
)

// Service defines the language model boundary: assembled prompt in, raw text
// out. The core assumes nothing else about the provider.
type Service interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Configure(config Config) error
}

// Config represents language model client configuration
type Config struct {
	Provider    string  `json:"provider"` // openai, anthropic, ollama
	Model       string  `json:"model"`
	APIKey      string  `json:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
}

// Provider constants for the supported providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderLocal     = "local"
)

var sqlFenceRe = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)```")

// ExtractSQL strips markdown fencing and surrounding prose from a model
// response, returning the bare statement for validation. If a fenced block is
// present its content wins; otherwise the trimmed response is returned as-is.
func ExtractSQL(response string) string {
	response = strings.TrimSpace(response)

	if m := sqlFenceRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}

	// Models occasionally prefix a line of prose before the statement.
	if idx := selectStart(response); idx > 0 {
		return strings.TrimSpace(response[idx:])
	}

	return response
}

func selectStart(s string) int {
	upper := strings.ToUpper(s)
	earliest := -1

	for _, kw := range []string{"SELECT", "WITH"} {
		if idx := strings.Index(upper, kw); idx >= 0 && (earliest < 0 || idx < earliest) {
			earliest = idx
		}
	}

	return earliest
}
