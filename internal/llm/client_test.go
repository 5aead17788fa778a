package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/dwh-analyst/internal/errors"
)

func TestNewClient_ConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "missing model",
			config:  Config{Provider: ProviderOpenAI, APIKey: "sk-x"},
			wantErr: "model is required",
		},
		{
			name:    "openai without key",
			config:  Config{Provider: ProviderOpenAI, Model: "gpt-3.5-turbo"},
			wantErr: "API key is required",
		},
		{
			name:    "anthropic without key",
			config:  Config{Provider: ProviderAnthropic, Model: "claude-3-haiku"},
			wantErr: "API key is required",
		},
		{
			name:    "unsupported provider",
			config:  Config{Provider: "bedrock", Model: "m"},
			wantErr: "unsupported provider",
		},
		{
			name:   "ollama needs no key",
			config: Config{Provider: ProviderOllama, Model: "llama3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.NotNil(t, client)

				return
			}

			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeConfigIncomplete))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_GenerateOpenAI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-3.5-turbo", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Contains(t, req.Messages[0].Content, "fraud companies")

		json.NewEncoder(w).Encode(openAIResponse{
			Choices: []openAIChoice{
				{Message: openAIMessage{Role: "assistant", Content: "```sql\nSELECT 1\n```"}},
			},
		})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		Provider: ProviderOpenAI,
		Model:    "gpt-3.5-turbo",
		APIKey:   "sk-test",
		BaseURL:  server.URL,
	})
	require.NoError(t, err)

	got, err := client.Generate(context.Background(), "list fraud companies")
	require.NoError(t, err)
	assert.Equal(t, "```sql\nSELECT 1\n```", got)
}

func TestClient_GenerateOllama(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		json.NewEncoder(w).Encode(ollamaResponse{Response: "SELECT 1", Done: true})
	}))
	defer server.Close()

	client, err := NewClient(Config{
		Provider: ProviderOllama,
		Model:    "llama3",
		BaseURL:  server.URL,
	})
	require.NoError(t, err)

	got, err := client.Generate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", got)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType errors.ErrorType
	}{
		{"rate limited", http.StatusTooManyRequests, errors.ErrTypeQuotaExceeded},
		{"server error", http.StatusInternalServerError, errors.ErrTypeServiceUnavailable},
		{"bad gateway", http.StatusBadGateway, errors.ErrTypeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client, err := NewClient(Config{
				Provider: ProviderOpenAI,
				Model:    "gpt-3.5-turbo",
				APIKey:   "sk-test",
				BaseURL:  server.URL,
			})
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), "q")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestClient_NetworkErrorIsRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClient(Config{
		Provider: ProviderOpenAI,
		Model:    "gpt-3.5-turbo",
		APIKey:   "sk-test",
		BaseURL:  server.URL,
	})
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "q")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNetwork))
	assert.True(t, errors.IsRetryable(err))
}
