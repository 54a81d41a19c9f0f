package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-actions/pkg/config"
)

func completionBody(contents ...string) map[string]interface{} {
	choices := make([]map[string]interface{}, 0, len(contents))
	for i, c := range contents {
		choices = append(choices, map[string]interface{}{
			"index":         i,
			"message":       map[string]string{"role": "assistant", "content": c},
			"finish_reason": "stop",
		})
	}
	return map[string]interface{}{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"choices": choices,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *AzureOpenAIClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewAzureOpenAIClient(&config.AzureOpenAIConfig{
		Endpoint:   ts.URL + "/",
		Deployment: "gpt-4o-mini",
		APIKey:     "test-key",
		APIVersion: "2024-02-15-preview",
	}, ts.Client(), nil)
	require.NoError(t, err)
	return client
}

func TestAnalyze_Success(t *testing.T) {
	var captured struct {
		path, apiVersion, apiKey string
		body                     map[string]interface{}
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.apiVersion = r.URL.Query().Get("api-version")
		captured.apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.body))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("```json\n{\"decisions\":[\"ship v2\"],\"actions\":[]}\n```"))
	})

	result, err := client.Analyze(context.Background(), "Alice: let's ship v2 on Friday")
	require.NoError(t, err)
	assert.Equal(t, `{"decisions":["ship v2"],"actions":[]}`, result)

	assert.Equal(t, "/openai/deployments/gpt-4o-mini/chat/completions", captured.path)
	assert.Equal(t, "2024-02-15-preview", captured.apiVersion)
	assert.Equal(t, "test-key", captured.apiKey)
	assert.InDelta(t, analysisTemperature, captured.body["temperature"], 0.0001)
	assert.EqualValues(t, analysisMaxTokens, captured.body["max_tokens"])

	messages, ok := captured.body["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	user := messages[1].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	assert.Contains(t, user["content"], "Alice: let's ship v2 on Friday")
}

func TestAnalyze_NoChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody())
	})

	_, err := client.Analyze(context.Background(), "a transcript")
	assert.ErrorIs(t, err, ErrEmptyModelResponse)
}

func TestAnalyze_MalformedOutput(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("Sorry, I cannot help with that."))
	})

	_, err := client.Analyze(context.Background(), "a transcript")
	assert.ErrorIs(t, err, ErrMalformedModelOutput)
}

func TestAnalyze_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"deployment overloaded","type":"server_error","code":"overloaded"}}`))
	})

	_, err := client.Analyze(context.Background(), "a transcript")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream), "got %T: %v", err, err)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "deployment overloaded")
	assert.Contains(t, upstream.Body, "server_error")
	assert.Contains(t, upstream.Body, "overloaded")
	assert.Contains(t, err.Error(), "500")
}

func TestAnalyze_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Analyze(ctx, "a transcript")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewAzureOpenAIClient_MissingConfig(t *testing.T) {
	valid := config.AzureOpenAIConfig{Endpoint: "https://example.openai.azure.com", Deployment: "d", APIKey: "k"}

	tests := []struct {
		name   string
		mutate func(c *config.AzureOpenAIConfig)
		want   string
	}{
		{"missing endpoint", func(c *config.AzureOpenAIConfig) { c.Endpoint = "" }, "endpoint"},
		{"missing deployment", func(c *config.AzureOpenAIConfig) { c.Deployment = "" }, "deployment"},
		{"missing key", func(c *config.AzureOpenAIConfig) { c.APIKey = "" }, "api key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			_, err := NewAzureOpenAIClient(&cfg, nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := NewAzureOpenAIClient(nil, nil, nil)
	assert.Error(t, err)

	client, err := NewAzureOpenAIClient(&valid, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "d", client.deployment)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose before fence", "Sure! ```json\n{\"decisions\":[\"x\"]}\n```", `{"decisions":["x"]}`},
		{"surrounding prose", "Here you go: {\"a\":{\"b\":2}} hope it helps", `{"a":{"b":2}}`},
		{"whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"no braces", "no json here", "no json here"},
		{"reversed braces", "} oops {", "} oops {"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSON(tt.input))
		})
	}
}

func TestSystemPromptNamesAllSections(t *testing.T) {
	for _, key := range []string{"decisions", "actions", "implicitDates", "risks", "openQuestions"} {
		assert.True(t, strings.Contains(systemPrompt, `"`+key+`"`), key)
	}
}
