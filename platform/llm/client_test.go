package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, inspect func(path string, body map[string]any), reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		inspect(r.URL.Path, body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(context.Background(), Config{Provider: ProviderOpenAI})
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(context.Background(), Config{Provider: "claude", APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(context.Background(), Config{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, c.Provider())
	assert.Equal(t, DefaultOpenAIModel, c.Model())

	c, err = NewClient(context.Background(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, c.Provider())
	assert.Equal(t, DefaultGeminiModel, c.Model())
}

func TestOpenAIGenerate(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := jsonServer(t, func(path string, body map[string]any) {
		gotPath, gotBody = path, body
	}, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
		"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"**Answer:** yes"}}],
		"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`)

	c, err := NewClient(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), Request{SystemInstruction: "only the doc", Prompt: "q?"})
	require.NoError(t, err)
	assert.Equal(t, "**Answer:** yes", out)

	assert.True(t, strings.HasSuffix(gotPath, "/chat/completions"))
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.EqualValues(t, 0, gotBody["temperature"])
	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
}

func TestOpenAIEmptyResponse(t *testing.T) {
	srv := jsonServer(t, func(string, map[string]any) {},
		`{"id":"c1","object":"chat.completion","created":1,"model":"m",
		"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  "}}]}`)

	c, err := NewClient(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), Request{Prompt: "q?"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiGenerate(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := jsonServer(t, func(path string, body map[string]any) {
		gotPath, gotBody = path, body
	}, `{"candidates":[{"content":{"role":"model","parts":[{"text":"The answer to this question is not found in the provided document."}]},"finishReason":"STOP"}]}`)

	c, err := NewClient(context.Background(), Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	out, err := c.Generate(context.Background(), Request{SystemInstruction: "only the doc", Prompt: "q?"})
	require.NoError(t, err)
	assert.Equal(t, "The answer to this question is not found in the provided document.", out)

	assert.Contains(t, gotPath, DefaultGeminiModel+":generateContent")
	assert.Contains(t, gotBody, "systemInstruction")
	cfg, ok := gotBody["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, cfg["temperature"])
}

func TestGeminiEmptyResponse(t *testing.T) {
	srv := jsonServer(t, func(string, map[string]any) {}, `{"candidates":[]}`)

	c, err := NewClient(context.Background(), Config{APIKey: "k", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), Request{Prompt: "q?"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
