package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "resp_1",
			"object": "response",
			"status": "completed",
			"output": [{
				"type": "message",
				"id": "msg_1",
				"role": "assistant",
				"status": "completed",
				"content": [{"type": "output_text", "text": "Vendas estáveis.", "annotations": []}]
			}]
		}`))
	}))
	defer srv.Close()

	client := NewClient("sk-test", "gpt-test", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	text, err := client.Complete(context.Background(), "Seja breve.", "Analise.")

	require.NoError(t, err)
	assert.Equal(t, "Vendas estáveis.", text)
	assert.Equal(t, "gpt-test", body["model"])
	assert.Equal(t, "Analise.", body["input"])
	assert.Equal(t, "Seja breve.", body["instructions"])
	assert.Equal(t, float64(maxOutputTokens), body["max_output_tokens"])
}

func TestComplete_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("bad", "", option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0)).Complete(context.Background(), "", "x")
	assert.Error(t, err)
}

func TestNewClient_DefaultModel(t *testing.T) {
	assert.Equal(t, string(defaultModel), NewClient("k", "").model)
}
