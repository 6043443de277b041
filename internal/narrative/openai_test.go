package narrative

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sitegrade/sitegrade/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, openai.GPT4oMini, req.Model)
		assert.InDelta(t, 0.2, req.Temperature, 0.0001)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Final score: 71.50")
		assert.Contains(t, req.Messages[1].Content, "grade B")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "  Your site is doing well overall.  "}},
			},
		})
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	summarizer := NewSummarizerWithConfig(config)

	summary, err := summarizer.Summarize(context.Background(),
		&schema.AuditRecord{}, 71.5, schema.Grade{Letter: "B", RiskLevel: "Low–Medium", Verdict: "Good overall presence."})
	require.NoError(t, err)
	assert.Equal(t, "Your site is doing well overall.", summary)
}

func TestSummarizeNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{})
	}))
	defer server.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	summarizer := NewSummarizerWithConfig(config)

	_, err := summarizer.Summarize(context.Background(), &schema.AuditRecord{}, 50, schema.Grade{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}
