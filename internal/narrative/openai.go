// Package narrative turns finished audits into short prose summaries using
// the OpenAI chat API.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sitegrade/sitegrade/schema"
)

const (
	summaryModel = openai.GPT4oMini

	// Low temperature keeps the summary anchored to the numbers instead of
	// inventing findings.
	summaryTemperature = 0.2

	systemPrompt = "You are a senior digital marketing auditor. You receive raw audit data " +
		"for a small business website and its final score. Write a concise summary for the " +
		"business owner: 2-3 paragraphs, plain language, no headings. Name the two or three " +
		"weakest areas and give one concrete recommendation for each. Do not repeat raw " +
		"numbers the owner cannot act on."
)

// Summarizer generates audit summaries via OpenAI chat completions.
type Summarizer struct {
	client *openai.Client
}

// NewSummarizer returns a Summarizer for the given API key.
func NewSummarizer(apiKey string) *Summarizer {
	return &Summarizer{client: openai.NewClient(apiKey)}
}

// NewSummarizerWithConfig builds a Summarizer from a full client config, used
// by tests to point at a stub server.
func NewSummarizerWithConfig(config openai.ClientConfig) *Summarizer {
	return &Summarizer{client: openai.NewClientWithConfig(config)}
}

// Summarize renders the audit record as JSON context and asks the model for
// an owner-facing summary.
func (s *Summarizer) Summarize(ctx context.Context, record *schema.AuditRecord, finalScore float64, grade schema.Grade) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode audit record: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"Final score: %.2f/100 (grade %s, risk %s).\nVerdict: %s\n\nAudit data:\n%s",
		finalScore, grade.Letter, grade.RiskLevel, grade.Verdict, payload)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       summaryModel,
		Temperature: summaryTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
