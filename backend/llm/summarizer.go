// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package llm

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/scout/backend"
	"github.com/poiesic/scout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Summarizer implements backend.Summarizer using OpenAI-compatible chat APIs.
type Summarizer struct {
	client       llms.Model
	maxKeyPoints int
	logger       *slog.Logger
}

var _ backend.Summarizer = (*Summarizer)(nil)

// summaryReply is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type summaryReply struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// newSummarizer is an internal constructor that returns the concrete type.
func newSummarizer(config *Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/summarization
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Summarizer{
		client:       client,
		maxKeyPoints: config.MaxKeyPoints,
		logger:       slog.Default().With("component", "llm-summarizer"),
	}, nil
}

// NewSummarizer creates a new summarizer using the provided configuration.
//
// Returns backend.Summarizer interface to enforce abstraction.
func NewSummarizer(config *Config) (backend.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize condenses a fetched page into a summary of at most maxLength
// characters using the configured chat model. The model is asked for the
// length budget but not trusted with it; overlong replies are clamped to the
// last sentence boundary inside the budget.
func (s *Summarizer) Summarize(ctx context.Context, detail *core.PageDetail, maxLength int) (*core.Summary, error) {
	if detail == nil || strings.TrimSpace(detail.ContentSnippet) == "" {
		return nil, ErrNoContent
	}
	if maxLength <= 0 {
		maxLength = core.DefaultSummaryLength
	}

	content := strings.TrimSpace(detail.ContentSnippet)

	// Build the system and user prompts
	systemPrompt := buildSystemPrompt(maxLength, s.maxKeyPoints)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(content),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var reply summaryReply
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := s.client.GenerateContent(ctx, messages, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			s.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			s.logger.Debug("no choices returned from model", "attempt", attempt+1)
			lastErr = ErrEmptyReply
			continue
		}

		responseText := extractJSONObject(response.Choices[0].Content)

		if err := json.Unmarshal([]byte(responseText), &reply); err != nil {
			lastErr = err
			s.logger.Warn("error parsing summarizer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		if strings.TrimSpace(reply.Summary) == "" {
			lastErr = ErrEmptyReply
			s.logger.Warn("summarizer response had no summary text", "attempt", attempt+1)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		s.logger.Error("failed to obtain summary after retries", "err", lastErr)
		return nil, lastErr
	}

	text := clampToSentence(strings.TrimSpace(reply.Summary), maxLength)

	points := make([]string, 0, len(reply.KeyPoints))
	for _, p := range reply.KeyPoints {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		points = append(points, p)
		if len(points) == s.maxKeyPoints {
			break
		}
	}

	s.logger.Debug("generated summary",
		"url", detail.URL,
		"limit", maxLength,
		"length", utf8.RuneCountInString(text),
		"key_points", len(points))

	return &core.Summary{
		URL:           detail.URL,
		Title:         detail.Title,
		Text:          text,
		KeyPoints:     points,
		Domain:        detail.Domain,
		WordCount:     len(strings.Fields(text)),
		ContentLength: utf8.RuneCountInString(content),
		Limit:         maxLength,
	}, nil
}

// extractJSONObject strips markdown code fences and any prose the model
// wrapped around the JSON object, returning the substring from the first
// opening brace to the last closing brace.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// clampToSentence enforces the character budget on model output, cutting at
// the last period inside the window when one exists.
func clampToSentence(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	window := string(runes[:maxLength])
	if idx := strings.LastIndex(window, "."); idx > 0 {
		return window[:idx+1]
	}
	return window
}
