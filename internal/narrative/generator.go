// ABOUTME: AI narrative generation for daily summaries
// ABOUTME: Uses gpt-4o-mini chat completions with retry, persists results to storage
package narrative

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"github.com/minakami/minakami/internal/config"
	"github.com/minakami/minakami/internal/storage/sqlite"
	"github.com/minakami/minakami/internal/util"
)

const systemPrompt = `You are a diary-writing assistant. Given one day of personal tracking data (activities, places, calls, screen time, notes), write a warm second-person narrative of the day in 2-4 short paragraphs.

Only mention what the data shows. Do not invent events, people, or feelings. If a section is absent, skip it.`

// ErrNoData is returned when a day has nothing to narrate.
var ErrNoData = fmt.Errorf("no tracked data for that day")

// Generator produces and stores daily narrative summaries.
type Generator struct {
	client     *openai.Client
	tracker    *sqlite.Tracker
	model      string
	maxRetries int
	cfg        *config.Config
}

// NewGenerator creates a generator from config. The OpenAI key is
// required here, not at call time, so callers fail fast.
func NewGenerator(cfg *config.Config, tracker *sqlite.Tracker) (*Generator, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	return NewGeneratorWithClient(openai.NewClient(cfg.OpenAIKey), cfg, tracker), nil
}

// NewGeneratorWithClient creates a generator with a caller-supplied
// client, used by tests to point at a fake endpoint.
func NewGeneratorWithClient(client *openai.Client, cfg *config.Config, tracker *sqlite.Tracker) *Generator {
	return &Generator{
		client:     client,
		tracker:    tracker,
		model:      cfg.ChatModel,
		maxRetries: cfg.MaxRetries,
		cfg:        cfg,
	}
}

// GenerateDaily builds the narrative for one day and saves it. It
// returns the narrative text. Regenerating replaces the stored row.
func (g *Generator) GenerateDaily(ctx context.Context, date string) (string, error) {
	snap, err := Collect(g.tracker, date)
	if err != nil {
		return "", fmt.Errorf("failed to collect day data: %w", err)
	}
	if snap.IsEmpty() {
		return "", ErrNoData
	}

	text, err := g.complete(ctx, BuildPrompt(snap))
	if err != nil {
		return "", err
	}

	if err := g.tracker.SaveNarrativeSummary(date, text); err != nil {
		return "", fmt.Errorf("failed to save narrative: %w", err)
	}

	log.Printf("[Narrative] Generated summary for %s (%d chars)", date, len(text))
	return text, nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	var content string

	err := util.Retry(ctx, g.maxRetries, g.cfg.RetryDelay, func() error {
		reqCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()

		resp, err := g.client.CreateChatCompletion(reqCtx, openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			Temperature: 0.7,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no completion choices returned")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate narrative after %d attempts: %w", g.maxRetries+1, err)
	}

	return content, nil
}
