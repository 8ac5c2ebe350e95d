// Package gemini wraps the Gemini text-generation API for the two storefront
// AI features: product copywriting and the shopping assistant. Every failure
// degrades to a fixed fallback string; callers never see an error.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// Fallback replies.
const (
	DescriptionUnavailable = "AI services currently unavailable. Please check your API key."
	DescriptionFailed      = "Error connecting to AI service."
	DescriptionEmpty       = "Failed to generate description."

	AssistantOffline = "I'm sorry, I'm offline right now."
	AssistantFailed  = "I'm having trouble thinking right now. How else can I help?"
	AssistantEmpty   = "Sorry, I'm a bit lost."
)

var errEmptyResponse = errors.New("empty response")

// Generator is the slice of the genai models service used here.
// *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config configures a Client.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client produces generated text. A Client without a generator is offline.
type Client struct {
	models  Generator
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a Client. An empty API key yields an offline client that only
// returns fallbacks; it is not an error.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Client, error) {
	c := &Client{model: cfg.Model, timeout: cfg.Timeout, log: log}
	if cfg.APIKey == "" {
		log.Warn().Msg("no API key configured; AI features will return fallback text")
		return c, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	c.models = gc.Models
	return c, nil
}

// NewWithGenerator builds a Client over an existing generator. A nil generator is offline.
func NewWithGenerator(models Generator, model string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{models: models, model: model, timeout: timeout, log: log}
}

// Online reports whether a generator is configured.
func (c *Client) Online() bool { return c.models != nil }

// DescribeProduct returns marketing copy for a product, or a fallback string.
func (c *Client) DescribeProduct(ctx context.Context, name, category string) string {
	if !c.Online() {
		return DescriptionUnavailable
	}
	text, err := c.generate(ctx, descriptionPrompt(name, category), descriptionSampling())
	switch {
	case errors.Is(err, errEmptyResponse):
		return DescriptionEmpty
	case err != nil:
		c.log.Warn().Err(err).Str("product", name).Msg("description generation failed")
		return DescriptionFailed
	}
	return text
}

// Recommend answers a shopper's question given a flattened catalog summary.
func (c *Client) Recommend(ctx context.Context, query, catalogSummary string) string {
	if !c.Online() {
		return AssistantOffline
	}
	text, err := c.generate(ctx, assistantPrompt(query, catalogSummary), nil)
	switch {
	case errors.Is(err, errEmptyResponse):
		return AssistantEmpty
	case err != nil:
		c.log.Warn().Err(err).Msg("assistant generation failed")
		return AssistantFailed
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}
