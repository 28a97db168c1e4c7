package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/coursegen-api/internal/config"
	"github.com/phrazzld/coursegen-api/internal/domain"
	"github.com/phrazzld/coursegen-api/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by Completer.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer implements generation.Completer using Google's Gemini API.
// Each call is a single request; failures are not retried.
type Completer struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues generateContent requests
	models contentGenerator

	// model is the name of the Gemini model to use
	model string

	// temperature is passed through to every request
	temperature float32
}

var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a Completer backed by a genai client.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and optional base URL
//
// Returns:
//   - A ready Completer or an error wrapping generation.ErrInvalidConfig
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return newCompleter(logger, client.Models, cfg), nil
}

// newCompleter wires a Completer around any contentGenerator.
func newCompleter(logger *slog.Logger, models contentGenerator, cfg config.LLMConfig) *Completer {
	return &Completer{
		logger:      logger,
		models:      models,
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
	}
}

// validateConfig checks the settings required to reach the Gemini API.
func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// Complete sends the prompt to Gemini and returns the concatenated text parts of
// the first candidate.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt", generation.ErrEmptyPromptInput)
	}

	temperature := c.temperature
	genConfig := &genai.GenerateContentConfig{Temperature: &temperature}

	c.logger.DebugContext(ctx, "Making Gemini API call",
		"model", c.model,
		"prompt_length", len(prompt))

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), genConfig)
	if err != nil {
		c.logger.ErrorContext(ctx, "Gemini API call error", "error", err)
		return "", fmt.Errorf("%w: gemini generateContent: %w", domain.ErrUpstreamFailure, err)
	}

	text, err := responseText(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "Gemini returned no usable content", "error", err)
		return "", err
	}

	c.logger.DebugContext(ctx, "Gemini API call successful", "response_length", len(text))
	return text, nil
}

// responseText validates a generateContent response and extracts its text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response from gemini", domain.ErrUpstreamFailure)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked,
			resp.PromptFeedback.BlockReason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in gemini response", domain.ErrUpstreamFailure)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", generation.ErrContentBlocked
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in gemini response", domain.ErrUpstreamFailure)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: gemini response has no text", domain.ErrUpstreamFailure)
	}

	return b.String(), nil
}
