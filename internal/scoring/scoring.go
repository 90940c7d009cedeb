// Package scoring sends evaluation prompts to an LLM completion service.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/progress-evaluator/internal/scoring/gemini"
	"github.com/spigell/progress-evaluator/internal/scoring/groq"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Scorer sends a prompt as a single request and returns the reply text unmodified.
// Implementations make exactly one attempt.
type Scorer interface {
	Score(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL is used by the groq provider only.
	BaseURL string
}

// New builds the Scorer for cfg.Provider, defaulting to groq.
func New(ctx context.Context, cfg Config) (Scorer, error) {
	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", ProviderGroq:
		return groq.New(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case ProviderGemini:
		return gemini.New(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported scoring provider: %s", cfg.Provider)
	}
}
