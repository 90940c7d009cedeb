package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/evaluation"
	"github.com/spigell/progress-evaluator/internal/prompt"
	"github.com/spigell/progress-evaluator/internal/scoring"
	"github.com/spigell/progress-evaluator/internal/secrets"
	"github.com/spigell/progress-evaluator/internal/store"
)

func mongoConfig(cfg *MongoConfig) (store.MongoConfig, error) {
	uri, err := secrets.Load(secrets.Source{
		Name:  "mongo uri",
		Value: cfg.URI,
		File:  cfg.URIFile,
	})
	if err != nil {
		return store.MongoConfig{}, fmt.Errorf("%w (set MONGO_URI, MONGO_URI_FILE or mongo.uri)", err)
	}

	return store.MongoConfig{
		URI:            uri,
		Database:       cfg.Database,
		Collection:     cfg.Collection,
		ConnectTimeout: cfg.ConnectTimeout,
	}, nil
}

func newStore(cfg *Config, logger *zap.Logger) (*store.Store, error) {
	mongoCfg, err := mongoConfig(cfg.Mongo)
	if err != nil {
		return nil, err
	}

	logger.Debug("using document database",
		zap.String("uri", secrets.RedactURI(mongoCfg.URI)),
		zap.String("database", mongoCfg.Database),
		zap.String("collection", mongoCfg.Collection),
	)

	return store.New(store.MongoDialer(mongoCfg), logger), nil
}

func newScorer(ctx context.Context, cfg *ScoringConfig) (scoring.Scorer, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))

	var (
		src       secrets.Source
		envPrefix string
	)
	scoringCfg := scoring.Config{Provider: provider}

	switch provider {
	case "", scoring.ProviderGroq:
		src = secrets.Source{Name: "groq api key", Value: cfg.Groq.APIKey, File: cfg.Groq.APIKeyFile}
		envPrefix = "GROQ"
		scoringCfg.Model = cfg.Groq.Model
		scoringCfg.BaseURL = cfg.Groq.BaseURL
	case scoring.ProviderGemini:
		src = secrets.Source{Name: "gemini api key", Value: cfg.Gemini.APIKey, File: cfg.Gemini.APIKeyFile}
		envPrefix = "GEMINI"
		scoringCfg.Model = cfg.Gemini.Model
	default:
		return nil, fmt.Errorf("unsupported scoring provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(src)
	if err != nil {
		return nil, fmt.Errorf("%w (set %s_API_KEY or %s_API_KEY_FILE)", err, envPrefix, envPrefix)
	}
	scoringCfg.APIKey = apiKey

	return scoring.New(ctx, scoringCfg)
}

func newEvaluator(ctx context.Context, cfg *Config, logger *zap.Logger) (*evaluation.Evaluator, error) {
	answers, err := newStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("configuring the answer store: %w", err)
	}

	scorer, err := newScorer(ctx, cfg.Scoring)
	if err != nil {
		return nil, fmt.Errorf("configuring the scoring service: %w", err)
	}

	return evaluation.New(answers, prompt.Default(), scorer, logger, cfg.Scoring.MaxLogLength), nil
}
