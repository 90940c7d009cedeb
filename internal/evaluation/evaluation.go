// Package evaluation runs the career progress evaluation pipeline: fetch the
// answers, build the prompt, score it and parse the reply.
package evaluation

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/logger"
	"github.com/spigell/progress-evaluator/internal/progress"
	"github.com/spigell/progress-evaluator/internal/prompt"
	"github.com/spigell/progress-evaluator/internal/scoring"
	"github.com/spigell/progress-evaluator/internal/store"
	"github.com/spigell/progress-evaluator/internal/utils"
)

const defaultMaxLogLength = 200

// AnswerFetcher is implemented by store.Store.
type AnswerFetcher interface {
	Fetch(ctx context.Context, userID string) store.Lookup
}

type Evaluator struct {
	answers   AnswerFetcher
	builder   prompt.Builder
	scorer    scoring.Scorer
	logger    *zap.Logger
	maxLogLen int
}

func New(answers AnswerFetcher, builder prompt.Builder, scorer scoring.Scorer, log *zap.Logger, maxLogLength int) *Evaluator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Evaluator{
		answers:   answers,
		builder:   builder,
		scorer:    scorer,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// Run evaluates the answers stored for userID. Every stage runs once; the
// first failure ends the run and is returned wrapped in one of the package
// error kinds.
func (e *Evaluator) Run(ctx context.Context, userID string) (*progress.Scores, error) {
	log := logger.WithFields(e.logger, logger.EvaluationFields(uuid.NewString(), userID)...)

	text, err := e.render(ctx, log, userID)
	if err != nil {
		return nil, err
	}

	if e.scorer == nil {
		return nil, fmt.Errorf("%w: no scorer configured", ErrScoring)
	}

	log = logger.WithCommonFields(log, e.scorer.Provider(), e.scorer.Model())

	log.Debug("scoring request",
		zap.Int("prompt_length", utf8.RuneCountInString(text)),
		zap.String("prompt_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	raw, err := e.scorer.Score(ctx, text)
	if err != nil {
		log.Error("scoring failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrScoring, err)
	}

	log.Debug("scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	scores, err := progress.ParseScores(raw)
	if err != nil {
		log.Error("parsing scores failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if fields := scores.OutOfRange(); len(fields) > 0 {
		log.Warn("scores outside the rubric range are kept as received", zap.Strings("fields", fields))
	}

	log.Info("evaluation completed", zap.Float64("overall_rating", scores.Overall))

	return scores, nil
}

// Render stops after prompt construction and returns the prompt that Run would send.
func (e *Evaluator) Render(ctx context.Context, userID string) (string, error) {
	log := logger.WithFields(e.logger, logger.EvaluationFields(uuid.NewString(), userID)...)
	return e.render(ctx, log, userID)
}

func (e *Evaluator) render(ctx context.Context, log *zap.Logger, userID string) (string, error) {
	lookup := e.answers.Fetch(ctx, userID)

	switch lookup.Status {
	case store.StatusFound:
	case store.StatusInvalidIdentifier:
		log.Warn("invalid user id format")
		return "", fmt.Errorf("%w: %w: %q", ErrNoAnswers, ErrInvalidIdentifier, userID)
	case store.StatusUnavailable:
		return "", fmt.Errorf("%w: %w: %w", ErrNoAnswers, ErrConnectivity, lookup.Err)
	default:
		return "", ErrNoAnswers
	}

	if lookup.Answers.Empty() {
		return "", ErrNoAnswers
	}

	log.Info("building evaluation prompt", zap.Int("answers", lookup.Answers.Len()))

	return e.builder.Build(lookup.Answers), nil
}
