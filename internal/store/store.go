// Package store retrieves a user's career progress answers from the document
// database. Every Fetch opens its own connection and closes it before returning.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/spigell/progress-evaluator/internal/identifier"
	"github.com/spigell/progress-evaluator/internal/progress"
)

// Status tells why a lookup produced the answers it did.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusInvalidIdentifier
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNotFound:
		return "not_found"
	case StatusInvalidIdentifier:
		return "invalid_identifier"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Lookup is the outcome of Fetch. Answers is empty unless Status is StatusFound.
// Err is set only for StatusUnavailable.
type Lookup struct {
	Answers progress.AnswerSet
	Status  Status
	Err     error
}

// Document is a stored career progress record.
type Document struct {
	UserID    primitive.ObjectID `bson:"user_id"`
	Questions []Entry            `bson:"questions"`
}

// Entry is a single question/answer pair of a Document.
type Entry struct {
	Question string      `bson:"question,omitempty"`
	Answer   AnswerValue `bson:"answer"`
}

// AnswerSet numbers the document entries from 1 in stored order.
func (d *Document) AnswerSet() progress.AnswerSet {
	if d == nil {
		return nil
	}

	answers := make(progress.AnswerSet, 0, len(d.Questions))
	for i, entry := range d.Questions {
		text := progress.NoAnswer
		if entry.Answer.Valid {
			text = entry.Answer.Text
		}
		answers = append(answers, progress.Answer{Index: i + 1, Text: text})
	}
	return answers
}

// Session is a single connection to the document database.
type Session interface {
	Ping(ctx context.Context) error
	// FindProgress returns nil, nil when no document matches.
	FindProgress(ctx context.Context, userID primitive.ObjectID) (*Document, error)
	Close(ctx context.Context) error
}

// Dialer opens a new Session.
type Dialer func(ctx context.Context) (Session, error)

type Store struct {
	dial   Dialer
	logger *zap.Logger
}

func New(dial Dialer, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dial: dial, logger: logger}
}

// Fetch returns the answers stored for userID. It never returns an error
// directly: connectivity and authorization problems are logged and reported
// through Lookup.Status so the caller can decide how to stop.
func (s *Store) Fetch(ctx context.Context, userID string) Lookup {
	logger := s.logger.With(zap.String("user_id", userID))

	session, err := s.dial(ctx)
	if err != nil {
		logger.Error("connecting to the database", zap.Error(err))
		return Lookup{Status: StatusUnavailable, Err: fmt.Errorf("connect: %w", err)}
	}
	defer closeSession(ctx, session, logger)

	if err := session.Ping(ctx); err != nil {
		logger.Error("pinging the database", zap.Error(err))
		return Lookup{Status: StatusUnavailable, Err: fmt.Errorf("ping: %w", err)}
	}

	logger.Info("connected to the database")

	if !identifier.Valid(userID) {
		logger.Warn("skipping the query", zap.String("reason", "invalid user id format"))
		return Lookup{Status: StatusInvalidIdentifier}
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		logger.Warn("skipping the query", zap.Error(err))
		return Lookup{Status: StatusInvalidIdentifier}
	}

	doc, err := session.FindProgress(ctx, oid)
	if err != nil {
		logger.Error("querying career progress", zap.Error(err))
		return Lookup{Status: StatusUnavailable, Err: fmt.Errorf("find: %w", err)}
	}

	if doc == nil {
		logger.Info("no career progress document found")
		return Lookup{Status: StatusNotFound}
	}

	answers := doc.AnswerSet()
	if answers.Empty() {
		logger.Info("career progress document has no answers")
		return Lookup{Status: StatusNotFound}
	}

	logger.Info("fetched answers", zap.Int("count", answers.Len()))

	return Lookup{Answers: answers, Status: StatusFound}
}

func closeSession(ctx context.Context, session Session, logger *zap.Logger) {
	if err := session.Close(ctx); err != nil {
		logger.Warn("closing the database connection", zap.Error(err))
		return
	}
	logger.Debug("database connection closed")
}
