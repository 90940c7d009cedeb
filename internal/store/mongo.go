package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	DefaultDatabase   = "codeforchange"
	DefaultCollection = "career_progress"
)

type MongoConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

func (c MongoConfig) withDefaults() MongoConfig {
	if strings.TrimSpace(c.Database) == "" {
		c.Database = DefaultDatabase
	}
	if strings.TrimSpace(c.Collection) == "" {
		c.Collection = DefaultCollection
	}
	return c
}

type mongoSession struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoDialer returns a Dialer that opens a new mongo client per session.
func MongoDialer(cfg MongoConfig) Dialer {
	cfg = cfg.withDefaults()

	return func(ctx context.Context) (Session, error) {
		session, err := dialMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return session, nil
	}
}

func dialMongo(ctx context.Context, cfg MongoConfig) (*mongoSession, error) {
	if strings.TrimSpace(cfg.URI) == "" {
		return nil, errors.New("mongo uri is required")
	}

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout).SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &mongoSession{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *mongoSession) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoSession) FindProgress(ctx context.Context, userID primitive.ObjectID) (*Document, error) {
	var doc Document
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

func (s *mongoSession) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Seed replaces the career progress document of userID with the given entries,
// creating it when missing.
func Seed(ctx context.Context, cfg MongoConfig, userID string, entries []Entry, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}

	session, err := dialMongo(ctx, cfg.withDefaults())
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer closeSession(ctx, session, logger)

	if err := session.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	doc := Document{UserID: oid, Questions: entries}
	_, err = session.collection.ReplaceOne(ctx, bson.M{"user_id": oid}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert career progress: %w", err)
	}

	return nil
}
