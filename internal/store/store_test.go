package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/progress-evaluator/internal/progress"
)

type fakeSession struct {
	pingErr  error
	findErr  error
	closeErr error
	doc      *Document

	pinged  bool
	queried []primitive.ObjectID
	closed  int
}

func (f *fakeSession) Ping(context.Context) error {
	f.pinged = true
	return f.pingErr
}

func (f *fakeSession) FindProgress(_ context.Context, userID primitive.ObjectID) (*Document, error) {
	f.queried = append(f.queried, userID)
	return f.doc, f.findErr
}

func (f *fakeSession) Close(context.Context) error {
	f.closed++
	return f.closeErr
}

func dialerFor(session *fakeSession) Dialer {
	return func(context.Context) (Session, error) { return session, nil }
}

const validID = "65f1c2a9b3e4d5f6a7b8c9d0"

func TestFetchFound(t *testing.T) {
	session := &fakeSession{doc: &Document{Questions: []Entry{
		{Question: "q1", Answer: TextAnswer("led a migration")},
		{Question: "q2"},
		{Question: "q3", Answer: TextAnswer("")},
	}}}

	lookup := New(dialerFor(session), zap.NewNop()).Fetch(context.Background(), validID)

	require.Equal(t, StatusFound, lookup.Status)
	require.NoError(t, lookup.Err)
	require.Equal(t, progress.AnswerSet{
		{Index: 1, Text: "led a migration"},
		{Index: 2, Text: progress.NoAnswer},
		{Index: 3, Text: ""},
	}, lookup.Answers)

	oid, _ := primitive.ObjectIDFromHex(validID)
	require.Equal(t, []primitive.ObjectID{oid}, session.queried)
	require.True(t, session.pinged)
	require.Equal(t, 1, session.closed)
}

func TestFetchNotFound(t *testing.T) {
	session := &fakeSession{}

	lookup := New(dialerFor(session), nil).Fetch(context.Background(), "000000000000000000000000")

	require.Equal(t, StatusNotFound, lookup.Status)
	require.True(t, lookup.Answers.Empty())
	require.NoError(t, lookup.Err)
	require.Len(t, session.queried, 1)
	require.Equal(t, 1, session.closed)
}

func TestFetchDocumentWithoutQuestions(t *testing.T) {
	session := &fakeSession{doc: &Document{}}

	lookup := New(dialerFor(session), nil).Fetch(context.Background(), validID)

	require.Equal(t, StatusNotFound, lookup.Status)
	require.True(t, lookup.Answers.Empty())
}

func TestFetchInvalidIdentifierSkipsQuery(t *testing.T) {
	session := &fakeSession{doc: &Document{Questions: []Entry{{Answer: TextAnswer("x")}}}}

	lookup := New(dialerFor(session), nil).Fetch(context.Background(), "not-a-valid-id")

	require.Equal(t, StatusInvalidIdentifier, lookup.Status)
	require.True(t, lookup.Answers.Empty())
	require.Empty(t, session.queried)
	require.Equal(t, 1, session.closed)
}

func TestFetchUnavailable(t *testing.T) {
	boom := errors.New("boom")

	t.Run("dial", func(t *testing.T) {
		dial := func(context.Context) (Session, error) { return nil, boom }

		lookup := New(dial, nil).Fetch(context.Background(), validID)

		require.Equal(t, StatusUnavailable, lookup.Status)
		require.ErrorIs(t, lookup.Err, boom)
		require.True(t, lookup.Answers.Empty())
	})

	t.Run("ping", func(t *testing.T) {
		session := &fakeSession{pingErr: boom}

		lookup := New(dialerFor(session), nil).Fetch(context.Background(), validID)

		require.Equal(t, StatusUnavailable, lookup.Status)
		require.ErrorIs(t, lookup.Err, boom)
		require.Empty(t, session.queried)
		require.Equal(t, 1, session.closed)
	})

	t.Run("query", func(t *testing.T) {
		session := &fakeSession{findErr: boom}

		lookup := New(dialerFor(session), nil).Fetch(context.Background(), validID)

		require.Equal(t, StatusUnavailable, lookup.Status)
		require.ErrorIs(t, lookup.Err, boom)
		require.Equal(t, 1, session.closed)
	})
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "found", StatusFound.String())
	require.Equal(t, "unavailable", StatusUnavailable.String())
	require.Equal(t, "status(42)", Status(42).String())
}

func TestMongoDialerRequiresURI(t *testing.T) {
	_, err := MongoDialer(MongoConfig{})(context.Background())
	require.Error(t, err)
}

func TestDocumentDecodesNonStringAnswers(t *testing.T) {
	raw, err := bson.Marshal(bson.M{
		"user_id": primitive.NewObjectID(),
		"questions": bson.A{
			bson.M{"question": "q1", "answer": 5},
			bson.M{"question": "q2", "answer": int64(12)},
			bson.M{"question": "q3", "answer": 2.5},
			bson.M{"question": "q4", "answer": true},
			bson.M{"question": "q5", "answer": nil},
			bson.M{"question": "q6"},
			bson.M{"question": "q7", "answer": "plain text"},
			bson.M{"question": "q8", "answer": bson.A{"a", "b"}},
		},
	})
	require.NoError(t, err)

	var doc Document
	require.NoError(t, bson.Unmarshal(raw, &doc))

	answers := doc.AnswerSet()
	require.Len(t, answers, 8)
	require.Equal(t, progress.Answer{Index: 1, Text: "5"}, answers[0])
	require.Equal(t, progress.Answer{Index: 2, Text: "12"}, answers[1])
	require.Equal(t, progress.Answer{Index: 3, Text: "2.5"}, answers[2])
	require.Equal(t, progress.Answer{Index: 4, Text: "true"}, answers[3])
	require.Equal(t, progress.Answer{Index: 5, Text: progress.NoAnswer}, answers[4])
	require.Equal(t, progress.Answer{Index: 6, Text: progress.NoAnswer}, answers[5])
	require.Equal(t, progress.Answer{Index: 7, Text: "plain text"}, answers[6])
	require.Contains(t, answers[7].Text, `"a"`)
	require.Contains(t, answers[7].Text, `"b"`)
}

func TestAnswerValueEncoding(t *testing.T) {
	raw, err := bson.Marshal(Entry{Question: "q1"})
	require.NoError(t, err)
	require.Equal(t, bson.TypeNull, bson.Raw(raw).Lookup("answer").Type)

	raw, err = bson.Marshal(Entry{Question: "q1", Answer: TextAnswer("stored")})
	require.NoError(t, err)
	require.Equal(t, "stored", bson.Raw(raw).Lookup("answer").StringValue())
}

func TestFetchLogsCloseFailure(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	session := &fakeSession{closeErr: errors.New("disconnect failed"), doc: &Document{Questions: []Entry{{Answer: TextAnswer("x")}}}}

	lookup := New(dialerFor(session), zap.New(core)).Fetch(context.Background(), validID)

	require.Equal(t, StatusFound, lookup.Status)
	require.Equal(t, 1, session.closed)

	entries := observed.FilterMessage("closing the database connection").All()
	require.Len(t, entries, 1)
	require.Equal(t, "disconnect failed", entries[0].ContextMap()["error"])
}

func TestCloseSessionLogsFailure(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	closeSession(context.Background(), &fakeSession{closeErr: errors.New("disconnect failed")}, zap.New(core))
	closeSession(context.Background(), &fakeSession{}, zap.New(core))

	require.Equal(t, 1, observed.FilterMessage("closing the database connection").Len())
	require.Equal(t, 1, observed.FilterMessage("database connection closed").Len())
}
