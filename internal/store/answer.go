package store

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerValue is the stored answer of an Entry. Valid is false when the
// answer is missing or null. Numbers and booleans are kept in their text
// form; documents and arrays are rendered as extended JSON.
type AnswerValue struct {
	Text  string
	Valid bool
}

// TextAnswer returns a present answer holding text.
func TextAnswer(text string) AnswerValue {
	return AnswerValue{Text: text, Valid: true}
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (a *AnswerValue) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	if err := raw.Validate(); err != nil {
		return err
	}

	switch t {
	case bsontype.Null, bsontype.Undefined:
		*a = AnswerValue{}
	case bsontype.String:
		*a = TextAnswer(raw.StringValue())
	case bsontype.Int32:
		*a = TextAnswer(strconv.FormatInt(int64(raw.Int32()), 10))
	case bsontype.Int64:
		*a = TextAnswer(strconv.FormatInt(raw.Int64(), 10))
	case bsontype.Double:
		*a = TextAnswer(strconv.FormatFloat(raw.Double(), 'f', -1, 64))
	case bsontype.Boolean:
		*a = TextAnswer(strconv.FormatBool(raw.Boolean()))
	default:
		*a = TextAnswer(raw.String())
	}
	return nil
}

// MarshalBSONValue implements bson.ValueMarshaler. Missing answers are
// stored as null.
func (a AnswerValue) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !a.Valid {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue(a.Text)
}
