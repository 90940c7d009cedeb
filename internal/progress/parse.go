package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// ErrMalformedScores is returned by ParseScores when the reply is not a
// JSON object carrying every score field as a number.
var ErrMalformedScores = errors.New("malformed scoring response")

var scoresSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	properties := make(map[string]any, len(ScoreFields))
	for _, field := range ScoreFields {
		properties[field] = map[string]any{"type": "number"}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(map[string]any{
		"type":       "object",
		"required":   ScoreFields,
		"properties": properties,
	}))
	if err != nil {
		panic(fmt.Sprintf("compile scores schema: %v", err))
	}
	return schema
}

// ParseScores decodes the raw scoring reply. The reply must be a JSON object
// holding every key in ScoreFields with a numeric value; extra keys are ignored.
func ParseScores(raw string) (*Scores, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedScores)
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedScores, err)
	}

	result, err := scoresSchema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: validate: %w", ErrMalformedScores, err)
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrMalformedScores, strings.Join(problems, "; "))
	}

	var scores Scores
	if err := mapstructure.Decode(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrMalformedScores, err)
	}

	return &scores, nil
}

// extractJSON drops a surrounding Markdown code fence if the model added one.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
