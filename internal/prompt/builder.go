// Package prompt renders the evaluation request sent to the scoring service.
package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spigell/progress-evaluator/internal/progress"
)

//go:embed prompt.md
var promptTemplate string

// Builder renders prompts for a fixed catalog and rubric.
type Builder struct {
	catalog Catalog
	rubric  Rubric
}

func NewBuilder(catalog Catalog, rubric Rubric) Builder {
	return Builder{catalog: catalog, rubric: rubric}
}

// Default uses DefaultCatalog and DefaultRubric.
func Default() Builder {
	return NewBuilder(DefaultCatalog(), DefaultRubric)
}

func (b Builder) Build(answers progress.AnswerSet) string {
	return Build(b.catalog, b.rubric, answers)
}

// Build renders the rubric, every catalog question with its answer (or
// progress.NoAnswer) and the required output format. Output depends only on
// the arguments.
func Build(catalog Catalog, rubric Rubric, answers progress.AnswerSet) string {
	// A single pass keeps placeholders inside answers or the rubric verbatim.
	return strings.NewReplacer(
		"{{RUBRIC}}", strings.TrimSpace(string(rubric)),
		"{{QUESTIONS}}", renderQuestions(catalog, answers),
		"{{FORMAT}}", renderFormat(),
	).Replace(promptTemplate)
}

func renderQuestions(catalog Catalog, answers progress.AnswerSet) string {
	var builder strings.Builder
	for i := 1; i <= len(catalog); i++ {
		fmt.Fprintf(&builder, "\nQuestion %d: %s\nAnswer: %s\n", i, catalog.Question(i), answers.TextOrPlaceholder(i))
	}
	return builder.String()
}

func renderFormat() string {
	lines := make([]string, 0, len(progress.ScoreFields))
	for _, field := range progress.ScoreFields {
		lines = append(lines, fmt.Sprintf("  %q: <integer %d-%d>", field, progress.MinScore, progress.MaxScore))
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n}"
}
