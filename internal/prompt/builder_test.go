package prompt

import (
	"strings"
	"testing"

	"github.com/spigell/progress-evaluator/internal/progress"
)

func fullAnswers() progress.AnswerSet {
	set := make(progress.AnswerSet, 0, progress.QuestionCount)
	for i := 1; i <= progress.QuestionCount; i++ {
		set = append(set, progress.Answer{Index: i, Text: "answer number " + string(rune('0'+i))})
	}
	return set
}

func TestBuildIsDeterministic(t *testing.T) {
	answers := fullAnswers()

	first := Build(DefaultCatalog(), DefaultRubric, answers)
	second := Build(DefaultCatalog(), DefaultRubric, answers)

	if first != second {
		t.Fatalf("expected identical prompts")
	}

	if got := Default().Build(answers); got != first {
		t.Fatalf("builder output differs from Build")
	}
}

func TestBuildOrdersQuestionsAndAnswers(t *testing.T) {
	catalog := DefaultCatalog()
	prompt := Build(catalog, DefaultRubric, fullAnswers())

	last := -1
	for i := 1; i <= progress.QuestionCount; i++ {
		question := catalog.Question(i)
		idx := strings.Index(prompt, question)
		if idx == -1 {
			t.Fatalf("question %d missing from prompt", i)
		}
		if idx <= last {
			t.Fatalf("question %d is out of order", i)
		}
		last = idx

		pair := question + "\nAnswer: answer number " + string(rune('0'+i))
		if !strings.Contains(prompt, pair) {
			t.Fatalf("answer %d does not follow its question", i)
		}
	}
}

func TestBuildUsesPlaceholderForMissingAnswers(t *testing.T) {
	answers := progress.AnswerSet{
		{Index: 1, Text: "only the first"},
		{Index: 3, Text: ""},
	}

	prompt := Build(DefaultCatalog(), DefaultRubric, answers)

	if !strings.Contains(prompt, "Question 1: "+DefaultCatalog().Question(1)+"\nAnswer: only the first\n") {
		t.Fatalf("first answer not rendered: %s", prompt)
	}

	if !strings.Contains(prompt, "Question 2: "+DefaultCatalog().Question(2)+"\nAnswer: "+progress.NoAnswer+"\n") {
		t.Fatalf("placeholder not rendered for question 2: %s", prompt)
	}

	if !strings.Contains(prompt, "Question 3: "+DefaultCatalog().Question(3)+"\nAnswer: \n") {
		t.Fatalf("empty answer should be kept for question 3: %s", prompt)
	}

	if got := strings.Count(prompt, progress.NoAnswer); got != progress.QuestionCount-2 {
		t.Fatalf("expected %d placeholders, got %d", progress.QuestionCount-2, got)
	}
}

func TestBuildIgnoresAnswersBeyondCatalog(t *testing.T) {
	answers := append(fullAnswers(), progress.Answer{Index: 8, Text: "extra entry"})

	if strings.Contains(Build(DefaultCatalog(), DefaultRubric, answers), "extra entry") {
		t.Fatalf("answers without a catalog question must not be rendered")
	}
}

func TestBuildIncludesRubricAndFormat(t *testing.T) {
	prompt := Build(DefaultCatalog(), DefaultRubric, nil)

	if !strings.Contains(prompt, string(DefaultRubric)) {
		t.Fatalf("rubric missing from prompt")
	}

	rubricAt := strings.Index(prompt, "Evaluation Criteria")
	questionsAt := strings.Index(prompt, "Question 1:")
	formatAt := strings.Index(prompt, `"q1_score"`)
	if !(rubricAt < questionsAt && questionsAt < formatAt) {
		t.Fatalf("unexpected section order: rubric=%d questions=%d format=%d", rubricAt, questionsAt, formatAt)
	}

	for _, field := range progress.ScoreFields {
		if !strings.Contains(prompt, `"`+field+`": <integer 1-5>`) {
			t.Fatalf("format block missing %s", field)
		}
	}

	if !strings.Contains(prompt, "DO NOT include any\nother text or explanation.") {
		t.Fatalf("output instruction missing")
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt: %s", prompt)
	}
}

func TestCatalogIsACopy(t *testing.T) {
	catalog := DefaultCatalog()
	catalog[0] = "changed"

	if DefaultCatalog().Question(1) == "changed" {
		t.Fatalf("default catalog must not be shared")
	}

	if catalog.Question(0) != "" || catalog.Question(8) != "" {
		t.Fatalf("out of range questions must be empty")
	}
}

func TestBuildKeepsPlaceholdersInAnswersVerbatim(t *testing.T) {
	answers := progress.AnswerSet{
		{Index: 1, Text: "I write {{FORMAT}} templates"},
		{Index: 2, Text: "see {{QUESTIONS}} and {{RUBRIC}}"},
	}
	rubric := Rubric("Score everything {{QUESTIONS}}")

	prompt := Build(DefaultCatalog(), rubric, answers)

	if !strings.Contains(prompt, "\nAnswer: I write {{FORMAT}} templates\n") {
		t.Fatalf("first answer was rewritten: %s", prompt)
	}

	if !strings.Contains(prompt, "\nAnswer: see {{QUESTIONS}} and {{RUBRIC}}\n") {
		t.Fatalf("second answer was rewritten: %s", prompt)
	}

	if !strings.Contains(prompt, "Score everything {{QUESTIONS}}") {
		t.Fatalf("rubric was rewritten: %s", prompt)
	}

	if got := strings.Count(prompt, `"q1_score"`); got != 1 {
		t.Fatalf("expected a single format block, got %d", got)
	}

	if got := strings.Count(prompt, "Question 1:"); got != 1 {
		t.Fatalf("expected questions rendered once, got %d", got)
	}
}
