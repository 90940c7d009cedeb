package prompt

import "github.com/spigell/progress-evaluator/internal/progress"

// Catalog holds the question texts; question N is stored at index N-1.
type Catalog [progress.QuestionCount]string

// DefaultCatalog returns the career progress questions.
func DefaultCatalog() Catalog {
	return Catalog{
		"Describe a major professional challenge you've overcome in the last year.",
		"What new skills have you acquired recently, and how have you applied them?",
		"How do you handle constructive criticism and feedback?",
		"Describe a time you collaborated effectively with a team to achieve a goal.",
		"What are your career goals for the next three years?",
		"How have you contributed to a positive work culture?",
		"What do you do to stay updated in your field?",
	}
}

// Question returns the text of the 1-based question index.
func (c Catalog) Question(index int) string {
	if index < 1 || index > len(c) {
		return ""
	}
	return c[index-1]
}

// Rubric is the scoring guide given to the scoring service.
type Rubric string

const DefaultRubric Rubric = `Evaluation Criteria (Score 1-5):
- Score 1 (Low): Answer is brief, lacks detail, or misses the point. Shows minimal effort or progress.
- Score 2: Some relevance, but the answer is generic and lacks specific examples.
- Score 3 (Medium): Addresses the question with some detail, but could be more specific or reflective.
- Score 4: Good detail with some specific examples. Demonstrates clear thought and some progress.
- Score 5 (High): Answer is well-structured, detailed, and provides specific, quantifiable examples.
  Demonstrates significant progress, deep reflection, and a strong sense of purpose.`
