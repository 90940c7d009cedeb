// Package progress holds the career progress data model: the answers a user
// gave to the question catalog and the scores returned for them.
package progress

// QuestionCount is the number of questions in the catalog and the number of
// per-question scores expected back.
const QuestionCount = 7

// NoAnswer replaces answer text that is absent from the stored document.
const NoAnswer = "No answer provided."

// Answer is a single answer numbered by its position in the stored document.
type Answer struct {
	Index int
	Text  string
}

// AnswerSet is the ordered list of a user's answers, numbered from 1.
type AnswerSet []Answer

func (s AnswerSet) Len() int { return len(s) }

func (s AnswerSet) Empty() bool { return len(s) == 0 }

// Lookup returns the answer for the given question index.
func (s AnswerSet) Lookup(index int) (string, bool) {
	for _, a := range s {
		if a.Index == index {
			return a.Text, true
		}
	}
	return "", false
}

// TextOrPlaceholder returns the answer for index or NoAnswer when missing.
func (s AnswerSet) TextOrPlaceholder(index int) string {
	if text, ok := s.Lookup(index); ok {
		return text
	}
	return NoAnswer
}
