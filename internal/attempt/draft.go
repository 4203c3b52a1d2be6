// Package attempt implements the quiz-attempt lifecycle: collecting
// answers for a loaded quiz, packaging them for submission, and decoding
// and rendering the scored result regardless of whether it arrived fresh
// from a submission or was fetched later by attempt identifier.
package attempt

import "quizhub/internal/api"

// Draft holds the in-progress answers for one quiz, index-aligned with the
// quiz's question order: entry i is the free-text answer for question i.
// Entries start empty and stay empty for unanswered questions; an empty
// answer is meaningful and grades as blank.
type Draft []string

// NewDraft allocates a draft sized to the quiz's question count, all
// entries empty.
func NewDraft(questionCount int) Draft {
	return make(Draft, questionCount)
}

// Set replaces the answer at index only. The index comes from iterating
// the quiz's questions, so it is in bounds by construction.
func (d Draft) Set(index int, text string) {
	d[index] = text
}

// Answers returns a copy of the current answers.
func (d Draft) Answers() []string {
	out := make([]string, len(d))
	copy(out, d)
	return out
}

// BuildSubmission zips the quiz's questions with the draft by position:
// exactly one SubmittedAnswer per question, in question order, carrying
// the question's canonical identifier. A draft shorter than the question
// list contributes blank answers for the tail.
func BuildSubmission(questions []api.Question, d Draft) []api.SubmittedAnswer {
	answers := make([]api.SubmittedAnswer, 0, len(questions))
	for idx, question := range questions {
		text := ""
		if idx < len(d) {
			text = d[idx]
		}
		answers = append(answers, api.SubmittedAnswer{
			QuestionID: question.ID,
			Answer:     text,
		})
	}
	return answers
}
