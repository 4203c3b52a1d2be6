package attempt

import "encoding/json"

// Result is the canonical scored attempt. It has two construction paths:
// decoded straight from a submission response (ephemeral, never stored by
// the client) or from a historical fetch by attempt identifier. Both go
// through Decode so the rendering side never sees backend shape drift.
type Result struct {
	AttemptID int64            `json:"attempt_id"`
	QuizID    int64            `json:"quiz_id,omitempty"`
	QuizTitle string           `json:"quiz_title,omitempty"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	Results   []QuestionResult `json:"results"`
	CreatedAt string           `json:"created_at,omitempty"`
}

// QuestionResult is one graded question inside a Result.
type QuestionResult struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"is_correct"`
}

// rawAttempt tolerates the field-name drift seen across backend versions.
type rawAttempt struct {
	AttemptID *int64          `json:"attempt_id"`
	ID        *int64          `json:"id"`
	QuizID    *int64          `json:"quiz_id"`
	QuizIDAlt *int64          `json:"quizId"`
	QuizTitle string          `json:"quiz_title"`
	Score     int             `json:"score"`
	Total     int             `json:"total"`
	Results   json.RawMessage `json:"results"`
	CreatedAt string          `json:"created_at"`
}

type rawQuestionResult struct {
	Question      string  `json:"question"`
	UserAnswer    *string `json:"user_answer"`
	CorrectAnswer *string `json:"correct_answer"`
	IsCorrect     *bool   `json:"is_correct"`
	Correct       *bool   `json:"correct"`
}

// Decode normalizes a backend attempt payload into the canonical Result
// shape. Fallback rules, in order:
//
//   - attempt identifier: attempt_id, then id, then requestedID
//   - quiz identifier: quiz_id, then quizId, then 0
//   - per-question correctness: is_correct, then correct, then false
//   - a missing or non-array results field becomes an empty slice
//
// Decode is idempotent: an already-canonical payload comes back unchanged.
// It fails only when the payload is not a JSON object at all.
func Decode(raw json.RawMessage, requestedID int64) (Result, error) {
	var payload rawAttempt
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Result{}, err
	}

	result := Result{
		AttemptID: requestedID,
		QuizTitle: payload.QuizTitle,
		Score:     payload.Score,
		Total:     payload.Total,
		CreatedAt: payload.CreatedAt,
	}
	if payload.AttemptID != nil {
		result.AttemptID = *payload.AttemptID
	} else if payload.ID != nil {
		result.AttemptID = *payload.ID
	}
	if payload.QuizID != nil {
		result.QuizID = *payload.QuizID
	} else if payload.QuizIDAlt != nil {
		result.QuizID = *payload.QuizIDAlt
	}

	result.Results = decodeRows(payload.Results)
	return result, nil
}

func decodeRows(raw json.RawMessage) []QuestionResult {
	rows := []QuestionResult{}
	if len(raw) == 0 {
		return rows
	}

	var decoded []rawQuestionResult
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Tolerate a malformed or non-array results field instead of
		// failing the whole attempt.
		return rows
	}

	for _, row := range decoded {
		item := QuestionResult{
			Question: row.Question,
		}
		if item.Question == "" {
			item.Question = "Unknown question"
		}
		if row.UserAnswer != nil {
			item.UserAnswer = *row.UserAnswer
		}
		if row.CorrectAnswer != nil {
			item.CorrectAnswer = *row.CorrectAnswer
		}
		if row.IsCorrect != nil {
			item.Correct = *row.IsCorrect
		} else if row.Correct != nil {
			item.Correct = *row.Correct
		}
		rows = append(rows, item)
	}
	return rows
}
