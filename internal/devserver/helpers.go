package devserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, detail string) {
	writeJSON(w, statusCode, errorResponse{Detail: detail})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case err == ErrQuizNotFound:
		writeError(w, http.StatusNotFound, "Quiz not found")
	case err == ErrAttemptNotFound:
		writeError(w, http.StatusNotFound, "Attempt not found")
	default:
		writeError(w, http.StatusInternalServerError, "request failed")
	}
}

func pathID(r *http.Request, key string) (int64, bool) {
	raw := chi.URLParam(r, key)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// normalizeAnswer is the grading comparison form: answers match when they
// are equal after trimming surrounding whitespace and lowercasing.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validateQuizInput trims and checks an authoring payload. It returns the
// cleaned input or a client-facing message.
func validateQuizInput(input quizInput) (quizInput, string) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return quizInput{}, "Title is required"
	}
	if len(input.Questions) < 1 {
		return quizInput{}, "At least one question is required"
	}
	if len(input.Questions) > 10 {
		return quizInput{}, "At most 10 questions are allowed"
	}

	input.Description = strings.TrimSpace(input.Description)
	for idx := range input.Questions {
		input.Questions[idx].Text = strings.TrimSpace(input.Questions[idx].Text)
		input.Questions[idx].CorrectAnswer = strings.TrimSpace(input.Questions[idx].CorrectAnswer)
		if input.Questions[idx].Text == "" || input.Questions[idx].CorrectAnswer == "" {
			return quizInput{}, "Each question and answer must be non-empty"
		}
	}
	return input, ""
}

func isoTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}

func toInputRecords(questions []questionInput) []QuestionInputRecord {
	records := make([]QuestionInputRecord, 0, len(questions))
	for _, q := range questions {
		records = append(records, QuestionInputRecord{
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return records
}
