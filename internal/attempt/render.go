package attempt

import (
	"fmt"
	"io"
	"time"
)

// Render writes a scored attempt in its display form. Ephemeral and
// historical results render through this one function so both provenances
// look identical for the same data.
//
// Rules: a blank stored answer shows an explicit "(blank)" marker, never an
// empty string; the correct answer is always shown, right or wrong; an
// attempt without per-question detail gets an explicit placeholder instead
// of an empty list.
func Render(w io.Writer, r Result) {
	title := r.QuizTitle
	if title == "" {
		title = "Quiz Results"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "Your Score: %d / %d\n", r.Score, r.Total)
	if r.CreatedAt != "" {
		fmt.Fprintf(w, "Attempted on %s\n", formatTimestamp(r.CreatedAt))
	}
	fmt.Fprintln(w)

	if len(r.Results) == 0 {
		fmt.Fprintln(w, "No question details available.")
		return
	}

	for idx, row := range r.Results {
		mark := "wrong"
		if row.Correct {
			mark = "correct"
		}
		fmt.Fprintf(w, "%d. %s [%s]\n", idx+1, row.Question, mark)
		if row.UserAnswer == "" {
			fmt.Fprintln(w, "   Your answer: (blank)")
		} else {
			fmt.Fprintf(w, "   Your answer: %s\n", row.UserAnswer)
		}
		fmt.Fprintf(w, "   Correct answer: %s\n", row.CorrectAnswer)
	}
}

func formatTimestamp(value string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.Format("2006-01-02 15:04:05")
		}
	}
	return value
}
