package attempt

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderScoreAndMarks(t *testing.T) {
	var out bytes.Buffer
	Render(&out, Result{
		QuizTitle: "Geography",
		Score:     1,
		Total:     2,
		Results: []QuestionResult{
			{Question: "2+2?", UserAnswer: "4", CorrectAnswer: "4", Correct: true},
			{Question: "Capital of France?", UserAnswer: "Lyon", CorrectAnswer: "Paris", Correct: false},
		},
	})

	text := out.String()
	if !strings.Contains(text, "Geography") {
		t.Fatalf("expected quiz title, got: %s", text)
	}
	if !strings.Contains(text, "Your Score: 1 / 2") {
		t.Fatalf("expected score line, got: %s", text)
	}
	if !strings.Contains(text, "1. 2+2? [correct]") {
		t.Fatalf("expected correct mark, got: %s", text)
	}
	if !strings.Contains(text, "2. Capital of France? [wrong]") {
		t.Fatalf("expected wrong mark, got: %s", text)
	}
	// The correct answer shows even on a wrong row.
	if !strings.Contains(text, "Correct answer: Paris") {
		t.Fatalf("expected correct answer for wrong row, got: %s", text)
	}
}

func TestRenderBlankAnswerMarker(t *testing.T) {
	var out bytes.Buffer
	Render(&out, Result{
		Score: 0,
		Total: 1,
		Results: []QuestionResult{
			{Question: "Q?", UserAnswer: "", CorrectAnswer: "A", Correct: false},
		},
	})

	if !strings.Contains(out.String(), "Your answer: (blank)") {
		t.Fatalf("expected blank marker, got: %s", out.String())
	}
}

func TestRenderLiteralAnswerText(t *testing.T) {
	var out bytes.Buffer
	Render(&out, Result{
		Score: 0,
		Total: 1,
		Results: []QuestionResult{
			{Question: "Q?", UserAnswer: "  spaced  ", CorrectAnswer: "A"},
		},
	})

	if !strings.Contains(out.String(), "Your answer:   spaced  \n") {
		t.Fatalf("expected literal answer text, got: %q", out.String())
	}
}

func TestRenderNoDetailsPlaceholder(t *testing.T) {
	var out bytes.Buffer
	Render(&out, Result{Score: 3, Total: 5, Results: []QuestionResult{}})

	text := out.String()
	if !strings.Contains(text, "No question details available.") {
		t.Fatalf("expected placeholder, got: %s", text)
	}
	if !strings.Contains(text, "Quiz Results") {
		t.Fatalf("expected fallback title, got: %s", text)
	}
}

func TestRenderTimestampLine(t *testing.T) {
	var out bytes.Buffer
	Render(&out, Result{CreatedAt: "2026-03-01T10:20:30Z"})

	if !strings.Contains(out.String(), "Attempted on 2026-03-01 10:20:30") {
		t.Fatalf("expected timestamp line, got: %s", out.String())
	}
}
