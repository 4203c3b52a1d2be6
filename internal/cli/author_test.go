package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunDeleteConfirmsThenReloads(t *testing.T) {
	var deleted bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/quizzes/1":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/quizzes/my":
			if !deleted {
				t.Fatalf("listing reloaded before the delete completed")
			}
			_, _ = w.Write([]byte(`[{"id":2,"title":"Math","description":""}]`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	a, out := newTestApp(server.URL, "tok", "yes\n")
	if err := runDelete(context.Background(), a, 1); err != nil {
		t.Fatalf("runDelete failed: %v", err)
	}

	text := out.String()
	if !deleted {
		t.Fatalf("DELETE request never sent")
	}
	if !strings.Contains(text, "Deleted quiz #1.") {
		t.Fatalf("expected deletion notice, got: %s", text)
	}
	// The refreshed listing shows the surviving quiz.
	if !strings.Contains(text, "#2 Math") {
		t.Fatalf("expected reloaded listing, got: %s", text)
	}
}

func TestRunDeleteDeclinedSendsNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	a, _ := newTestApp(server.URL, "tok", "no\n")
	if err := runDelete(context.Background(), a, 1); err != nil {
		t.Fatalf("runDelete failed: %v", err)
	}
}

func TestRunCreatePostsQuizInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/quizzes" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":3,"title":"Geography","description":"Capitals"}`))
	}))
	defer server.Close()

	input := strings.Join([]string{
		"Geography",           // title
		"Capitals",            // description
		"Capital of France?",  // question 1
		"Paris",               // answer 1
		"",                    // finish questions
	}, "\n") + "\n"

	a, out := newTestApp(server.URL, "tok", input)
	if err := runCreate(context.Background(), a); err != nil {
		t.Fatalf("runCreate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Created quiz #3: Geography") {
		t.Fatalf("expected creation notice, got: %s", out.String())
	}
}

func TestRunEditKeepsRemovesAndAddsQuestions(t *testing.T) {
	var updated struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Questions   []struct {
			Text          string `json:"text"`
			CorrectAnswer string `json:"correct_answer"`
		} `json:"questions"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quizzes/1":
			// Creator view: correct answers included for editing.
			_, _ = w.Write([]byte(`{
				"id": 1,
				"title": "Geography",
				"description": "Capitals",
				"questions": [
					{"id": 10, "text": "2+2?", "correct_answer": "4"},
					{"id": 11, "text": "Capital of France?", "correct_answer": "Paris"}
				]
			}`))
		case r.Method == http.MethodPut && r.URL.Path == "/quizzes/1":
			if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
				t.Fatalf("decoding update payload: %v", err)
			}
			_, _ = w.Write([]byte(`{"id":1,"title":"Geography v2","description":"Capitals"}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	// New title; enter keeps the description; '-' removes the first
	// question; enter twice keeps the second as-is; one appended question;
	// empty line ends the add loop.
	input := strings.Join([]string{
		"Geography v2",
		"",
		"-",
		"",
		"",
		"Capital of Japan?",
		"Tokyo",
		"",
	}, "\n") + "\n"

	a, out := newTestApp(server.URL, "tok", input)
	if err := runEdit(context.Background(), a, 1); err != nil {
		t.Fatalf("runEdit failed: %v", err)
	}

	if updated.Title != "Geography v2" {
		t.Fatalf("title = %q, want %q", updated.Title, "Geography v2")
	}
	if updated.Description != "Capitals" {
		t.Fatalf("description = %q, want kept %q", updated.Description, "Capitals")
	}
	if len(updated.Questions) != 2 {
		t.Fatalf("questions = %+v, want 2 (one removed, one kept, one added)", updated.Questions)
	}
	if updated.Questions[0].Text != "Capital of France?" || updated.Questions[0].CorrectAnswer != "Paris" {
		t.Fatalf("kept question = %+v", updated.Questions[0])
	}
	if updated.Questions[1].Text != "Capital of Japan?" || updated.Questions[1].CorrectAnswer != "Tokyo" {
		t.Fatalf("added question = %+v", updated.Questions[1])
	}
	if !strings.Contains(out.String(), "Saved quiz #1: Geography v2") {
		t.Fatalf("expected save notice, got: %s", out.String())
	}
}

func TestRunEditRejectsRemovingEveryQuestion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/quizzes/1" {
			_, _ = w.Write([]byte(`{"id":1,"title":"Geography","questions":[{"id":10,"text":"Q?","correct_answer":"A"}]}`))
			return
		}
		t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer server.Close()

	// Keep the title and description, remove the only question, add none.
	a, _ := newTestApp(server.URL, "tok", "\n\n-\n\n")
	err := runEdit(context.Background(), a, 1)
	if err == nil {
		t.Fatalf("expected error when every question is removed")
	}
	if !strings.Contains(err.Error(), "at least one question") {
		t.Fatalf("error = %v", err)
	}
}

func TestRunCreateRequiresAQuestion(t *testing.T) {
	var created bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		created = true
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":3,"title":"T","description":""}`))
	}))
	defer server.Close()

	// Empty question text first; the prompt loops until one is supplied.
	input := "T\n\n\nQ?\nA\n\n"
	a, out := newTestApp(server.URL, "tok", input)
	if err := runCreate(context.Background(), a); err != nil {
		t.Fatalf("runCreate failed: %v", err)
	}
	if !created {
		t.Fatalf("quiz never created")
	}
	if !strings.Contains(out.String(), "At least one question is required.") {
		t.Fatalf("expected requirement notice, got: %s", out.String())
	}
}
