package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunTakeSubmitsAndRendersResult(t *testing.T) {
	var submitted []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quizzes/1":
			_, _ = w.Write([]byte(`{
				"id": 1,
				"title": "Geography",
				"description": "Capitals",
				"questions": [
					{"id": 10, "text": "2+2?"},
					{"id": 11, "text": "Capital of France?"}
				]
			}`))
		case r.Method == http.MethodPost && r.URL.Path == "/quizzes/1/submit":
			var body struct {
				Answers []map[string]any `json:"answers"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding submission: %v", err)
			}
			submitted = body.Answers
			_, _ = w.Write([]byte(`{
				"attempt_id": 7,
				"quiz_id": 1,
				"quiz_title": "Geography",
				"score": 1,
				"total": 2,
				"results": [
					{"question":"2+2?","user_answer":"4","correct_answer":"4","is_correct":true},
					{"question":"Capital of France?","user_answer":"Lyon","correct_answer":"Paris","is_correct":false}
				]
			}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	a, out := newTestApp(server.URL, "tok", "4\nLyon\n")
	if err := runTake(context.Background(), a, 1); err != nil {
		t.Fatalf("runTake failed: %v", err)
	}

	if len(submitted) != 2 {
		t.Fatalf("submitted %d answers, want 2", len(submitted))
	}
	if submitted[0]["question_id"].(float64) != 10 || submitted[0]["answer"] != "4" {
		t.Fatalf("first answer = %v", submitted[0])
	}
	if submitted[1]["question_id"].(float64) != 11 || submitted[1]["answer"] != "Lyon" {
		t.Fatalf("second answer = %v", submitted[1])
	}

	text := out.String()
	if !strings.Contains(text, "Your Score: 1 / 2") {
		t.Fatalf("expected rendered score, got: %s", text)
	}
	if !strings.Contains(text, "Capital of France? [wrong]") {
		t.Fatalf("expected wrong mark, got: %s", text)
	}
}

func TestRunTakeKeepsDraftAcrossRetry(t *testing.T) {
	var submissions [][]map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quizzes/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Geography","questions":[{"id":10,"text":"2+2?"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/quizzes/1/submit":
			var body struct {
				Answers []map[string]any `json:"answers"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("decoding submission: %v", err)
			}
			submissions = append(submissions, body.Answers)
			if len(submissions) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"detail":"temporary failure"}`))
				return
			}
			_, _ = w.Write([]byte(`{"attempt_id":9,"score":1,"total":1,"results":[{"question":"2+2?","user_answer":"4","correct_answer":"4","is_correct":true}]}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	// One answer, then "yes" to the retry prompt.
	a, out := newTestApp(server.URL, "tok", "4\nyes\n")
	if err := runTake(context.Background(), a, 1); err != nil {
		t.Fatalf("runTake failed: %v", err)
	}

	if len(submissions) != 2 {
		t.Fatalf("submissions = %d, want 2", len(submissions))
	}
	// The retried payload carries the same drafted answer.
	if submissions[1][0]["answer"] != "4" {
		t.Fatalf("retried answer = %v, want preserved draft", submissions[1][0])
	}
	if !strings.Contains(out.String(), "Your Score: 1 / 1") {
		t.Fatalf("expected rendered result after retry, got: %s", out.String())
	}
}

func TestRunTakeDecliningRetryKeepsNothingSubmitted(t *testing.T) {
	var submissions int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quizzes/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Geography","questions":[{"id":10,"text":"2+2?"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/quizzes/1/submit":
			submissions++
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"temporary failure"}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	a, _ := newTestApp(server.URL, "tok", "4\nno\n")
	if err := runTake(context.Background(), a, 1); err != nil {
		t.Fatalf("runTake failed: %v", err)
	}
	if submissions != 1 {
		t.Fatalf("submissions = %d, want 1 after declining retry", submissions)
	}
}

func TestRunTakeSurfacesBrokenRetryPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/quizzes/1":
			_, _ = w.Write([]byte(`{"id":1,"title":"Geography","questions":[{"id":10,"text":"2+2?"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/quizzes/1/submit":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"temporary failure"}`))
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	// The input ends after the answer, so the retry prompt hits EOF.
	a, _ := newTestApp(server.URL, "tok", "4\n")
	if err := runTake(context.Background(), a, 1); err == nil {
		t.Fatalf("expected error when the retry prompt cannot be read")
	}
}
