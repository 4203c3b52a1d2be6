package devserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"quizhub/internal/api"
	"quizhub/internal/attempt"
)

type fixedToken string

func (t fixedToken) Token() string { return string(t) }

// The scored result handed back by a submission and the same attempt
// re-fetched later by identifier decode to the same rows and render to
// the same text. The client never needs to know which path a result
// came from.
func TestSubmitThenFetchRendersIdentically(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	creatorClient := api.New(server.URL+"/api", nil, fixedToken(login(t, server, "alice")))
	created, err := creatorClient.CreateQuiz(ctx, api.QuizInput{
		Title:       "Geography",
		Description: "Capitals",
		Questions: []api.QuestionInput{
			{Text: "2+2?", CorrectAnswer: "4"},
			{Text: "Capital of France?", CorrectAnswer: "Paris"},
		},
	})
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	taker := api.New(server.URL+"/api", nil, fixedToken(login(t, server, "bob")))
	quiz, err := taker.GetQuiz(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}

	raw, err := taker.SubmitQuiz(ctx, created.ID, []api.SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, Answer: "4"},
		{QuestionID: quiz.Questions[1].ID, Answer: "Lyon"},
	})
	if err != nil {
		t.Fatalf("SubmitQuiz failed: %v", err)
	}
	ephemeral, err := attempt.Decode(raw, 0)
	if err != nil {
		t.Fatalf("decoding submission result: %v", err)
	}
	if ephemeral.Score != 1 || ephemeral.Total != 2 {
		t.Fatalf("score = %d/%d, want 1/2", ephemeral.Score, ephemeral.Total)
	}

	rawHistorical, err := taker.GetAttempt(ctx, ephemeral.AttemptID)
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	historical, err := attempt.Decode(rawHistorical, ephemeral.AttemptID)
	if err != nil {
		t.Fatalf("decoding historical result: %v", err)
	}

	if !reflect.DeepEqual(ephemeral.Results, historical.Results) {
		t.Fatalf("result rows diverge:\nephemeral:  %+v\nhistorical: %+v",
			ephemeral.Results, historical.Results)
	}

	var fromSubmit, fromFetch bytes.Buffer
	attempt.Render(&fromSubmit, ephemeral)
	attempt.Render(&fromFetch, historical)
	if fromSubmit.String() != fromFetch.String() {
		t.Fatalf("renders diverge:\n--- submit ---\n%s\n--- fetch ---\n%s",
			fromSubmit.String(), fromFetch.String())
	}
}

// An anonymous client can browse but not submit.
func TestAnonymousClientAgainstDevServer(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	creator := api.New(server.URL+"/api", nil, fixedToken(login(t, server, "alice")))
	created, err := creator.CreateQuiz(ctx, api.QuizInput{
		Title:     "Geography",
		Questions: []api.QuestionInput{{Text: "Q?", CorrectAnswer: "A"}},
	})
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	anon := api.New(server.URL+"/api", nil, nil)
	quizzes, err := anon.ListPublicQuizzes(ctx)
	if err != nil {
		t.Fatalf("ListPublicQuizzes failed: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("quizzes = %d, want 1", len(quizzes))
	}

	_, err = anon.SubmitQuiz(ctx, created.ID, nil)
	if err == nil {
		t.Fatalf("anonymous submit should fail")
	}
	if !api.IsAuth(err) {
		t.Fatalf("anonymous submit error = %v, want auth error", err)
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %v, want 401", err)
	}
}
