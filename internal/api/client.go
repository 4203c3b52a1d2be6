package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// DefaultBaseURL is where a local backend serves the API when no server
// is configured.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

// ErrUnavailable wraps transport-level failures: the request never reached
// the backend, or no response came back.
var ErrUnavailable = errors.New("quiz service unavailable")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsAuth reports whether err is a 401 or 403 from the backend.
func IsAuth(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// TokenSource supplies the bearer token for outgoing requests. It is read
// at request-construction time for every call, so a refreshed token takes
// effect immediately. An empty string means anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client is a typed HTTP client for the quiz backend's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New builds a Client. tokens may be nil for an always-anonymous client.
func New(baseURL string, httpClient *http.Client, tokens TokenSource) *Client {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
	}
}

// ListPublicQuizzes fetches all public quizzes, newest first.
func (c *Client) ListPublicQuizzes(ctx context.Context) ([]QuizSummary, error) {
	var payload []QuizSummary
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListMyQuizzes fetches the quizzes authored by the caller.
func (c *Client) ListMyQuizzes(ctx context.Context) ([]QuizSummary, error) {
	var payload []QuizSummary
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes/my", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetQuiz fetches one quiz with its questions in order.
func (c *Client) GetQuiz(ctx context.Context, quizID int64) (QuizDetail, error) {
	var payload QuizDetail
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes/"+formatID(quizID), nil, &payload); err != nil {
		return QuizDetail{}, err
	}
	return payload, nil
}

// CreateQuiz creates a quiz from the given title, description and questions.
func (c *Client) CreateQuiz(ctx context.Context, input QuizInput) (QuizSummary, error) {
	var payload QuizSummary
	if err := c.doJSON(ctx, http.MethodPost, "/quizzes", input, &payload); err != nil {
		return QuizSummary{}, err
	}
	return payload, nil
}

// UpdateQuiz replaces a quiz's fields and questions.
func (c *Client) UpdateQuiz(ctx context.Context, quizID int64, input QuizInput) (QuizSummary, error) {
	var payload QuizSummary
	if err := c.doJSON(ctx, http.MethodPut, "/quizzes/"+formatID(quizID), input, &payload); err != nil {
		return QuizSummary{}, err
	}
	return payload, nil
}

// DeleteQuiz removes a quiz. Only the quiz's creator may delete it.
func (c *Client) DeleteQuiz(ctx context.Context, quizID int64) error {
	return c.doJSON(ctx, http.MethodDelete, "/quizzes/"+formatID(quizID), nil, nil)
}

type submitRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

// SubmitQuiz posts the collected answers for grading. The scored attempt
// payload is returned raw, exactly as the backend produced it, so the
// caller can run it through the same decoding step as a historical fetch.
func (c *Client) SubmitQuiz(ctx context.Context, quizID int64, answers []SubmittedAnswer) (json.RawMessage, error) {
	var payload json.RawMessage
	path := "/quizzes/" + formatID(quizID) + "/submit"
	if err := c.doJSON(ctx, http.MethodPost, path, submitRequest{Answers: answers}, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// MyLatestAttempt fetches the caller's latest attempt summary for a quiz.
func (c *Client) MyLatestAttempt(ctx context.Context, quizID int64) (AttemptSummary, error) {
	var payload AttemptSummary
	path := "/quizzes/" + formatID(quizID) + "/my-latest-attempt"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return AttemptSummary{}, err
	}
	return payload, nil
}

// MyResults fetches the caller's attempt history, newest first.
func (c *Client) MyResults(ctx context.Context) ([]AttemptListItem, error) {
	var payload []AttemptListItem
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes/my-results", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetAttempt fetches a full historical attempt by identifier, raw, for the
// caller to decode.
func (c *Client) GetAttempt(ctx context.Context, attemptID int64) (json.RawMessage, error) {
	var payload json.RawMessage
	path := "/quizzes/attempts/" + formatID(attemptID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// DevLogin requests a bearer token from the development server's login
// endpoint. Real deployments issue tokens through an external identity
// provider instead.
func (c *Client) DevLogin(ctx context.Context, username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", errors.New("username is required")
	}

	var payload loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username}, &payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}

// errorBody matches both backend error envelopes: {"detail": ...} from the
// production backend and {"error": ...} from older builds.
type errorBody struct {
	Detail string `json:"detail"`
	Err    string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorBody
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
			if strings.TrimSpace(payload.Detail) != "" {
				apiErr.Message = payload.Detail
			} else if strings.TrimSpace(payload.Err) != "" {
				apiErr.Message = payload.Err
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	if response.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
