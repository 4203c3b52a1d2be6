package devserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// API serves the quiz backend's REST contract over the sqlite store.
type API struct {
	store *Store
	auth  *Authenticator
	log   *slog.Logger
}

func NewAPI(store *Store, auth *Authenticator, log *slog.Logger) *API {
	if log == nil {
		log = slog.Default()
	}
	return &API{store: store, auth: auth, log: log}
}

// HandleLogin issues a bearer token for a username, creating the user on
// first login. Development convenience only.
func (api *API) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	username := strings.TrimSpace(request.Username)
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	// The uid is stable per username so repeated logins map to one user.
	uid := "dev:" + strings.ToLower(username)
	user, err := api.store.EnsureUser(r.Context(), uid, username)
	if err != nil {
		api.log.Error("ensuring user", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "request failed")
		return
	}

	token, err := api.auth.IssueToken(user)
	if err != nil {
		api.log.Error("issuing token", "username", username, "error", err)
		writeError(w, http.StatusInternalServerError, "request failed")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (api *API) HandleListPublic(w http.ResponseWriter, r *http.Request) {
	quizzes, err := api.store.ListPublicQuizzes(r.Context())
	if err != nil {
		api.log.Error("listing public quizzes", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaries(quizzes))
}

func (api *API) HandleListMine(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())
	quizzes, err := api.store.ListQuizzesByCreator(r.Context(), user.ID)
	if err != nil {
		api.log.Error("listing my quizzes", "user_id", user.ID, "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaries(quizzes))
}

func (api *API) HandleGetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "quizID")
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	quiz, err := api.store.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	user, authed := userFromContext(r.Context())
	isCreator := authed && quiz.CreatorID == user.ID
	if !quiz.IsPublic && !isCreator {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}

	questions, err := api.store.GetQuizQuestions(r.Context(), quizID)
	if err != nil {
		api.log.Error("loading questions", "quiz_id", quizID, "error", err)
		writeStoreError(w, err)
		return
	}

	payload := quizDetailResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		Questions:   make([]questionResponse, 0, len(questions)),
	}
	for _, question := range questions {
		item := questionResponse{
			ID:    question.ID,
			Order: question.Position,
			Text:  question.Text,
		}
		// Correct answers only travel to the quiz's creator, for editing.
		if isCreator {
			answer := question.CorrectAnswer
			item.CorrectAnswer = &answer
		}
		payload.Questions = append(payload.Questions, item)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var input quizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, problem := validateQuizInput(input)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	quiz, err := api.store.CreateQuiz(r.Context(), user.ID, input.Title, input.Description, toInputRecords(input.Questions))
	if err != nil {
		api.log.Error("creating quiz", "user_id", user.ID, "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, quizSummaryResponse{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
	})
}

func (api *API) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "quizID")
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	user, _ := userFromContext(r.Context())

	quiz, err := api.store.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if quiz.CreatorID != user.ID {
		writeError(w, http.StatusForbidden, "You are not allowed to edit this quiz.")
		return
	}

	var input quizInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	input, problem := validateQuizInput(input)
	if problem != "" {
		writeError(w, http.StatusBadRequest, problem)
		return
	}

	if err := api.store.UpdateQuiz(r.Context(), quizID, input.Title, input.Description, toInputRecords(input.Questions)); err != nil {
		api.log.Error("updating quiz", "quiz_id", quizID, "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizSummaryResponse{
		ID:          quizID,
		Title:       input.Title,
		Description: input.Description,
	})
}

func (api *API) HandleDelete(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "quizID")
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	user, _ := userFromContext(r.Context())

	quiz, err := api.store.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if quiz.CreatorID != user.ID {
		writeError(w, http.StatusForbidden, "You are not allowed to delete this quiz.")
		return
	}

	if err := api.store.DeleteQuiz(r.Context(), quizID); err != nil {
		api.log.Error("deleting quiz", "quiz_id", quizID, "error", err)
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSubmit grades a submission against the quiz's questions in order.
// Answers are matched by question identifier; questions the submission
// does not mention grade as blank and incorrect. The full scored result
// is returned and persisted.
func (api *API) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "quizID")
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	user, _ := userFromContext(r.Context())

	quiz, err := api.store.GetQuiz(r.Context(), quizID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	questions, err := api.store.GetQuizQuestions(r.Context(), quizID)
	if err != nil {
		api.log.Error("loading questions", "quiz_id", quizID, "error", err)
		writeStoreError(w, err)
		return
	}

	var request submitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answerLookup := make(map[int64]string, len(request.Answers))
	for _, answer := range request.Answers {
		answerLookup[answer.QuestionID] = strings.TrimSpace(answer.Answer)
	}

	score := 0
	results := make([]answerResultResponse, 0, len(questions))
	graded := make([]GradedAnswer, 0, len(questions))
	for _, question := range questions {
		userAnswer := answerLookup[question.ID]
		isCorrect := normalizeAnswer(userAnswer) == normalizeAnswer(question.CorrectAnswer)
		if isCorrect {
			score++
		}
		results = append(results, answerResultResponse{
			QuestionID:    question.ID,
			Question:      question.Text,
			UserAnswer:    userAnswer,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
		graded = append(graded, GradedAnswer{
			QuestionID: question.ID,
			UserAnswer: userAnswer,
			IsCorrect:  isCorrect,
		})
	}

	attempt, err := api.store.SaveAttempt(r.Context(), quizID, user.ID, score, len(questions), graded)
	if err != nil {
		api.log.Error("saving attempt", "quiz_id", quizID, "user_id", user.ID, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attemptDetailResponse{
		AttemptID: attempt.ID,
		QuizID:    quizID,
		QuizTitle: quiz.Title,
		Score:     score,
		Total:     len(questions),
		Results:   results,
		CreatedAt: isoTimestamp(attempt.CreatedAt),
	})
}

func (api *API) HandleLatestAttempt(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(r, "quizID")
	if !ok {
		writeError(w, http.StatusNotFound, "Quiz not found")
		return
	}
	user, _ := userFromContext(r.Context())

	attempt, err := api.store.LatestAttempt(r.Context(), quizID, user.ID)
	if err == ErrAttemptNotFound {
		writeJSON(w, http.StatusOK, latestAttemptResponse{Attempted: false})
		return
	}
	if err != nil {
		api.log.Error("loading latest attempt", "quiz_id", quizID, "error", err)
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, latestAttemptResponse{
		Attempted:   true,
		AttemptID:   attempt.ID,
		Score:       attempt.Score,
		Total:       attempt.Total,
		CompletedAt: isoTimestamp(attempt.CreatedAt),
	})
}

func (api *API) HandleMyResults(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	attempts, err := api.store.ListAttemptsByUser(r.Context(), user.ID)
	if err != nil {
		api.log.Error("listing attempts", "user_id", user.ID, "error", err)
		writeStoreError(w, err)
		return
	}

	payload := make([]attemptListItemResponse, 0, len(attempts))
	for _, attempt := range attempts {
		payload = append(payload, attemptListItemResponse{
			ID:        attempt.ID,
			QuizID:    attempt.QuizID,
			QuizTitle: attempt.QuizTitle,
			Score:     attempt.Score,
			Total:     attempt.Total,
			CreatedAt: isoTimestamp(attempt.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (api *API) HandleGetAttempt(w http.ResponseWriter, r *http.Request) {
	attemptID, ok := pathID(r, "attemptID")
	if !ok {
		writeError(w, http.StatusNotFound, "Attempt not found")
		return
	}
	user, _ := userFromContext(r.Context())

	attempt, answers, err := api.store.GetAttempt(r.Context(), attemptID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if attempt.UserID != user.ID {
		writeError(w, http.StatusForbidden, "Not authorized to view this attempt")
		return
	}

	results := make([]answerResultResponse, 0, len(answers))
	for _, answer := range answers {
		results = append(results, answerResultResponse{
			QuestionID:    answer.QuestionID,
			Question:      answer.QuestionText,
			UserAnswer:    answer.UserAnswer,
			CorrectAnswer: answer.CorrectAnswer,
			IsCorrect:     answer.IsCorrect,
		})
	}

	// Attempts recorded before answer rows existed still render their
	// questions, unanswered, rather than nothing at all.
	if len(results) == 0 {
		questions, err := api.store.GetQuizQuestions(r.Context(), attempt.QuizID)
		if err == nil {
			for _, question := range questions {
				results = append(results, answerResultResponse{
					QuestionID:    question.ID,
					Question:      question.Text,
					CorrectAnswer: question.CorrectAnswer,
				})
			}
		}
	}

	writeJSON(w, http.StatusOK, attemptDetailResponse{
		AttemptID: attempt.ID,
		QuizID:    attempt.QuizID,
		QuizTitle: attempt.QuizTitle,
		Score:     attempt.Score,
		Total:     attempt.Total,
		Results:   results,
		CreatedAt: isoTimestamp(attempt.CreatedAt),
	})
}

func toSummaries(quizzes []QuizRecord) []quizSummaryResponse {
	payload := make([]quizSummaryResponse, 0, len(quizzes))
	for _, quiz := range quizzes {
		payload = append(payload, quizSummaryResponse{
			ID:          quiz.ID,
			Title:       quiz.Title,
			Description: quiz.Description,
		})
	}
	return payload
}
