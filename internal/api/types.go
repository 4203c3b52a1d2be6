package api

// QuizSummary is the listing form of a quiz, without questions.
type QuizSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Question as served by the quiz detail endpoint. CorrectAnswer is only
// populated when the caller is the quiz's creator; for everyone else the
// backend sends null.
type Question struct {
	ID            int64   `json:"id"`
	Order         int     `json:"order"`
	Text          string  `json:"text"`
	CorrectAnswer *string `json:"correct_answer"`
}

// QuizDetail is one quiz with its questions in display order.
type QuizDetail struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

type QuestionInput struct {
	Text          string `json:"text"`
	CorrectAnswer string `json:"correct_answer"`
}

// QuizInput is the create/update payload for authoring a quiz.
type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// SubmittedAnswer pairs a question identifier with the user's free-text
// answer. Identifiers are canonical on the wire; positional order only
// matters while the draft is being collected.
type SubmittedAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

// AttemptSummary is the latest-attempt probe result for one quiz. The
// backend answers {"attempted": false} when the caller never took the quiz.
type AttemptSummary struct {
	Attempted   bool   `json:"attempted"`
	AttemptID   int64  `json:"attempt_id"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
	CompletedAt string `json:"completed_at"`
}

// AttemptListItem is one row of the caller's attempt history.
type AttemptListItem struct {
	ID        int64  `json:"id"`
	QuizID    int64  `json:"quiz_id"`
	QuizTitle string `json:"quiz_title"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	CreatedAt string `json:"created_at"`
}
