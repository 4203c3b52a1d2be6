package devserver

type quizSummaryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type questionResponse struct {
	ID    int64  `json:"id"`
	Order int    `json:"order"`
	Text  string `json:"text"`
	// Pointer so non-creators get an explicit null instead of leaking "".
	CorrectAnswer *string `json:"correct_answer"`
}

type quizDetailResponse struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []questionResponse `json:"questions"`
}

type questionInput struct {
	Text          string `json:"text"`
	CorrectAnswer string `json:"correct_answer"`
}

type quizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []questionInput `json:"questions"`
}

type submittedAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

type submitRequest struct {
	Answers []submittedAnswer `json:"answers"`
}

type answerResultResponse struct {
	QuestionID    int64  `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

type attemptDetailResponse struct {
	AttemptID int64                  `json:"attempt_id"`
	QuizID    int64                  `json:"quiz_id"`
	QuizTitle string                 `json:"quiz_title"`
	Score     int                    `json:"score"`
	Total     int                    `json:"total"`
	Results   []answerResultResponse `json:"results"`
	CreatedAt string                 `json:"created_at"`
}

type attemptListItemResponse struct {
	ID        int64  `json:"id"`
	QuizID    int64  `json:"quiz_id"`
	QuizTitle string `json:"quiz_title"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	CreatedAt string `json:"created_at"`
}

type latestAttemptResponse struct {
	Attempted   bool   `json:"attempted"`
	AttemptID   int64  `json:"attempt_id,omitempty"`
	Score       int    `json:"score,omitempty"`
	Total       int    `json:"total,omitempty"`
	CompletedAt string `json:"completed_at,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
