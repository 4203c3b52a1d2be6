package devserver

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID       int64
	UID      string
	Username string
}

type QuizRecord struct {
	ID          int64
	Title       string
	Description string
	CreatorID   int64
	IsPublic    bool
	CreatedAt   time.Time
}

type QuestionRecord struct {
	ID            int64
	QuizID        int64
	Position      int
	Text          string
	CorrectAnswer string
}

type AttemptRecord struct {
	ID        int64
	QuizID    int64
	UserID    int64
	Score     int
	Total     int
	QuizTitle string
	CreatedAt time.Time
}

// AttemptAnswerRecord is one graded answer row, joined with its question
// so the attempt-detail handler can show text and correct answer.
type AttemptAnswerRecord struct {
	QuestionID    int64
	UserAnswer    string
	IsCorrect     bool
	QuestionText  string
	CorrectAnswer string
}

// Store is the dev server's sqlite persistence layer.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the sqlite database at path and ensures the
// schema. Pass ":memory:" for an ephemeral store in tests.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = "quizhub-dev.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Single connection keeps the in-memory database coherent and avoids
	// SQLITE_BUSY under the CLI's concurrent latest-attempt lookups.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quizzes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			creator_id INTEGER NOT NULL,
			is_public INTEGER NOT NULL DEFAULT 1,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS questions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			text TEXT NOT NULL,
			correct_answer TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quiz_id INTEGER NOT NULL,
			user_id INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			total INTEGER NOT NULL DEFAULT 0,
			created_at_unix INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempt_answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			user_answer TEXT NOT NULL DEFAULT '',
			is_correct INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_questions_quiz ON questions(quiz_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_quiz_user ON attempts(quiz_id, user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_answers_attempt ON attempt_answers(attempt_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// EnsureUser resolves a user by uid, creating the row on first sight.
func (s *Store) EnsureUser(ctx context.Context, uid, username string) (User, error) {
	user, err := s.GetUserByUID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO users (uid, username) VALUES (?, ?)`, uid, username)
	if err != nil {
		return User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return User{}, err
	}
	return User{ID: id, UID: uid, Username: username}, nil
}

func (s *Store) GetUserByUID(ctx context.Context, uid string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, uid, username FROM users WHERE uid = ?`, uid).
		Scan(&user.ID, &user.UID, &user.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) ListPublicQuizzes(ctx context.Context) ([]QuizRecord, error) {
	return s.listQuizzes(ctx,
		`SELECT id, title, description, creator_id, is_public, created_at_unix
		 FROM quizzes WHERE is_public = 1 ORDER BY created_at_unix DESC, id DESC`)
}

func (s *Store) ListQuizzesByCreator(ctx context.Context, creatorID int64) ([]QuizRecord, error) {
	return s.listQuizzes(ctx,
		`SELECT id, title, description, creator_id, is_public, created_at_unix
		 FROM quizzes WHERE creator_id = ? ORDER BY created_at_unix DESC, id DESC`, creatorID)
}

func (s *Store) listQuizzes(ctx context.Context, query string, args ...any) ([]QuizRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quizzes := make([]QuizRecord, 0)
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	return quizzes, rows.Err()
}

func (s *Store) GetQuiz(ctx context.Context, quizID int64) (QuizRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, creator_id, is_public, created_at_unix
		 FROM quizzes WHERE id = ?`, quizID)

	quiz, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return QuizRecord{}, ErrQuizNotFound
	}
	if err != nil {
		return QuizRecord{}, err
	}
	return quiz, nil
}

func (s *Store) GetQuizQuestions(ctx context.Context, quizID int64) ([]QuestionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, quiz_id, position, text, correct_answer
		 FROM questions WHERE quiz_id = ? ORDER BY position ASC`, quizID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]QuestionRecord, 0)
	for rows.Next() {
		var q QuestionRecord
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Position, &q.Text, &q.CorrectAnswer); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// QuestionInputRecord is the store-level authoring form of a question.
type QuestionInputRecord struct {
	Text          string
	CorrectAnswer string
}

func (s *Store) CreateQuiz(ctx context.Context, creatorID int64, title, description string, questions []QuestionInputRecord) (QuizRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuizRecord{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO quizzes (title, description, creator_id, is_public, created_at_unix)
		 VALUES (?, ?, ?, 1, ?)`,
		title, description, creatorID, now.Unix())
	if err != nil {
		return QuizRecord{}, err
	}
	quizID, err := result.LastInsertId()
	if err != nil {
		return QuizRecord{}, err
	}

	if err := insertQuestions(ctx, tx, quizID, questions); err != nil {
		return QuizRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return QuizRecord{}, err
	}

	return QuizRecord{
		ID:          quizID,
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
		IsPublic:    true,
		CreatedAt:   now,
	}, nil
}

// UpdateQuiz replaces the quiz's fields and its full question set.
func (s *Store) UpdateQuiz(ctx context.Context, quizID int64, title, description string, questions []QuestionInputRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE quizzes SET title = ?, description = ? WHERE id = ?`,
		title, description, quizID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quizID); err != nil {
		return err
	}
	if err := insertQuestions(ctx, tx, quizID, questions); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteQuiz removes the quiz and its questions. Attempts survive; the
// history listing falls back to an empty title for orphaned attempts.
func (s *Store) DeleteQuiz(ctx context.Context, quizID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE quiz_id = ?`, quizID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM quizzes WHERE id = ?`, quizID); err != nil {
		return err
	}
	return tx.Commit()
}

// GradedAnswer is one scored answer to persist alongside an attempt.
type GradedAnswer struct {
	QuestionID int64
	UserAnswer string
	IsCorrect  bool
}

func (s *Store) SaveAttempt(ctx context.Context, quizID, userID int64, score, total int, answers []GradedAnswer) (AttemptRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttemptRecord{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO attempts (quiz_id, user_id, score, total, created_at_unix)
		 VALUES (?, ?, ?, ?, ?)`,
		quizID, userID, score, total, now.Unix())
	if err != nil {
		return AttemptRecord{}, err
	}
	attemptID, err := result.LastInsertId()
	if err != nil {
		return AttemptRecord{}, err
	}

	for _, answer := range answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attempt_answers (attempt_id, question_id, user_answer, is_correct)
			 VALUES (?, ?, ?, ?)`,
			attemptID, answer.QuestionID, answer.UserAnswer, boolToInt(answer.IsCorrect)); err != nil {
			return AttemptRecord{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return AttemptRecord{}, err
	}

	return AttemptRecord{
		ID:        attemptID,
		QuizID:    quizID,
		UserID:    userID,
		Score:     score,
		Total:     total,
		CreatedAt: now,
	}, nil
}

// LatestAttempt returns the user's most recent attempt for a quiz, or
// ErrAttemptNotFound when there is none.
func (s *Store) LatestAttempt(ctx context.Context, quizID, userID int64) (AttemptRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, quiz_id, user_id, score, total, created_at_unix
		 FROM attempts WHERE quiz_id = ? AND user_id = ?
		 ORDER BY created_at_unix DESC, id DESC LIMIT 1`, quizID, userID)

	attempt, err := scanAttempt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return AttemptRecord{}, ErrAttemptNotFound
	}
	if err != nil {
		return AttemptRecord{}, err
	}
	return attempt, nil
}

// ListAttemptsByUser returns the user's attempts newest first, with the
// quiz title joined in (empty when the quiz was deleted).
func (s *Store) ListAttemptsByUser(ctx context.Context, userID int64) ([]AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.id, a.quiz_id, a.user_id, a.score, a.total, a.created_at_unix,
		        COALESCE(q.title, '')
		 FROM attempts a LEFT JOIN quizzes q ON q.id = a.quiz_id
		 WHERE a.user_id = ? ORDER BY a.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]AttemptRecord, 0)
	for rows.Next() {
		var a AttemptRecord
		var createdUnix int64
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Score, &a.Total, &createdUnix, &a.QuizTitle); err != nil {
			return nil, err
		}
		a.CreatedAt = time.Unix(createdUnix, 0).UTC()
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// GetAttempt fetches one attempt with its graded answer rows joined to
// question text and correct answers.
func (s *Store) GetAttempt(ctx context.Context, attemptID int64) (AttemptRecord, []AttemptAnswerRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT a.id, a.quiz_id, a.user_id, a.score, a.total, a.created_at_unix,
		        COALESCE(q.title, '')
		 FROM attempts a LEFT JOIN quizzes q ON q.id = a.quiz_id
		 WHERE a.id = ?`, attemptID)

	var attempt AttemptRecord
	var createdUnix int64
	err := row.Scan(&attempt.ID, &attempt.QuizID, &attempt.UserID, &attempt.Score,
		&attempt.Total, &createdUnix, &attempt.QuizTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return AttemptRecord{}, nil, ErrAttemptNotFound
	}
	if err != nil {
		return AttemptRecord{}, nil, err
	}
	attempt.CreatedAt = time.Unix(createdUnix, 0).UTC()

	rows, err := s.db.QueryContext(ctx,
		`SELECT aa.question_id, aa.user_answer, aa.is_correct,
		        COALESCE(qs.text, ''), COALESCE(qs.correct_answer, '')
		 FROM attempt_answers aa LEFT JOIN questions qs ON qs.id = aa.question_id
		 WHERE aa.attempt_id = ? ORDER BY aa.id ASC`, attemptID)
	if err != nil {
		return AttemptRecord{}, nil, err
	}
	defer rows.Close()

	answers := make([]AttemptAnswerRecord, 0)
	for rows.Next() {
		var answer AttemptAnswerRecord
		var isCorrect int
		if err := rows.Scan(&answer.QuestionID, &answer.UserAnswer, &isCorrect,
			&answer.QuestionText, &answer.CorrectAnswer); err != nil {
			return AttemptRecord{}, nil, err
		}
		answer.IsCorrect = isCorrect != 0
		answers = append(answers, answer)
	}
	return attempt, answers, rows.Err()
}

func insertQuestions(ctx context.Context, tx *sql.Tx, quizID int64, questions []QuestionInputRecord) error {
	for idx, question := range questions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO questions (quiz_id, position, text, correct_answer)
			 VALUES (?, ?, ?, ?)`,
			quizID, idx, question.Text, question.CorrectAnswer); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (QuizRecord, error) {
	var quiz QuizRecord
	var isPublic int
	var createdUnix int64
	if err := row.Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.CreatorID,
		&isPublic, &createdUnix); err != nil {
		return QuizRecord{}, err
	}
	quiz.IsPublic = isPublic != 0
	quiz.CreatedAt = time.Unix(createdUnix, 0).UTC()
	return quiz, nil
}

func scanAttempt(row rowScanner) (AttemptRecord, error) {
	var attempt AttemptRecord
	var createdUnix int64
	if err := row.Scan(&attempt.ID, &attempt.QuizID, &attempt.UserID,
		&attempt.Score, &attempt.Total, &createdUnix); err != nil {
		return AttemptRecord{}, err
	}
	attempt.CreatedAt = time.Unix(createdUnix, 0).UTC()
	return attempt, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
