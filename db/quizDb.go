package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"studyplan/models"

	_ "github.com/lib/pq"
)

type QuizRepository interface {
	CreateQuizWithQuestions(quiz *models.Quiz) error
	GetQuizByID(id int, userID int64) (*models.Quiz, error)
	GetQuizByLessonID(lessonID int) (*models.Quiz, error)
	CreateAttempt(attempt *models.QuizAttempt) error
}

type PostgresQuizRepository struct {
	db *sql.DB
}

func NewPostgresQuizRepository(databaseURL string) (*PostgresQuizRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresQuizRepository{db: db}, nil
}

// CreateQuizWithQuestions inserts the quiz and its questions in one
// transaction; a failed question insert leaves no quiz behind.
func (r *PostgresQuizRepository) CreateQuizWithQuestions(quiz *models.Quiz) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quizQuery := `
		INSERT INTO quizzes (lesson_id, title)
		VALUES ($1, $2)
		RETURNING id, created_at`

	row := tx.QueryRow(quizQuery, quiz.LessonID, quiz.Title)
	if err := row.Scan(&quiz.ID, &quiz.CreatedAt); err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	questionQuery := `
		INSERT INTO quiz_questions (quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, explanation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		q.QuizID = quiz.ID
		row := tx.QueryRow(questionQuery, quiz.ID, q.QuestionText,
			q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectAnswer, q.Explanation)
		if err := row.Scan(&q.ID); err != nil {
			return fmt.Errorf("failed to create quiz question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz creation: %w", err)
	}

	return nil
}

// GetQuizByID checks ownership through the lesson's plan in the same
// query that fetches the quiz.
func (r *PostgresQuizRepository) GetQuizByID(id int, userID int64) (*models.Quiz, error) {
	query := `
		SELECT q.id, q.lesson_id, q.title, q.created_at
		FROM quizzes q
		JOIN lessons l ON q.lesson_id = l.id
		JOIN learning_plans p ON l.plan_id = p.id
		WHERE q.id = $1 AND p.user_id = $2`

	quiz := &models.Quiz{}
	row := r.db.QueryRow(query, id, userID)

	err := row.Scan(&quiz.ID, &quiz.LessonID, &quiz.Title, &quiz.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quiz with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	questions, err := r.getQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions

	return quiz, nil
}

func (r *PostgresQuizRepository) GetQuizByLessonID(lessonID int) (*models.Quiz, error) {
	query := `
		SELECT id, lesson_id, title, created_at
		FROM quizzes
		WHERE lesson_id = $1
		ORDER BY created_at
		LIMIT 1`

	quiz := &models.Quiz{}
	row := r.db.QueryRow(query, lessonID)

	err := row.Scan(&quiz.ID, &quiz.LessonID, &quiz.Title, &quiz.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("quiz for lesson %d: %w", lessonID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	questions, err := r.getQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions

	return quiz, nil
}

func (r *PostgresQuizRepository) getQuestions(quizID int) ([]models.QuizQuestion, error) {
	query := `
		SELECT id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer, explanation
		FROM quiz_questions
		WHERE quiz_id = $1
		ORDER BY id`

	rows, err := r.db.Query(query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.QuizQuestion, 0)
	for rows.Next() {
		var q models.QuizQuestion
		err := rows.Scan(&q.ID, &q.QuizID, &q.QuestionText, &q.OptionA, &q.OptionB,
			&q.OptionC, &q.OptionD, &q.CorrectAnswer, &q.Explanation)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz question: %w", err)
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over quiz questions: %w", err)
	}

	return questions, nil
}

// CreateAttempt stores one submission. Attempts are append-only;
// resubmitting the same quiz adds another row.
func (r *PostgresQuizRepository) CreateAttempt(attempt *models.QuizAttempt) error {
	answersJSON, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("failed to marshal answers: %w", err)
	}

	query := `
		INSERT INTO quiz_attempts (quiz_id, user_id, score, answers)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed_at`

	row := r.db.QueryRow(query, attempt.QuizID, attempt.UserID, attempt.Score, answersJSON)
	if err := row.Scan(&attempt.ID, &attempt.CompletedAt); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}

	return nil
}

func (r *PostgresQuizRepository) Close() error {
	return r.db.Close()
}
