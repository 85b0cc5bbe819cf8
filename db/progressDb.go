package db

import (
	"database/sql"
	"fmt"
	"time"

	"studyplan/models"

	_ "github.com/lib/pq"
)

type ProgressRepository interface {
	ToggleMark(userID int64, lessonID int, defaultMinutes int) (*models.ProgressMark, error)
	GetMark(userID int64, lessonID int) (*models.ProgressMark, error)
	CountCompletedByPlanOwner(planID int) (int, error)
}

type PostgresProgressRepository struct {
	db *sql.DB
}

func NewPostgresProgressRepository(databaseURL string) (*PostgresProgressRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresProgressRepository{db: db}, nil
}

// ToggleMark flips the completion flag for the (user, lesson) pair,
// creating the mark on first use. The whole get-or-create-then-flip
// sequence runs in one transaction with the row locked, so concurrent
// toggles cannot lose updates. When a mark transitions to completed
// and no time was recorded yet, defaultMinutes is stored.
func (r *PostgresProgressRepository) ToggleMark(userID int64, lessonID int, defaultMinutes int) (*models.ProgressMark, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := `
		INSERT INTO user_progress (user_id, lesson_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, lesson_id) DO NOTHING`

	if _, err := tx.Exec(insertQuery, userID, lessonID); err != nil {
		return nil, fmt.Errorf("failed to create progress mark: %w", err)
	}

	selectQuery := `
		SELECT id, user_id, lesson_id, is_completed, completed_at, time_spent
		FROM user_progress
		WHERE user_id = $1 AND lesson_id = $2
		FOR UPDATE`

	mark := &models.ProgressMark{}
	row := tx.QueryRow(selectQuery, userID, lessonID)
	err = row.Scan(&mark.ID, &mark.UserID, &mark.LessonID, &mark.IsCompleted,
		&mark.CompletedAt, &mark.TimeSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress mark: %w", err)
	}

	mark.IsCompleted = !mark.IsCompleted
	if mark.IsCompleted {
		now := time.Now().UTC()
		mark.CompletedAt = &now
		if mark.TimeSpent == 0 {
			mark.TimeSpent = defaultMinutes
		}
	} else {
		mark.CompletedAt = nil
	}

	updateQuery := `
		UPDATE user_progress
		SET is_completed = $1, completed_at = $2, time_spent = $3
		WHERE id = $4`

	if _, err := tx.Exec(updateQuery, mark.IsCompleted, mark.CompletedAt, mark.TimeSpent, mark.ID); err != nil {
		return nil, fmt.Errorf("failed to update progress mark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit progress toggle: %w", err)
	}

	return mark, nil
}

// GetMark returns the mark for the (user, lesson) pair, or
// ErrNotFound when the lesson was never toggled.
func (r *PostgresProgressRepository) GetMark(userID int64, lessonID int) (*models.ProgressMark, error) {
	query := `
		SELECT id, user_id, lesson_id, is_completed, completed_at, time_spent
		FROM user_progress
		WHERE user_id = $1 AND lesson_id = $2`

	mark := &models.ProgressMark{}
	row := r.db.QueryRow(query, userID, lessonID)
	err := row.Scan(&mark.ID, &mark.UserID, &mark.LessonID, &mark.IsCompleted,
		&mark.CompletedAt, &mark.TimeSpent)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("progress mark for lesson %d: %w", lessonID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get progress mark: %w", err)
	}

	return mark, nil
}

// CountCompletedByPlanOwner counts completed marks for the plan's
// lessons made by the plan owner. Marks by other users on the same
// lessons never count toward the plan's progress.
func (r *PostgresProgressRepository) CountCompletedByPlanOwner(planID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM user_progress up
		JOIN lessons l ON up.lesson_id = l.id
		JOIN learning_plans p ON l.plan_id = p.id
		WHERE l.plan_id = $1 AND up.user_id = p.user_id AND up.is_completed`

	var count int
	if err := r.db.QueryRow(query, planID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return count, nil
}

func (r *PostgresProgressRepository) Close() error {
	return r.db.Close()
}
