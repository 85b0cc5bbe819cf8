package db

import (
	"database/sql"
	"fmt"
	"time"

	"studyplan/models"

	_ "github.com/lib/pq"
)

type StreakRepository interface {
	RecordActivity(userID int64, date time.Time, kind models.ActivityKind, minutes int) error
	GetDaysByUser(userID int64) ([]models.StreakDay, error)
}

type PostgresStreakRepository struct {
	db *sql.DB
}

func NewPostgresStreakRepository(databaseURL string) (*PostgresStreakRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStreakRepository{db: db}, nil
}

// RecordActivity bumps the counter for kind on the (user, date) row,
// creating the row if it is the first activity of the day. The upsert
// leans on the UNIQUE (user_id, date) constraint so two activities
// landing at once both count. Counters are never decremented.
func (r *PostgresStreakRepository) RecordActivity(userID int64, date time.Time, kind models.ActivityKind, minutes int) error {
	var lessons, quizzes, notes int
	switch kind {
	case models.ActivityLesson:
		lessons = 1
	case models.ActivityQuiz:
		quizzes = 1
	case models.ActivityNote:
		notes = 1
	default:
		return fmt.Errorf("unknown activity kind: %s", kind)
	}

	query := `
		INSERT INTO study_streaks (user_id, date, lessons_completed, quizzes_taken, notes_created, time_spent)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE SET
			lessons_completed = study_streaks.lessons_completed + EXCLUDED.lessons_completed,
			quizzes_taken     = study_streaks.quizzes_taken + EXCLUDED.quizzes_taken,
			notes_created     = study_streaks.notes_created + EXCLUDED.notes_created,
			time_spent        = study_streaks.time_spent + EXCLUDED.time_spent`

	day := date.Format("2006-01-02")
	if _, err := r.db.Exec(query, userID, day, lessons, quizzes, notes, minutes); err != nil {
		return fmt.Errorf("failed to record %s activity: %w", kind, err)
	}

	return nil
}

// GetDaysByUser returns every streak day for the user, newest first.
func (r *PostgresStreakRepository) GetDaysByUser(userID int64) ([]models.StreakDay, error) {
	query := `
		SELECT id, user_id, date, lessons_completed, quizzes_taken, notes_created, time_spent
		FROM study_streaks
		WHERE user_id = $1
		ORDER BY date DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query streak days: %w", err)
	}
	defer rows.Close()

	days := make([]models.StreakDay, 0)
	for rows.Next() {
		var d models.StreakDay
		err := rows.Scan(&d.ID, &d.UserID, &d.Date, &d.LessonsCompleted,
			&d.QuizzesTaken, &d.NotesCreated, &d.TimeSpent)
		if err != nil {
			return nil, fmt.Errorf("failed to scan streak day: %w", err)
		}
		days = append(days, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over streak days: %w", err)
	}

	return days, nil
}

func (r *PostgresStreakRepository) Close() error {
	return r.db.Close()
}
