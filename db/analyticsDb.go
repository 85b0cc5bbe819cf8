package db

import (
	"database/sql"
	"fmt"

	"studyplan/models"

	_ "github.com/lib/pq"
)

// AnalyticsRepository exposes the read-only aggregates behind the
// analytics endpoint. No method here mutates anything.
type AnalyticsRepository interface {
	CountPlans(userID int64) (int, error)
	CountLessons(userID int64) (int, error)
	CountCompletedLessons(userID int64) (int, error)
	SumTimeSpent(userID int64) (int, error)
	AverageQuizScore(userID int64) (float64, error)
	RecentCompletions(userID int64, limit int) ([]models.RecentActivityItem, error)
	PlanSummaries(userID int64) ([]models.PlanProgressSummary, error)
}

type PostgresAnalyticsRepository struct {
	db *sql.DB
}

func NewPostgresAnalyticsRepository(databaseURL string) (*PostgresAnalyticsRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresAnalyticsRepository{db: db}, nil
}

func (r *PostgresAnalyticsRepository) CountPlans(userID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM learning_plans WHERE user_id = $1", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count plans: %w", err)
	}
	return count, nil
}

func (r *PostgresAnalyticsRepository) CountLessons(userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM lessons l
		JOIN learning_plans p ON l.plan_id = p.id
		WHERE p.user_id = $1`

	var count int
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}

// CountCompletedLessons counts every completed mark by the user,
// across all plans at once.
func (r *PostgresAnalyticsRepository) CountCompletedLessons(userID int64) (int, error) {
	query := "SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND is_completed"

	var count int
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed lessons: %w", err)
	}
	return count, nil
}

func (r *PostgresAnalyticsRepository) SumTimeSpent(userID int64) (int, error) {
	query := `
		SELECT COALESCE(SUM(time_spent), 0)
		FROM user_progress
		WHERE user_id = $1 AND is_completed`

	var total int
	if err := r.db.QueryRow(query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum time spent: %w", err)
	}
	return total, nil
}

func (r *PostgresAnalyticsRepository) AverageQuizScore(userID int64) (float64, error) {
	query := "SELECT COALESCE(AVG(score), 0) FROM quiz_attempts WHERE user_id = $1"

	var avg float64
	if err := r.db.QueryRow(query, userID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to average quiz score: %w", err)
	}
	return avg, nil
}

func (r *PostgresAnalyticsRepository) RecentCompletions(userID int64, limit int) ([]models.RecentActivityItem, error) {
	query := `
		SELECT l.title, up.completed_at, up.time_spent
		FROM user_progress up
		JOIN lessons l ON up.lesson_id = l.id
		WHERE up.user_id = $1 AND up.is_completed AND up.completed_at IS NOT NULL
		ORDER BY up.completed_at DESC
		LIMIT $2`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent completions: %w", err)
	}
	defer rows.Close()

	items := make([]models.RecentActivityItem, 0)
	for rows.Next() {
		var item models.RecentActivityItem
		if err := rows.Scan(&item.LessonTitle, &item.CompletedAt, &item.TimeSpent); err != nil {
			return nil, fmt.Errorf("failed to scan recent completion: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over recent completions: %w", err)
	}

	return items, nil
}

func (r *PostgresAnalyticsRepository) PlanSummaries(userID int64) ([]models.PlanProgressSummary, error) {
	query := `
		SELECT p.id, p.topic, p.progress, p.created_at,
		       (SELECT COUNT(*) FROM lessons l WHERE l.plan_id = p.id),
		       (SELECT COUNT(*) FROM user_progress up
		        JOIN lessons l ON up.lesson_id = l.id
		        WHERE l.plan_id = p.id AND up.user_id = p.user_id AND up.is_completed)
		FROM learning_plans p
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.PlanProgressSummary, 0)
	for rows.Next() {
		var s models.PlanProgressSummary
		err := rows.Scan(&s.PlanID, &s.Topic, &s.Progress, &s.CreatedAt,
			&s.TotalLessons, &s.CompletedLessons)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over plan summaries: %w", err)
	}

	return summaries, nil
}

func (r *PostgresAnalyticsRepository) Close() error {
	return r.db.Close()
}
