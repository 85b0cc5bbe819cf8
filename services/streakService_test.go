package services

import (
	"testing"
	"time"

	"studyplan/models"
)

func day(t time.Time, lessons, quizzes, notes int) models.StreakDay {
	return models.StreakDay{
		Date:             t,
		LessonsCompleted: lessons,
		QuizzesTaken:     quizzes,
		NotesCreated:     notes,
	}
}

func TestComputeStreakStatsEmpty(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	stats := computeStreakStats(nil, today)

	if stats.CurrentStreak != 0 {
		t.Errorf("expected current streak 0, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 0 {
		t.Errorf("expected longest streak 0, got %d", stats.LongestStreak)
	}
	if stats.StreakStatus != models.StreakStatusInactive {
		t.Errorf("expected status %q, got %q", models.StreakStatusInactive, stats.StreakStatus)
	}
	if len(stats.ActivityCalendar) != 0 {
		t.Errorf("expected empty calendar, got %d entries", len(stats.ActivityCalendar))
	}
}

func TestComputeStreakStats(t *testing.T) {
	today := time.Date(2026, 9, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name            string
		days            []models.StreakDay
		expectedCurrent int
		expectedLongest int
		expectedStatus  string
	}{
		{
			name: "three consecutive days ending today",
			days: []models.StreakDay{
				day(today, 1, 0, 0),
				day(today.AddDate(0, 0, -1), 1, 0, 0),
				day(today.AddDate(0, 0, -2), 0, 1, 0),
			},
			expectedCurrent: 3,
			expectedLongest: 3,
			expectedStatus:  models.StreakStatusActiveToday,
		},
		{
			name: "streak ended yesterday zeroes the current streak",
			days: []models.StreakDay{
				day(today.AddDate(0, 0, -1), 1, 0, 0),
				day(today.AddDate(0, 0, -2), 1, 0, 0),
			},
			expectedCurrent: 0,
			expectedLongest: 2,
			expectedStatus:  models.StreakStatusActiveYesterday,
		},
		{
			name: "old activity only is inactive",
			days: []models.StreakDay{
				day(today.AddDate(0, 0, -10), 0, 0, 1),
			},
			expectedCurrent: 0,
			expectedLongest: 1,
			expectedStatus:  models.StreakStatusInactive,
		},
		{
			name: "longest streak can exceed current streak",
			days: []models.StreakDay{
				day(today, 1, 0, 0),
				day(today.AddDate(0, 0, -5), 1, 0, 0),
				day(today.AddDate(0, 0, -6), 1, 0, 0),
				day(today.AddDate(0, 0, -7), 1, 0, 0),
				day(today.AddDate(0, 0, -8), 1, 0, 0),
			},
			expectedCurrent: 1,
			expectedLongest: 4,
			expectedStatus:  models.StreakStatusActiveToday,
		},
		{
			name: "single day today",
			days: []models.StreakDay{
				day(today, 0, 0, 1),
			},
			expectedCurrent: 1,
			expectedLongest: 1,
			expectedStatus:  models.StreakStatusActiveToday,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := computeStreakStats(tt.days, today)

			if stats.CurrentStreak != tt.expectedCurrent {
				t.Errorf("current streak = %d, expected %d", stats.CurrentStreak, tt.expectedCurrent)
			}
			if stats.LongestStreak != tt.expectedLongest {
				t.Errorf("longest streak = %d, expected %d", stats.LongestStreak, tt.expectedLongest)
			}
			if stats.StreakStatus != tt.expectedStatus {
				t.Errorf("status = %q, expected %q", stats.StreakStatus, tt.expectedStatus)
			}
			if stats.LongestStreak < stats.CurrentStreak {
				t.Errorf("longest streak %d must never be below current streak %d", stats.LongestStreak, stats.CurrentStreak)
			}
			if stats.TotalActiveDays != len(tt.days) {
				t.Errorf("total active days = %d, expected %d", stats.TotalActiveDays, len(tt.days))
			}
		})
	}
}

func TestComputeStreakStatsCalendar(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	days := []models.StreakDay{
		day(today, 2, 1, 1),
		day(today.AddDate(0, 0, -3), 0, 0, 1),
	}

	stats := computeStreakStats(days, today)

	if len(stats.ActivityCalendar) != 365 {
		t.Fatalf("expected 365 calendar entries, got %d", len(stats.ActivityCalendar))
	}

	first := stats.ActivityCalendar[0]
	expectedFirst := today.AddDate(0, 0, -364).Format("2006-01-02")
	if first.Date != expectedFirst {
		t.Errorf("calendar starts at %s, expected %s", first.Date, expectedFirst)
	}
	if first.Count != 0 {
		t.Errorf("expected zero count on inactive day, got %d", first.Count)
	}

	last := stats.ActivityCalendar[364]
	if last.Date != "2026-09-01" {
		t.Errorf("calendar ends at %s, expected 2026-09-01", last.Date)
	}
	// 2 lessons, 1 quiz, 1 note weighted 3/2/1.
	if last.Count != 9 {
		t.Errorf("expected weighted count 9 for today, got %d", last.Count)
	}
	if last.LessonsCompleted != 2 || last.QuizzesTaken != 1 || last.NotesCreated != 1 {
		t.Errorf("unexpected activity breakdown for today: %+v", last)
	}

	threeDaysAgo := stats.ActivityCalendar[361]
	if threeDaysAgo.Count != 1 {
		t.Errorf("expected count 1 three days ago, got %d", threeDaysAgo.Count)
	}
}

func TestActivityScoreWeights(t *testing.T) {
	d := models.StreakDay{LessonsCompleted: 1, QuizzesTaken: 1, NotesCreated: 1}
	if d.ActivityScore() != 6 {
		t.Errorf("expected score 6 for one of each activity, got %d", d.ActivityScore())
	}
}
