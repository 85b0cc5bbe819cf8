package services

import (
	"log"
	"slices"
	"time"

	"studyplan/db"
	"studyplan/models"

	"github.com/samber/lo"
)

// Streak lookback horizon in days: the calendar window and the bound
// on the current-streak walk.
const calendarDays = 365

type StreakService struct {
	streakRepo db.StreakRepository
}

func NewStreakService(streakRepo db.StreakRepository) *StreakService {
	return &StreakService{streakRepo: streakRepo}
}

// GetStreakStats derives the user's streak view from the ledger. The
// result is a fresh point-in-time snapshot; nothing derived is cached.
func (s *StreakService) GetStreakStats(userID int64) (*models.StreakStats, error) {
	log.Printf("[INFO] Computing streak stats for user %d", userID)

	days, err := s.streakRepo.GetDaysByUser(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to get streak days for user %d: %v", userID, err)
		return nil, err
	}

	stats := computeStreakStats(days, time.Now().UTC())
	log.Printf("[INFO] User %d: current streak %d, longest %d, %d active days",
		userID, stats.CurrentStreak, stats.LongestStreak, stats.TotalActiveDays)
	return &stats, nil
}

// computeStreakStats derives current streak, longest streak and the
// rolling activity calendar from the user's streak days.
//
// The current streak walks backward from today and stops at the first
// gap, so a day without activity yet zeroes it even when yesterday was
// active; streak_status still reports active_yesterday in that case.
func computeStreakStats(days []models.StreakDay, today time.Time) models.StreakStats {
	if len(days) == 0 {
		return models.StreakStats{
			ActivityCalendar: []models.CalendarDay{},
			StreakStatus:     models.StreakStatusInactive,
		}
	}

	today = dateOnly(today)
	byDate := make(map[string]models.StreakDay, len(days))
	for _, d := range days {
		byDate[dateKey(d.Date)] = d
	}

	// Dates newest first, from the map so duplicates collapse.
	dates := lo.Keys(byDate)
	parsed := lo.Map(dates, func(key string, _ int) time.Time {
		t, _ := time.Parse("2006-01-02", key)
		return t
	})
	sortDatesDesc(parsed)

	currentStreak := 0
	checkDate := today
	for i := 0; i < calendarDays; i++ {
		if _, ok := byDate[dateKey(checkDate)]; !ok {
			break
		}
		currentStreak++
		checkDate = checkDate.AddDate(0, 0, -1)
	}

	longestStreak := 0
	run := 1
	for i := 0; i < len(parsed)-1; i++ {
		if parsed[i].AddDate(0, 0, -1).Equal(parsed[i+1]) {
			run++
			if run > longestStreak {
				longestStreak = run
			}
		} else {
			run = 1
		}
	}
	// A streak still in progress is never under-reported.
	longestStreak = max(longestStreak, run, currentStreak)

	start := today.AddDate(0, 0, -(calendarDays - 1))
	calendar := lo.Times(calendarDays, func(i int) models.CalendarDay {
		date := start.AddDate(0, 0, i)
		day, ok := byDate[dateKey(date)]
		if !ok {
			return models.CalendarDay{Date: dateKey(date)}
		}
		return models.CalendarDay{
			Date:             dateKey(date),
			Count:            day.ActivityScore(),
			LessonsCompleted: day.LessonsCompleted,
			QuizzesTaken:     day.QuizzesTaken,
			NotesCreated:     day.NotesCreated,
		}
	})

	var status string
	switch {
	case hasDate(byDate, today):
		status = models.StreakStatusActiveToday
	case hasDate(byDate, today.AddDate(0, 0, -1)):
		status = models.StreakStatusActiveYesterday
	case currentStreak > 0:
		status = models.StreakStatusActive
	default:
		status = models.StreakStatusInactive
	}

	return models.StreakStats{
		CurrentStreak:    currentStreak,
		LongestStreak:    longestStreak,
		TotalActiveDays:  len(byDate),
		ActivityCalendar: calendar,
		StreakStatus:     status,
	}
}

func hasDate(byDate map[string]models.StreakDay, date time.Time) bool {
	_, ok := byDate[dateKey(date)]
	return ok
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sortDatesDesc(dates []time.Time) {
	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a)
	})
}
