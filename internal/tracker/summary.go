package tracker

import (
	"math"
	"time"

	"github.com/julianstephens/microhabit/internal/badges"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/points"
	"github.com/julianstephens/microhabit/internal/utils"
)

// HabitStatus is one row of the today view
type HabitStatus struct {
	Habit  models.Habit
	Logged bool
	Stars  int
	Points int
	Streak int
}

type TodaySummary struct {
	Date        string
	Habits      []HabitStatus
	DailyPoints int
	MaxPoints   int
	Completed   int
	// Progress is the share of habits completed today, 0 to 100
	Progress float64
}

func BuildTodaySummary(snap models.Snapshot, now time.Time, calc *points.Calculator) TodaySummary {
	today := utils.FormatDateKey(now)
	todayLogs := models.LogsForDate(snap.Logs, today)

	s := TodaySummary{
		Date:        today,
		Habits:      make([]HabitStatus, 0, len(snap.Habits)),
		DailyPoints: calc.DailyTotal(todayLogs, snap.Habits),
		MaxPoints:   calc.MaxDailyPoints(snap.Habits),
	}

	for _, h := range snap.Habits {
		status := HabitStatus{
			Habit:  h,
			Streak: utils.StreakLength(models.LogsForHabit(snap.Logs, h.ID), now),
		}
		if i := models.FindLog(todayLogs, h.ID, today); i >= 0 {
			status.Logged = true
			status.Stars = todayLogs[i].Stars
			status.Points = calc.PointsFor(todayLogs[i].Stars, h.Importance)
		}
		if status.Stars > 0 {
			s.Completed++
		}
		s.Habits = append(s.Habits, status)
	}

	if len(snap.Habits) > 0 {
		s.Progress = float64(s.Completed) / float64(len(snap.Habits)) * 100
	}
	return s
}

type ProfileStats struct {
	Profile            models.UserProfile
	TotalStars         int
	DaysLogged         int
	Consistency        float64
	LevelProgress      float64
	PointsForNextLevel int
	BadgesEarned       int
	BadgesTotal        int
	BestStreak         int
}

// BuildProfileStats derives lifetime numbers. Consistency is distinct days
// logged over days since the profile was created, capped at 100.
func BuildProfileStats(snap models.Snapshot, now time.Time, calc *points.Calculator, catalogSize int) ProfileStats {
	p := snap.Profile

	days := make(map[string]bool)
	for _, l := range snap.Logs {
		days[l.Date] = true
	}

	elapsed := int(math.Ceil(now.Sub(p.CreatedAt).Hours() / 24))
	consistency := float64(len(days)) / float64(max(1, elapsed)) * 100

	best := 0
	for _, h := range snap.Habits {
		best = max(best, utils.StreakLength(models.LogsForHabit(snap.Logs, h.ID), now))
	}

	return ProfileStats{
		Profile:            p,
		TotalStars:         badges.TotalStars(snap.Logs),
		DaysLogged:         len(days),
		Consistency:        min(consistency, 100),
		LevelProgress:      calc.ProgressToNextLevel(p.TotalPoints, p.Level),
		PointsForNextLevel: calc.PointsForNextLevel(p.Level),
		BadgesEarned:       len(p.Badges),
		BadgesTotal:        catalogSize,
		BestStreak:         best,
	}
}

type DayHistory struct {
	Date string
	Logs []models.Log
	// Intensity is the average stars over the day's logs divided by 5
	Intensity float64
}

type MonthHistory struct {
	Year    int
	Month   time.Month
	Days    []DayHistory
	Streaks map[string]int
}

func BuildMonthHistory(snap models.Snapshot, year int, month time.Month, now time.Time) MonthHistory {
	h := MonthHistory{
		Year:    year,
		Month:   month,
		Streaks: make(map[string]int, len(snap.Habits)),
	}

	for _, key := range utils.MonthKeys(year, month) {
		day := DayHistory{Date: key, Logs: models.LogsForDate(snap.Logs, key)}
		if len(day.Logs) > 0 {
			sum := 0
			for _, l := range day.Logs {
				sum += l.Stars
			}
			day.Intensity = float64(sum) / float64(len(day.Logs)) / 5
		}
		h.Days = append(h.Days, day)
	}

	for _, habit := range snap.Habits {
		h.Streaks[habit.ID] = utils.StreakLength(models.LogsForHabit(snap.Logs, habit.ID), now)
	}
	return h
}
