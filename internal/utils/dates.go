package utils

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/models"
)

// FormatDateKey returns the canonical YYYY-MM-DD key for t's calendar day.
func FormatDateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// TodayKey returns the date key for the clock's current local day.
func TodayKey(clock Clock) string {
	return FormatDateKey(clock.Now())
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q (expected YYYY-MM-DD): %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDateKey checks if the string is a canonical date key.
func ValidateDateKey(key string) bool {
	_, err := time.Parse(constants.DateFormat, key)
	return err == nil
}

// DayOffset returns how many calendar days key lies before now's day.
// Past days are positive, today is 0 and future days are negative.
// The count is taken on civil dates, so DST shifts never change it.
func DayOffset(now time.Time, key string) (int, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return 0, fmt.Errorf("invalid date key %q (expected YYYY-MM-DD): %w", key, err)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(today.Sub(day).Hours() / 24), nil
}

// StreakLength counts consecutive days, ending today, on which the habit was
// rated with at least one star. logs must all belong to a single habit.
func StreakLength(logs []models.Log, now time.Time) int {
	if len(logs) == 0 {
		return 0
	}

	sorted := slices.Clone(logs)
	slices.SortStableFunc(sorted, func(a, b models.Log) int {
		return strings.Compare(b.Date, a.Date)
	})

	streak := 0
	for _, log := range sorted {
		offset, err := DayOffset(now, log.Date)
		if err != nil {
			continue
		}
		switch {
		case offset == streak:
			if log.Stars <= 0 {
				return streak
			}
			streak++
		case offset > streak:
			// gap day with no log
			return streak
		case offset < 0:
			// future-dated logs never match the counter
			return streak
		default:
			// same day as one already counted; first one wins
		}
	}

	return streak
}

// DaysInMonth returns the number of days in the given calendar month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthKeys returns the date key of every day in the given calendar month.
func MonthKeys(year int, month time.Month) []string {
	n := DaysInMonth(year, month)
	keys := make([]string, 0, n)
	for d := 1; d <= n; d++ {
		keys = append(keys, FormatDateKey(time.Date(year, month, d, 0, 0, 0, 0, time.UTC)))
	}
	return keys
}

// InMonth reports whether key falls within the given calendar month.
func InMonth(key string, year int, month time.Month) bool {
	return strings.HasPrefix(key, fmt.Sprintf("%04d-%02d-", year, int(month)))
}
