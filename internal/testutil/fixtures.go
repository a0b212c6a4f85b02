package testutil

import (
	"fmt"
	"time"

	"github.com/julianstephens/microhabit/internal/models"
)

// Habits returns n habits ("h1".."hn") with the given importance.
func Habits(n, importance int) []models.Habit {
	habits := make([]models.Habit, 0, n)
	for i := 1; i <= n; i++ {
		habits = append(habits, models.Habit{
			ID:         fmt.Sprintf("h%d", i),
			Name:       fmt.Sprintf("Habit %d", i),
			Importance: importance,
			CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return habits
}

// LogOn builds a log for habitID on the day that lies daysAgo before now.
func LogOn(now time.Time, habitID string, daysAgo, stars int) models.Log {
	date := now.AddDate(0, 0, -daysAgo).Format("2006-01-02")
	return models.Log{
		ID:        habitID + "-" + date,
		HabitID:   habitID,
		Date:      date,
		Stars:     stars,
		Timestamp: now,
	}
}
