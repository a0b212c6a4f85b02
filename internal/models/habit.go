package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
)

// ErrInvalidStars is returned when a rating falls outside the 0-5 range
var ErrInvalidStars = errors.New("stars must be between 0 and 5")

// Habit represents a micro-habit chosen during onboarding
type Habit struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Importance  int       `json:"importance" validate:"gte=1"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Habit) Validate() error {
	if err := validate.Struct(h); err != nil {
		return fmt.Errorf("invalid habit %q: %w", h.ID, err)
	}
	return nil
}

// Log is one day's star rating for one habit
type Log struct {
	ID        string    `json:"id" validate:"required"`
	HabitID   string    `json:"habitId" validate:"required"`
	Date      string    `json:"date" validate:"required,datekey"` // YYYY-MM-DD format
	Stars     int       `json:"stars" validate:"gte=0,lte=5"`
	Points    int       `json:"points" validate:"gte=0"`
	Timestamp time.Time `json:"timestamp"`
}

func (l *Log) Validate() error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("invalid log %q: %w", l.ID, err)
	}
	return nil
}

// ValidateStars checks a rating before it enters the write path
func ValidateStars(stars int) error {
	if stars < constants.MinStars || stars > constants.MaxStars {
		return fmt.Errorf("%w: got %d", ErrInvalidStars, stars)
	}
	return nil
}

// LogsForHabit returns the logs referencing habitID, preserving order
func LogsForHabit(logs []Log, habitID string) []Log {
	var out []Log
	for _, l := range logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	return out
}

// LogsForDate returns the logs recorded on the given date key
func LogsForDate(logs []Log, date string) []Log {
	var out []Log
	for _, l := range logs {
		if l.Date == date {
			out = append(out, l)
		}
	}
	return out
}

// FindLog returns the index of the log for (habitID, date), or -1
func FindLog(logs []Log, habitID, date string) int {
	for i, l := range logs {
		if l.HabitID == habitID && l.Date == date {
			return i
		}
	}
	return -1
}

// HabitIndex maps habit ids to habits for lookups during aggregation
func HabitIndex(habits []Habit) map[string]Habit {
	idx := make(map[string]Habit, len(habits))
	for _, h := range habits {
		idx[h.ID] = h
	}
	return idx
}
