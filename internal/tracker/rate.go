// Package tracker owns the single write path from a star rating to points,
// level and badges, and the service that persists its results.
package tracker

import (
	"slices"
	"time"

	"github.com/julianstephens/microhabit/internal/badges"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/points"
	"github.com/julianstephens/microhabit/internal/utils"
)

// Engine bundles the collaborators RateHabit needs
type Engine struct {
	Calculator *points.Calculator
	Evaluator  *badges.Evaluator
	IDs        utils.IDGenerator
}

// Outcome describes what a rating changed
type Outcome struct {
	// Applied is false when the habit does not exist and nothing changed
	Applied       bool
	Log           models.Log
	Created       bool
	PointsDelta   int
	PreviousLevel int
	Level         int
	NewBadges     []string
}

// LeveledUp reports whether the rating crossed a level boundary
func (o Outcome) LeveledUp() bool {
	return o.Level > o.PreviousLevel
}

// RateHabit records stars for habitID on now's date and returns the
// resulting snapshot. The input snapshot is never modified.
func RateHabit(snap models.Snapshot, habitID string, stars int, now time.Time, eng Engine) (models.Snapshot, Outcome, error) {
	if err := models.ValidateStars(stars); err != nil {
		return snap, Outcome{}, err
	}

	habit, ok := snap.Habit(habitID)
	if !ok {
		return snap, Outcome{PreviousLevel: snap.Profile.Level, Level: snap.Profile.Level}, nil
	}

	today := utils.FormatDateKey(now)
	pts := eng.Calculator.PointsFor(stars, habit.Importance)

	logs := slices.Clone(snap.Logs)
	var log models.Log
	created := false
	if i := models.FindLog(logs, habitID, today); i >= 0 {
		log = logs[i]
		log.Stars = stars
		log.Points = pts
		logs[i] = log
	} else {
		log = models.Log{
			ID:        eng.IDs.New(),
			HabitID:   habitID,
			Date:      today,
			Stars:     stars,
			Points:    pts,
			Timestamp: now,
		}
		logs = append(logs, log)
		created = true
	}

	total := eng.Calculator.TotalPoints(logs, snap.Habits)
	level := eng.Calculator.LevelFor(total)

	// Badges see the new level but only the badges held before this rating
	view := snap.Profile
	view.TotalPoints = total
	view.Level = level
	earned := eng.Evaluator.CheckAndAward(view, snap.Habits, logs, now)

	profile := view.WithBadges(earned...)

	next := models.Snapshot{
		Habits:  snap.Habits,
		Logs:    logs,
		Profile: profile,
	}
	return next, Outcome{
		Applied:       true,
		Log:           log,
		Created:       created,
		PointsDelta:   total - snap.Profile.TotalPoints,
		PreviousLevel: snap.Profile.Level,
		Level:         level,
		NewBadges:     earned,
	}, nil
}

// Normalize recomputes the derived profile fields from the log history.
// It reports whether anything changed.
func Normalize(snap models.Snapshot, calc *points.Calculator) (models.Snapshot, bool) {
	total := calc.TotalPoints(snap.Logs, snap.Habits)
	level := calc.LevelFor(total)
	if total == snap.Profile.TotalPoints && level == snap.Profile.Level {
		return snap, false
	}
	snap.Profile.TotalPoints = total
	snap.Profile.Level = level
	return snap, true
}
