// Package badges evaluates the achievement catalog against tracker state.
package badges

import (
	"slices"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/utils"
)

// Evaluator checks badge requirements. It holds no mutable state.
type Evaluator struct {
	catalog []models.BadgeDefinition
}

// New creates an evaluator over catalog
func New(catalog []models.BadgeDefinition) *Evaluator {
	return &Evaluator{catalog: slices.Clone(catalog)}
}

// Catalog returns every badge definition in display order
func (e *Evaluator) Catalog() []models.BadgeDefinition {
	return slices.Clone(e.catalog)
}

// ByID looks up a badge definition
func (e *Evaluator) ByID(id string) (models.BadgeDefinition, bool) {
	for _, def := range e.catalog {
		if def.ID == id {
			return def, true
		}
	}
	return models.BadgeDefinition{}, false
}

// CheckAndAward returns the ids of badges not yet held whose requirement is
// now met as of now. The profile is not modified; callers merge the result
// themselves.
func (e *Evaluator) CheckAndAward(profile models.UserProfile, habits []models.Habit, logs []models.Log, now time.Time) []string {
	earned := []string{}
	for _, def := range e.catalog {
		if profile.HasBadge(def.ID) {
			continue
		}
		if e.Eligible(def, profile, habits, logs, now) {
			earned = append(earned, def.ID)
		}
	}
	return earned
}

// Eligible evaluates a single badge requirement with now's date as today.
// Unknown requirement types are never satisfied.
func (e *Evaluator) Eligible(def models.BadgeDefinition, profile models.UserProfile, habits []models.Habit, logs []models.Log, now time.Time) bool {
	req := def.Requirement

	switch req.Type {
	case constants.RequirementTotalLogs:
		return len(logs) >= req.Count

	case constants.RequirementStreak:
		for _, h := range habits {
			if utils.StreakLength(models.LogsForHabit(logs, h.ID), now) >= req.Days {
				return true
			}
		}
		return false

	case constants.RequirementTotalStars:
		return TotalStars(logs) >= req.Count

	case constants.RequirementMonthlyConsistency:
		logged, total := monthCoverage(logs, now)
		// cross-multiplied so 24 of 30 days meets 80% exactly
		return float64(logged*100) >= req.Percentage*float64(total)

	case constants.RequirementLevel:
		return profile.Level >= req.Level

	case constants.RequirementPerfectDay:
		return isPerfectDay(habits, logs, now)

	default:
		logger.Debug("Unknown badge requirement", "badge", def.ID, "type", req.Type)
		return false
	}
}

// TotalStars sums the stars of every log
func TotalStars(logs []models.Log) int {
	total := 0
	for _, l := range logs {
		total += l.Stars
	}
	return total
}

// MonthlyConsistency returns the percentage of days in now's calendar month
// that have at least one log.
func MonthlyConsistency(logs []models.Log, now time.Time) float64 {
	logged, total := monthCoverage(logs, now)
	return float64(logged) / float64(total) * 100
}

func monthCoverage(logs []models.Log, now time.Time) (logged, total int) {
	year, month := now.Year(), now.Month()
	days := make(map[string]struct{})
	for _, l := range logs {
		if utils.InMonth(l.Date, year, month) {
			days[l.Date] = struct{}{}
		}
	}
	return len(days), utils.DaysInMonth(year, month)
}

func isPerfectDay(habits []models.Habit, logs []models.Log, now time.Time) bool {
	today := models.LogsForDate(logs, utils.FormatDateKey(now))
	if len(today) == 0 || len(today) != len(habits) {
		return false
	}
	for _, l := range today {
		if l.Stars != constants.MaxStars {
			return false
		}
	}
	return true
}
