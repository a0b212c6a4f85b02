package badges

import (
	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/models"
)

// DefaultCatalog returns the built-in badges in display order
func DefaultCatalog() []models.BadgeDefinition {
	return []models.BadgeDefinition{
		{
			ID:          constants.BadgeFirstHabit,
			Name:        "Getting Started",
			Description: "Complete your first habit",
			Icon:        "🌱",
			Requirement: models.Requirement{Type: constants.RequirementTotalLogs, Count: 1},
		},
		{
			ID:          constants.BadgeWeekStreak,
			Name:        "7-Day Streak",
			Description: "Maintain a 7-day streak on any habit",
			Icon:        "🔥",
			Requirement: models.Requirement{Type: constants.RequirementStreak, Days: 7},
		},
		{
			ID:          constants.BadgeHundredStars,
			Name:        "Century",
			Description: "Earn 100 total stars",
			Icon:        "⭐",
			Requirement: models.Requirement{Type: constants.RequirementTotalStars, Count: 100},
		},
		{
			ID:          constants.BadgeConsistencyMaster,
			Name:        "Consistency Master",
			Description: "Achieve 80%+ consistency this month",
			Icon:        "🎯",
			Requirement: models.Requirement{Type: constants.RequirementMonthlyConsistency, Percentage: 80},
		},
		{
			ID:          constants.BadgeLevelFive,
			Name:        "Level 5 Hero",
			Description: "Reach level 5",
			Icon:        "🏆",
			Requirement: models.Requirement{Type: constants.RequirementLevel, Level: 5},
		},
		{
			ID:          constants.BadgePerfectDay,
			Name:        "Perfect Day",
			Description: "Get 5 stars on all habits in a single day",
			Icon:        "💎",
			Requirement: models.Requirement{Type: constants.RequirementPerfectDay},
		},
	}
}
