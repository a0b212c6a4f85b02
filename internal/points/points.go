// Package points converts star ratings into points and points into levels.
package points

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/models"
)

var validate = validator.New()

// Config holds the scoring constants
type Config struct {
	PointsPerStar     int `toml:"points_per_star" validate:"gt=0"`
	PenaltyMultiplier int `toml:"penalty_multiplier" validate:"gt=0"`
	PointsPerLevel    int `toml:"points_per_level" validate:"gt=0"`
}

// DefaultConfig returns the standard scoring constants
func DefaultConfig() Config {
	return Config{
		PointsPerStar:     constants.DefaultPointsPerStar,
		PenaltyMultiplier: constants.DefaultPenaltyMultiplier,
		PointsPerLevel:    constants.DefaultPointsPerLevel,
	}
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid scoring config: %w", err)
	}
	return nil
}

// Calculator is stateless apart from its constants and safe to share.
type Calculator struct {
	cfg Config
}

// New creates a calculator, rejecting non-positive constants
func New(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the constants the calculator was built with
func (c *Calculator) Config() Config {
	return c.cfg
}

// PointsFor returns the points earned by a rating
func (c *Calculator) PointsFor(stars, importance int) int {
	return stars * importance * c.cfg.PointsPerStar
}

// PenaltyFor returns the deduction for a missed day.
// Nothing applies penalties yet; missed days currently cost nothing.
func (c *Calculator) PenaltyFor(importance int) int {
	return -c.cfg.PenaltyMultiplier * importance
}

// LevelFor returns the level reached with totalPoints
func (c *Calculator) LevelFor(totalPoints int) int {
	if totalPoints < 0 {
		return 1
	}
	return totalPoints/c.cfg.PointsPerLevel + 1
}

// PointsForNextLevel returns the total needed to leave currentLevel
func (c *Calculator) PointsForNextLevel(currentLevel int) int {
	return currentLevel * c.cfg.PointsPerLevel
}

// ProgressToNextLevel returns the percentage of the current level completed.
// currentLevel must equal LevelFor(totalPoints); it is not checked.
func (c *Calculator) ProgressToNextLevel(totalPoints, currentLevel int) float64 {
	inLevel := totalPoints - (currentLevel-1)*c.cfg.PointsPerLevel
	return float64(inLevel) / float64(c.cfg.PointsPerLevel) * 100
}

// DailyTotal sums the points of logs whose habit is known.
// Logs that reference an unknown habit are skipped.
func (c *Calculator) DailyTotal(logs []models.Log, habits []models.Habit) int {
	idx := models.HabitIndex(habits)
	total := 0
	for _, l := range logs {
		h, ok := idx[l.HabitID]
		if !ok {
			continue
		}
		total += c.PointsFor(l.Stars, h.Importance)
	}
	return total
}

// TotalPoints recomputes the lifetime total from the full log history
func (c *Calculator) TotalPoints(allLogs []models.Log, habits []models.Habit) int {
	return c.DailyTotal(allLogs, habits)
}

// MaxDailyPoints is the total earned when every habit gets five stars
func (c *Calculator) MaxDailyPoints(habits []models.Habit) int {
	total := 0
	for _, h := range habits {
		total += c.PointsFor(constants.MaxStars, h.Importance)
	}
	return total
}
