package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/microhabit/internal/badges"
	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/points"
	"github.com/julianstephens/microhabit/internal/utils"
)

var (
	// ErrAlreadyOnboarded is returned by Onboard once habits have been chosen
	ErrAlreadyOnboarded = errors.New("onboarding already completed")
	// ErrInvalidSelection is returned for a bad onboarding template choice
	ErrInvalidSelection = errors.New("invalid habit selection")
)

// Repository is the persistence the tracker needs
type Repository interface {
	LoadSnapshot(ctx context.Context, now time.Time) (models.Snapshot, error)
	IsOnboardingComplete(ctx context.Context) (bool, error)
	SaveProgress(ctx context.Context, logs []models.Log, profile models.UserProfile) error
	CompleteOnboarding(ctx context.Context, habits []models.Habit, profile models.UserProfile) error
}

// Tracker is the single writer over the user's habit data. Every mutation
// holds the lock across compute and persist, and the in-memory snapshot is
// only replaced once the store accepted the write.
type Tracker struct {
	repo   Repository
	engine Engine
	clock  utils.Clock

	mu        sync.Mutex
	snap      models.Snapshot
	onboarded bool
}

// New loads the current state from repo
func New(ctx context.Context, repo Repository, engine Engine, clock utils.Clock) (*Tracker, error) {
	t := &Tracker{
		repo:   repo,
		engine: engine,
		clock:  clock,
	}
	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload replaces the in-memory state with what the store holds
func (t *Tracker) Reload(ctx context.Context) error {
	now := t.clock.Now()

	snap, err := t.repo.LoadSnapshot(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to load habit data: %w", err)
	}
	done, err := t.repo.IsOnboardingComplete(ctx)
	if err != nil {
		return fmt.Errorf("failed to load onboarding state: %w", err)
	}

	snap, changed := Normalize(snap, t.engine.Calculator)
	if changed {
		logger.Warn("Stored profile disagrees with log history, recomputed",
			"totalPoints", snap.Profile.TotalPoints, "level", snap.Profile.Level)
	}

	t.mu.Lock()
	t.snap = snap
	t.onboarded = done
	t.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current state
func (t *Tracker) Snapshot() models.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Clone()
}

func (t *Tracker) IsOnboarded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.onboarded
}

func (t *Tracker) Calculator() *points.Calculator {
	return t.engine.Calculator
}

func (t *Tracker) Evaluator() *badges.Evaluator {
	return t.engine.Evaluator
}

func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// Rate records stars for habitID today and persists logs and profile together
func (t *Tracker) Rate(ctx context.Context, habitID string, stars int) (Outcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, outcome, err := RateHabit(t.snap, habitID, stars, t.clock.Now(), t.engine)
	if err != nil {
		return Outcome{}, err
	}
	if !outcome.Applied {
		logger.Debug("Ignoring rating for unknown habit", "habitId", habitID)
		return outcome, nil
	}

	if err := t.repo.SaveProgress(ctx, next.Logs, next.Profile); err != nil {
		return Outcome{}, fmt.Errorf("failed to save rating: %w", err)
	}

	t.snap = next
	logger.Info("Habit rated", "habitId", habitID, "stars", stars, "points", outcome.Log.Points, "level", outcome.Level)
	if len(outcome.NewBadges) > 0 {
		logger.Info("Badges unlocked", "badges", outcome.NewBadges)
	}
	return outcome, nil
}

// Onboard creates habits from 3 to 5 distinct templates and starts a fresh profile
func (t *Tracker) Onboard(ctx context.Context, templateIDs []string) ([]models.Habit, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.onboarded {
		return nil, ErrAlreadyOnboarded
	}
	if n := len(templateIDs); n < constants.MinOnboardingHabits || n > constants.MaxOnboardingHabits {
		return nil, fmt.Errorf("%w: choose between %d and %d habits, got %d",
			ErrInvalidSelection, constants.MinOnboardingHabits, constants.MaxOnboardingHabits, n)
	}

	now := t.clock.Now()
	seen := make(map[string]bool, len(templateIDs))
	habits := make([]models.Habit, 0, len(templateIDs))
	for _, id := range templateIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: %q selected twice", ErrInvalidSelection, id)
		}
		seen[id] = true

		tmpl, ok := models.TemplateByID(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown template %q", ErrInvalidSelection, id)
		}
		habits = append(habits, models.Habit{
			ID:          t.engine.IDs.New(),
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Icon:        tmpl.Icon,
			Importance:  tmpl.Importance,
			CreatedAt:   now,
		})
	}

	profile := models.NewProfile(now)
	if err := t.repo.CompleteOnboarding(ctx, habits, profile); err != nil {
		return nil, fmt.Errorf("failed to save onboarding: %w", err)
	}

	t.snap = models.Snapshot{Habits: habits, Logs: []models.Log{}, Profile: profile}
	t.onboarded = true
	logger.Info("Onboarding complete", "habits", len(habits))
	return append([]models.Habit(nil), habits...), nil
}

// Today summarizes the current day
func (t *Tracker) Today() TodaySummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return BuildTodaySummary(t.snap, t.clock.Now(), t.engine.Calculator)
}

// Stats summarizes lifetime progress
func (t *Tracker) Stats() ProfileStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return BuildProfileStats(t.snap, t.clock.Now(), t.engine.Calculator, len(t.engine.Evaluator.Catalog()))
}

// History summarizes one calendar month
func (t *Tracker) History(year int, month time.Month) MonthHistory {
	t.mu.Lock()
	defer t.mu.Unlock()
	return BuildMonthHistory(t.snap, year, month, t.clock.Now())
}
