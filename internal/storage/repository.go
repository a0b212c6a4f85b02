package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/logger"
	"github.com/julianstephens/microhabit/internal/models"
)

// Repository maps the typed data model onto a Provider's JSON documents.
// Absent keys load as defaults. A document that fails to parse is an error,
// while individual records that fail validation are dropped with a warning.
// Dropped log records are held verbatim and written back on every save so
// they are never lost from storage.
type Repository struct {
	store Provider

	mu       sync.Mutex
	heldLogs []json.RawMessage
}

func NewRepository(store Provider) *Repository {
	return &Repository{store: store}
}

// Store returns the underlying provider
func (r *Repository) Store() Provider {
	return r.store
}

// getJSON decodes key into v. found is false when the key is absent.
func (r *Repository) getJSON(ctx context.Context, key string, v any) (found bool, err error) {
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return true, nil
}

func encode(key string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	return data, nil
}

func (r *Repository) LoadHabits(ctx context.Context) ([]models.Habit, error) {
	var raw []models.Habit
	if _, err := r.getJSON(ctx, constants.KeyHabits, &raw); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, h := range raw {
		if err := h.Validate(); err != nil {
			logger.Warn("Dropping invalid habit", "id", h.ID, "error", err)
			continue
		}
		if seen[h.ID] {
			logger.Warn("Dropping duplicate habit", "id", h.ID)
			continue
		}
		seen[h.ID] = true
		habits = append(habits, h)
	}
	return habits, nil
}

func (r *Repository) LoadLogs(ctx context.Context) ([]models.Log, error) {
	var raw []json.RawMessage
	if _, err := r.getJSON(ctx, constants.KeyLogs, &raw); err != nil {
		return nil, err
	}

	type day struct{ habitID, date string }
	logs := make([]models.Log, 0, len(raw))
	held := []json.RawMessage{}
	seen := make(map[day]bool, len(raw))
	for _, rec := range raw {
		var l models.Log
		if err := json.Unmarshal(rec, &l); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", constants.KeyLogs, err)
		}
		if err := l.Validate(); err != nil {
			logger.Warn("Dropping invalid log", "id", l.ID, "error", err)
			held = append(held, rec)
			continue
		}
		k := day{l.HabitID, l.Date}
		if seen[k] {
			logger.Warn("Dropping duplicate log", "id", l.ID, "habitId", l.HabitID, "date", l.Date)
			held = append(held, rec)
			continue
		}
		seen[k] = true
		logs = append(logs, l)
	}

	r.mu.Lock()
	r.heldLogs = held
	r.mu.Unlock()
	return logs, nil
}

// LoadProfile returns the stored profile, or a fresh one created at now.
// Level consistency is the tracker's concern; this only repairs shape.
func (r *Repository) LoadProfile(ctx context.Context, now time.Time) (models.UserProfile, error) {
	var p models.UserProfile
	found, err := r.getJSON(ctx, constants.KeyUserProfile, &p)
	if err != nil {
		return models.UserProfile{}, err
	}
	if !found {
		return models.NewProfile(now), nil
	}

	if err := p.Validate(); err != nil {
		logger.Warn("Stored profile failed validation", "error", err)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	return p.WithBadges(), nil
}

func (r *Repository) IsOnboardingComplete(ctx context.Context) (bool, error) {
	var done bool
	if _, err := r.getJSON(ctx, constants.KeyOnboardingComplete, &done); err != nil {
		return false, err
	}
	return done, nil
}

// LoadSnapshot reads habits, logs and profile together
func (r *Repository) LoadSnapshot(ctx context.Context, now time.Time) (models.Snapshot, error) {
	habits, err := r.LoadHabits(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	logs, err := r.LoadLogs(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	profile, err := r.LoadProfile(ctx, now)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{Habits: habits, Logs: logs, Profile: profile}, nil
}

func (r *Repository) SaveHabits(ctx context.Context, habits []models.Habit) error {
	data, err := encode(constants.KeyHabits, nonNil(habits))
	if err != nil {
		return err
	}
	return r.store.Put(ctx, constants.KeyHabits, data)
}

func (r *Repository) SaveProfile(ctx context.Context, profile models.UserProfile) error {
	data, err := encode(constants.KeyUserProfile, profile.WithBadges())
	if err != nil {
		return err
	}
	return r.store.Put(ctx, constants.KeyUserProfile, data)
}

func (r *Repository) SetOnboardingComplete(ctx context.Context, done bool) error {
	data, err := encode(constants.KeyOnboardingComplete, done)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, constants.KeyOnboardingComplete, data)
}

// HeldLogs returns the number of stored log records LoadLogs set aside
func (r *Repository) HeldLogs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.heldLogs)
}

// logRecords encodes logs followed by the held records. Valid logs come
// first so they win the duplicate check on the next load.
func (r *Repository) logRecords(logs []models.Log) ([]json.RawMessage, error) {
	r.mu.Lock()
	held := slices.Clone(r.heldLogs)
	r.mu.Unlock()

	records := make([]json.RawMessage, 0, len(logs)+len(held))
	for _, l := range logs {
		data, err := encode(constants.KeyLogs, l)
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return append(records, held...), nil
}

// SaveProgress writes logs and profile in one atomic store operation.
// Records set aside by the last LoadLogs are written back unchanged.
func (r *Repository) SaveProgress(ctx context.Context, logs []models.Log, profile models.UserProfile) error {
	records, err := r.logRecords(logs)
	if err != nil {
		return err
	}
	logData, err := encode(constants.KeyLogs, records)
	if err != nil {
		return err
	}
	profileData, err := encode(constants.KeyUserProfile, profile.WithBadges())
	if err != nil {
		return err
	}
	return r.store.PutMany(ctx, map[string][]byte{
		constants.KeyLogs:        logData,
		constants.KeyUserProfile: profileData,
	})
}

// CompleteOnboarding writes the chosen habits, the starting profile and the
// onboarding flag atomically
func (r *Repository) CompleteOnboarding(ctx context.Context, habits []models.Habit, profile models.UserProfile) error {
	habitData, err := encode(constants.KeyHabits, nonNil(habits))
	if err != nil {
		return err
	}
	profileData, err := encode(constants.KeyUserProfile, profile.WithBadges())
	if err != nil {
		return err
	}
	logData, err := encode(constants.KeyLogs, []models.Log{})
	if err != nil {
		return err
	}
	flagData, err := encode(constants.KeyOnboardingComplete, true)
	if err != nil {
		return err
	}
	return r.store.PutMany(ctx, map[string][]byte{
		constants.KeyHabits:             habitData,
		constants.KeyUserProfile:        profileData,
		constants.KeyLogs:               logData,
		constants.KeyOnboardingComplete: flagData,
	})
}

// Reset removes every stored key
func (r *Repository) Reset(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return err
	}
	r.mu.Lock()
	r.heldLogs = nil
	r.mu.Unlock()
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
