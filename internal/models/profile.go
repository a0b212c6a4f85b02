package models

import (
	"fmt"
	"slices"
	"time"
)

// UserProfile holds the derived progress of the single local user
type UserProfile struct {
	TotalPoints int       `json:"totalPoints" validate:"gte=0"`
	Level       int       `json:"level" validate:"gte=1"`
	Badges      []string  `json:"badges"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewProfile returns the profile every user starts with
func NewProfile(now time.Time) UserProfile {
	return UserProfile{
		TotalPoints: 0,
		Level:       1,
		Badges:      []string{},
		CreatedAt:   now,
	}
}

func (p *UserProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid user profile: %w", err)
	}
	return nil
}

// HasBadge reports whether the badge has already been unlocked
func (p UserProfile) HasBadge(id string) bool {
	return slices.Contains(p.Badges, id)
}

// WithBadges returns a copy of the profile with ids merged into its badge set.
// Existing badges are kept in order and duplicates are dropped.
func (p UserProfile) WithBadges(ids ...string) UserProfile {
	merged := make([]string, 0, len(p.Badges)+len(ids))
	seen := make(map[string]bool, len(p.Badges)+len(ids))
	for _, id := range append(slices.Clone(p.Badges), ids...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		merged = append(merged, id)
	}
	p.Badges = merged
	return p
}

// Snapshot is the full in-memory state the engine operates over.
// Values are treated as immutable: the write path returns a new Snapshot.
type Snapshot struct {
	Habits  []Habit
	Logs    []Log
	Profile UserProfile
}

// Clone returns a deep copy so callers can hand out snapshots safely
func (s Snapshot) Clone() Snapshot {
	p := s.Profile
	p.Badges = slices.Clone(s.Profile.Badges)
	return Snapshot{
		Habits:  slices.Clone(s.Habits),
		Logs:    slices.Clone(s.Logs),
		Profile: p,
	}
}

// Habit looks up a habit by id
func (s Snapshot) Habit(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}
