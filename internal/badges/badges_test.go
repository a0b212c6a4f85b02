package badges

import (
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/models"
	"github.com/julianstephens/microhabit/internal/testutil"
)

func newTestEvaluator() *Evaluator {
	return New(DefaultCatalog())
}

func badge(t *testing.T, e *Evaluator, id string) models.BadgeDefinition {
	t.Helper()
	def, ok := e.ByID(id)
	if !ok {
		t.Fatalf("badge %q not in catalog", id)
	}
	return def
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 6 {
		t.Fatalf("expected 6 badges, got %d", len(catalog))
	}
	seen := make(map[string]bool)
	for _, def := range catalog {
		if seen[def.ID] {
			t.Errorf("duplicate badge id %q", def.ID)
		}
		seen[def.ID] = true
	}
}

func TestEligible_TotalLogs(t *testing.T) {
	clock := testutil.FixedClock()
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgeFirstHabit)

	if e.Eligible(def, models.NewProfile(clock.Now()), nil, nil, clock.Now()) {
		t.Error("expected first_habit to be locked with no logs")
	}

	// A zero-star rating still counts as a log
	logs := []models.Log{testutil.LogOn(clock.Now(), "h1", 0, 0)}
	if !e.Eligible(def, models.NewProfile(clock.Now()), testutil.Habits(1, 2), logs, clock.Now()) {
		t.Error("expected first_habit to unlock after one log")
	}
}

func TestEligible_Streak(t *testing.T) {
	clock := testutil.FixedClock()
	now := clock.Now()
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgeWeekStreak)
	habits := testutil.Habits(2, 2)

	var logs []models.Log
	for d := 0; d < 6; d++ {
		logs = append(logs, testutil.LogOn(now, "h1", d, 3))
	}
	if e.Eligible(def, models.NewProfile(now), habits, logs, now) {
		t.Error("expected 6-day streak not to satisfy week_streak")
	}

	logs = append(logs, testutil.LogOn(now, "h1", 6, 1))
	if !e.Eligible(def, models.NewProfile(now), habits, logs, now) {
		t.Error("expected 7-day streak to satisfy week_streak")
	}
}

func TestEligible_Streak_IgnoresLogsOfUnknownHabits(t *testing.T) {
	now := testutil.FixedClock().Now()
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgeWeekStreak)

	var logs []models.Log
	for d := 0; d < 7; d++ {
		logs = append(logs, testutil.LogOn(now, "gone", d, 5))
	}
	if e.Eligible(def, models.NewProfile(now), testutil.Habits(1, 1), logs, now) {
		t.Error("expected streak of unknown habit to be ignored")
	}
}

func TestEligible_TotalStars(t *testing.T) {
	now := testutil.FixedClock().Now()
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgeHundredStars)

	var logs []models.Log
	for d := 0; d < 19; d++ {
		logs = append(logs, testutil.LogOn(now, "h1", d, 5))
	}
	if e.Eligible(def, models.NewProfile(now), nil, logs, now) {
		t.Error("expected 95 stars not to satisfy hundred_stars")
	}
	logs = append(logs, testutil.LogOn(now, "h1", 19, 5))
	if !e.Eligible(def, models.NewProfile(now), nil, logs, now) {
		t.Error("expected 100 stars to satisfy hundred_stars")
	}
}

func TestEligible_MonthlyConsistency(t *testing.T) {
	// June has 30 days
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgeConsistencyMaster)

	var logs []models.Log
	for d := 0; d < 23; d++ {
		logs = append(logs, testutil.LogOn(now, "h1", d, 1))
	}
	// Second log on an already-counted date does not add a day
	logs = append(logs, testutil.LogOn(now, "h2", 0, 1))
	// Previous month is ignored
	logs = append(logs, testutil.LogOn(now, "h1", 30, 1))

	if e.Eligible(def, models.NewProfile(now), nil, logs, now) {
		t.Error("expected 23/30 days not to satisfy 80% consistency")
	}

	logs = append(logs, testutil.LogOn(now, "h1", 23, 1))
	if got := MonthlyConsistency(logs, now); got != 80 {
		t.Errorf("MonthlyConsistency() = %v, want 80", got)
	}
	if !e.Eligible(def, models.NewProfile(now), nil, logs, now) {
		t.Error("expected 24/30 days to exactly meet 80% consistency")
	}
}

func TestEligible_Level(t *testing.T) {
	now := testutil.FixedClock().Now()
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgeLevelFive)

	profile := models.NewProfile(now)
	profile.Level = 4
	if e.Eligible(def, profile, nil, nil, now) {
		t.Error("expected level 4 not to satisfy level_five")
	}
	profile.Level = 5
	if !e.Eligible(def, profile, nil, nil, now) {
		t.Error("expected level 5 to satisfy level_five")
	}
}

func TestEligible_PerfectDay(t *testing.T) {
	now := testutil.FixedClock().Now()
	e := newTestEvaluator()
	def := badge(t, e, constants.BadgePerfectDay)
	habits := testutil.Habits(3, 2)
	profile := models.NewProfile(now)

	tests := []struct {
		name string
		logs []models.Log
		want bool
	}{
		{
			name: "no logs today",
			logs: []models.Log{testutil.LogOn(now, "h1", 1, 5)},
			want: false,
		},
		{
			name: "not every habit rated",
			logs: []models.Log{
				testutil.LogOn(now, "h1", 0, 5),
				testutil.LogOn(now, "h2", 0, 5),
			},
			want: false,
		},
		{
			name: "one habit below five stars",
			logs: []models.Log{
				testutil.LogOn(now, "h1", 0, 5),
				testutil.LogOn(now, "h2", 0, 4),
				testutil.LogOn(now, "h3", 0, 5),
			},
			want: false,
		},
		{
			name: "all habits five stars",
			logs: []models.Log{
				testutil.LogOn(now, "h1", 0, 5),
				testutil.LogOn(now, "h2", 0, 5),
				testutil.LogOn(now, "h3", 0, 5),
				testutil.LogOn(now, "h1", 1, 2),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Eligible(def, profile, habits, tt.logs, now); got != tt.want {
				t.Errorf("Eligible(perfect_day) = %v, want %v", got, tt.want)
			}
		})
	}

	if e.Eligible(def, profile, nil, nil, now) {
		t.Error("expected perfect_day to stay locked with no habits")
	}
}

func TestEligible_UnknownRequirement(t *testing.T) {
	now := testutil.FixedClock().Now()
	e := newTestEvaluator()
	def := models.BadgeDefinition{ID: "mystery", Requirement: models.Requirement{Type: "moon_phase"}}
	if e.Eligible(def, models.NewProfile(now), nil, nil, now) {
		t.Error("expected unknown requirement to evaluate false")
	}
}

func TestCheckAndAward(t *testing.T) {
	now := testutil.FixedClock().Now()
	e := newTestEvaluator()
	habits := testutil.Habits(3, 2)
	logs := []models.Log{
		testutil.LogOn(now, "h1", 0, 5),
		testutil.LogOn(now, "h2", 0, 5),
		testutil.LogOn(now, "h3", 0, 5),
	}
	profile := models.NewProfile(now)

	earned := e.CheckAndAward(profile, habits, logs, now)
	want := []string{constants.BadgeFirstHabit, constants.BadgePerfectDay}
	if !slices.Equal(earned, want) {
		t.Fatalf("CheckAndAward() = %v, want %v", earned, want)
	}
	if len(profile.Badges) != 0 {
		t.Errorf("CheckAndAward mutated the profile: %v", profile.Badges)
	}

	profile = profile.WithBadges(earned...)
	again := e.CheckAndAward(profile, habits, logs, now)
	if len(again) != 0 {
		t.Errorf("expected no new badges on second call, got %v", again)
	}
}

func TestCatalogAccess(t *testing.T) {
	e := newTestEvaluator()
	catalog := e.Catalog()
	catalog[0].Name = "changed"
	if def, _ := e.ByID(constants.BadgeFirstHabit); def.Name == "changed" {
		t.Error("Catalog() must return a copy")
	}
	if _, ok := e.ByID("nope"); ok {
		t.Error("expected ByID to miss unknown badge")
	}
}
