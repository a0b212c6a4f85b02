package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/julianstephens/microhabit/internal/constants"
	"github.com/julianstephens/microhabit/internal/models"
)

var repoNow = time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestRepository(t *testing.T) (*Repository, Provider) {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "repo.db"))
	initProvider(t, store)
	return NewRepository(store), store
}

func TestRepository_Defaults(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	snap, err := repo.LoadSnapshot(ctx, repoNow)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if snap.Habits == nil || len(snap.Habits) != 0 {
		t.Errorf("expected empty non-nil habits, got %#v", snap.Habits)
	}
	if snap.Logs == nil || len(snap.Logs) != 0 {
		t.Errorf("expected empty non-nil logs, got %#v", snap.Logs)
	}
	if snap.Profile.TotalPoints != 0 || snap.Profile.Level != 1 || len(snap.Profile.Badges) != 0 {
		t.Errorf("unexpected default profile: %+v", snap.Profile)
	}
	if !snap.Profile.CreatedAt.Equal(repoNow) {
		t.Errorf("expected createdAt %v, got %v", repoNow, snap.Profile.CreatedAt)
	}

	done, err := repo.IsOnboardingComplete(ctx)
	if err != nil {
		t.Fatalf("IsOnboardingComplete failed: %v", err)
	}
	if done {
		t.Error("expected onboarding to be incomplete")
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	habits := []models.Habit{
		{ID: "h1", Name: "Drink Water", Importance: 2, CreatedAt: repoNow},
	}
	profile := models.UserProfile{TotalPoints: 20, Level: 1, Badges: []string{"first_habit"}, CreatedAt: repoNow}
	logs := []models.Log{
		{ID: "l1", HabitID: "h1", Date: "2026-06-15", Stars: 5, Points: 20, Timestamp: repoNow},
	}

	if err := repo.CompleteOnboarding(ctx, habits, models.NewProfile(repoNow)); err != nil {
		t.Fatalf("CompleteOnboarding failed: %v", err)
	}
	if err := repo.SaveProgress(ctx, logs, profile); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	snap, err := repo.LoadSnapshot(ctx, repoNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	if len(snap.Habits) != 1 || snap.Habits[0].Name != "Drink Water" {
		t.Errorf("unexpected habits: %+v", snap.Habits)
	}
	if len(snap.Logs) != 1 || snap.Logs[0].Points != 20 {
		t.Errorf("unexpected logs: %+v", snap.Logs)
	}
	if snap.Profile.TotalPoints != 20 || !snap.Profile.HasBadge("first_habit") {
		t.Errorf("unexpected profile: %+v", snap.Profile)
	}
	if !snap.Profile.CreatedAt.Equal(repoNow) {
		t.Errorf("createdAt changed on reload: %v", snap.Profile.CreatedAt)
	}

	done, err := repo.IsOnboardingComplete(ctx)
	if err != nil {
		t.Fatalf("IsOnboardingComplete failed: %v", err)
	}
	if !done {
		t.Error("expected onboarding to be complete")
	}
}

func TestRepository_MalformedDocumentIsError(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	if err := store.Put(ctx, constants.KeyLogs, []byte(`{"not":"an array"}`)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := repo.LoadLogs(ctx); err == nil {
		t.Error("expected error for malformed logs document")
	}
}

func TestRepository_DropsInvalidAndDuplicateLogs(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	raw := `[
		{"id":"l1","habitId":"h1","date":"2026-06-15","stars":3,"points":12},
		{"id":"l2","habitId":"h1","date":"2026-06-15","stars":5,"points":20},
		{"id":"l3","habitId":"h1","date":"2026-06-14","stars":9,"points":36},
		{"id":"l4","habitId":"h1","date":"15/06/2026","stars":2,"points":8},
		{"id":"l5","habitId":"h2","date":"2026-06-15","stars":1,"points":2}
	]`
	if err := store.Put(ctx, constants.KeyLogs, []byte(raw)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	logs, err := repo.LoadLogs(ctx)
	if err != nil {
		t.Fatalf("LoadLogs failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d: %+v", len(logs), logs)
	}
	if logs[0].ID != "l1" || logs[1].ID != "l5" {
		t.Errorf("expected first duplicate to win, got %+v", logs)
	}
}

func TestRepository_SaveProgressKeepsSetAsideLogs(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	raw := `[
		{"id":"l1","habitId":"h1","date":"2026-06-15","stars":3,"points":12},
		{"id":"l2","habitId":"h1","date":"2026-06-15","stars":5,"points":20},
		{"id":"l3","habitId":"h1","date":"2026-06-14","stars":9,"points":36}
	]`
	if err := store.Put(ctx, constants.KeyLogs, []byte(raw)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	logs, err := repo.LoadLogs(ctx)
	if err != nil {
		t.Fatalf("LoadLogs failed: %v", err)
	}
	if len(logs) != 1 || repo.HeldLogs() != 2 {
		t.Fatalf("expected 1 log and 2 held records, got %d and %d", len(logs), repo.HeldLogs())
	}

	logs[0].Stars = 4
	logs[0].Points = 16
	logs = append(logs, models.Log{ID: "l6", HabitID: "h2", Date: "2026-06-15", Stars: 1, Points: 2, Timestamp: repoNow})
	if err := repo.SaveProgress(ctx, logs, models.NewProfile(repoNow)); err != nil {
		t.Fatalf("SaveProgress failed: %v", err)
	}

	data, err := store.Get(ctx, constants.KeyLogs)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var stored []map[string]any
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("stored logs are not valid JSON: %v", err)
	}
	ids := make([]string, 0, len(stored))
	for _, rec := range stored {
		ids = append(ids, rec["id"].(string))
	}
	if want := []string{"l1", "l6", "l2", "l3"}; !slices.Equal(ids, want) {
		t.Errorf("stored log ids = %v, want %v", ids, want)
	}

	reloaded, err := repo.LoadLogs(ctx)
	if err != nil {
		t.Fatalf("LoadLogs failed: %v", err)
	}
	if len(reloaded) != 2 || reloaded[0].Stars != 4 {
		t.Errorf("expected the updated log to win on reload, got %+v", reloaded)
	}
	if repo.HeldLogs() != 2 {
		t.Errorf("expected 2 held records after reload, got %d", repo.HeldLogs())
	}
}

func TestRepository_DropsInvalidHabits(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	raw := `[
		{"id":"h1","name":"Read","importance":2},
		{"id":"h2","name":"","importance":1},
		{"id":"h3","name":"Walk","importance":0},
		{"id":"h1","name":"Read again","importance":1}
	]`
	if err := store.Put(ctx, constants.KeyHabits, []byte(raw)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	habits, err := repo.LoadHabits(ctx)
	if err != nil {
		t.Fatalf("LoadHabits failed: %v", err)
	}
	if len(habits) != 1 || habits[0].Name != "Read" {
		t.Errorf("expected only the first valid habit, got %+v", habits)
	}
}

func TestRepository_DeduplicatesBadges(t *testing.T) {
	ctx := context.Background()
	repo, store := newTestRepository(t)

	raw := `{"totalPoints":10,"level":1,"badges":["first_habit","perfect_day","first_habit"]}`
	if err := store.Put(ctx, constants.KeyUserProfile, []byte(raw)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	profile, err := repo.LoadProfile(ctx, repoNow)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}
	if len(profile.Badges) != 2 {
		t.Errorf("expected 2 unique badges, got %v", profile.Badges)
	}
	if !profile.CreatedAt.Equal(repoNow) {
		t.Errorf("expected missing createdAt to default to now, got %v", profile.CreatedAt)
	}
}

func TestRepository_Reset(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)

	if err := repo.SetOnboardingComplete(ctx, true); err != nil {
		t.Fatalf("SetOnboardingComplete failed: %v", err)
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	done, err := repo.IsOnboardingComplete(ctx)
	if err != nil {
		t.Fatalf("IsOnboardingComplete failed: %v", err)
	}
	if done {
		t.Error("expected onboarding flag to be cleared")
	}
}
