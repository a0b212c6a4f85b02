package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/microhabit/internal/models"
)

var testNow = time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)

func daysAgo(n int) string {
	return FormatDateKey(testNow.AddDate(0, 0, -n))
}

func TestDayOffset(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    int
		wantErr bool
	}{
		{name: "today", key: "2026-06-15", want: 0},
		{name: "yesterday", key: "2026-06-14", want: 1},
		{name: "previous month", key: "2026-05-31", want: 15},
		{name: "future", key: "2026-06-17", want: -2},
		{name: "invalid", key: "2026/06/15", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DayOffset(testNow, tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DayOffset() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("DayOffset() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayOffset_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// DST started on 2026-03-08 in New York
	now := time.Date(2026, 3, 9, 0, 30, 0, 0, loc)
	got, err := DayOffset(now, "2026-03-07")
	if err != nil {
		t.Fatalf("DayOffset failed: %v", err)
	}
	if got != 2 {
		t.Errorf("DayOffset() = %d, want 2", got)
	}
}

func TestStreakLength(t *testing.T) {
	tests := []struct {
		name string
		logs []models.Log
		want int
	}{
		{
			name: "empty",
			logs: nil,
			want: 0,
		},
		{
			name: "three consecutive days",
			logs: []models.Log{
				{Date: daysAgo(2), Stars: 4},
				{Date: daysAgo(0), Stars: 3},
				{Date: daysAgo(1), Stars: 1},
			},
			want: 3,
		},
		{
			name: "gap at yesterday caps streak at today",
			logs: []models.Log{
				{Date: daysAgo(0), Stars: 5},
				{Date: daysAgo(2), Stars: 5},
				{Date: daysAgo(3), Stars: 5},
			},
			want: 1,
		},
		{
			name: "zero stars today ends streak",
			logs: []models.Log{
				{Date: daysAgo(0), Stars: 0},
				{Date: daysAgo(1), Stars: 5},
				{Date: daysAgo(2), Stars: 5},
			},
			want: 0,
		},
		{
			name: "today missing",
			logs: []models.Log{
				{Date: daysAgo(1), Stars: 5},
				{Date: daysAgo(2), Stars: 5},
			},
			want: 0,
		},
		{
			name: "zero stars in the middle",
			logs: []models.Log{
				{Date: daysAgo(0), Stars: 2},
				{Date: daysAgo(1), Stars: 0},
				{Date: daysAgo(2), Stars: 5},
			},
			want: 1,
		},
		{
			name: "duplicate day counts once",
			logs: []models.Log{
				{Date: daysAgo(0), Stars: 2},
				{Date: daysAgo(0), Stars: 0},
				{Date: daysAgo(1), Stars: 5},
			},
			want: 2,
		},
		{
			name: "future log does not crash",
			logs: []models.Log{
				{Date: FormatDateKey(testNow.AddDate(0, 0, 1)), Stars: 5},
				{Date: daysAgo(0), Stars: 5},
			},
			want: 0,
		},
		{
			name: "unparseable date ignored",
			logs: []models.Log{
				{Date: "garbage", Stars: 5},
				{Date: daysAgo(0), Stars: 5},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StreakLength(tt.logs, testNow); got != tt.want {
				t.Errorf("StreakLength() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakLength_DoesNotReorderInput(t *testing.T) {
	logs := []models.Log{
		{ID: "a", Date: daysAgo(1), Stars: 1},
		{ID: "b", Date: daysAgo(0), Stars: 1},
	}
	StreakLength(logs, testNow)
	if logs[0].ID != "a" || logs[1].ID != "b" {
		t.Errorf("input slice was reordered: %+v", logs)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonthKeys(t *testing.T) {
	keys := MonthKeys(2026, time.June)
	if len(keys) != 30 {
		t.Fatalf("expected 30 keys, got %d", len(keys))
	}
	if keys[0] != "2026-06-01" || keys[29] != "2026-06-30" {
		t.Errorf("unexpected bounds: %s .. %s", keys[0], keys[29])
	}
}

func TestInMonth(t *testing.T) {
	if !InMonth("2026-06-01", 2026, time.June) {
		t.Error("expected 2026-06-01 to be in June 2026")
	}
	if InMonth("2025-06-01", 2026, time.June) {
		t.Error("expected 2025-06-01 not to be in June 2026")
	}
	if InMonth("2026-07-01", 2026, time.June) {
		t.Error("expected 2026-07-01 not to be in June 2026")
	}
}

func TestTodayKey(t *testing.T) {
	clock := fixedClock{now: testNow}
	if got := TodayKey(clock); got != "2026-06-15" {
		t.Errorf("TodayKey() = %s, want 2026-06-15", got)
	}
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }
