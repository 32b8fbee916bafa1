package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chris/gohan/config"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func openTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	s, err := Open(config.Database{Path: ":memory:"})
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	clock := &fakeClock{t: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	s.SetClock(clock.now)
	return s, clock
}

// --- Meals ---

func TestInsertAndListMeals(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertMeal(ctx, "u1", "toast"); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}
	clock.advance(time.Hour)
	if _, err := s.InsertMeal(ctx, "u1", "rice and miso soup"); err != nil {
		t.Fatalf("InsertMeal: %v", err)
	}
	s.InsertMeal(ctx, "u2", "someone else's lunch")

	meals, err := s.RecentMeals(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("RecentMeals: %v", err)
	}
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[0].Text != "rice and miso soup" {
		t.Errorf("expected newest first, got %q", meals[0].Text)
	}
	if meals[1].Text != "toast" {
		t.Errorf("expected %q second, got %q", "toast", meals[1].Text)
	}
	if !meals[0].CreatedAt.Equal(clock.t) {
		t.Errorf("created_at = %v, want %v", meals[0].CreatedAt, clock.t)
	}
}

func TestRecentMealsLimit(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		s.InsertMeal(ctx, "u1", "meal")
		clock.advance(time.Minute)
	}

	meals, _ := s.RecentMeals(ctx, "u1", 5)
	if len(meals) != 5 {
		t.Errorf("expected 5 meals, got %d", len(meals))
	}
	meals, _ = s.RecentMeals(ctx, "u1", 0)
	if len(meals) != defaultMealLimit {
		t.Errorf("expected default limit %d, got %d", defaultMealLimit, len(meals))
	}
}

func TestRecentMealsWindow(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()

	s.InsertMeal(ctx, "u1", "old curry")
	clock.advance(6 * 24 * time.Hour)
	s.InsertMeal(ctx, "u1", "recent ramen")
	clock.advance(2 * 24 * time.Hour)

	meals, err := s.RecentMealsWindow(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("RecentMealsWindow: %v", err)
	}
	if len(meals) != 1 || meals[0].Text != "recent ramen" {
		t.Errorf("expected only recent ramen, got %+v", meals)
	}
}

func TestRecentMealsSinceInclusive(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()
	s.InsertMeal(ctx, "u1", "boundary")

	meals, _ := s.RecentMealsSince(ctx, "u1", clock.t)
	if len(meals) != 1 {
		t.Errorf("expected meal at the boundary to be included, got %d", len(meals))
	}
}

// --- Tracked prompts ---

func TestTrackPromptExpiry(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()
	start := clock.t

	tp, err := s.TrackPrompt(ctx, "1000", "200")
	if err != nil {
		t.Fatalf("TrackPrompt: %v", err)
	}
	if !tp.ExpiresAt.Equal(start.Add(24 * time.Hour)) {
		t.Errorf("expires_at = %v, want %v", tp.ExpiresAt, start.Add(24*time.Hour))
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"at creation", start, true},
		{"just before expiry", start.Add(24*time.Hour - time.Nanosecond), true},
		{"at expiry", start.Add(24 * time.Hour), false},
		{"after expiry", start.Add(25 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.t = tt.at
			got, err := s.IsTracked(ctx, "1000")
			if err != nil {
				t.Fatalf("IsTracked: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsTracked at %v = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestIsTrackedUnknown(t *testing.T) {
	s, _ := openTestStore(t)
	got, err := s.IsTracked(context.Background(), "never-sent")
	if err != nil {
		t.Fatalf("IsTracked: %v", err)
	}
	if got {
		t.Error("expected untracked id to be false")
	}
}

func TestSweepExpired(t *testing.T) {
	s, clock := openTestStore(t)
	ctx := context.Background()

	s.TrackPrompt(ctx, "a", "c")
	clock.advance(time.Hour)
	s.TrackPrompt(ctx, "b", "c")
	clock.advance(23 * time.Hour) // "a" expires exactly now, "b" in an hour

	n, err := s.SweepExpired(ctx)
	if err != nil {
		t.Fatalf("SweepExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 row swept, got %d", n)
	}

	n, _ = s.SweepExpired(ctx)
	if n != 0 {
		t.Errorf("second sweep should delete nothing, got %d", n)
	}

	clock.advance(time.Hour)
	ok, _ := s.IsTracked(ctx, "b")
	if ok {
		t.Error("b should be expired")
	}
	n, _ = s.SweepExpired(ctx)
	if n != 1 {
		t.Errorf("expected b to be swept, got %d", n)
	}
}

// --- Nil store ---

func TestNilStoreNotInitialized(t *testing.T) {
	var s *Store
	ctx := context.Background()

	if _, err := s.RecentMeals(ctx, "u", 10); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("RecentMeals err = %v, want ErrNotInitialized", err)
	}
	if _, err := s.RecentMealsWindow(ctx, "u", 7); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("RecentMealsWindow err = %v, want ErrNotInitialized", err)
	}
	if _, err := s.InsertMeal(ctx, "u", "x"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("InsertMeal err = %v, want ErrNotInitialized", err)
	}
	if _, err := s.IsTracked(ctx, "m"); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("IsTracked err = %v, want ErrNotInitialized", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close on nil store: %v", err)
	}
}

func TestMySQLDSN(t *testing.T) {
	got := mysqlDSN(config.MySQL{Host: "db", Port: 3307, User: "bot", Password: "pw", Database: "gohan"})
	want := "bot:pw@tcp(db:3307)/gohan?charset=utf8mb4&parseTime=True&loc=UTC"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
