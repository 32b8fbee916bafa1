// Package meals records meal replies and answers history and nutrition
// questions about them.
package meals

import (
	"context"
	"log/slog"
	"time"

	"github.com/chris/gohan/internal/db"
	"github.com/chris/gohan/internal/llm"
)

// Store is the meal storage used by the service. *db.Store satisfies it.
type Store interface {
	InsertMeal(ctx context.Context, ownerUserID, text string) (db.MealRecord, error)
	RecentMeals(ctx context.Context, ownerUserID string, limit int) ([]db.MealRecord, error)
	RecentMealsWindow(ctx context.Context, ownerUserID string, days int) ([]db.MealRecord, error)
}

// Tracker tells whether a message id is a meal prompt.
type Tracker interface {
	IsTracked(ctx context.Context, messageID string) (bool, error)
}

type Service struct {
	store   Store
	tracker Tracker
	llm     llm.Client // nil when no API key is configured
	loc     *time.Location
	now     func() time.Time
	log     *slog.Logger
}

type Options struct {
	Store    Store
	Tracker  Tracker
	LLM      llm.Client
	Location *time.Location // for dates shown to users; UTC when nil
	Logger   *slog.Logger
}

func New(opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:   opts.Store,
		tracker: opts.Tracker,
		llm:     opts.LLM,
		loc:     loc,
		now:     time.Now,
		log:     opts.Logger.With("component", "meals"),
	}
}
