package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/gohan/config"
	"github.com/chris/gohan/internal/db"
	"github.com/chris/gohan/internal/llm"
	"github.com/chris/gohan/internal/logutil"
	"github.com/chris/gohan/internal/meals"
	"github.com/chris/gohan/internal/tracker"
)

// app holds the components shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *db.Store // nil when storage could not be opened
	tracker *tracker.Tracker
	meals   *meals.Service
}

// newApp loads config and wires storage, the LLM client and the meals
// service. With requireStore false a storage failure is logged and the app
// runs without persistence.
func newApp(requireStore bool) (*app, error) {
	cfg := config.Load()
	log, err := logutil.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	store, err := db.Open(cfg.Database)
	if err != nil {
		if requireStore {
			return nil, err
		}
		log.Warn("storage unavailable, meals will not be saved", "err", err)
		store = nil
	}

	var client llm.Client
	if cfg.LLM.APIKey() != "" {
		client, err = llm.NewClient(llm.ProviderConfig{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey(),
			Model:    cfg.LLM.Model,
			BaseURL:  cfg.LLM.OllamaBaseURL,
		})
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
	} else {
		log.Warn("no LLM API key configured, !nutrition is disabled", "provider", cfg.LLM.Provider)
	}

	tr := tracker.New(store, nil, log)
	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		tracker: tr,
		meals: meals.New(meals.Options{
			Store:    store,
			Tracker:  tr,
			LLM:      client,
			Location: displayLocation(cfg.MealQuestion.Timezone),
			Logger:   log,
		}),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error("closing storage", "err", err)
	}
}

// displayLocation is the zone dates are shown in: the prompt timezone when
// it is valid, the local zone otherwise.
func displayLocation(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.Local
}
