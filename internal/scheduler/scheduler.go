// Package scheduler runs the meal prompt and the tracked prompt expiry sweep
// on cron schedules.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris/gohan/config"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// ErrPromptDisabled means no prompt cron is configured.
var ErrPromptDisabled = errors.New("MEAL_QUESTION_CRON not set")

// Dispatcher sends one meal prompt.
type Dispatcher interface {
	Send(ctx context.Context) error
}

// Sweeper deletes expired tracked prompts.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

func New(log *slog.Logger) *Scheduler {
	log = log.With("component", "scheduler")
	cl := cronLogger{log: log}
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl))),
		log:  log,
	}
}

// ValidatePrompt checks the prompt schedule once at startup. A prompt job
// that fails here stays disabled for the life of the process.
func ValidatePrompt(mq config.MealQuestion) error {
	if mq.Cron == "" {
		return ErrPromptDisabled
	}
	if mq.Timezone == "" {
		return errors.New("MEAL_QUESTION_TZ not set (e.g. Asia/Tokyo)")
	}
	if _, err := time.LoadLocation(mq.Timezone); err != nil {
		return fmt.Errorf("MEAL_QUESTION_TZ %q: %w", mq.Timezone, err)
	}
	if mq.ChannelName == "" {
		return errors.New("MEAL_QUESTION_CHANNEL_NAME not set")
	}
	if mq.GuildID != "" && !config.IsSnowflake(mq.GuildID) {
		return fmt.Errorf("MEAL_QUESTION_GUILD_ID %q is not a numeric id", mq.GuildID)
	}
	if _, err := cron.ParseStandard(promptSpec(mq)); err != nil {
		return fmt.Errorf("MEAL_QUESTION_CRON %q: %w", mq.Cron, err)
	}
	return nil
}

func promptSpec(mq config.MealQuestion) string {
	return "CRON_TZ=" + mq.Timezone + " " + mq.Cron
}

// AddPrompt validates mq and schedules d.Send in the configured timezone.
func (s *Scheduler) AddPrompt(mq config.MealQuestion, d Dispatcher) error {
	if err := ValidatePrompt(mq); err != nil {
		return err
	}
	_, err := s.cron.AddFunc(promptSpec(mq), func() {
		log := s.log.With("job", "meal-prompt", "run_id", uuid.NewString())
		if err := d.Send(context.Background()); err != nil {
			log.Error("meal prompt not sent", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling meal prompt: %w", err)
	}
	s.log.Info("meal prompt scheduled",
		"cron", mq.Cron, "tz", mq.Timezone, "channel", mq.ChannelName, "role", mq.RoleName)
	return nil
}

// AddSweep schedules the expiry sweep.
func (s *Scheduler) AddSweep(spec string, sw Sweeper) error {
	_, err := s.cron.AddFunc(spec, func() {
		Sweep(context.Background(), sw, s.log.With("job", "sweep", "run_id", uuid.NewString()))
	})
	if err != nil {
		return fmt.Errorf("scheduling sweep %q: %w", spec, err)
	}
	s.log.Info("tracked prompt sweep scheduled", "cron", spec)
	return nil
}

// Sweep deletes expired tracked prompts once. It logs only when rows were
// removed or the sweep failed.
func Sweep(ctx context.Context, sw Sweeper, log *slog.Logger) int64 {
	n, err := sw.SweepExpired(ctx)
	if err != nil {
		log.Error("sweeping tracked prompts", "err", err)
		return 0
	}
	if n > 0 {
		log.Info("expired tracked prompts deleted", "count", n)
	}
	return n
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// cronLogger routes robfig/cron's logging into slog. Its per-tick chatter
// goes to debug.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append([]interface{}{"err", err}, keysAndValues...)...)
}
