package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/chris/gohan/internal/discord"
	"github.com/chris/gohan/internal/scheduler"
	"github.com/spf13/cobra"
)

var errNoToken = errors.New("TOKEN is not set")

func runBot() error {
	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.DiscordToken == "" {
		return errNoToken
	}

	bot, err := discord.NewBot(a.cfg.DiscordToken, discord.Deps{
		Meals:        a.meals,
		Tracker:      a.tracker,
		MealQuestion: a.cfg.MealQuestion,
		Custom:       a.cfg.Custom,
	}, a.log)
	if err != nil {
		return err
	}
	defer bot.Close()

	sched := scheduler.New(a.log)
	switch err := sched.AddPrompt(a.cfg.MealQuestion, bot.Dispatcher()); {
	case errors.Is(err, scheduler.ErrPromptDisabled):
		a.log.Info("meal prompt not scheduled", "reason", err)
	case err != nil:
		a.log.Error("meal prompt disabled", "err", err)
	}
	if a.store != nil {
		if err := sched.AddSweep(a.cfg.SweepCron, a.store); err != nil {
			a.log.Error("tracked prompt sweep disabled", "err", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	a.log.Info("bot is running, press Ctrl+C to exit")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	a.log.Info("shutting down")
	return nil
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the bot (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot()
		},
	}
}

func newSendNowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-now",
		Short: "Post one meal prompt now and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.cfg.DiscordToken == "" {
				return errNoToken
			}

			bot, err := discord.NewBot(a.cfg.DiscordToken, discord.Deps{
				Meals:        a.meals,
				Tracker:      a.tracker,
				MealQuestion: a.cfg.MealQuestion,
				Custom:       a.cfg.Custom,
			}, a.log)
			if err != nil {
				return err
			}
			defer bot.Close()
			return bot.Dispatcher().Send(cmd.Context())
		},
	}
}
