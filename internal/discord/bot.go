package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/chris/gohan/config"
	"github.com/chris/gohan/internal/meals"
)

// MealService is what chat commands and reply recording need from the meals
// package. *meals.Service satisfies it.
type MealService interface {
	RecordReply(ctx context.Context, r meals.Reply) meals.Outcome
	HistoryReply(ctx context.Context, userID string) string
	NutritionReply(ctx context.Context, userID string) string
}

type Deps struct {
	Meals        MealService
	Tracker      Tracker
	MealQuestion config.MealQuestion
	Custom       config.CustomCommand
}

type Bot struct {
	session    *discordgo.Session
	api        chatAPI
	selfID     string
	meals      MealService
	custom     config.CustomCommand
	dispatcher *Dispatcher
	log        *slog.Logger
}

// NewBot connects to Discord and starts handling messages.
func NewBot(token string, deps Deps, log *slog.Logger) (*Bot, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating Discord session: %w", err)
	}

	log = log.With("component", "discord")
	api := sessionAPI{s: s}
	bot := &Bot{
		session:    s,
		api:        api,
		meals:      deps.Meals,
		custom:     deps.Custom,
		dispatcher: newDispatcher(api, deps.MealQuestion, deps.Tracker, log),
		log:        log,
	}
	s.AddHandler(bot.onReady)
	s.AddHandler(bot.onMessage)
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("opening Discord connection: %w", err)
	}
	if s.State.User != nil {
		bot.selfID = s.State.User.ID
	}
	return bot, nil
}

// Dispatcher returns the meal prompt dispatcher bound to this session.
func (b *Bot) Dispatcher() *Dispatcher {
	return b.dispatcher
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("discord bot connected", "user", r.User.Username, "guilds", len(r.Guilds))
}
