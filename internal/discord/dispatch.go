package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chris/gohan/config"
	"github.com/chris/gohan/internal/prompt"
)

var errNoPromptText = errors.New("no prompt text configured for this time of day")

// Tracker registers sent prompts so replies to them can be recognized.
type Tracker interface {
	Track(ctx context.Context, messageID, channelID string) error
}

// Dispatcher posts the meal prompt and tracks it.
type Dispatcher struct {
	api     chatAPI
	tracker Tracker
	target  Target
	tz      string
	texts   prompt.Texts
	now     func() time.Time
	log     *slog.Logger
}

func newDispatcher(api chatAPI, mq config.MealQuestion, tr Tracker, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		api:     api,
		tracker: tr,
		target: Target{
			GuildID:     mq.GuildID,
			ChannelName: mq.ChannelName,
			RoleName:    mq.RoleName,
		},
		tz: mq.Timezone,
		texts: prompt.Texts{
			Default: mq.Text,
			Morning: mq.TextMorning,
			Noon:    mq.TextNoon,
			Night:   mq.TextNight,
		},
		now: time.Now,
		log: log.With("component", "dispatcher"),
	}
}

// Send resolves the target, posts the prompt for the current time window and
// tracks the sent message. Nothing is posted when a precondition fails.
// Failing to persist the tracked prompt is logged, not returned: the message
// is already out and the cache still holds it.
func (d *Dispatcher) Send(ctx context.Context) error {
	dest, err := resolve(d.api, d.target)
	if err != nil {
		return fmt.Errorf("resolving prompt target: %w", err)
	}
	text, ok := prompt.Pick(d.now(), d.tz, d.texts)
	if !ok {
		return errNoPromptText
	}
	content := strings.TrimSpace(dest.Mention() + text)

	msg, err := d.api.send(dest.Channel.ID, content)
	if err != nil {
		return fmt.Errorf("sending prompt to #%s: %w", dest.Channel.Name, err)
	}
	if err := d.tracker.Track(ctx, msg.ID, dest.Channel.ID); err != nil {
		d.log.Error("tracking prompt", "message_id", msg.ID, "err", err)
	}
	d.log.Info("prompt sent", "message_id", msg.ID, "channel_id", dest.Channel.ID, "window", prompt.WindowAt(prompt.HourIn(d.now(), d.tz)))
	return nil
}
