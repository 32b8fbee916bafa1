package meals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chris/gohan/internal/db"
	"github.com/dustin/go-humanize"
)

// HistoryLimit is how many meals !history shows.
const HistoryLimit = 10

const (
	noHistoryMessage = "You have no meal history yet."
	historyFailed    = "Couldn't load your meal history."
)

// History returns a user's most recent meals, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]db.MealRecord, error) {
	return s.store.RecentMeals(ctx, userID, limit)
}

// HistoryReply renders a user's recent meals for chat. Storage failures are
// logged and turned into a short message.
func (s *Service) HistoryReply(ctx context.Context, userID string) string {
	meals, err := s.History(ctx, userID, HistoryLimit)
	if err != nil {
		s.log.Error("loading history", "user_id", userID, "err", err)
		return historyFailed
	}
	if len(meals) == 0 {
		return noHistoryMessage
	}
	return FormatHistory(meals, s.loc, s.now())
}

// FormatHistory renders meals as "date (relative): text" lines under a
// header.
func FormatHistory(meals []db.MealRecord, loc *time.Location, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your recent meals (up to %d):\n", HistoryLimit)
	for _, m := range meals {
		fmt.Fprintf(&b, "%s (%s): %s\n",
			m.CreatedAt.In(loc).Format("2006-01-02 15:04"),
			humanize.RelTime(m.CreatedAt, now, "ago", "from now"),
			m.Text,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
