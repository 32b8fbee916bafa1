package meals

import (
	"context"
	"strings"
)

// Reply is the part of an incoming chat message the correlator needs.
type Reply struct {
	RefMessageID string // id of the message being replied to; empty if not a reply
	AuthorID     string
	Content      string
}

// Outcome says how an incoming message was handled.
type Outcome int

const (
	NotReply Outcome = iota
	Untracked
	EmptyContent
	MissingAuthor
	Recorded
	StoreFailed
)

func (o Outcome) String() string {
	switch o {
	case NotReply:
		return "not_reply"
	case Untracked:
		return "untracked"
	case EmptyContent:
		return "empty_content"
	case MissingAuthor:
		return "missing_author"
	case Recorded:
		return "recorded"
	default:
		return "store_failed"
	}
}

// RecordReply stores r as a meal when it replies to a tracked prompt.
func (s *Service) RecordReply(ctx context.Context, r Reply) Outcome {
	if r.RefMessageID == "" {
		return NotReply
	}
	log := s.log.With("ref_message_id", r.RefMessageID)

	tracked, err := s.tracker.IsTracked(ctx, r.RefMessageID)
	if err != nil {
		log.Error("checking tracked prompt", "err", err)
		return Untracked
	}
	if !tracked {
		log.Debug("reply to an untracked message")
		return Untracked
	}

	text := strings.TrimSpace(r.Content)
	if text == "" {
		log.Info("reply to prompt has no content")
		return EmptyContent
	}
	if r.AuthorID == "" {
		log.Error("reply to prompt has no author id")
		return MissingAuthor
	}

	rec, err := s.store.InsertMeal(ctx, r.AuthorID, text)
	if err != nil {
		log.Error("saving meal", "user_id", r.AuthorID, "err", err)
		return StoreFailed
	}
	log.Info("meal recorded", "user_id", r.AuthorID, "meal_id", rec.ID)
	return Recorded
}
