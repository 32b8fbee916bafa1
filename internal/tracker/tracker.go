package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chris/gohan/internal/db"
)

// Store is the persisted side of tracking. *db.Store satisfies it.
type Store interface {
	TrackPrompt(ctx context.Context, messageID, channelID string) (db.TrackedPrompt, error)
	IsTracked(ctx context.Context, messageID string) (bool, error)
}

// Tracker remembers which messages are meal prompts. The store is the
// source of truth; the cache only short-circuits lookups and starts empty
// after a restart.
type Tracker struct {
	store Store
	cache *Cache
	log   *slog.Logger
}

func New(store Store, cache *Cache, log *slog.Logger) *Tracker {
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Tracker{store: store, cache: cache, log: log.With("component", "tracker")}
}

// Track persists the prompt and adds it to the cache. The cache is updated
// even when persisting fails, so replies still correlate until restart.
func (t *Tracker) Track(ctx context.Context, messageID, channelID string) error {
	_, err := t.store.TrackPrompt(ctx, messageID, channelID)
	t.cache.Add(messageID)
	if err != nil {
		return fmt.Errorf("persisting tracked prompt: %w", err)
	}
	return nil
}

// IsTracked checks the cache, then the store. A store hit is copied into the
// cache.
func (t *Tracker) IsTracked(ctx context.Context, messageID string) (bool, error) {
	if t.cache.Has(messageID) {
		return true, nil
	}
	ok, err := t.store.IsTracked(ctx, messageID)
	if err != nil {
		return false, err
	}
	if ok {
		t.cache.Add(messageID)
		t.log.Debug("tracked prompt found in store, cached", "message_id", messageID)
	}
	return ok, nil
}
