package db

import (
	"context"
	"fmt"
)

// TrackPrompt records a sent prompt message. It expires TrackedPromptTTL
// after creation.
func (s *Store) TrackPrompt(ctx context.Context, messageID, channelID string) (TrackedPrompt, error) {
	if s == nil {
		return TrackedPrompt{}, ErrNotInitialized
	}
	now := s.timestamp()
	tp := TrackedPrompt{
		MessageID: messageID,
		ChannelID: channelID,
		CreatedAt: now,
		ExpiresAt: now.Add(TrackedPromptTTL),
	}
	if err := s.gdb.WithContext(ctx).Create(&tp).Error; err != nil {
		return TrackedPrompt{}, fmt.Errorf("tracking prompt %s: %w", messageID, err)
	}
	return tp, nil
}

// IsTracked reports whether messageID has an unexpired tracked prompt.
func (s *Store) IsTracked(ctx context.Context, messageID string) (bool, error) {
	if s == nil {
		return false, ErrNotInitialized
	}
	var n int64
	err := s.gdb.WithContext(ctx).Model(&TrackedPrompt{}).
		Where("message_id = ? AND expires_at > ?", messageID, s.timestamp()).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("checking tracked prompt %s: %w", messageID, err)
	}
	return n > 0, nil
}

// SweepExpired deletes tracked prompts whose expiry is now or past and
// returns how many were removed.
func (s *Store) SweepExpired(ctx context.Context) (int64, error) {
	if s == nil {
		return 0, ErrNotInitialized
	}
	res := s.gdb.WithContext(ctx).
		Where("expires_at <= ?", s.timestamp()).
		Delete(&TrackedPrompt{})
	if res.Error != nil {
		return 0, fmt.Errorf("sweeping tracked prompts: %w", res.Error)
	}
	return res.RowsAffected, nil
}
