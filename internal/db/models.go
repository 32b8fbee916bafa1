package db

import "time"

// MealRecord is one free-text meal entry a user gave in reply to a prompt.
type MealRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerUserID string    `gorm:"column:owner_user_id;type:varchar(32);not null;index:idx_meal_owner_created,priority:1" json:"owner_user_id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CreatedAt   time.Time `gorm:"not null;index:idx_meal_owner_created,priority:2" json:"created_at"`
}

func (MealRecord) TableName() string { return "gohan_histories" }

// TrackedPrompt remembers a prompt message so replies to it can be recognized.
type TrackedPrompt struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID string    `gorm:"type:varchar(32);not null;index" json:"message_id"`
	ChannelID string    `gorm:"type:varchar(32);not null" json:"channel_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

func (TrackedPrompt) TableName() string { return "tracked_prompts" }

// TrackedPromptTTL is how long a prompt accepts replies.
const TrackedPromptTTL = 24 * time.Hour
