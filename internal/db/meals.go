package db

import (
	"context"
	"fmt"
	"time"
)

const defaultMealLimit = 10

// InsertMeal stores a meal entry for a user.
func (s *Store) InsertMeal(ctx context.Context, ownerUserID, text string) (MealRecord, error) {
	if s == nil {
		return MealRecord{}, ErrNotInitialized
	}
	rec := MealRecord{
		OwnerUserID: ownerUserID,
		Text:        text,
		CreatedAt:   s.timestamp(),
	}
	if err := s.gdb.WithContext(ctx).Create(&rec).Error; err != nil {
		return MealRecord{}, fmt.Errorf("inserting meal: %w", err)
	}
	return rec, nil
}

// RecentMeals returns up to limit meals for a user, newest first.
func (s *Store) RecentMeals(ctx context.Context, ownerUserID string, limit int) ([]MealRecord, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	if limit <= 0 {
		limit = defaultMealLimit
	}
	var out []MealRecord
	err := s.gdb.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing meals: %w", err)
	}
	return out, nil
}

// RecentMealsSince returns a user's meals created at or after since, newest first.
func (s *Store) RecentMealsSince(ctx context.Context, ownerUserID string, since time.Time) ([]MealRecord, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	var out []MealRecord
	err := s.gdb.WithContext(ctx).
		Where("owner_user_id = ? AND created_at >= ?", ownerUserID, since.UTC()).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing meals since %s: %w", since.Format(time.RFC3339), err)
	}
	return out, nil
}

// RecentMealsWindow returns a user's meals from the last days days.
func (s *Store) RecentMealsWindow(ctx context.Context, ownerUserID string, days int) ([]MealRecord, error) {
	if s == nil {
		return nil, ErrNotInitialized
	}
	since := s.timestamp().AddDate(0, 0, -days)
	return s.RecentMealsSince(ctx, ownerUserID, since)
}
