package meals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chris/gohan/internal/db"
	"github.com/chris/gohan/internal/llm"
)

const (
	// NutritionWindowDays is how far back the nutrition summary looks.
	NutritionWindowDays = 7

	nutritionSystemPrompt = "You are a nutritionist. Read the user's recent meal history and tell them, " +
		"in one short friendly sentence, which nutrients they are most likely missing."
	nutritionMaxTokens   = 150
	nutritionTemperature = 0.7
	historyTokenBudget   = 3000

	noRecentHistoryMessage = "You have no meals recorded in the last 7 days. Record some meals first!"
)

var (
	ErrNoAdvisor   = errors.New("nutrition advisor not configured")
	errEmptyAnswer = errors.New("empty answer from model")
)

// Nutrition asks the model which nutrients the user's last week of meals is
// missing. With no meals in the window it answers directly without calling
// the model.
func (s *Service) Nutrition(ctx context.Context, userID string) (string, error) {
	meals, err := s.store.RecentMealsWindow(ctx, userID, NutritionWindowDays)
	if err != nil {
		return "", fmt.Errorf("loading meals: %w", err)
	}
	if len(meals) == 0 {
		return noRecentHistoryMessage, nil
	}
	if s.llm == nil {
		return "", ErrNoAdvisor
	}

	lines := llm.TrimLines(s.historyLines(meals), historyTokenBudget)
	if len(lines) < len(meals) {
		s.log.Info("nutrition history trimmed", "user_id", userID, "from", len(meals), "to", len(lines))
	}

	answer, err := s.llm.Complete(ctx, llm.Request{
		System: nutritionSystemPrompt,
		Prompt: "Here is what I ate over the last 7 days. In one sentence, which nutrients am I missing?\n\n" +
			strings.Join(lines, "\n"),
		MaxTokens:   nutritionMaxTokens,
		Temperature: nutritionTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("nutrition completion: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", errEmptyAnswer
	}
	return answer, nil
}

// NutritionReply is Nutrition for chat: failures become a user-facing
// message and are logged.
func (s *Service) NutritionReply(ctx context.Context, userID string) string {
	answer, err := s.Nutrition(ctx, userID)
	if err != nil {
		s.log.Error("nutrition summary failed", "user_id", userID, "kind", llm.KindOf(err), "err", err)
		return NutritionFailureMessage(err)
	}
	return answer
}

func (s *Service) historyLines(meals []db.MealRecord) []string {
	lines := make([]string, len(meals))
	for i, m := range meals {
		lines[i] = fmt.Sprintf("%s: %s", m.CreatedAt.In(s.loc).Format("1/2"), m.Text)
	}
	return lines
}

// NutritionFailureMessage picks the user-facing text for a failed summary.
func NutritionFailureMessage(err error) string {
	switch {
	case errors.Is(err, db.ErrNotInitialized):
		return "Meal history is unavailable right now."
	case errors.Is(err, ErrNoAdvisor):
		return "The nutrition advisor isn't configured. Please contact the bot admin."
	case errors.Is(err, errEmptyAnswer):
		return "Couldn't analyze your meals. Please try again."
	}

	var apiErr *llm.Error
	if !errors.As(err, &apiErr) {
		return "Something went wrong while analyzing your meals."
	}
	switch apiErr.Kind {
	case llm.KindRateLimited:
		return "The AI service is rate limited. Please wait a bit and try again."
	case llm.KindQuotaExceeded:
		return "The AI service quota is used up. Please ask the bot admin to check the API plan."
	case llm.KindUnauthorized:
		return "The AI service API key is invalid. Please contact the bot admin."
	case llm.KindServerError:
		return "The AI service is having trouble. Please try again later."
	case llm.KindOther:
		return "The AI service returned an error: " + apiErr.Message
	default:
		return "Something went wrong while analyzing your meals."
	}
}
