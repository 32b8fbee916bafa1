package discord

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/chris/gohan/internal/meals"
)

const (
	historyCommand   = "!history"
	nutritionCommand = "!nutrition"

	// Discord rejects messages longer than this.
	maxMessageLen = 2000
)

func (b *Bot) onMessage(_ *discordgo.Session, m *discordgo.MessageCreate) {
	b.handleMessage(context.Background(), m.Message)
}

func (b *Bot) handleMessage(ctx context.Context, m *discordgo.Message) {
	if m.Author != nil && m.Author.Bot {
		return
	}

	content := strings.TrimSpace(m.Content)
	if b.selfID != "" {
		content = strings.TrimSpace(stripMention(content, b.selfID))
	}

	switch {
	case content == historyCommand && m.Author != nil:
		b.respond(m, b.meals.HistoryReply(ctx, m.Author.ID))
	case content == nutritionCommand && m.Author != nil:
		b.api.typing(m.ChannelID)
		b.respond(m, b.meals.NutritionReply(ctx, m.Author.ID))
	case b.custom.Trigger != "" && b.custom.Reply != "" && content == b.custom.Trigger:
		b.respond(m, b.custom.Reply)
	default:
		b.recordReply(ctx, m)
	}
}

func (b *Bot) recordReply(ctx context.Context, m *discordgo.Message) {
	r := meals.Reply{Content: m.Content}
	if m.MessageReference != nil {
		r.RefMessageID = m.MessageReference.MessageID
	}
	if m.Author != nil {
		r.AuthorID = m.Author.ID
	}
	outcome := b.meals.RecordReply(ctx, r)
	if outcome != meals.NotReply {
		b.log.Debug("reply handled", "message_id", m.ID, "ref_message_id", r.RefMessageID, "outcome", outcome)
	}
}

func (b *Bot) respond(m *discordgo.Message, text string) {
	for _, chunk := range splitMessage(text, maxMessageLen) {
		if err := b.api.reply(m.ChannelID, chunk, m.Reference()); err != nil {
			b.log.Error("sending reply", "channel_id", m.ChannelID, "err", err)
			return
		}
	}
}

func stripMention(s, userID string) string {
	s = strings.ReplaceAll(s, "<@"+userID+">", "")
	s = strings.ReplaceAll(s, "<@!"+userID+">", "")
	return s
}

// splitMessage cuts s into chunks of at most maxLen bytes, preferring to
// break after a newline.
func splitMessage(s string, maxLen int) []string {
	if len(s) <= maxLen {
		return []string{s}
	}
	var chunks []string
	for len(s) > 0 {
		end := min(maxLen, len(s))
		if idx := strings.LastIndex(s[:end], "\n"); idx > 0 {
			end = idx + 1
		}
		chunks = append(chunks, s[:end])
		s = s[end:]
	}
	return chunks
}
