package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/chris/gohan/config"
)

var (
	ErrGuildNotFound   = errors.New("guild not found")
	ErrAmbiguousGuild  = errors.New("no guild id configured and the bot is not in exactly one guild")
	ErrChannelNotFound = errors.New("text channel not found")
)

// Target names where meal prompts go.
type Target struct {
	GuildID     string // optional; the bot's only guild when empty
	ChannelName string
	RoleName    string // optional
}

// Destination is a resolved Target.
type Destination struct {
	GuildID string
	Channel *discordgo.Channel
	Role    *discordgo.Role // nil means no mention
}

// Mention returns the role mention prefix, or "" without a role.
func (d Destination) Mention() string {
	if d.Role == nil {
		return ""
	}
	return "<@&" + d.Role.ID + "> "
}

func resolveGuild(api chatAPI, guildID string) (string, error) {
	if guildID != "" {
		if !config.IsSnowflake(guildID) {
			return "", fmt.Errorf("guild id %q is not a snowflake: %w", guildID, ErrGuildNotFound)
		}
		g, err := api.guild(guildID)
		if err != nil {
			return "", fmt.Errorf("fetching guild %s: %v: %w", guildID, err, ErrGuildNotFound)
		}
		return g.ID, nil
	}

	ids := api.guildIDs()
	if len(ids) != 1 {
		return "", fmt.Errorf("bot is in %d guilds: %w", len(ids), ErrAmbiguousGuild)
	}
	return ids[0], nil
}

func resolveChannel(api chatAPI, guildID, name string) (*discordgo.Channel, error) {
	chans, err := api.channels(guildID)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	for _, ch := range chans {
		if ch.Name == name {
			if !isTextChannel(ch) {
				return nil, fmt.Errorf("channel %q is not a text channel: %w", name, ErrChannelNotFound)
			}
			return ch, nil
		}
	}
	return nil, fmt.Errorf("channel %q: %w", name, ErrChannelNotFound)
}

// resolveRole returns nil without an error when name is empty or no role
// matches.
func resolveRole(api chatAPI, guildID, name string) (*discordgo.Role, error) {
	if name == "" {
		return nil, nil
	}
	roles, err := api.roles(guildID)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	for _, r := range roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, nil
}

func isTextChannel(ch *discordgo.Channel) bool {
	return ch.Type == discordgo.ChannelTypeGuildText || ch.Type == discordgo.ChannelTypeGuildNews
}

func resolve(api chatAPI, t Target) (Destination, error) {
	guildID, err := resolveGuild(api, t.GuildID)
	if err != nil {
		return Destination{}, err
	}
	ch, err := resolveChannel(api, guildID, t.ChannelName)
	if err != nil {
		return Destination{}, err
	}
	role, err := resolveRole(api, guildID, t.RoleName)
	if err != nil {
		return Destination{}, err
	}
	return Destination{GuildID: guildID, Channel: ch, Role: role}, nil
}
