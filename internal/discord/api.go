package discord

import "github.com/bwmarrin/discordgo"

// chatAPI is the slice of the Discord API the bot uses. sessionAPI backs it
// with a live session; tests use a fake.
type chatAPI interface {
	guildIDs() []string
	guild(id string) (*discordgo.Guild, error)
	channels(guildID string) ([]*discordgo.Channel, error)
	roles(guildID string) ([]*discordgo.Role, error)
	send(channelID, content string) (*discordgo.Message, error)
	reply(channelID, content string, ref *discordgo.MessageReference) error
	typing(channelID string)
}

type sessionAPI struct {
	s *discordgo.Session
}

// guildIDs lists the guilds from the session state, which is filled in by
// the Ready and GuildCreate events.
func (a sessionAPI) guildIDs() []string {
	a.s.State.RLock()
	defer a.s.State.RUnlock()
	ids := make([]string, 0, len(a.s.State.Guilds))
	for _, g := range a.s.State.Guilds {
		ids = append(ids, g.ID)
	}
	return ids
}

func (a sessionAPI) guild(id string) (*discordgo.Guild, error) {
	if g, err := a.s.State.Guild(id); err == nil {
		return g, nil
	}
	return a.s.Guild(id)
}

func (a sessionAPI) channels(guildID string) ([]*discordgo.Channel, error) {
	return a.s.GuildChannels(guildID)
}

func (a sessionAPI) roles(guildID string) ([]*discordgo.Role, error) {
	return a.s.GuildRoles(guildID)
}

func (a sessionAPI) send(channelID, content string) (*discordgo.Message, error) {
	return a.s.ChannelMessageSend(channelID, content)
}

func (a sessionAPI) reply(channelID, content string, ref *discordgo.MessageReference) error {
	_, err := a.s.ChannelMessageSendReply(channelID, content, ref)
	return err
}

func (a sessionAPI) typing(channelID string) {
	_ = a.s.ChannelTyping(channelID)
}
