package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type sentMessage struct {
	channelID string
	content   string
	ref       *discordgo.MessageReference
}

type fakeAPI struct {
	guilds    []string
	chans     map[string][]*discordgo.Channel
	roleList  map[string][]*discordgo.Role
	sendErr   error
	sent      []sentMessage
	replies   []sentMessage
	typed     int
	nextMsgID int
}

func newFakeAPI(guilds ...string) *fakeAPI {
	return &fakeAPI{
		guilds:    guilds,
		chans:     map[string][]*discordgo.Channel{},
		roleList:  map[string][]*discordgo.Role{},
		nextMsgID: 900000000000000000,
	}
}

func (f *fakeAPI) guildIDs() []string { return f.guilds }

func (f *fakeAPI) guild(id string) (*discordgo.Guild, error) {
	for _, g := range f.guilds {
		if g == id {
			return &discordgo.Guild{ID: id}, nil
		}
	}
	return nil, errors.New("HTTP 404 Not Found")
}

func (f *fakeAPI) channels(guildID string) ([]*discordgo.Channel, error) {
	return f.chans[guildID], nil
}

func (f *fakeAPI) roles(guildID string) ([]*discordgo.Role, error) {
	return f.roleList[guildID], nil
}

func (f *fakeAPI) send(channelID, content string) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.nextMsgID++
	f.sent = append(f.sent, sentMessage{channelID: channelID, content: content})
	return &discordgo.Message{ID: fmt.Sprint(f.nextMsgID), ChannelID: channelID, Content: content}, nil
}

func (f *fakeAPI) reply(channelID, content string, ref *discordgo.MessageReference) error {
	f.replies = append(f.replies, sentMessage{channelID: channelID, content: content, ref: ref})
	return nil
}

func (f *fakeAPI) typing(string) { f.typed++ }
