// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/topic-vote/session"
)

const msgCheckDM = "I've sent you a direct message."

// Bot connects the dialogue coordinator to Discord. Dialogues run in direct
// messages: slash commands may be used anywhere, free text is read from DMs
// only.
type Bot struct {
	session *discordgo.Session
	coord   *session.Coordinator
	guildID string
}

func NewBot(token, guildID string, coord *session.Coordinator) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	b := &Bot{session: dg, coord: coord, guildID: guildID}

	dg.AddHandler(b.handleReady)
	dg.AddHandler(b.handleInteraction)
	dg.AddHandler(b.handleMessageCreate)

	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	return b, nil
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

// Send delivers text to a user's DM channel.
func (b *Bot) Send(ctx context.Context, recipient, text string) error {
	return b.deliver(ctx, recipient, session.Reply{Messages: []string{text}})
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord bot logged in", "username", r.User.Username)
	if err := RegisterCommands(s, b.guildID); err != nil {
		slog.Error("failed to register slash commands", "error", err)
	}
}

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID != "" {
		return
	}
	if !b.coord.Active(m.Author.ID) {
		return
	}

	ctx := context.Background()
	reply := b.coord.Handle(ctx, userOf(m.Author), session.Text(m.Content))
	if err := b.sendToChannel(ctx, m.ChannelID, reply); err != nil {
		slog.Error("failed to send reply", "user_id", m.Author.ID, "error", err)
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := interactionUser(i)
	if user == nil {
		slog.Warn("interaction without user")
		return
	}
	ctx := context.Background()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(ctx, i, userOf(user))
	case discordgo.InteractionMessageComponent:
		b.handleComponent(ctx, i, userOf(user))
	}
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.InteractionCreate, u session.User) {
	data := i.ApplicationCommandData()
	reply, private := b.dispatch(ctx, u, data.Name, commandEpisode(data))

	// Dialogues continue in DMs, so their replies are moved there when the
	// command was used in a guild channel.
	if i.GuildID != "" && private {
		if err := b.respond(i.Interaction, session.Reply{Messages: []string{msgCheckDM}}, true); err != nil {
			slog.Error("failed to acknowledge command", "command", data.Name, "error", err)
		}
		if err := b.deliver(ctx, u.ID, reply); err != nil {
			slog.Error("failed to send reply", "user_id", u.ID, "error", err)
		}
		return
	}

	if err := b.respond(i.Interaction, reply, i.GuildID != ""); err != nil {
		slog.Error("failed to respond to command", "command", data.Name, "error", err)
	}
}

// dispatch runs a slash command. private reports whether the reply belongs
// to a dialogue and must be shown in DMs.
func (b *Bot) dispatch(ctx context.Context, u session.User, name string, episode *int) (session.Reply, bool) {
	switch name {
	case CommandStart:
		return b.coord.Start(ctx, u), false
	case CommandHelp:
		return b.coord.Help(u), false
	case CommandList:
		return b.coord.List(ctx, episode), false
	case CommandUnsubscribe:
		return b.coord.Unsubscribe(ctx, u), false
	case CommandPropose:
		return b.coord.Handle(ctx, u, session.Command(session.EventPropose)), true
	case CommandVote:
		return b.coord.Handle(ctx, u, session.Command(session.EventVote)), true
	case CommandArchive:
		return b.coord.Handle(ctx, u, session.Command(session.EventArchive)), true
	case CommandDelete:
		return b.coord.Handle(ctx, u, session.Command(session.EventDelete)), true
	case CommandCancel:
		return b.coord.Handle(ctx, u, session.Command(session.EventCancel)), false
	}
	slog.Warn("unknown command", "command", name)
	return session.Reply{}, false
}

func (b *Bot) handleComponent(ctx context.Context, i *discordgo.InteractionCreate, u session.User) {
	customID := i.MessageComponentData().CustomID
	ev, err := ParseCustomID(customID)
	if err != nil {
		slog.Warn("unknown button pressed", "custom_id", customID, "error", err)
		return
	}

	reply := b.coord.Handle(ctx, u, ev)

	// A keyboard is redrawn in place; anything else retires the pressed
	// message's buttons and follows up below it.
	if len(reply.Buttons) > 0 {
		err = b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseUpdateMessage,
			Data: &discordgo.InteractionResponseData{
				Content:    truncateContent(strings.Join(reply.Messages, "\n\n")),
				Components: buildComponents(reply.Buttons),
			},
		})
		if err != nil {
			slog.Error("failed to update keyboard", "user_id", u.ID, "error", err)
		}
		return
	}

	content := ""
	if i.Message != nil {
		content = i.Message.Content
	}
	err = b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		slog.Error("failed to retire buttons", "user_id", u.ID, "error", err)
		return
	}
	for _, chunk := range chunks(reply) {
		if _, err := b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: chunk}); err != nil {
			slog.Error("failed to send follow-up", "user_id", u.ID, "error", err)
			return
		}
	}
}

// respond answers an interaction with the first chunk and sends the rest as
// follow-ups. Buttons go on the last message.
func (b *Bot) respond(i *discordgo.Interaction, reply session.Reply, ephemeral bool) error {
	parts := chunks(reply)
	if len(parts) == 0 {
		parts = []string{"Done."}
	}

	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	last := len(parts) - 1
	data := &discordgo.InteractionResponseData{Content: parts[0], Flags: flags}
	if last == 0 {
		data.Components = buildComponents(reply.Buttons)
	}
	err := b.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		return err
	}

	for n, part := range parts[1:] {
		params := &discordgo.WebhookParams{Content: part, Flags: flags}
		if n+1 == last {
			params.Components = buildComponents(reply.Buttons)
		}
		if _, err := b.session.FollowupMessageCreate(i, true, params); err != nil {
			return err
		}
	}
	return nil
}

// deliver sends a reply to the user's DM channel.
func (b *Bot) deliver(ctx context.Context, userID string, reply session.Reply) error {
	ch, err := b.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	return b.sendToChannel(ctx, ch.ID, reply)
}

func (b *Bot) sendToChannel(ctx context.Context, channelID string, reply session.Reply) error {
	parts := chunks(reply)
	for n, part := range parts {
		msg := &discordgo.MessageSend{Content: part}
		if n == len(parts)-1 {
			msg.Components = buildComponents(reply.Buttons)
		}
		if _, err := b.session.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}
	}
	return nil
}

// chunks flattens a reply into deliverable message contents.
func chunks(reply session.Reply) []string {
	var parts []string
	for _, m := range reply.Messages {
		parts = append(parts, SplitMessage(m, MaxMessageLen)...)
	}
	return parts
}

func truncateContent(s string) string {
	parts := SplitMessage(s, MaxMessageLen)
	return parts[0]
}

func commandEpisode(data discordgo.ApplicationCommandInteractionData) *int {
	for _, opt := range data.Options {
		if opt.Name == optionEpisode {
			n := int(opt.IntValue())
			return &n
		}
	}
	return nil
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func userOf(u *discordgo.User) session.User {
	name := u.GlobalName
	if name == "" {
		name = u.Username
	}
	return session.User{ID: u.ID, DisplayName: name}
}
