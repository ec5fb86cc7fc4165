// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	CommandStart       = "start"
	CommandHelp        = "help"
	CommandPropose     = "propose"
	CommandVote        = "vote"
	CommandList        = "list"
	CommandArchive     = "archive"
	CommandDelete      = "delete"
	CommandCancel      = "cancel"
	CommandUnsubscribe = "unsubscribe"

	optionEpisode = "episode"
)

var commandDefinitions = map[string]*discordgo.ApplicationCommand{
	CommandStart: {
		Name:        CommandStart,
		Description: "Subscribe to weekly reminders and show help",
	},
	CommandHelp: {
		Name:        CommandHelp,
		Description: "Show what the bot can do",
	},
	CommandPropose: {
		Name:        CommandPropose,
		Description: "Suggest a topic for the next episode",
	},
	CommandVote: {
		Name:        CommandVote,
		Description: "Vote for current topics",
	},
	CommandList: {
		Name:        CommandList,
		Description: "Show current topics, or the topics of an archived episode",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionEpisode,
				Description: "Episode number",
				Required:    false,
				MinValue:    new(float64),
				MaxValue:    999999,
			},
		},
	},
	CommandArchive: {
		Name:        CommandArchive,
		Description: "Archive all current topics under an episode number (admins)",
	},
	CommandDelete: {
		Name:        CommandDelete,
		Description: "Delete topics (admins)",
	},
	CommandCancel: {
		Name:        CommandCancel,
		Description: "Abort the current input",
	},
	CommandUnsubscribe: {
		Name:        CommandUnsubscribe,
		Description: "Stop weekly reminders",
	},
}

var defaultCommandOrder = []string{
	CommandStart,
	CommandHelp,
	CommandPropose,
	CommandVote,
	CommandList,
	CommandArchive,
	CommandDelete,
	CommandCancel,
	CommandUnsubscribe,
}

// RegisterCommands registers the slash commands for a guild, or globally when
// guildID is empty.
func RegisterCommands(s *discordgo.Session, guildID string) error {
	var failures []string
	for _, name := range defaultCommandOrder {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, commandDefinitions[name])
		if err != nil {
			if isDuplicateCommandError(err) {
				slog.Debug("slash command already registered", "command", name)
				continue
			}
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			slog.Error("failed to register command", "command", name, "error", err)
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("slash command registration errors: %s", strings.Join(failures, "; "))
	}
	return nil
}

func isDuplicateCommandError(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		if strings.Contains(strings.ToLower(restErr.Message.Message), "already exists") {
			return true
		}
	}
	return false
}
