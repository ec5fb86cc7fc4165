// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package chat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/topic-vote/session"
)

const (
	maxButtonsPerRow = 5
	maxRows          = 5
	maxButtonLabel   = 80

	idSelect     = "select:"
	idPage       = "page:"
	idConfirmYes = "confirm:yes"
	idConfirmNo  = "confirm:no"
	idStop       = "stop"
)

// CustomID encodes a button for the component's custom_id field.
func CustomID(b session.Button) string {
	switch b.Action {
	case session.ActionSelect:
		return idSelect + strconv.FormatInt(b.TopicID, 10)
	case session.ActionConfirmYes:
		return idConfirmYes
	case session.ActionConfirmNo:
		return idConfirmNo
	case session.ActionStop:
		return idStop
	case session.ActionPage:
		return idPage + strconv.Itoa(b.Page)
	}
	return ""
}

// ParseCustomID turns a pressed button's custom_id back into an event.
func ParseCustomID(id string) (session.Event, error) {
	switch id {
	case idConfirmYes:
		return session.Confirm(true), nil
	case idConfirmNo:
		return session.Confirm(false), nil
	case idStop:
		return session.Command(session.EventStop), nil
	}

	if rest, ok := strings.CutPrefix(id, idSelect); ok {
		topicID, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return session.Event{}, fmt.Errorf("invalid topic id in %q: %w", id, err)
		}
		return session.Select(topicID), nil
	}
	if rest, ok := strings.CutPrefix(id, idPage); ok {
		page, err := strconv.Atoi(rest)
		if err != nil || page < 0 {
			return session.Event{}, fmt.Errorf("invalid page in %q", id)
		}
		return session.Page(page), nil
	}
	return session.Event{}, fmt.Errorf("unknown button %q", id)
}

// buildComponents lays buttons out five to a row. Session keyboards are paged
// to fit Discord's five rows; anything longer keeps its first buttons and
// always keeps the stop button.
func buildComponents(buttons []session.Button) []discordgo.MessageComponent {
	if len(buttons) == 0 {
		return nil
	}

	limit := maxButtonsPerRow * maxRows
	if len(buttons) > limit {
		kept := make([]session.Button, 0, limit)
		kept = append(kept, buttons[:limit-1]...)
		buttons = append(kept, buttons[len(buttons)-1])
	}

	var components []discordgo.MessageComponent
	var currentRow []discordgo.MessageComponent
	for _, b := range buttons {
		currentRow = append(currentRow, discordgo.Button{
			Label:    truncateLabel(b.Label),
			Style:    buttonStyle(b.Action),
			CustomID: CustomID(b),
		})
		if len(currentRow) == maxButtonsPerRow {
			components = append(components, discordgo.ActionsRow{Components: currentRow})
			currentRow = nil
		}
	}
	if len(currentRow) > 0 {
		components = append(components, discordgo.ActionsRow{Components: currentRow})
	}
	return components
}

func buttonStyle(a session.ButtonAction) discordgo.ButtonStyle {
	switch a {
	case session.ActionConfirmYes:
		return discordgo.SuccessButton
	case session.ActionConfirmNo:
		return discordgo.DangerButton
	case session.ActionStop, session.ActionPage:
		return discordgo.SecondaryButton
	}
	return discordgo.PrimaryButton
}

func truncateLabel(label string) string {
	if utf8.RuneCountInString(label) <= maxButtonLabel {
		return label
	}
	runes := []rune(label)
	return string(runes[:maxButtonLabel-1]) + "…"
}
