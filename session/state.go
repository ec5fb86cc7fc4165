// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "fmt"

// State is where a user's dialogue currently stands.
type State int

const (
	StateIdle State = iota
	StateAwaitingTitle
	StateAwaitingBody
	StateAwaitingConfirmation
	StateAwaitingEpisodeNumber
	StateAwaitingArchiveConfirmation
	StateSelectingVotes
	StateSelectingDeletions
)

// anyState matches every state in the transition table.
const anyState State = -1

var stateNames = map[State]string{
	StateIdle:                        "idle",
	StateAwaitingTitle:               "awaiting_title",
	StateAwaitingBody:                "awaiting_body",
	StateAwaitingConfirmation:        "awaiting_confirmation",
	StateAwaitingEpisodeNumber:       "awaiting_episode_number",
	StateAwaitingArchiveConfirmation: "awaiting_archive_confirmation",
	StateSelectingVotes:              "selecting_votes",
	StateSelectingDeletions:          "selecting_deletions",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// EventKind identifies what the user did.
type EventKind int

const (
	EventPropose EventKind = iota + 1
	EventVote
	EventDelete
	EventArchive
	EventText
	EventConfirm
	EventSelect
	EventStop
	EventCancel
	EventPage
)

var eventNames = map[EventKind]string{
	EventPropose: "propose",
	EventVote:    "vote",
	EventDelete:  "delete",
	EventArchive: "archive",
	EventText:    "text",
	EventConfirm: "confirm",
	EventSelect:  "select",
	EventStop:    "stop",
	EventCancel:  "cancel",
	EventPage:    "page",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one user action delivered by the transport.
type Event struct {
	Kind    EventKind
	Text    string // EventText
	Yes     bool   // EventConfirm
	TopicID int64  // EventSelect
	Page    int    // EventPage
}

func Text(s string) Event          { return Event{Kind: EventText, Text: s} }
func Confirm(yes bool) Event       { return Event{Kind: EventConfirm, Yes: yes} }
func Select(topicID int64) Event   { return Event{Kind: EventSelect, TopicID: topicID} }
func Command(kind EventKind) Event { return Event{Kind: kind} }
func Page(n int) Event             { return Event{Kind: EventPage, Page: n} }

// User identifies who sent an event.
type User struct {
	ID          string
	DisplayName string
}

func (u User) name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.ID
}

// ButtonAction is what pressing a button sends back.
type ButtonAction int

const (
	ActionSelect ButtonAction = iota + 1
	ActionStop
	ActionConfirmYes
	ActionConfirmNo
	ActionPage
)

type Button struct {
	Label   string
	Action  ButtonAction
	TopicID int64
	Page    int // ActionPage
}

// Event converts a pressed button into the event it stands for.
func (b Button) Event() Event {
	switch b.Action {
	case ActionSelect:
		return Select(b.TopicID)
	case ActionStop:
		return Command(EventStop)
	case ActionConfirmYes:
		return Confirm(true)
	case ActionConfirmNo:
		return Confirm(false)
	case ActionPage:
		return Page(b.Page)
	}
	return Event{}
}

// Reply is what the transport should show the user after an event. Messages
// are sent in order; Buttons attach to the last message.
type Reply struct {
	Messages []string
	Buttons  []Button
}

// Empty reports whether there is nothing to deliver.
func (r Reply) Empty() bool {
	return len(r.Messages) == 0 && len(r.Buttons) == 0
}

func say(messages ...string) Reply {
	return Reply{Messages: messages}
}
