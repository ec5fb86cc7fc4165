// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/topic-vote/models"
	"github.com/danielhkuo/topic-vote/topics"
)

// Core is the part of the topic engine the dialogues drive.
type Core interface {
	Propose(ctx context.Context, proposerID, displayName, title, body string) (models.Topic, error)
	Delete(ctx context.Context, topicID int64) error
	ListCurrent(ctx context.Context) ([]models.RankedTopic, error)
	ListArchived(ctx context.Context, episode int) ([]models.ArchivedTopic, error)
	ToggleVote(ctx context.Context, voterID string, topicID int64) (topics.VoteChange, error)
	VotedTopics(ctx context.Context, voterID string) (map[int64]bool, error)
	Archive(ctx context.Context, episode int) (models.ArchiveBatch, error)
	EpisodeArchived(ctx context.Context, episode int) (bool, error)
	Subscribe(ctx context.Context, userID string) error
	Unsubscribe(ctx context.Context, userID string) error
}

// Guard decides who may run admin dialogues and who may propose.
type Guard interface {
	IsAdmin(userID string) bool
	RequireAdmin(userID string) error
	RequireNotBanned(userID string) error
}

// dialogue is one user's in-progress conversation. A closed dialogue has been
// removed from the map and must not be used again.
type dialogue struct {
	mu       sync.Mutex
	closed   bool
	state    State
	title    string
	body     string
	episode  int
	page     int
	rendered map[int64]struct{} // topics on the page last shown
	touched  time.Time
}

func (d *dialogue) reset() {
	d.state = StateIdle
	d.title = ""
	d.body = ""
	d.episode = 0
	d.page = 0
	d.rendered = nil
}

type transition func(c *Coordinator, ctx context.Context, d *dialogue, u User, ev Event) Reply

type transitionKey struct {
	state State
	kind  EventKind
}

// transitions is looked up with the current state first, then anyState.
var transitions = map[transitionKey]transition{
	{anyState, EventPropose}: (*Coordinator).beginProposal,
	{anyState, EventVote}:    (*Coordinator).beginVote,
	{anyState, EventDelete}:  (*Coordinator).beginDelete,
	{anyState, EventArchive}: (*Coordinator).beginArchive,
	{anyState, EventCancel}:  (*Coordinator).cancel,

	{StateAwaitingTitle, EventText}:           (*Coordinator).acceptTitle,
	{StateAwaitingBody, EventText}:            (*Coordinator).acceptBody,
	{StateAwaitingConfirmation, EventConfirm}: (*Coordinator).confirmProposal,

	{StateAwaitingEpisodeNumber, EventText}:          (*Coordinator).acceptEpisode,
	{StateAwaitingArchiveConfirmation, EventConfirm}: (*Coordinator).confirmArchive,

	{StateSelectingVotes, EventSelect}:     (*Coordinator).selectVote,
	{StateSelectingVotes, EventStop}:       (*Coordinator).stopSelection,
	{StateSelectingVotes, EventPage}:       (*Coordinator).turnPage,
	{StateSelectingDeletions, EventSelect}: (*Coordinator).selectDeletion,
	{StateSelectingDeletions, EventStop}:   (*Coordinator).stopSelection,
	{StateSelectingDeletions, EventPage}:   (*Coordinator).turnPage,
}

// Coordinator runs every user's dialogue. Events from one user are handled
// one at a time; different users proceed in parallel.
type Coordinator struct {
	core     Core
	guard    Guard
	sessions sync.Map // user id -> *dialogue
	now      func() time.Time
}

func NewCoordinator(core Core, guard Guard) *Coordinator {
	return &Coordinator{core: core, guard: guard, now: time.Now}
}

// Handle advances the user's dialogue by one event and returns what to show.
func (c *Coordinator) Handle(ctx context.Context, u User, ev Event) Reply {
	d := c.acquire(u.ID)
	defer c.release(u.ID, d)

	d.touched = c.now()

	fn, ok := transitions[transitionKey{d.state, ev.Kind}]
	if !ok {
		fn, ok = transitions[transitionKey{anyState, ev.Kind}]
	}
	if !ok {
		return unhandled(d.state, ev)
	}

	from := d.state
	reply := fn(c, ctx, d, u, ev)
	if d.state != from {
		slog.Debug("dialogue transition", "user_id", u.ID, "event", ev.Kind, "from", from, "to", d.state)
	}
	return reply
}

// acquire returns the user's dialogue locked, creating it if needed.
func (c *Coordinator) acquire(userID string) *dialogue {
	for {
		v, _ := c.sessions.LoadOrStore(userID, &dialogue{})
		d := v.(*dialogue)
		d.mu.Lock()
		if !d.closed {
			return d
		}
		d.mu.Unlock()
	}
}

// release unlocks the dialogue and drops it from the map once it is idle.
func (c *Coordinator) release(userID string, d *dialogue) {
	if d.state == StateIdle {
		d.closed = true
		c.sessions.CompareAndDelete(userID, d)
	}
	d.mu.Unlock()
}

// State reports where the user's dialogue stands.
func (c *Coordinator) State(userID string) State {
	v, ok := c.sessions.Load(userID)
	if !ok {
		return StateIdle
	}
	d := v.(*dialogue)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return StateIdle
	}
	return d.state
}

// Active reports whether the user is in the middle of a dialogue, i.e.
// whether free text from them should be routed to Handle.
func (c *Coordinator) Active(userID string) bool {
	return c.State(userID) != StateIdle
}

// Sweep drops dialogues untouched for longer than maxIdle and returns how
// many were dropped.
func (c *Coordinator) Sweep(maxIdle time.Duration) int {
	cutoff := c.now().Add(-maxIdle)
	dropped := 0
	c.sessions.Range(func(key, value any) bool {
		d := value.(*dialogue)
		d.mu.Lock()
		if !d.closed && d.touched.Before(cutoff) {
			d.closed = true
			c.sessions.CompareAndDelete(key, d)
			dropped++
		}
		d.mu.Unlock()
		return true
	})
	if dropped > 0 {
		slog.Info("abandoned dialogues dropped", "count", dropped)
	}
	return dropped
}

func unhandled(state State, ev Event) Reply {
	switch ev.Kind {
	case EventConfirm:
		return say(msgExpired)
	case EventSelect, EventStop, EventPage:
		return say(msgStale)
	case EventText:
		if state == StateIdle {
			return Reply{}
		}
		return say(msgUseButtons)
	}
	return say(msgStale)
}

func (c *Coordinator) cancel(_ context.Context, d *dialogue, _ User, _ Event) Reply {
	d.reset()
	return say(msgCancelled)
}

// List renders current topics, or the archive of an episode when episode is set.
func (c *Coordinator) List(ctx context.Context, episode *int) Reply {
	if episode == nil {
		current, err := c.core.ListCurrent(ctx)
		if err != nil {
			slog.Error("failed to list topics", "error", err)
			return say(msgFailure)
		}
		if len(current) == 0 {
			return say(msgNoTopics)
		}
		return Reply{Messages: renderCurrent(current)}
	}

	archived, err := c.core.ListArchived(ctx, *episode)
	if err != nil {
		slog.Error("failed to list archived topics", "error", err, "episode", *episode)
		return say(msgFailure)
	}
	if len(archived) == 0 {
		return say(msgNoTopicsOrEp)
	}
	return Reply{Messages: renderArchived(*episode, archived, c.now())}
}

// Start subscribes the user to reminders and greets them.
func (c *Coordinator) Start(ctx context.Context, u User) Reply {
	if err := c.core.Subscribe(ctx, u.ID); err != nil {
		slog.Error("failed to subscribe", "error", err, "user_id", u.ID)
		return say(msgFailure)
	}
	return say("Hi " + u.name() + "!\n\n" + c.helpFor(u))
}

func (c *Coordinator) Help(u User) Reply {
	return say(c.helpFor(u))
}

func (c *Coordinator) Unsubscribe(ctx context.Context, u User) Reply {
	if err := c.core.Unsubscribe(ctx, u.ID); err != nil {
		slog.Error("failed to unsubscribe", "error", err, "user_id", u.ID)
		return say(msgFailure)
	}
	return say(msgUnsubscribed)
}

func (c *Coordinator) helpFor(u User) string {
	if c.guard.IsAdmin(u.ID) {
		return helpText + adminHelpText
	}
	return helpText
}
