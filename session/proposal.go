// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/topic-vote/topics"
)

func (c *Coordinator) beginProposal(_ context.Context, d *dialogue, u User, _ Event) Reply {
	if err := c.guard.RequireNotBanned(u.ID); err != nil {
		slog.Info("banned user tried to propose", "user_id", u.ID)
		return say(msgBanned)
	}
	d.reset()
	d.state = StateAwaitingTitle
	return say(msgAskTitle)
}

func (c *Coordinator) acceptTitle(_ context.Context, d *dialogue, _ User, ev Event) Reply {
	title := strings.TrimSpace(ev.Text)
	if title == "" {
		return say(msgEmptyTitle)
	}
	if !validTitle(title) {
		return say(titleTooLong(title))
	}
	d.title = title
	d.state = StateAwaitingBody
	return say(msgAskBody)
}

func (c *Coordinator) acceptBody(_ context.Context, d *dialogue, u User, ev Event) Reply {
	body := strings.TrimSpace(ev.Text)
	if body == "" {
		return say(msgEmptyBody)
	}
	d.body = body
	d.state = StateAwaitingConfirmation
	return Reply{
		Messages: []string{formatTopic(d.title, u.name(), d.body, -1), msgAskConfirm},
		Buttons:  confirmButtons(),
	}
}

// confirmProposal ends the dialogue whatever the answer or outcome.
func (c *Coordinator) confirmProposal(ctx context.Context, d *dialogue, u User, ev Event) Reply {
	title, body := d.title, d.body
	d.reset()

	if !ev.Yes {
		return say(msgDiscarded)
	}

	_, err := c.core.Propose(ctx, u.ID, u.name(), title, body)
	switch {
	case errors.Is(err, topics.ErrDuplicateTopic):
		return say(msgDuplicate)
	case err != nil:
		slog.Error("failed to propose topic", "error", err, "user_id", u.ID)
		return say(msgFailure)
	}
	return say(msgProposed)
}
