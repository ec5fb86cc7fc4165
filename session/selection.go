// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/danielhkuo/topic-vote/topics"
)

func (c *Coordinator) beginVote(ctx context.Context, d *dialogue, u User, _ Event) Reply {
	d.reset()
	d.state = StateSelectingVotes
	return c.renderSelection(ctx, d, u, msgVoteIntro, msgNoTopics)
}

func (c *Coordinator) selectVote(ctx context.Context, d *dialogue, u User, ev Event) Reply {
	if _, ok := d.rendered[ev.TopicID]; !ok {
		return c.renderSelection(ctx, d, u, msgStale, msgVoteEmpty)
	}

	change, err := c.core.ToggleVote(ctx, u.ID, ev.TopicID)
	switch {
	case errors.Is(err, topics.ErrTopicGone):
		return c.renderSelection(ctx, d, u, msgVoteGone, msgVoteEmpty)
	case err != nil:
		slog.Error("failed to toggle vote", "error", err, "user_id", u.ID, "topic_id", ev.TopicID)
		d.reset()
		return say(msgFailure)
	}

	status := msgVoteAdded
	if change == topics.VoteRemoved {
		status = msgVoteRemoved
	}
	return c.renderSelection(ctx, d, u, status, msgVoteEmpty)
}

func (c *Coordinator) beginDelete(ctx context.Context, d *dialogue, u User, _ Event) Reply {
	if err := c.guard.RequireAdmin(u.ID); err != nil {
		return say(msgNotAdmin)
	}
	d.reset()
	d.state = StateSelectingDeletions
	return c.renderSelection(ctx, d, u, msgDeleteIntro, msgNoTopics)
}

func (c *Coordinator) selectDeletion(ctx context.Context, d *dialogue, u User, ev Event) Reply {
	if reply, ok := c.requireAdmin(d, u); !ok {
		return reply
	}
	if _, ok := d.rendered[ev.TopicID]; !ok {
		return c.renderSelection(ctx, d, u, msgStale, msgDeleteEmpty)
	}

	err := c.core.Delete(ctx, ev.TopicID)
	switch {
	case errors.Is(err, topics.ErrTopicNotFound):
		return c.renderSelection(ctx, d, u, msgDeleteGone, msgDeleteEmpty)
	case err != nil:
		slog.Error("failed to delete topic", "error", err, "topic_id", ev.TopicID)
		d.reset()
		return say(msgFailure)
	}

	slog.Info("topic deleted by admin", "topic_id", ev.TopicID, "admin_id", u.ID)
	return c.renderSelection(ctx, d, u, msgDeleted, msgDeleteEmpty)
}

// turnPage shows another page of the keyboard. Presses on the page left
// behind are stale from here on.
func (c *Coordinator) turnPage(ctx context.Context, d *dialogue, u User, ev Event) Reply {
	status, empty := msgVoteIntro, msgVoteEmpty
	if d.state == StateSelectingDeletions {
		if reply, ok := c.requireAdmin(d, u); !ok {
			return reply
		}
		status, empty = msgDeleteIntro, msgDeleteEmpty
	}
	d.page = ev.Page
	return c.renderSelection(ctx, d, u, status, empty)
}

func (c *Coordinator) stopSelection(_ context.Context, d *dialogue, _ User, _ Event) Reply {
	d.reset()
	return say(msgDone)
}

// renderSelection re-reads the current topics and rebuilds the keyboard for
// the dialogue's page. The dialogue ends with the empty message once nothing
// is left to select.
func (c *Coordinator) renderSelection(ctx context.Context, d *dialogue, u User, status, empty string) Reply {
	current, err := c.core.ListCurrent(ctx)
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		d.reset()
		return say(msgFailure)
	}
	if len(current) == 0 {
		d.reset()
		if status == msgVoteIntro || status == msgDeleteIntro {
			return say(empty)
		}
		return say(status, empty)
	}

	var voted map[int64]bool
	if d.state == StateSelectingVotes {
		voted, err = c.core.VotedTopics(ctx, u.ID)
		if err != nil {
			slog.Error("failed to load votes", "error", err, "user_id", u.ID)
			d.reset()
			return say(msgFailure)
		}
	}

	// Deletions can shrink the page count under the dialogue.
	pages := pageCount(len(current))
	d.page = min(max(d.page, 0), pages-1)
	shown := pageOf(current, d.page)

	d.rendered = make(map[int64]struct{}, len(shown))
	for _, t := range shown {
		d.rendered[t.ID] = struct{}{}
	}
	if pages > 1 {
		status += "\n\n" + fmt.Sprintf(msgPage, d.page+1, pages)
	}
	return Reply{Messages: []string{status}, Buttons: selectionButtons(shown, voted, d.page, pages)}
}
