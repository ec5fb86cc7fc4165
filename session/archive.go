// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/topic-vote/topics"
)

func parseEpisode(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !episodePattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// requireAdmin ends the dialogue when the user is not an admin.
func (c *Coordinator) requireAdmin(d *dialogue, u User) (Reply, bool) {
	if err := c.guard.RequireAdmin(u.ID); err != nil {
		d.reset()
		return say(msgNotAdmin), false
	}
	return Reply{}, true
}

func (c *Coordinator) beginArchive(ctx context.Context, d *dialogue, u User, _ Event) Reply {
	if err := c.guard.RequireAdmin(u.ID); err != nil {
		return say(msgNotAdmin)
	}
	d.reset()

	current, err := c.core.ListCurrent(ctx)
	if err != nil {
		slog.Error("failed to list topics", "error", err)
		return say(msgFailure)
	}
	d.state = StateAwaitingEpisodeNumber
	// An empty round can still be archived; it records nothing.
	if len(current) == 0 {
		return say(msgNoTopics, msgAskEpisode)
	}
	return Reply{Messages: append(renderCurrent(current), msgAskEpisode)}
}

func (c *Coordinator) acceptEpisode(ctx context.Context, d *dialogue, u User, ev Event) Reply {
	if reply, ok := c.requireAdmin(d, u); !ok {
		return reply
	}

	episode, ok := parseEpisode(ev.Text)
	if !ok {
		return say(msgBadEpisode)
	}

	exists, err := c.core.EpisodeArchived(ctx, episode)
	if err != nil {
		slog.Error("failed to check archived episode", "error", err, "episode", episode)
		d.reset()
		return say(msgFailure)
	}

	d.episode = episode
	d.state = StateAwaitingArchiveConfirmation

	question := fmt.Sprintf("Archive all current topics under episode %d?", episode)
	if exists {
		question = fmt.Sprintf("Episode %d already has archived topics. Archive the current topics under it anyway?", episode)
	}
	return Reply{Messages: []string{question}, Buttons: confirmButtons()}
}

func (c *Coordinator) confirmArchive(ctx context.Context, d *dialogue, u User, ev Event) Reply {
	if reply, ok := c.requireAdmin(d, u); !ok {
		return reply
	}

	episode := d.episode
	d.reset()
	if !ev.Yes {
		return say(msgArchiveAborted)
	}

	batch, err := c.core.Archive(ctx, episode)
	switch {
	case errors.Is(err, topics.ErrDuplicateInArchive):
		return say(msgArchiveDup)
	case err != nil:
		slog.Error("failed to archive topics", "error", err, "episode", episode)
		return say(msgFailure)
	}

	slog.Info("episode archived", "episode", episode, "batch_id", batch.ID, "count", batch.Count, "admin_id", u.ID)
	return say(fmt.Sprintf("Archived %s for episode %d.", plural(batch.Count, "topic"), episode))
}
