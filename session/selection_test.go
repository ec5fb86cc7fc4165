package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteSelection(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	first, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "First", "one")
	require.NoError(t, err)
	second, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "Second", "two")
	require.NoError(t, err)

	reply := c.Handle(ctx, bob, Command(EventVote))
	assert.Equal(t, []string{msgVoteIntro}, reply.Messages)
	assert.Equal(t, []Button{
		{Label: "First", Action: ActionSelect, TopicID: first.ID},
		{Label: "Second", Action: ActionSelect, TopicID: second.ID},
		{Label: "Done", Action: ActionStop},
	}, reply.Buttons)

	reply = c.Handle(ctx, bob, Select(second.ID))
	assert.Equal(t, []string{msgVoteAdded}, reply.Messages)
	// Buttons stay in proposal order even though Second now leads.
	assert.Equal(t, "First", reply.Buttons[0].Label)
	assert.Equal(t, "✅ Second", reply.Buttons[1].Label)

	count, err := svc.CountFor(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	reply = c.Handle(ctx, bob, Select(second.ID))
	assert.Equal(t, []string{msgVoteRemoved}, reply.Messages)
	assert.Equal(t, "Second", reply.Buttons[1].Label)

	reply = c.Handle(ctx, bob, reply.Buttons[len(reply.Buttons)-1].Event())
	assert.Equal(t, []string{msgDone}, reply.Messages)
	assert.Equal(t, StateIdle, c.State(bob.ID))
}

func TestVoteOnDeletedTopic(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	gone, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "Gone", "soon")
	require.NoError(t, err)
	stays, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "Stays", "here")
	require.NoError(t, err)

	c.Handle(ctx, bob, Command(EventVote))
	require.NoError(t, svc.Delete(ctx, gone.ID))

	reply := c.Handle(ctx, bob, Select(gone.ID))
	assert.Equal(t, []string{msgVoteGone}, reply.Messages)
	require.Len(t, reply.Buttons, 2)
	assert.Equal(t, stays.ID, reply.Buttons[0].TopicID)
	assert.Equal(t, StateSelectingVotes, c.State(bob.ID))
}

func TestVoteSelectionEndsWhenTopicsVanish(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	only, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "Only", "one")
	require.NoError(t, err)

	c.Handle(ctx, bob, Command(EventVote))
	_, err = svc.Archive(ctx, 1)
	require.NoError(t, err)

	reply := c.Handle(ctx, bob, Select(only.ID))
	assert.Equal(t, []string{msgVoteGone, msgVoteEmpty}, reply.Messages)
	assert.Empty(t, reply.Buttons)
	assert.Equal(t, StateIdle, c.State(bob.ID))
}

func TestVoteWithNoTopics(t *testing.T) {
	c, _ := newTestCoordinator(t)
	ctx := context.Background()

	reply := c.Handle(ctx, bob, Command(EventVote))
	assert.Equal(t, []string{msgNoTopics}, reply.Messages)
	assert.Equal(t, StateIdle, c.State(bob.ID))
}

func TestVoteUnknownButton(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	topic, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "Known", "one")
	require.NoError(t, err)

	c.Handle(ctx, bob, Command(EventVote))
	reply := c.Handle(ctx, bob, Select(topic.ID+100))
	assert.Equal(t, []string{msgStale}, reply.Messages)

	count, err := svc.CountFor(ctx, topic.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteSelection(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	first, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "First", "one")
	require.NoError(t, err)
	second, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "Second", "two")
	require.NoError(t, err)
	_, err = svc.ToggleVote(ctx, bob.ID, first.ID)
	require.NoError(t, err)

	reply := c.Handle(ctx, admin, Command(EventDelete))
	assert.Equal(t, []string{msgDeleteIntro}, reply.Messages)
	assert.Len(t, reply.Buttons, 3)

	reply = c.Handle(ctx, admin, Select(first.ID))
	assert.Equal(t, []string{msgDeleted}, reply.Messages)
	require.Len(t, reply.Buttons, 2)
	assert.Equal(t, second.ID, reply.Buttons[0].TopicID)

	voted, err := svc.HasVoted(ctx, bob.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, voted)

	reply = c.Handle(ctx, admin, Select(second.ID))
	assert.Equal(t, []string{msgDeleted, msgDeleteEmpty}, reply.Messages)
	assert.Equal(t, StateIdle, c.State(admin.ID))
}

func TestDeleteAlreadyDeleted(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	first, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "First", "one")
	require.NoError(t, err)
	_, err = svc.Propose(ctx, alice.ID, alice.DisplayName, "Second", "two")
	require.NoError(t, err)

	c.Handle(ctx, admin, Command(EventDelete))
	require.NoError(t, svc.Delete(ctx, first.ID))

	reply := c.Handle(ctx, admin, Select(first.ID))
	assert.Equal(t, []string{msgDeleteGone}, reply.Messages)
	assert.Len(t, reply.Buttons, 2)
	assert.Equal(t, StateSelectingDeletions, c.State(admin.ID))
}

func TestDeleteRequiresAdmin(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	_, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "First", "one")
	require.NoError(t, err)

	reply := c.Handle(ctx, alice, Command(EventDelete))
	assert.Equal(t, []string{msgNotAdmin}, reply.Messages)
	assert.Empty(t, reply.Buttons)
	assert.Equal(t, StateIdle, c.State(alice.ID))
}

func TestVoteOnLaterPage(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	var first, last int64
	for i := 1; i <= 30; i++ {
		topic, err := svc.Propose(ctx, alice.ID, alice.DisplayName, fmt.Sprintf("Topic %d", i), "body")
		require.NoError(t, err)
		if i == 1 {
			first = topic.ID
		}
		last = topic.ID
	}

	reply := c.Handle(ctx, bob, Command(EventVote))
	require.Len(t, reply.Buttons, pageSize+2)
	assert.Contains(t, reply.Messages[0], "Page 1 of 2.")
	assert.NotContains(t, reply.Buttons, Button{Label: "Topic 30", Action: ActionSelect, TopicID: last})

	// Topics on a page that is not shown cannot be pressed.
	reply = c.Handle(ctx, bob, Select(last))
	assert.True(t, strings.HasPrefix(reply.Messages[0], msgStale))

	next := reply.Buttons[len(reply.Buttons)-2]
	require.Equal(t, ActionPage, next.Action)
	reply = c.Handle(ctx, bob, next.Event())
	assert.Contains(t, reply.Messages[0], "Page 2 of 2.")
	require.Len(t, reply.Buttons, 10+2)
	assert.Contains(t, reply.Buttons, Button{Label: "Topic 30", Action: ActionSelect, TopicID: last})

	reply = c.Handle(ctx, bob, Select(last))
	assert.True(t, strings.HasPrefix(reply.Messages[0], msgVoteAdded))
	assert.Contains(t, reply.Buttons, Button{Label: "✅ Topic 30", Action: ActionSelect, TopicID: last})

	count, err := svc.CountFor(ctx, last)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The first page's topics are stale while the second is shown.
	reply = c.Handle(ctx, bob, Select(first))
	assert.True(t, strings.HasPrefix(reply.Messages[0], msgStale))
	assert.Equal(t, StateSelectingVotes, c.State(bob.ID))
}

func TestDeleteShrinksPages(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	var ids []int64
	for i := 1; i <= pageSize+1; i++ {
		topic, err := svc.Propose(ctx, alice.ID, alice.DisplayName, fmt.Sprintf("Topic %d", i), "body")
		require.NoError(t, err)
		ids = append(ids, topic.ID)
	}

	c.Handle(ctx, admin, Command(EventDelete))
	reply := c.Handle(ctx, admin, Page(1))
	require.Len(t, reply.Buttons, 1+2)
	assert.Equal(t, ids[pageSize], reply.Buttons[0].TopicID)

	// Deleting the only topic on the last page falls back to the first page.
	reply = c.Handle(ctx, admin, Select(ids[pageSize]))
	assert.Equal(t, []string{msgDeleted}, reply.Messages)
	require.Len(t, reply.Buttons, pageSize+1)
	assert.Equal(t, ids[0], reply.Buttons[0].TopicID)
	assert.Equal(t, ActionStop, reply.Buttons[pageSize].Action)
}

func TestPageOutsideSelection(t *testing.T) {
	c, svc := newTestCoordinator(t)
	ctx := context.Background()

	_, err := svc.Propose(ctx, alice.ID, alice.DisplayName, "First", "one")
	require.NoError(t, err)

	reply := c.Handle(ctx, alice, Page(1))
	assert.Equal(t, []string{msgStale}, reply.Messages)
	assert.Equal(t, StateIdle, c.State(alice.ID))
}
