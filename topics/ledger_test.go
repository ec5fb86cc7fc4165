package topics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/topic-vote/db"
	"github.com/danielhkuo/topic-vote/testutil"
)

func TestToggleRoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ledger := NewLedger(conn, db.SQLite)
	ctx := context.Background()

	topicID := testutil.CreateTestTopic(t, conn, "1", "Rust vs Go", "discuss")
	testutil.CastTestVote(t, conn, "other", topicID)

	before, err := ledger.CountFor(ctx, topicID)
	require.NoError(t, err)

	change, err := ledger.Toggle(ctx, "2", topicID)
	require.NoError(t, err)
	assert.Equal(t, VoteAdded, change)

	voted, err := ledger.HasVoted(ctx, "2", topicID)
	require.NoError(t, err)
	assert.True(t, voted)

	count, err := ledger.CountFor(ctx, topicID)
	require.NoError(t, err)
	assert.Equal(t, before+1, count)

	change, err = ledger.Toggle(ctx, "2", topicID)
	require.NoError(t, err)
	assert.Equal(t, VoteRemoved, change)

	voted, err = ledger.HasVoted(ctx, "2", topicID)
	require.NoError(t, err)
	assert.False(t, voted)

	count, err = ledger.CountFor(ctx, topicID)
	require.NoError(t, err)
	assert.Equal(t, before, count)
}

func TestToggleMissingTopic(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ledger := NewLedger(conn, db.SQLite)

	_, err := ledger.Toggle(context.Background(), "2", 12345)
	assert.ErrorIs(t, err, ErrTopicGone)
	assert.Zero(t, testutil.CountRows(t, conn, "vote"))
}

func TestToggleAfterDelete(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	svc := NewService(conn, db.SQLite)
	ctx := context.Background()

	topic, err := svc.Propose(ctx, "1", "alice", "Rust vs Go", "discuss")
	require.NoError(t, err)
	_, err = svc.ToggleVote(ctx, "2", topic.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, topic.ID))

	_, err = svc.ToggleVote(ctx, "2", topic.ID)
	assert.ErrorIs(t, err, ErrTopicGone)
	assert.Zero(t, testutil.CountRows(t, conn, "vote"))
}

func TestVotedTopics(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ledger := NewLedger(conn, db.SQLite)

	a := testutil.CreateTestTopic(t, conn, "1", "a", "body")
	b := testutil.CreateTestTopic(t, conn, "1", "b", "body")
	c := testutil.CreateTestTopic(t, conn, "1", "c", "body")
	testutil.CastTestVote(t, conn, "7", a)
	testutil.CastTestVote(t, conn, "7", c)
	testutil.CastTestVote(t, conn, "8", b)

	voted, err := ledger.VotedTopics(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{a: true, c: true}, voted)

	voted, err = ledger.VotedTopics(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, voted)
}

func TestVoteChangeString(t *testing.T) {
	assert.Equal(t, "added", VoteAdded.String())
	assert.Equal(t, "removed", VoteRemoved.String())
	assert.Equal(t, "unknown", VoteChange(0).String())
}
