package topics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/topic-vote/testutil"
)

func TestSubscriptions(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	subs := NewSubscriptions(conn)
	ctx := context.Background()

	clock := time.Unix(100, 0)
	subs.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	require.NoError(t, subs.Subscribe(ctx, "b"))
	require.NoError(t, subs.Subscribe(ctx, "a"))
	require.NoError(t, subs.Subscribe(ctx, "b"), "subscribing twice is not an error")

	users, err := subs.ListSubscribers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, users)

	require.NoError(t, subs.Unsubscribe(ctx, "b"))
	require.NoError(t, subs.Unsubscribe(ctx, "never-subscribed"))

	users, err = subs.ListSubscribers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, users)
}
