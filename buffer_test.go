package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurableBufferTailAndHead(t *testing.T) {
	_, rdb := newTestRedis(t)
	b := NewDurableBuffer(rdb, "comments:queue")
	ctx := context.Background()

	for _, p := range []string{"a", "b", "c"} {
		require.NoError(t, b.PushTail(ctx, p))
	}
	n, err := b.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := b.PopHead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)

	got, err = b.PopHead(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, got)
}

func TestDurableBufferEmptyPop(t *testing.T) {
	_, rdb := newTestRedis(t)
	b := NewDurableBuffer(rdb, "comments:queue")

	for _, n := range []int{1, 5} {
		got, err := b.PopHead(context.Background(), n)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDurableBufferPushHeadKeepsOrder(t *testing.T) {
	mr, rdb := newTestRedis(t)
	b := NewDurableBuffer(rdb, "comments:queue")
	ctx := context.Background()

	require.NoError(t, b.PushTail(ctx, "newer"))
	require.NoError(t, b.PushHead(ctx, "r1", "r2", "r3"))

	list, err := mr.List("comments:queue")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2", "r3", "newer"}, list)

	require.NoError(t, b.PushHead(ctx))
	n, err := b.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
}

func TestDurableBufferSurvivesReconnect(t *testing.T) {
	mr, rdb := newTestRedis(t)
	require.NoError(t, NewDurableBuffer(rdb, "k").PushTail(context.Background(), "persisted"))

	cfg := RedisConfig{Addr: mr.Addr()}
	other, err := NewRedisClient(context.Background(), cfg)
	require.NoError(t, err)
	defer other.Close()

	got, err := NewDurableBuffer(other, "k").PopHead(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"persisted"}, got)
}
