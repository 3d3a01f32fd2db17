package reminder

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/crm-api/internal/platform/rediscache"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCache(t *testing.T) (*rediscache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache, err := rediscache.Connect(context.Background(), "redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestQueueEnqueueScoresByDueInstant(t *testing.T) {
	cache, mr := testCache(t)
	q := NewQueue(cache, testLogger())

	require.NoError(t, q.Enqueue(context.Background(), "Call Acme", "2026-09-15"))

	members, err := mr.ZMembers(SortedSetKey)
	require.NoError(t, err)
	require.Len(t, members, 1)

	var p payload
	require.NoError(t, json.Unmarshal([]byte(members[0]), &p))
	assert.Equal(t, "Call Acme", p.Title)
	assert.Equal(t, "2026-09-15", p.DueDate)

	score, err := mr.ZScore(SortedSetKey, members[0])
	require.NoError(t, err)
	due, _ := time.Parse("2006-01-02", "2026-09-15")
	assert.Equal(t, float64(due.UnixMilli()), score)
}

func TestQueueEnqueueAcceptsTimestamps(t *testing.T) {
	cache, mr := testCache(t)
	q := NewQueue(cache, testLogger())

	require.NoError(t, q.Enqueue(context.Background(), "Follow up", "2026-09-15T10:30:00Z"))

	members, err := mr.ZMembers(SortedSetKey)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}

func TestQueueEnqueueUnparseableDateIsSilentNoop(t *testing.T) {
	cache, mr := testCache(t)
	q := NewQueue(cache, testLogger())

	require.NoError(t, q.Enqueue(context.Background(), "Broken", "next tuesday"))
	assert.False(t, mr.Exists(SortedSetKey))
}

func TestQueueEnqueueIdenticalEntriesCollapse(t *testing.T) {
	cache, mr := testCache(t)
	q := NewQueue(cache, testLogger())

	require.NoError(t, q.Enqueue(context.Background(), "Same", "2026-09-15"))
	require.NoError(t, q.Enqueue(context.Background(), "Same", "2026-09-15"))

	members, err := mr.ZMembers(SortedSetKey)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
