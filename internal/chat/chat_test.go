package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/symptomchat/internal/knowledge"
	"github.com/Skufu/symptomchat/internal/matcher"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store := NewRedisStore(NewRedisClient(RedisConfig{Address: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func storeContract(t *testing.T, store Store) {
	ctx := context.Background()

	empty, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	recs := []matcher.Result{{
		Condition:       knowledge.Condition{Name: "Flu", Keywords: []string{"fever"}},
		Score:           10,
		MatchedKeywords: []string{"fever"},
	}}
	user := NewEntry(RoleUser, "I have a fever", nil)
	bot := NewEntry(RoleBot, "Possible matches", recs)
	require.NoError(t, store.Append(ctx, "s1", user, bot))
	require.NoError(t, store.Append(ctx, "s2", NewEntry(RoleUser, "other session", nil)))

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, RoleUser, history[0].Role)
	assert.Equal(t, "I have a fever", history[0].Message)
	assert.Equal(t, user.Timestamp, history[0].Timestamp)
	assert.Empty(t, history[0].Recommendations)
	assert.Equal(t, RoleBot, history[1].Role)
	require.Len(t, history[1].Recommendations, 1)
	assert.Equal(t, "Flu", history[1].Recommendations[0].Name)
	assert.Equal(t, []string{"fever"}, history[1].Recommendations[0].MatchedKeywords)

	require.NoError(t, store.Clear(ctx, "s1"))
	history, err = store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)

	other, err := store.History(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Hour))
}

func TestRedisStore(t *testing.T) {
	store, _ := newRedisStore(t, time.Hour)
	storeContract(t, store)
}

func TestRedisStoreExpiresSessions(t *testing.T) {
	store, mr := newRedisStore(t, 10*time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", NewEntry(RoleUser, "hello", nil)))
	assert.Equal(t, 10*time.Minute, mr.TTL(keyPrefix+"s1"))

	mr.FastForward(11 * time.Minute)
	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestRedisStorePing(t *testing.T) {
	store, mr := newRedisStore(t, time.Hour)
	assert.NoError(t, store.Ping(context.Background()))

	mr.Close()
	assert.Error(t, store.Ping(context.Background()))
}

func TestNewEntryTimestampsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		e := NewEntry(RoleUser, "x", nil)
		assert.False(t, seen[e.Timestamp])
		seen[e.Timestamp] = true
	}
}

func TestMemoryStoreConcurrentAppend(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Append(ctx, "s", NewEntry(RoleUser, "msg", nil))
		}()
	}
	wg.Wait()

	history, err := store.History(ctx, "s")
	require.NoError(t, err)
	assert.Len(t, history, 20)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClockedMemoryStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(ttl)
	store.now = clock.Now
	return store, clock
}

func TestMemoryStoreExpiredSessionReadsEmpty(t *testing.T) {
	store, clock := newClockedMemoryStore(10 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", NewEntry(RoleUser, "hello", nil)))
	clock.Advance(9 * time.Minute)
	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 1)

	clock.Advance(2 * time.Minute)
	history, err = store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history)
	assert.NotContains(t, store.sessions, "s1")
}

func TestMemoryStoreAppendExtendsLifetime(t *testing.T) {
	store, clock := newClockedMemoryStore(10 * time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", NewEntry(RoleUser, "one", nil)))
	clock.Advance(8 * time.Minute)
	require.NoError(t, store.Append(ctx, "s1", NewEntry(RoleUser, "two", nil)))
	clock.Advance(8 * time.Minute)

	history, err := store.History(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestMemoryStoreSweepsAbandonedSessions(t *testing.T) {
	store, clock := newClockedMemoryStore(10 * time.Minute)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		require.NoError(t, store.Append(ctx, fmt.Sprintf("anon-%d", i), NewEntry(RoleUser, "fever", nil)))
	}
	assert.Equal(t, 1000, store.Len())

	clock.Advance(11 * time.Minute)
	require.NoError(t, store.Append(ctx, "fresh", NewEntry(RoleUser, "fever", nil)))
	assert.Equal(t, 1, store.Len())
}
