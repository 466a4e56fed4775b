package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lykr/lykr_backend/models"
)

func newTestStore(t *testing.T) (*SnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSnapshotStore(client, time.Hour), mr
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	s := DefaultState()
	s = SetBusinessInfo(s, models.BusinessInfo{Name: "Acme"})
	s = SetCompetitors(s, []string{"Globex"})
	s = UpdateQuestionTranscript(s, 1, "الإجابة")

	require.NoError(t, store.Save(ctx, "sess-1", s))

	restored, ok := store.Load(ctx, "sess-1")
	assert.True(t, ok)
	assert.Equal(t, s, restored)
}

func TestSnapshotStoreMissingFallsBackToDefault(t *testing.T) {
	store, _ := newTestStore(t)

	restored, ok := store.Load(context.Background(), "no-such-session")
	assert.False(t, ok)
	assert.Equal(t, DefaultState(), restored)
}

func TestSnapshotStoreCorruptFallsBackToDefault(t *testing.T) {
	store, mr := newTestStore(t)

	mr.Set("onboarding:state:sess-1", "{not json")

	restored, ok := store.Load(context.Background(), "sess-1")
	assert.False(t, ok)
	assert.Equal(t, DefaultState(), restored)
}

func TestSnapshotStoreSessionsAreIsolated(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a := SetBusinessInfo(DefaultState(), models.BusinessInfo{Name: "Acme"})
	b := SetBusinessInfo(DefaultState(), models.BusinessInfo{Name: "Globex"})
	require.NoError(t, store.Save(ctx, "sess-a", a))
	require.NoError(t, store.Save(ctx, "sess-b", b))

	gotA, _ := store.Load(ctx, "sess-a")
	gotB, _ := store.Load(ctx, "sess-b")
	assert.Equal(t, "Acme", gotA.BusinessInfo.Name)
	assert.Equal(t, "Globex", gotB.BusinessInfo.Name)
}

func TestSnapshotStoreClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", SetBusinessInfo(DefaultState(), models.BusinessInfo{Name: "Acme"})))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	restored, ok := store.Load(ctx, "sess-1")
	assert.False(t, ok)
	assert.Equal(t, DefaultState(), restored)
}

func TestSnapshotStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sess-1", DefaultState()))
	mr.FastForward(2 * time.Hour)

	_, ok := store.Load(ctx, "sess-1")
	assert.False(t, ok)
}
