package domain

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uxmedia/demoportal/internal/models"
	"go.uber.org/zap"
)

type memFeed struct {
	ch chan string
}

func (f *memFeed) Changes() <-chan string { return f.ch }

func newRefresherUnderTest(m *memStore, feed *memFeed) *Refresher {
	playback := NewPlaybackService(m, m, m, m, rand.New(rand.NewSource(1)), zap.NewNop())
	return NewRefresher(m, m, playback, feed, zap.NewNop())
}

func recvSnapshot(t *testing.T, ch <-chan models.Snapshot) models.Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return models.Snapshot{}
	}
}

func TestRefresherEmitsInitialSnapshot(t *testing.T) {
	m := newMemStore()
	sessionID := m.startSession("live")
	m.portalOpen = true
	m.addQueued(sessionID, "first", false, 0)

	feed := &memFeed{ch: make(chan string)}
	r := newRefresherUnderTest(m, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	snap := recvSnapshot(t, r.Events())
	assert.True(t, snap.PortalOpen)
	require.NotNil(t, snap.ActiveSessionID)
	assert.Equal(t, sessionID, *snap.ActiveSessionID)
	require.Len(t, snap.Queue, 1)
	assert.Equal(t, "first", snap.Queue[0].DisplayName)
	assert.Nil(t, snap.Playing)
}

func TestRefresherReactsToFeed(t *testing.T) {
	m := newMemStore()
	sessionID := m.startSession("live")

	feed := &memFeed{ch: make(chan string)}
	r := newRefresherUnderTest(m, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	first := recvSnapshot(t, r.Events())
	assert.Empty(t, first.Queue)

	m.addQueued(sessionID, "late entry", true, 0)
	feed.ch <- "submissions"

	second := recvSnapshot(t, r.Events())
	require.Len(t, second.Queue, 1)
	assert.Equal(t, "late entry", second.Queue[0].DisplayName)
}

func TestRefresherInvalidate(t *testing.T) {
	m := newMemStore()
	feed := &memFeed{ch: make(chan string)}
	r := newRefresherUnderTest(m, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	first := recvSnapshot(t, r.Events())
	assert.False(t, first.PortalOpen)

	m.portalOpen = true
	r.Invalidate()

	second := recvSnapshot(t, r.Events())
	assert.True(t, second.PortalOpen)
}

func TestRefresherNoSessionYieldsEmptyLists(t *testing.T) {
	m := newMemStore()
	feed := &memFeed{ch: make(chan string)}
	r := newRefresherUnderTest(m, feed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	snap := recvSnapshot(t, r.Events())
	assert.Nil(t, snap.ActiveSessionID)
	assert.NotNil(t, snap.Queue)
	assert.Empty(t, snap.Queue)
	assert.NotNil(t, snap.Finalists)
	assert.NotNil(t, snap.Previous)
}
