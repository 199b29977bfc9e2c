package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fired(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(500 * time.Millisecond):
		return false
	}
}

func TestNotifySkipsUpToDateClients(t *testing.T) {
	w := NewWaitRegistry()
	defer w.Shutdown(time.Second)

	stale := w.RegisterWait("g", 1, context.Background())
	current := w.RegisterWait("g", 2, context.Background())

	w.NotifyGame("g", 2)

	assert.True(t, fired(stale))
	select {
	case <-current:
		t.Fatal("client already at the current move count was woken")
	default:
	}
}

func TestCancelledClientIsRemoved(t *testing.T) {
	w := NewWaitRegistry()
	defer w.Shutdown(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	w.RegisterWait("g", 0, ctx)
	require.Equal(t, 1, w.Waiting("g"))

	cancel()
	require.Eventually(t, func() bool { return w.Waiting("g") == 0 }, time.Second, 10*time.Millisecond)
}

func TestShutdownReleasesClients(t *testing.T) {
	w := NewWaitRegistry()

	notify := w.RegisterWait("g", 0, context.Background())
	require.NoError(t, w.Shutdown(time.Second))
	assert.True(t, fired(notify))

	// A second shutdown is harmless
	assert.NoError(t, w.Shutdown(time.Second))
}
