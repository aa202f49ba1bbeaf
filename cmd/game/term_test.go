package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPumpEventsStopsWhenBufferFull(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'b', tcell.ModNone)

	events := make(chan tcell.Event, 1)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pumpEvents(screen, events, done)
		close(finished)
	}()

	// буфер заполнен первым событием, второе ждёт отправки
	require.Eventually(t, func() bool { return len(events) == 1 }, time.Second, time.Millisecond)
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("event pump still blocked after done was closed")
	}
	ev, ok := (<-events).(*tcell.EventKey)
	require.True(t, ok)
	assert.Equal(t, 'a', ev.Rune())
}
