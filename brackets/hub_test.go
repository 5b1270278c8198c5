package brackets_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streampair/bracket-system/brackets"
)

func TestHub_SubscribeReceivesRoomBroadcast(t *testing.T) {
	hub := brackets.NewHub()
	room := brackets.FillInRoom(42)

	ch, cancel := hub.Subscribe(room)
	defer cancel()

	hub.BroadcastToRoom(room, brackets.Message{
		Type:    brackets.MessageTypeFillInBracketUpdated,
		Payload: map[string]int{"id": 42},
		RoomID:  room,
	})

	select {
	case raw := <-ch:
		var msg brackets.Message
		require.NoError(t, json.Unmarshal(raw, &msg))
		assert.Equal(t, brackets.MessageTypeFillInBracketUpdated, msg.Type)
		assert.Equal(t, room, msg.RoomID)
	case <-time.After(time.Second):
		t.Fatal("no snapshot received")
	}
}

func TestHub_BroadcastDoesNotCrossRooms(t *testing.T) {
	hub := brackets.NewHub()

	ch, cancel := hub.Subscribe(brackets.FillInRoom(1))
	defer cancel()

	hub.BroadcastToRoom(brackets.FillInRoom(2), brackets.Message{Type: brackets.MessageTypeFillInBracketUpdated})

	select {
	case <-ch:
		t.Fatal("received a snapshot for another room")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := brackets.NewHub()
	room := brackets.FillInRoom(7)

	ch, cancel := hub.Subscribe(room)
	cancel()
	// Cancelling twice is harmless.
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after cancellation must not panic or block.
	hub.BroadcastToRoom(room, brackets.Message{Type: brackets.MessageTypeFillInBracketUpdated})
}
