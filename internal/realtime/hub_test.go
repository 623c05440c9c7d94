package realtime

import (
	"testing"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHubRegistry(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	connA := &websocket.Conn{}
	connB := &websocket.Conn{}

	assert.False(t, hub.Online(userID))

	hub.Register(userID, connA)
	hub.Register(userID, connB)
	assert.True(t, hub.Online(userID))

	hub.Unregister(userID, connA)
	assert.True(t, hub.Online(userID), "one connection left")

	hub.Unregister(userID, connB)
	assert.False(t, hub.Online(userID))

	// Unregistering an unknown connection is a no-op.
	hub.Unregister(userID, connA)
	assert.False(t, hub.Online(userID))
}

func TestHubPushToOfflineUser(t *testing.T) {
	hub := NewHub()

	// No connections registered; Push must not panic.
	hub.Push(uuid.New(), Event{Type: EventChatMessage, Payload: "hi"})
}

func TestHubIsolatesUsers(t *testing.T) {
	hub := NewHub()
	alice := uuid.New()
	bob := uuid.New()

	hub.Register(alice, &websocket.Conn{})

	assert.True(t, hub.Online(alice))
	assert.False(t, hub.Online(bob))
}

func TestHubConnectionsGetDistinctWriteLocks(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	connA := &websocket.Conn{}
	connB := &websocket.Conn{}

	hub.Register(userID, connA)
	hub.Register(userID, connB)

	lockA := hub.conns[userID][connA]
	lockB := hub.conns[userID][connB]
	assert.NotNil(t, lockA)
	assert.NotNil(t, lockB)
	assert.NotSame(t, lockA, lockB, "connections must not share a write lock")
}
