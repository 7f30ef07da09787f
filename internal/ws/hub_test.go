package ws

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	payload := SimStatePayload{
		Time:    "2024-11-21T12:00:00Z",
		Speed:   3600,
		Running: true,
	}

	msg, err := NewEnvelope(TypeSimState, payload)
	require.NoError(t, err)

	var env Envelope
	err = json.Unmarshal(msg, &env)
	require.NoError(t, err)

	assert.Equal(t, TypeSimState, env.Type)

	var parsed SimStatePayload
	err = json.Unmarshal(env.Payload, &parsed)
	require.NoError(t, err)

	assert.Equal(t, "2024-11-21T12:00:00Z", parsed.Time)
	assert.Equal(t, 3600.0, parsed.Speed)
	assert.True(t, parsed.Running)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	c := &Client{
		hub:  hub,
		send: make(chan []byte, 16),
	}

	hub.Register(c)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice must not panic (double close guard).
	hub.Unregister(c)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	c1 := &Client{hub: hub, send: make(chan []byte, 16)}
	c2 := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(c1)
	hub.Register(c2)

	hub.Broadcast([]byte("hello"))

	assert.Equal(t, []byte("hello"), <-c1.send)
	assert.Equal(t, []byte("hello"), <-c2.send)
}

func TestHub_BroadcastDropsOnFullBuffer(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	c := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.Register(c)

	hub.Broadcast([]byte("first"))
	hub.Broadcast([]byte("dropped"))

	assert.Equal(t, []byte("first"), <-c.send)
	select {
	case msg := <-c.send:
		t.Fatalf("expected no further message, got %q", msg)
	default:
	}
}
