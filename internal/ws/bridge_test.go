package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind_simulator/internal/sim"
)

func bridgeWithClient(t *testing.T) (*Bridge, *Client) {
	t.Helper()
	hub := NewHub(zerolog.Nop())
	c := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(c)
	return NewBridge(hub, zerolog.Nop()), c
}

func TestBridge_OnFrame(t *testing.T) {
	bridge, c := bridgeWithClient(t)

	bridge.OnFrame(sim.Frame{
		Time:         time.Date(2024, 11, 21, 12, 0, 0, 0, time.UTC),
		WindSpeedHub: 7.74,
		PowerW:       map[string]float64{"coastal farm": 490432.9},
	})

	var env Envelope
	require.NoError(t, json.Unmarshal(<-c.send, &env))
	assert.Equal(t, TypePowerFrame, env.Type)

	var payload PowerFramePayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, "2024-11-21T12:00:00Z", payload.Timestamp)
	assert.InDelta(t, 7.74, payload.WindSpeedHub, 1e-9)
	assert.InDelta(t, 490432.9, payload.PowerW["coastal farm"], 1e-9)
}

func TestBridge_OnState(t *testing.T) {
	bridge, c := bridgeWithClient(t)

	bridge.OnState(sim.State{
		Time:    time.Date(2024, 11, 21, 12, 0, 0, 0, time.UTC),
		Speed:   3600,
		Running: true,
	})

	var env Envelope
	require.NoError(t, json.Unmarshal(<-c.send, &env))
	assert.Equal(t, TypeSimState, env.Type)

	var payload SimStatePayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.True(t, payload.Running)
	assert.Equal(t, 3600.0, payload.Speed)
}

func TestBridge_OnSummary(t *testing.T) {
	bridge, c := bridgeWithClient(t)

	bridge.OnSummary(sim.Summary{EnergyKWh: map[string]float64{"coastal farm": 12.5}})

	var env Envelope
	require.NoError(t, json.Unmarshal(<-c.send, &env))
	assert.Equal(t, TypeSummary, env.Type)

	var payload SummaryPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.InDelta(t, 12.5, payload.EnergyKWh["coastal farm"], 1e-9)
}
