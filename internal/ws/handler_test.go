package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wind_simulator/internal/sim"
)

// testEngine builds an engine over a few hourly frames for handler
// tests. The bridge broadcasts to a separate hub the tests never read.
func testEngine() *sim.Engine {
	base := time.Date(2024, 11, 21, 12, 0, 0, 0, time.UTC)
	frames := make([]sim.Frame, 5)
	for i := range frames {
		frames[i] = sim.Frame{
			Time:         base.Add(time.Duration(i) * time.Hour),
			WindSpeedHub: 7.0 + float64(i),
			PowerW:       map[string]float64{"coastal farm": float64(100000 * (i + 1))},
		}
	}
	bridge := NewBridge(NewHub(zerolog.Nop()), zerolog.Nop())
	return sim.New(frames, bridge)
}

func testPlants() []PlantInfo {
	return []PlantInfo{
		{Name: "coastal farm", NominalPowerW: 29200000, HubHeightM: 123.4},
	}
}

// dialHandler sets up a test server with the handler and returns a WS
// connection.
func dialHandler(t *testing.T, handler *Handler) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	return conn, func() {
		conn.Close()
		server.Close()
	}
}

func readJSON(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var env Envelope
	require.NoError(t, json.Unmarshal(msg, &env))
	return env
}

func sendJSON(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	data, err := NewEnvelope(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

func TestHandler_InitialMessages(t *testing.T) {
	engine := testEngine()
	handler := NewHandler(NewHub(zerolog.Nop()), engine, testPlants(), zerolog.Nop())

	conn, cleanup := dialHandler(t, handler)
	defer cleanup()

	env1 := readJSON(t, conn)
	assert.Equal(t, TypePlants, env1.Type)

	var plants PlantsPayload
	require.NoError(t, json.Unmarshal(env1.Payload, &plants))
	require.Len(t, plants.Plants, 1)
	assert.Equal(t, "coastal farm", plants.Plants[0].Name)
	assert.InDelta(t, 29200000, plants.Plants[0].NominalPowerW, 1e-6)

	env2 := readJSON(t, conn)
	assert.Equal(t, TypeSimState, env2.Type)

	var state SimStatePayload
	require.NoError(t, json.Unmarshal(env2.Payload, &state))
	assert.False(t, state.Running)
	assert.Equal(t, 3600.0, state.Speed)
}

func TestHandler_StartPause(t *testing.T) {
	engine := testEngine()
	handler := NewHandler(NewHub(zerolog.Nop()), engine, testPlants(), zerolog.Nop())

	conn, cleanup := dialHandler(t, handler)
	defer cleanup()

	readJSON(t, conn) // data:plants
	readJSON(t, conn) // sim:state

	sendJSON(t, conn, TypeSimStart, nil)
	time.Sleep(50 * time.Millisecond)
	assert.True(t, engine.State().Running)

	sendJSON(t, conn, TypeSimPause, nil)
	time.Sleep(50 * time.Millisecond)
	assert.False(t, engine.State().Running)
}

func TestHandler_SetSpeed(t *testing.T) {
	engine := testEngine()
	handler := NewHandler(NewHub(zerolog.Nop()), engine, testPlants(), zerolog.Nop())

	conn, cleanup := dialHandler(t, handler)
	defer cleanup()

	readJSON(t, conn)
	readJSON(t, conn)

	sendJSON(t, conn, TypeSimSetSpeed, SetSpeedPayload{Speed: 7200})
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 7200.0, engine.State().Speed)
}

func TestHandler_Rewind(t *testing.T) {
	engine := testEngine()
	handler := NewHandler(NewHub(zerolog.Nop()), engine, testPlants(), zerolog.Nop())

	conn, cleanup := dialHandler(t, handler)
	defer cleanup()

	readJSON(t, conn)
	readJSON(t, conn)

	sendJSON(t, conn, TypeSimRewind, nil)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, time.Date(2024, 11, 21, 12, 0, 0, 0, time.UTC), engine.State().Time)
}

func TestHandler_InvalidMessage(t *testing.T) {
	engine := testEngine()
	handler := NewHandler(NewHub(zerolog.Nop()), engine, testPlants(), zerolog.Nop())

	conn, cleanup := dialHandler(t, handler)
	defer cleanup()

	readJSON(t, conn)
	readJSON(t, conn)

	// Invalid JSON must not kill the connection or the engine.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	time.Sleep(50 * time.Millisecond)

	assert.False(t, engine.State().Running)
}
