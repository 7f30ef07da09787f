package ws

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"wind_simulator/internal/sim"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages websocket connections and routes client commands to
// the replay engine.
type Handler struct {
	hub    *Hub
	engine *sim.Engine
	plants []PlantInfo
	log    zerolog.Logger
}

func NewHandler(hub *Hub, engine *sim.Engine, plants []PlantInfo, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, engine: engine, plants: plants, log: log}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendPlants(client)
	h.sendState(client)

	h.readPump(client)
}

func (h *Handler) sendPlants(c *Client) {
	msg, err := NewEnvelope(TypePlants, PlantsPayload{Plants: h.plants})
	if err != nil {
		h.log.Error().Err(err).Msg("marshaling plants")
		return
	}
	c.send <- msg
}

func (h *Handler) sendState(c *Client) {
	msg, err := NewEnvelope(TypeSimState, SimStateFromEngine(h.engine.State()))
	if err != nil {
		h.log.Error().Err(err).Msg("marshaling state")
		return
	}
	c.send <- msg
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		h.log.Warn().Err(err).Msg("invalid message")
		return
	}

	switch env.Type {
	case TypeSimStart:
		h.engine.Start()
	case TypeSimPause:
		h.engine.Pause()
	case TypeSimRewind:
		h.engine.Rewind()
	case TypeSimSetSpeed:
		var p SetSpeedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			h.log.Warn().Err(err).Msg("invalid set_speed payload")
			return
		}
		h.engine.SetSpeed(p.Speed)
	default:
		h.log.Warn().Str("type", env.Type).Msg("unknown message type")
	}
}
