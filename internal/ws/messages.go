package ws

import (
	"encoding/json"
	"time"

	"wind_simulator/internal/sim"
)

// Envelope wraps all websocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message types.
const (
	// Client -> server
	TypeSimStart    = "sim:start"
	TypeSimPause    = "sim:pause"
	TypeSimSetSpeed = "sim:set_speed"
	TypeSimRewind   = "sim:rewind"

	// Server -> client
	TypeSimState   = "sim:state"
	TypePowerFrame = "power:frame"
	TypeSummary    = "power:summary"
	TypePlants     = "data:plants"
)

type SetSpeedPayload struct {
	Speed float64 `json:"speed"`
}

type SimStatePayload struct {
	Time    string  `json:"time"`
	Speed   float64 `json:"speed"`
	Running bool    `json:"running"`
}

// PowerFramePayload is one replay step: power output per plant in W.
type PowerFramePayload struct {
	Timestamp    string             `json:"timestamp"`
	WindSpeedHub float64            `json:"wind_speed_hub"`
	PowerW       map[string]float64 `json:"power_w"`
}

type SummaryPayload struct {
	EnergyKWh map[string]float64 `json:"energy_kwh"`
}

// PlantsPayload announces the configured plants and their capacities.
type PlantsPayload struct {
	Plants []PlantInfo `json:"plants"`
}

type PlantInfo struct {
	Name          string  `json:"name"`
	NominalPowerW float64 `json:"nominal_power_w"`
	HubHeightM    float64 `json:"hub_height_m"`
}

// NewEnvelope marshals a payload into a typed envelope.
func NewEnvelope(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// SimStateFromEngine converts engine state to its wire form.
func SimStateFromEngine(s sim.State) SimStatePayload {
	return SimStatePayload{
		Time:    s.Time.Format(time.RFC3339),
		Speed:   s.Speed,
		Running: s.Running,
	}
}
