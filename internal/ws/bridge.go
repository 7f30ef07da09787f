package ws

import (
	"time"

	"github.com/rs/zerolog"

	"wind_simulator/internal/sim"
)

// Bridge implements sim.Callback and broadcasts replay events to the
// websocket hub.
type Bridge struct {
	hub *Hub
	log zerolog.Logger
}

func NewBridge(hub *Hub, log zerolog.Logger) *Bridge {
	return &Bridge{hub: hub, log: log}
}

func (b *Bridge) OnState(s sim.State) {
	msg, err := NewEnvelope(TypeSimState, SimStateFromEngine(s))
	if err != nil {
		b.log.Error().Err(err).Msg("marshaling sim state")
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnFrame(f sim.Frame) {
	msg, err := NewEnvelope(TypePowerFrame, PowerFramePayload{
		Timestamp:    f.Time.Format(time.RFC3339),
		WindSpeedHub: f.WindSpeedHub,
		PowerW:       f.PowerW,
	})
	if err != nil {
		b.log.Error().Err(err).Msg("marshaling power frame")
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnSummary(s sim.Summary) {
	msg, err := NewEnvelope(TypeSummary, SummaryPayload{EnergyKWh: s.EnergyKWh})
	if err != nil {
		b.log.Error().Err(err).Msg("marshaling summary")
		return
	}
	b.hub.Broadcast(msg)
}
