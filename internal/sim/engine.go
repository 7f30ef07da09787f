// Package sim replays computed power output time series at a
// configurable speed, feeding a callback per frame. It is the live
// visualization layer on top of the batch pipeline.
package sim

import (
	"sync"
	"time"
)

// Frame is one replay step: the power output of every configured plant
// at one timestamp, together with the hub wind speed.
type Frame struct {
	Time         time.Time
	WindSpeedHub float64
	// PowerW maps plant name to power output in W.
	PowerW map[string]float64
}

// State is the current replay state.
type State struct {
	Time    time.Time `json:"time"`
	Speed   float64   `json:"speed"`
	Running bool      `json:"running"`
}

// Summary holds running energy totals per plant in kWh.
type Summary struct {
	EnergyKWh map[string]float64 `json:"energy_kwh"`
}

// Callback receives replay events.
type Callback interface {
	OnState(state State)
	OnFrame(frame Frame)
	OnSummary(summary Summary)
}

// Engine walks a fixed sequence of frames at a configurable speed
// multiplier (simulated seconds per wall second).
type Engine struct {
	mu       sync.Mutex
	frames   []Frame
	callback Callback

	idx      int
	speed    float64
	running  bool
	energyWs map[string]float64 // accumulated energy in watt seconds
	stopCh   chan struct{}
}

// New creates an engine over precomputed frames.
func New(frames []Frame, cb Callback) *Engine {
	return &Engine{
		frames:   frames,
		callback: cb,
		speed:    3600,
		energyWs: make(map[string]float64),
	}
}

// State returns the current replay state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) stateLocked() State {
	var t time.Time
	if e.idx < len(e.frames) {
		t = e.frames[e.idx].Time
	} else if n := len(e.frames); n > 0 {
		t = e.frames[n-1].Time
	}
	return State{Time: t, Speed: e.speed, Running: e.running}
}

// Start begins the replay loop. Restarting from the end rewinds.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running || len(e.frames) == 0 {
		e.mu.Unlock()
		return
	}
	if e.idx >= len(e.frames) {
		e.rewindLocked()
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.mu.Unlock()

	e.broadcastState()
	go e.loop()
}

// Pause stops the replay loop.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopCh)
	e.mu.Unlock()

	e.broadcastState()
}

// SetSpeed sets the speed multiplier, clamped to a sane range.
func (e *Engine) SetSpeed(speed float64) {
	if speed < 1 {
		speed = 1
	}
	if speed > 604800 {
		speed = 604800
	}
	e.mu.Lock()
	e.speed = speed
	e.mu.Unlock()

	e.broadcastState()
}

// Rewind resets the replay to the first frame and clears totals.
func (e *Engine) Rewind() {
	e.mu.Lock()
	e.rewindLocked()
	e.mu.Unlock()

	e.broadcastState()
}

func (e *Engine) rewindLocked() {
	e.idx = 0
	e.energyWs = make(map[string]float64)
}

func (e *Engine) loop() {
	const tick = 250 * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			if !e.step(tick) {
				e.Pause()
				return
			}
		}
	}
}

// step advances simulated time by tick*speed and emits every frame
// passed on the way. Returns false when the replay is exhausted.
func (e *Engine) step(tick time.Duration) bool {
	e.mu.Lock()
	if e.idx >= len(e.frames) {
		e.mu.Unlock()
		return false
	}

	simAdvance := time.Duration(float64(tick) * e.speed)
	deadline := e.frames[e.idx].Time.Add(simAdvance)

	var emitted []Frame
	for e.idx < len(e.frames) && !e.frames[e.idx].Time.After(deadline) {
		frame := e.frames[e.idx]
		emitted = append(emitted, frame)
		e.accumulateLocked(frame)
		e.idx++
	}
	summary := e.summaryLocked()
	more := e.idx < len(e.frames)
	state := e.stateLocked()
	e.mu.Unlock()

	for _, frame := range emitted {
		e.callback.OnFrame(frame)
	}
	e.callback.OnSummary(summary)
	e.callback.OnState(state)
	return more
}

// accumulateLocked integrates energy over the interval to the next
// frame, holding each plant's power constant across the interval.
func (e *Engine) accumulateLocked(frame Frame) {
	if e.idx+1 >= len(e.frames) {
		return
	}
	interval := e.frames[e.idx+1].Time.Sub(frame.Time).Seconds()
	for name, p := range frame.PowerW {
		e.energyWs[name] += p * interval
	}
}

func (e *Engine) summaryLocked() Summary {
	s := Summary{EnergyKWh: make(map[string]float64, len(e.energyWs))}
	for name, ws := range e.energyWs {
		s.EnergyKWh[name] = ws / 3.6e6
	}
	return s
}

func (e *Engine) broadcastState() {
	e.callback.OnState(e.State())
}
