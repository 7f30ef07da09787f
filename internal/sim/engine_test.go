package sim

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 11, 21, 12, 0, 0, 0, time.UTC)

type recordingCallback struct {
	mu        sync.Mutex
	states    []State
	frames    []Frame
	summaries []Summary
}

func (r *recordingCallback) OnState(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recordingCallback) OnFrame(f Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *recordingCallback) OnSummary(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
}

func hourlyFrames(powerW ...float64) []Frame {
	frames := make([]Frame, len(powerW))
	for i, p := range powerW {
		frames[i] = Frame{
			Time:   t0.Add(time.Duration(i) * time.Hour),
			PowerW: map[string]float64{"plant": p},
		}
	}
	return frames
}

func TestEngine_InitialState(t *testing.T) {
	e := New(hourlyFrames(1000, 2000), &recordingCallback{})

	s := e.State()
	assert.Equal(t, t0, s.Time)
	assert.Equal(t, 3600.0, s.Speed)
	assert.False(t, s.Running)
}

func TestEngine_SetSpeedClamps(t *testing.T) {
	cb := &recordingCallback{}
	e := New(hourlyFrames(1000), cb)

	e.SetSpeed(0.5)
	assert.Equal(t, 1.0, e.State().Speed)

	e.SetSpeed(1e9)
	assert.Equal(t, 604800.0, e.State().Speed)

	e.SetSpeed(7200)
	assert.Equal(t, 7200.0, e.State().Speed)

	// Every speed change broadcasts the new state.
	cb.mu.Lock()
	defer cb.mu.Unlock()
	assert.Len(t, cb.states, 3)
}

func TestEngine_StepEmitsFramesAndEnergy(t *testing.T) {
	cb := &recordingCallback{}
	e := New(hourlyFrames(1000, 1000, 1000), cb)

	// tick 250 ms at speed 14400 advances one simulated hour per step.
	e.SetSpeed(14400)

	more := e.step(250 * time.Millisecond)
	assert.True(t, more)

	cb.mu.Lock()
	// The first step emits the first frame and everything up to the
	// one-hour deadline.
	require.Len(t, cb.frames, 2)
	assert.Equal(t, t0, cb.frames[0].Time)
	assert.Equal(t, t0.Add(time.Hour), cb.frames[1].Time)

	// Power is held constant across each emitted interval: 1000 W for
	// two hours so far.
	require.NotEmpty(t, cb.summaries)
	last := cb.summaries[len(cb.summaries)-1]
	assert.InDelta(t, 2.0, last.EnergyKWh["plant"], 1e-9)
	cb.mu.Unlock()

	more = e.step(250 * time.Millisecond)
	assert.False(t, more)

	cb.mu.Lock()
	defer cb.mu.Unlock()
	require.Len(t, cb.frames, 3)
	// The final frame has no following interval to integrate.
	last = cb.summaries[len(cb.summaries)-1]
	assert.InDelta(t, 2.0, last.EnergyKWh["plant"], 1e-9)
}

func TestEngine_RewindResets(t *testing.T) {
	cb := &recordingCallback{}
	e := New(hourlyFrames(1000, 1000), cb)
	e.SetSpeed(14400)

	e.step(250 * time.Millisecond)
	e.Rewind()

	s := e.State()
	assert.Equal(t, t0, s.Time)

	// Energy totals restart from zero.
	e.step(250 * time.Millisecond)
	cb.mu.Lock()
	defer cb.mu.Unlock()
	last := cb.summaries[len(cb.summaries)-1]
	assert.InDelta(t, 1.0, last.EnergyKWh["plant"], 1e-9)
}

func TestEngine_StartPause(t *testing.T) {
	cb := &recordingCallback{}
	e := New(hourlyFrames(1000, 1000, 1000), cb)

	e.Start()
	assert.True(t, e.State().Running)

	e.Pause()
	assert.False(t, e.State().Running)

	// Pausing twice is a no-op.
	e.Pause()
	assert.False(t, e.State().Running)
}

func TestEngine_StartWithNoFrames(t *testing.T) {
	e := New(nil, &recordingCallback{})

	e.Start()
	assert.False(t, e.State().Running)
}

func TestEngine_StateAfterExhaustion(t *testing.T) {
	e := New(hourlyFrames(1000), &recordingCallback{})
	e.SetSpeed(14400)

	e.step(250 * time.Millisecond)
	assert.Equal(t, t0, e.State().Time)

	// Restarting from the end rewinds to the beginning.
	e.Start()
	defer e.Pause()
	assert.True(t, e.State().Running)
}
