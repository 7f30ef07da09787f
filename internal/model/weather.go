package model

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

var (
	// ErrNoData is returned when a weather table has no column for a
	// quantity needed by the selected sub-models.
	ErrNoData = errors.New("no data for quantity")
	// ErrMisaligned is returned when a series does not line up with the
	// weather table's time index.
	ErrMisaligned = errors.New("series length does not match time index")
)

// Column identifies one measurement series: a quantity and the height
// above ground at which it was measured.
type Column struct {
	Quantity Quantity
	Height   float64
}

// Weather is a time-indexed table of measurement series keyed by
// (quantity, height). It is populated once by the caller and never
// mutated by the pipeline; every correction stage produces new slices.
type Weather struct {
	times   []time.Time
	columns map[Column][]float64
}

// NewWeather creates a weather table over the given time index.
func NewWeather(times []time.Time) *Weather {
	ts := make([]time.Time, len(times))
	copy(ts, times)
	return &Weather{
		times:   ts,
		columns: make(map[Column][]float64),
	}
}

// AddSeries registers a measurement series for a quantity at a height.
// The series must have exactly one value per timestamp.
func (w *Weather) AddSeries(q Quantity, height float64, values []float64) error {
	if len(values) != len(w.times) {
		return fmt.Errorf("%s at %gm: %w (%d values, %d timestamps)",
			q, height, ErrMisaligned, len(values), len(w.times))
	}
	vs := make([]float64, len(values))
	copy(vs, values)
	w.columns[Column{Quantity: q, Height: height}] = vs
	return nil
}

// Len returns the number of timestamps.
func (w *Weather) Len() int {
	return len(w.times)
}

// Times returns a copy of the time index.
func (w *Weather) Times() []time.Time {
	ts := make([]time.Time, len(w.times))
	copy(ts, w.times)
	return ts
}

// Series returns a copy of the measurement series for a quantity at an
// exact height.
func (w *Weather) Series(q Quantity, height float64) ([]float64, bool) {
	vs, ok := w.columns[Column{Quantity: q, Height: height}]
	if !ok {
		return nil, false
	}
	out := make([]float64, len(vs))
	copy(out, vs)
	return out, true
}

// Heights returns the measurement heights available for a quantity,
// sorted ascending.
func (w *Weather) Heights(q Quantity) []float64 {
	var hs []float64
	for col := range w.columns {
		if col.Quantity == q {
			hs = append(hs, col.Height)
		}
	}
	sort.Float64s(hs)
	return hs
}

// ClosestHeight returns the measurement height for a quantity closest to
// the target height (e.g. hub height).
func (w *Weather) ClosestHeight(q Quantity, target float64) (float64, error) {
	hs := w.Heights(q)
	if len(hs) == 0 {
		return 0, fmt.Errorf("%s: %w", q, ErrNoData)
	}
	best := hs[0]
	for _, h := range hs[1:] {
		if math.Abs(h-target) < math.Abs(best-target) {
			best = h
		}
	}
	return best, nil
}

// TwoClosestHeights returns the two measurement heights for a quantity
// closest to the target height, used by the inter/extrapolation models.
// The returned heights are ordered by distance from the target.
func (w *Weather) TwoClosestHeights(q Quantity, target float64) (float64, float64, error) {
	hs := w.Heights(q)
	if len(hs) < 2 {
		return 0, 0, fmt.Errorf("%s: need at least two heights for interpolation: %w", q, ErrNoData)
	}
	sort.Slice(hs, func(i, j int) bool {
		return math.Abs(hs[i]-target) < math.Abs(hs[j]-target)
	})
	return hs[0], hs[1], nil
}

// ClosestSeries returns the series and height for a quantity closest to
// the target height.
func (w *Weather) ClosestSeries(q Quantity, target float64) ([]float64, float64, error) {
	h, err := w.ClosestHeight(q, target)
	if err != nil {
		return nil, 0, err
	}
	vs, _ := w.Series(q, h)
	return vs, h, nil
}

// Mean returns the mean of all values of a quantity across heights and
// timestamps, or false if the quantity is absent.
func (w *Weather) Mean(q Quantity) (float64, bool) {
	var sum float64
	var n int
	for col, vs := range w.columns {
		if col.Quantity != q {
			continue
		}
		for _, v := range vs {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
