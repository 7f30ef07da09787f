// Package ingest parses weather time series from CSV exports for the
// commands. The core pipeline never performs I/O itself.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"wind_simulator/internal/model"
)

// WeatherParser parses weather tables with a two-row header: the first
// row names the quantity of each column, the second gives the height in
// m at which it was measured.
//
// Expected format:
//
//	,wind_speed,wind_speed,temperature,pressure,roughness_length
//	height,10,80,2,0,0
//	2024-11-21 00:00:00,5.2,6.1,267.6,98405.7,0.15
type WeatherParser struct {
	// Location resolves timestamps without an explicit zone.
	// Defaults to UTC.
	Location *time.Location
}

// Parse reads the full table into a weather record.
func (p *WeatherParser) Parse(r io.Reader) (*model.Weather, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	quantities, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading quantity header: %w", err)
	}
	heights, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading height header: %w", err)
	}
	columns, err := parseHeader(quantities, heights)
	if err != nil {
		return nil, err
	}

	var times []time.Time
	values := make([][]float64, len(columns))

	lineNum := 2
	for {
		lineNum++
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", lineNum, err)
		}
		if len(record) != len(columns)+1 {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", lineNum, len(columns)+1, len(record))
		}

		ts, err := p.parseTime(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		times = append(times, ts)

		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: parsing %q: %w", lineNum, i+2, field, err)
			}
			// ParseFloat accepts "NaN" and "Inf"; neither is a measurement.
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d column %d: non-finite value %q", lineNum, i+2, field)
			}
			values[i] = append(values[i], v)
		}
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no data rows found")
	}

	w := model.NewWeather(times)
	for i, col := range columns {
		if err := w.AddSeries(col.Quantity, col.Height, values[i]); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func parseHeader(quantities, heights []string) ([]model.Column, error) {
	if len(quantities) < 2 {
		return nil, fmt.Errorf("expected at least one data column, got %d", len(quantities)-1)
	}
	if len(heights) != len(quantities) {
		return nil, fmt.Errorf("quantity header has %d fields, height header has %d",
			len(quantities), len(heights))
	}
	if h := strings.TrimSpace(heights[0]); h != "height" && h != "" {
		return nil, fmt.Errorf("expected height header row to start with \"height\", got %q", heights[0])
	}

	columns := make([]model.Column, 0, len(quantities)-1)
	for i := 1; i < len(quantities); i++ {
		q := model.Quantity(strings.TrimSpace(quantities[i]))
		if !model.KnownQuantity(q) {
			return nil, fmt.Errorf("column %d: unknown quantity %q", i+1, quantities[i])
		}
		h, err := strconv.ParseFloat(strings.TrimSpace(heights[i]), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: parsing height %q: %w", i+1, heights[i], err)
		}
		columns = append(columns, model.Column{Quantity: q, Height: h})
	}
	return columns, nil
}

func (p *WeatherParser) parseTime(field string) (time.Time, error) {
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	field = strings.TrimSpace(field)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if ts, err := time.ParseInLocation(layout, field, loc); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing timestamp %q", field)
}
