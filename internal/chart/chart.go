// Package chart renders a historical price series into a themed PNG line
// chart. Rendering is a pure transformation: series in, image bytes out.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"stockdash/internal/domain"
)

// ErrInsufficientData is returned when a series is too short to form a
// line. A chart is never silently rendered empty or degenerate.
var ErrInsufficientData = errors.New("insufficient data: need at least two points")

// Renderer renders price series to PNG with a fixed theme and size.
type Renderer struct {
	theme  Theme
	width  int
	height int
}

// NewRenderer creates a Renderer for the named theme at the default
// 1000x500 size.
func NewRenderer(themeName string) *Renderer {
	return &Renderer{theme: ThemeByName(themeName), width: 1000, height: 500}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme { return r.theme }

// Render produces a PNG line chart of closing prices for the series.
// Series with fewer than two points fail with ErrInsufficientData.
func (r *Renderer) Render(symbol string, series []domain.Bar) ([]byte, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%s: %w", symbol, ErrInsufficientData)
	}

	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	min, max := series[0].Close, series[0].Close
	for i, bar := range series {
		xs[i] = bar.Timestamp
		ys[i] = bar.Close
		if bar.Close < min {
			min = bar.Close
		}
		if bar.Close > max {
			max = bar.Close
		}
	}

	t := r.theme

	var cs []gochart.Series
	if t.Glow {
		// Widening translucent strokes under the price line.
		for _, glow := range []struct {
			width float64
			alpha uint8
		}{{9, 0x22}, {5, 0x44}} {
			cs = append(cs, gochart.TimeSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: t.Line.WithAlpha(glow.alpha),
					StrokeWidth: glow.width,
				},
			})
		}
	}
	cs = append(cs, gochart.TimeSeries{
		Name:    symbol,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: t.Line,
			StrokeWidth: 2,
		},
	})

	graph := gochart.Chart{
		Title:      fmt.Sprintf("%s Stock Price", symbol),
		TitleStyle: gochart.Style{FontColor: t.Text},
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{FillColor: t.Background},
		Canvas:     gochart.Style{FillColor: t.Canvas},
		XAxis: gochart.XAxis{
			Style:          gochart.Style{FontColor: t.Text, StrokeColor: t.Axis},
			ValueFormatter: gochart.TimeValueFormatterWithFormat("1/2/06"),
			GridMajorStyle: gochart.Style{Hidden: false, StrokeColor: t.Grid, StrokeWidth: 1},
		},
		YAxis: gochart.YAxis{
			Style:          gochart.Style{FontColor: t.Text, StrokeColor: t.Axis},
			GridMajorStyle: gochart.Style{Hidden: false, StrokeColor: t.Grid, StrokeWidth: 1},
		},
		Series: cs,
	}

	// A flat series has a zero value range, which the chart library
	// rejects. Pad it so flat lines still render.
	if min == max {
		graph.YAxis.Range = &gochart.ContinuousRange{Min: min - 1, Max: max + 1}
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", symbol, err)
	}
	return buf.Bytes(), nil
}
