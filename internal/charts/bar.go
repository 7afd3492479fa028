package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxBarWidth = 80

// barColors are assigned by bar position and repeat after the third bar.
var barColors = []drawing.Color{
	{R: 0x00, G: 0x00, B: 0xff, A: 255}, // blue
	{R: 0x00, G: 0x80, B: 0x00, A: 255}, // green
	{R: 0xff, G: 0xa5, B: 0x00, A: 255}, // orange
}

// BarColor returns the fill colour of the bar at index i.
func BarColor(i int) drawing.Color {
	return barColors[i%len(barColors)]
}

// RenderBar draws the distribution as a PNG bar chart, one bar per label in
// distribution order with height equal to the count.
func RenderBar(dist Distribution, opts Options) ([]byte, error) {
	if dist.Total() == 0 {
		return nil, ErrNoData
	}
	opts = opts.withDefaults()

	maxCount := 0
	bars := make([]chart.Value, 0, len(dist))
	for i, c := range dist {
		if c.Count > maxCount {
			maxCount = c.Count
		}
		color := BarColor(i)
		bars = append(bars, chart.Value{
			Label: c.Label,
			Value: float64(c.Count),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		})
	}

	graph := chart.BarChart{
		Width:    opts.Width,
		Height:   opts.Height,
		BarWidth: min(maxBarWidth, opts.Width/(2*len(bars))),
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			// Explicit so a single-valued distribution still has a non-zero range
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}
