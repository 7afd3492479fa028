package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	pieStartDeg       = 90.0
	percentLabelRatio = 0.6
	genreLabelRatio   = 1.1
	pieFontSize       = 10.0
)

// pieColors is the ten-colour category palette, cycled per wedge.
var pieColors = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 255},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 255},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 255},
	{R: 0xd6, G: 0x27, B: 0x28, A: 255},
	{R: 0x94, G: 0x67, B: 0xbd, A: 255},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 255},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 255},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 255},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 255},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 255},
}

// Wedge is one slice of a pie chart. Angles are in degrees, measured
// counter-clockwise from 3 o'clock.
type Wedge struct {
	Label    string
	Count    int
	StartDeg float64
	SweepDeg float64
	Percent  string
}

// MidDeg is the angle that bisects the wedge.
func (w Wedge) MidDeg() float64 {
	return w.StartDeg + w.SweepDeg/2
}

// PieWedges lays the distribution out starting at 12 o'clock and proceeding
// counter-clockwise, each sweep proportional to its count.
func PieWedges(dist Distribution) []Wedge {
	total := dist.Total()
	if total == 0 {
		return nil
	}

	wedges := make([]Wedge, 0, len(dist))
	angle := pieStartDeg
	for _, c := range dist {
		fraction := float64(c.Count) / float64(total)
		sweep := 360 * fraction
		wedges = append(wedges, Wedge{
			Label:    c.Label,
			Count:    c.Count,
			StartDeg: angle,
			SweepDeg: sweep,
			Percent:  fmt.Sprintf("%1.1f%%", 100*fraction),
		})
		angle += sweep
	}
	return wedges
}

// RenderPie draws the distribution as a PNG pie chart with the percentage
// inside each wedge and its label just outside.
func RenderPie(dist Distribution, opts Options) ([]byte, error) {
	wedges := PieWedges(dist)
	if len(wedges) == 0 {
		return nil, ErrNoData
	}
	opts = opts.withDefaults()

	r, err := chart.PNG(opts.Width, opts.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	fillBackground(r, opts)

	cx, cy := opts.Width/2, opts.Height/2
	radius := 0.7 * float64(min(opts.Width, opts.Height)) / 2

	for i, w := range wedges {
		color := pieColors[i%len(pieColors)]
		r.SetFillColor(color)
		r.SetStrokeColor(color)
		r.SetStrokeWidth(1)
		r.MoveTo(cx, cy)
		// Screen y grows downwards, so counter-clockwise sweeps are negative
		r.ArcTo(cx, cy, radius, radius, -degToRad(w.StartDeg), -degToRad(w.SweepDeg))
		r.LineTo(cx, cy)
		r.Close()
		r.FillStroke()
	}

	r.SetFont(font)
	r.SetFontSize(pieFontSize)
	r.SetFontColor(drawing.ColorBlack)
	for _, w := range wedges {
		px, py := polar(cx, cy, radius*percentLabelRatio, w.MidDeg())
		drawCentered(r, w.Percent, px, py)

		lx, ly := polar(cx, cy, radius*genreLabelRatio, w.MidDeg())
		drawCentered(r, w.Label, lx, ly)
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func polar(cx, cy int, dist, deg float64) (int, int) {
	rad := degToRad(deg)
	x := float64(cx) + dist*math.Cos(rad)
	y := float64(cy) - dist*math.Sin(rad)
	return int(math.Round(x)), int(math.Round(y))
}

func drawCentered(r chart.Renderer, text string, x, y int) {
	box := r.MeasureText(text)
	r.Text(text, x-box.Width()/2, y+box.Height()/2)
}

func fillBackground(r chart.Renderer, opts Options) {
	r.SetFillColor(drawing.ColorWhite)
	r.SetStrokeColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(opts.Width, 0)
	r.LineTo(opts.Width, opts.Height)
	r.LineTo(0, opts.Height)
	r.Close()
	r.Fill()
}
