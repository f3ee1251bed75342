package chart

import "github.com/wcharczuk/go-chart/v2/drawing"

// Theme holds the visual options for a rendered chart.
type Theme struct {
	Name       string
	Background drawing.Color
	Canvas     drawing.Color
	Grid       drawing.Color
	Axis       drawing.Color
	Text       drawing.Color
	Line       drawing.Color
	Glow       bool // layered translucent strokes under the price line
}

var themes = map[string]Theme{
	// Neon cyan on near-black, with a glow under the price line.
	"cyberpunk": {
		Name:       "cyberpunk",
		Background: drawing.Color{R: 0x0d, G: 0x02, B: 0x21, A: 0xff},
		Canvas:     drawing.Color{R: 0x0d, G: 0x02, B: 0x21, A: 0xff},
		Grid:       drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0x40},
		Axis:       drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0x99},
		Text:       drawing.Color{R: 0x00, G: 0xea, B: 0xff, A: 0xff},
		Line:       drawing.Color{R: 0x00, G: 0xea, B: 0xff, A: 0xff},
		Glow:       true,
	},
	"dark": {
		Name:       "dark",
		Background: drawing.Color{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
		Canvas:     drawing.Color{R: 0x11, G: 0x11, B: 0x11, A: 0xff},
		Grid:       drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0x4d},
		Axis:       drawing.Color{R: 0xff, G: 0xff, B: 0xff, A: 0x99},
		Text:       drawing.Color{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
		Line:       drawing.Color{R: 0x4d, G: 0xa6, B: 0xff, A: 0xff},
	},
	"light": {
		Name:       "light",
		Background: drawing.ColorWhite,
		Canvas:     drawing.ColorWhite,
		Grid:       drawing.Color{R: 0x00, G: 0x00, B: 0x00, A: 0x33},
		Axis:       drawing.Color{R: 0x00, G: 0x00, B: 0x00, A: 0x99},
		Text:       drawing.Color{R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		Line:       drawing.Color{R: 0x00, G: 0x66, B: 0xcc, A: 0xff},
	},
}

// ThemeByName returns the named theme, falling back to "cyberpunk" when the
// name is unknown.
func ThemeByName(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["cyberpunk"]
}

// ThemeNames lists the available theme names.
func ThemeNames() []string {
	return []string{"cyberpunk", "dark", "light"}
}
