package field

import "math"

// Palette colors a particle may take.
const (
	ColorTeal  = "#00c6c6"
	ColorRed   = "#ff3a3a"
	ColorWhite = "#ffffff"
)

// Background gradient, top to bottom.
const (
	BackgroundTop    = "#1e2130"
	BackgroundBottom = "#2d3150"
)

var Palette = []string{ColorTeal, ColorRed, ColorWhite}

type Particle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// Speed is the magnitude of the particle's velocity.
func (that *Particle) Speed() float64 {
	return math.Hypot(that.VX, that.VY)
}

func (that *Particle) stalled() bool {
	return math.Abs(that.VX) < stallSpeed && math.Abs(that.VY) < stallSpeed
}

// Pointer is the last known cursor position. Before the first move it is unknown and repels nothing.
type Pointer struct {
	X      float64
	Y      float64
	Known  bool
	Radius float64
}

func (that Pointer) reaches(x, y float64) (dx, dy, distance float64, ok bool) {
	if !that.Known {
		return 0, 0, 0, false
	}

	dx = that.X - x
	dy = that.Y - y
	distance = math.Hypot(dx, dy)

	return dx, dy, distance, distance < that.Radius
}
