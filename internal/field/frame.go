package field

import "math"

type Dot struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
}

// Line connects two dots by index.
type Line struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
}

type Frame struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Particles []Dot   `json:"particles"`
	Lines     []Line  `json:"lines"`
}

// Frame derives the drawable state without advancing the simulation.
func (that *Field) Frame() Frame {
	frame := Frame{
		Width:     that.width,
		Height:    that.height,
		Particles: make([]Dot, len(that.particles)),
		Lines:     make([]Line, 0, len(that.particles)),
	}

	for i, particle := range that.particles {
		frame.Particles[i] = Dot{
			X:     particle.X,
			Y:     particle.Y,
			Size:  particle.Size,
			Color: particle.Color,
			Alpha: dotAlpha,
		}
	}

	for i := range that.particles {
		for j := i + 1; j < len(that.particles); j++ {
			distance := math.Hypot(that.particles[i].X-that.particles[j].X, that.particles[i].Y-that.particles[j].Y)
			if distance >= InteractionRadius {
				continue
			}

			frame.Lines = append(frame.Lines, Line{
				From:  i,
				To:    j,
				Color: that.particles[i].Color,
				Alpha: maxLineAlpha * (1 - distance/InteractionRadius),
			})
		}
	}

	return frame
}
