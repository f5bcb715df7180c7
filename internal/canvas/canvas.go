package canvas

import (
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/field"
)

const (
	windowTitle     = "Particles"
	gradientBand    = 4
	lineStrokeWidth = 1
)

// Canvas hosts a particle field in a desktop window.
type Canvas struct {
	logger *slog.Logger
	field  *field.Field
	frame  field.Frame
	cursor field.Cursor
}

func New(logger *slog.Logger, particles *field.Field) *Canvas {
	return &Canvas{
		logger: logger.With("component", "canvas"),
		field:  particles,
		frame:  particles.Frame(),
	}
}

func (that *Canvas) Update() error {
	x, y := ebiten.CursorPosition()
	that.cursor.Observe(that.field, x, y)

	that.frame = that.field.Tick()

	return nil
}

func (that *Canvas) Draw(screen *ebiten.Image) {
	width, height := float32(that.frame.Width), float32(that.frame.Height)

	for y := float32(0); y < height; y += gradientBand {
		vector.FillRect(screen, 0, y, width, gradientBand, field.BackgroundAt(float64(y/height)), false)
	}

	for _, line := range that.frame.Lines {
		from, to := that.frame.Particles[line.From], that.frame.Particles[line.To]
		vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y),
			lineStrokeWidth, field.ParseColor(line.Color, line.Alpha), true)
	}

	for _, dot := range that.frame.Particles {
		vector.FillCircle(screen, float32(dot.X), float32(dot.Y), float32(dot.Size), field.ParseColor(dot.Color, dot.Alpha), true)
	}
}

// Layout follows the window size; a new size reseeds the field.
func (that *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := that.field.Size()
	if float64(outsideWidth) != width || float64(outsideHeight) != height {
		if that.field.OnResize(float64(outsideWidth), float64(outsideHeight)) {
			that.logger.Debug("canvas resized", "width", outsideWidth, "height", outsideHeight)
			that.frame = that.field.Frame()
		}
	}

	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(logger *slog.Logger, width, height, particles, fps int) error {
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fps > 0 {
		ebiten.SetTPS(fps)
	}

	canvas := New(logger, field.New(float64(width), float64(height), particles, nil))

	if err := ebiten.RunGame(canvas); err != nil {
		return fmt.Errorf("failed to run canvas: %w", err)
	}

	return nil
}
