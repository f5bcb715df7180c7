package field

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRandom struct {
	value float64
}

func (that *fixedRandom) Float64() float64 {
	return that.value
}

func (that *fixedRandom) Intn(_ int) int {
	return 0
}

func newTestField(width, height float64, particles ...Particle) *Field {
	field := New(width, height, 1, &fixedRandom{value: 0.25})
	field.particles = particles
	field.count = len(particles)

	return field
}

func TestNew(t *testing.T) {
	// Given: a seeded random source
	field := New(800, 600, DefaultParticles, rand.New(rand.NewSource(1)))

	// Then: every particle starts on the canvas with a size, speed and color in range
	particles := field.Particles()
	require.Len(t, particles, DefaultParticles)

	for _, particle := range particles {
		assert.GreaterOrEqual(t, particle.X, 0.0)
		assert.Less(t, particle.X, 800.0)
		assert.GreaterOrEqual(t, particle.Y, 0.0)
		assert.Less(t, particle.Y, 600.0)
		assert.GreaterOrEqual(t, particle.Size, 1.0)
		assert.Less(t, particle.Size, 6.0)
		assert.LessOrEqual(t, math.Abs(particle.VX), 1.5)
		assert.LessOrEqual(t, math.Abs(particle.VY), 1.5)
		assert.Contains(t, Palette, particle.Color)
	}

	assert.False(t, field.Pointer().Known)
}

func TestNew_SameSeedSameField(t *testing.T) {
	// Given: two fields seeded alike
	first := New(640, 480, 20, rand.New(rand.NewSource(7)))
	second := New(640, 480, 20, rand.New(rand.NewSource(7)))

	// When: both advance the same number of frames
	for range 10 {
		first.Tick()
		second.Tick()
	}

	// Then: they stay identical
	assert.Equal(t, first.Particles(), second.Particles())
}

func TestField_Tick(t *testing.T) {
	t.Run("Moves and applies friction", func(t *testing.T) {
		// Given: one particle away from the edges and no pointer
		field := newTestField(800, 600, Particle{X: 100, Y: 100, VX: 1, VY: 1, Size: 2, Color: ColorTeal})

		// When: one frame passes
		field.Tick()

		// Then: it moved by its old velocity and slowed down
		particle := field.Particles()[0]
		assert.InDelta(t, 101.0, particle.X, 1e-9)
		assert.InDelta(t, 101.0, particle.Y, 1e-9)
		assert.InDelta(t, 0.99, particle.VX, 1e-9)
		assert.InDelta(t, 0.99, particle.VY, 1e-9)
	})

	t.Run("Speed never grows without a pointer", func(t *testing.T) {
		// Given: a fast particle in the middle of a large canvas
		field := newTestField(10000, 10000, Particle{X: 5000, Y: 5000, VX: 1.5, VY: -1.2, Size: 2, Color: ColorRed})

		// When: frames pass, the speed is monotonically non-increasing
		speed := field.Particles()[0].Speed()
		for range 20 {
			field.Tick()

			next := field.Particles()[0].Speed()
			assert.LessOrEqual(t, next, speed)
			speed = next
		}
	})

	t.Run("Pointer repels nearby particles", func(t *testing.T) {
		// Given: a particle 50px left of the pointer after it moves
		field := newTestField(800, 600, Particle{X: 100, Y: 100, VX: 1, VY: 0, Size: 2, Color: ColorWhite})
		field.OnPointerMove(151, 100)

		// When: one frame passes
		field.Tick()

		// Then: it is pushed away from the pointer with force (150-50)/150
		particle := field.Particles()[0]
		force := (InteractionRadius - 50) / InteractionRadius
		assert.InDelta(t, (1-force*0.1)*0.99, particle.VX, 1e-9)
		assert.InDelta(t, 0.0, particle.VY, 1e-9)
	})

	t.Run("Pointer out of reach does nothing", func(t *testing.T) {
		// Given: a particle far from the pointer
		field := newTestField(800, 600, Particle{X: 100, Y: 100, VX: 1, VY: 1, Size: 2, Color: ColorWhite})
		field.OnPointerMove(700, 500)

		// When: one frame passes
		field.Tick()

		// Then: only friction applies
		particle := field.Particles()[0]
		assert.InDelta(t, 0.99, particle.VX, 1e-9)
		assert.InDelta(t, 0.99, particle.VY, 1e-9)
	})

	t.Run("Bounces off the edges without clamping", func(t *testing.T) {
		// Given: particles about to cross the right and top edges
		field := newTestField(800, 600,
			Particle{X: 799.5, Y: 300, VX: 1, VY: 0.5, Size: 2, Color: ColorTeal},
			Particle{X: 400, Y: 0.5, VX: 0.5, VY: -1, Size: 2, Color: ColorTeal},
		)

		// When: one frame passes
		field.Tick()

		// Then: the crossing component flips and the position stays outside
		particles := field.Particles()
		assert.InDelta(t, 800.5, particles[0].X, 1e-9)
		assert.InDelta(t, -0.99, particles[0].VX, 1e-9)
		assert.InDelta(t, 0.495, particles[0].VY, 1e-9)

		assert.InDelta(t, -0.5, particles[1].Y, 1e-9)
		assert.InDelta(t, 0.99, particles[1].VY, 1e-9)
	})

	t.Run("Stalled particles respawn", func(t *testing.T) {
		// Given: a nearly still particle
		field := newTestField(800, 600, Particle{X: 10, Y: 10, VX: 0.05, VY: -0.05, Size: 3, Color: ColorRed})

		// When: one frame passes
		field.Tick()

		// Then: it gets a new position and velocity, keeping size and color
		particle := field.Particles()[0]
		assert.InDelta(t, 200.0, particle.X, 1e-9)
		assert.InDelta(t, 150.0, particle.Y, 1e-9)
		assert.InDelta(t, -0.75, particle.VX, 1e-9)
		assert.InDelta(t, -0.75, particle.VY, 1e-9)
		assert.InDelta(t, 3.0, particle.Size, 1e-9)
		assert.Equal(t, ColorRed, particle.Color)
	})
}

func TestField_Frame(t *testing.T) {
	// Given: two close particles and one far away
	field := newTestField(800, 600,
		Particle{X: 100, Y: 100, Size: 2, Color: ColorRed},
		Particle{X: 175, Y: 100, Size: 4, Color: ColorTeal},
		Particle{X: 700, Y: 500, Size: 1, Color: ColorWhite},
	)

	// When: the frame is derived
	frame := field.Frame()

	// Then: every particle is a dot and only the close pair is connected
	assert.InDelta(t, 800.0, frame.Width, 1e-9)
	assert.InDelta(t, 600.0, frame.Height, 1e-9)
	require.Len(t, frame.Particles, 3)
	for _, dot := range frame.Particles {
		assert.InDelta(t, 0.7, dot.Alpha, 1e-9)
	}

	require.Len(t, frame.Lines, 1)
	assert.Equal(t, 0, frame.Lines[0].From)
	assert.Equal(t, 1, frame.Lines[0].To)
	assert.Equal(t, ColorRed, frame.Lines[0].Color)
	assert.InDelta(t, 0.05, frame.Lines[0].Alpha, 1e-9)
}

func TestField_OnResize(t *testing.T) {
	t.Run("Reinitializes at the new size", func(t *testing.T) {
		// Given: a field on a small canvas
		field := New(100, 100, 30, rand.New(rand.NewSource(3)))

		// When: the canvas grows
		resized := field.OnResize(2000, 1000)

		// Then: the same number of particles is seeded over the new bounds
		require.True(t, resized)
		width, height := field.Size()
		assert.InDelta(t, 2000.0, width, 1e-9)
		assert.InDelta(t, 1000.0, height, 1e-9)

		particles := field.Particles()
		require.Len(t, particles, 30)
		for _, particle := range particles {
			assert.Less(t, particle.X, 2000.0)
			assert.Less(t, particle.Y, 1000.0)
		}
	})

	t.Run("Ignores non-positive sizes", func(t *testing.T) {
		// Given: a field
		field := New(100, 100, 5, rand.New(rand.NewSource(3)))
		before := field.Particles()

		// When: a zero width is reported
		resized := field.OnResize(0, 50)

		// Then: nothing changes
		assert.False(t, resized)
		assert.Equal(t, before, field.Particles())
	})
}
