package field

import (
	"math"
	"math/rand"
	"time"
)

const (
	DefaultParticles  = 100
	InteractionRadius = 150.0

	repulsionStrength = 0.1
	friction          = 0.99
	stallSpeed        = 0.1

	maxSize      = 5.0
	minSize      = 1.0
	speedRange   = 3.0
	dotAlpha     = 0.7
	maxLineAlpha = 0.1
)

// Random is the source of particle placement and velocity. *rand.Rand satisfies it.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Field is a fixed-size particle collection on a canvas. It is not safe for concurrent use;
// the host drives it from one loop.
type Field struct {
	width     float64
	height    float64
	count     int
	particles []Particle
	pointer   Pointer
	random    Random
}

// New seeds count particles on a width x height canvas. A nil random falls back to a time seeded source.
func New(width, height float64, count int, random Random) *Field {
	if random == nil {
		random = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // visual noise only
	}

	if count <= 0 {
		count = DefaultParticles
	}

	field := &Field{
		width:   width,
		height:  height,
		count:   count,
		pointer: Pointer{Radius: InteractionRadius},
		random:  random,
	}
	field.populate()

	return field
}

func (that *Field) Size() (width, height float64) {
	return that.width, that.height
}

// Particles returns a copy of the current particles.
func (that *Field) Particles() []Particle {
	particles := make([]Particle, len(that.particles))
	copy(particles, that.particles)

	return particles
}

func (that *Field) Pointer() Pointer {
	return that.pointer
}

func (that *Field) OnPointerMove(x, y float64) {
	that.pointer.X = x
	that.pointer.Y = y
	that.pointer.Known = true
}

// OnResize discards every particle and seeds a fresh set at the new size. Non-positive sizes are ignored.
func (that *Field) OnResize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	that.width = width
	that.height = height
	that.populate()

	return true
}

// Tick advances every particle by one frame and returns the frame to draw.
func (that *Field) Tick() Frame {
	for i := range that.particles {
		that.step(&that.particles[i])
	}

	return that.Frame()
}

func (that *Field) step(particle *Particle) {
	particle.X += particle.VX
	particle.Y += particle.VY

	if dx, dy, distance, ok := that.pointer.reaches(particle.X, particle.Y); ok {
		force := (that.pointer.Radius - distance) / that.pointer.Radius
		angle := math.Atan2(dy, dx)
		particle.VX -= force * math.Cos(angle) * repulsionStrength
		particle.VY -= force * math.Sin(angle) * repulsionStrength
	}

	particle.VX *= friction
	particle.VY *= friction

	// no clamp: a particle past the edge turns around on its own
	if particle.X < 0 || particle.X > that.width {
		particle.VX = -particle.VX
	}
	if particle.Y < 0 || particle.Y > that.height {
		particle.VY = -particle.VY
	}

	if particle.stalled() {
		that.respawn(particle)
	}
}

func (that *Field) populate() {
	that.particles = make([]Particle, that.count)

	for i := range that.particles {
		that.particles[i].Size = that.random.Float64()*maxSize + minSize
		that.particles[i].Color = Palette[that.random.Intn(len(Palette))]
		that.respawn(&that.particles[i])
	}
}

// respawn places the particle anywhere on the canvas with a fresh velocity; size and color are kept.
func (that *Field) respawn(particle *Particle) {
	particle.X = that.random.Float64() * that.width
	particle.Y = that.random.Float64() * that.height
	particle.VX = that.random.Float64()*speedRange - speedRange/2
	particle.VY = that.random.Float64()*speedRange - speedRange/2
}
