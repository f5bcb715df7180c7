package field

// Cursor feeds polled cursor positions to a field.
// The first reading is only a baseline, so the pointer stays absent until the cursor really moves.
type Cursor struct {
	x, y int
	seen bool
}

// Observe forwards the position as a pointer move when it differs from the previous reading.
func (that *Cursor) Observe(field *Field, x, y int) bool {
	if !that.seen {
		that.x, that.y, that.seen = x, y, true
		return false
	}

	if x == that.x && y == that.y {
		return false
	}

	that.x, that.y = x, y
	field.OnPointerMove(float64(x), float64(y))

	return true
}
