package invaders

// HitMargin shrinks both rectangles on every side before the overlap test,
// so grazing contacts do not count.
const HitMargin = 2.0

// Collides reports whether two entities overlap after both are inset by
// HitMargin. It is symmetric.
func Collides(a, b Entity) bool {
	return a.Rect().Inset(HitMargin).Intersects(b.Rect().Inset(HitMargin))
}
