// Package core provides fundamental types and utilities for the game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Vec2 is a point or displacement in world units.
type Vec2 struct {
	X, Y float64
}

// CircleHit reports whether circle A (ax, ay, ar) overlaps circle B (bx, by, br).
// Touching circles count as a hit.
func CircleHit(ax, ay, ar, bx, by, br float64) bool {
	dx := bx - ax
	dy := by - ay
	rr := ar + br
	return dx*dx+dy*dy <= rr*rr
}

// EllipseHit reports whether the circle (cx, cy, cr) overlaps the ellipse centred
// at (ex, ey) with half-axes erx, ery rotated by angle radians.
//
// The circle centre is moved into the ellipse's local frame and compared against
// the boundary point on the ray from the ellipse centre through it. This is not
// the true nearest point on the boundary; the hitbox generosity of every obstacle
// depends on it, so it must stay this way.
func EllipseHit(cx, cy, cr, ex, ey, erx, ery, angle float64) bool {
	if erx <= 0 || ery <= 0 {
		return CircleHit(cx, cy, cr, ex, ey, math.Max(erx, ery))
	}

	dx := cx - ex
	dy := cy - ey
	cos := math.Cos(-angle)
	sin := math.Sin(-angle)
	lx := dx*cos - dy*sin
	ly := dx*sin + dy*cos

	// Centre inside the ellipse
	if (lx*lx)/(erx*erx)+(ly*ly)/(ery*ery) <= 1 {
		return true
	}

	t := math.Atan2(ly*erx, lx*ery)
	px := erx * math.Cos(t)
	py := ery * math.Sin(t)

	ddx := lx - px
	ddy := ly - py
	return ddx*ddx+ddy*ddy <= cr*cr
}

// Rect represents an axis-aligned box in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
