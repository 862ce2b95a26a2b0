package astrodash

import (
	"math"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// Body is the shape every falling entity shares. Kinds add their own fields;
// the registry only needs position, extent and the active flag.
type Body interface {
	Pos() core.Vec2
	Extent() float64 // Largest distance from the centre to the hitbox edge
	Alive() bool
	Shift(dy float64)
	Retire()
}

// Obstacle is a falling asteroid with an elliptical hitbox.
type Obstacle struct {
	X, Y    float64 // Centre
	RX, RY  float64 // Half-axes
	Angle   float64 // Rotation in radians
	Sprite  int     // Which asteroid art to draw
	Big     bool    // Drawn from the big-obstacle roll
	Crashed bool    // Visual only; collision is unaffected
	Active  bool
}

// Pos returns the obstacle centre.
func (o *Obstacle) Pos() core.Vec2 { return core.Vec2{X: o.X, Y: o.Y} }

// Extent returns the larger half-axis.
func (o *Obstacle) Extent() float64 { return math.Max(o.RX, o.RY) }

// Alive reports whether the obstacle is still in play.
func (o *Obstacle) Alive() bool { return o.Active }

// Shift moves the obstacle down by dy.
func (o *Obstacle) Shift(dy float64) { o.Y += dy }

// Retire takes the obstacle out of play.
func (o *Obstacle) Retire() { o.Active = false }

// Hits reports whether a circle overlaps this obstacle.
func (o *Obstacle) Hits(x, y, r float64) bool {
	return core.EllipseHit(x, y, r, o.X, o.Y, o.RX, o.RY, o.Angle)
}

// Sticker is a collectible worth points.
type Sticker struct {
	X, Y      float64
	Radius    float64
	Thick     bool // Rare tier, worth more and biased toward the edges
	Collected bool
	Active    bool
}

// Pos returns the sticker centre.
func (s *Sticker) Pos() core.Vec2 { return core.Vec2{X: s.X, Y: s.Y} }

// Extent returns the sticker radius.
func (s *Sticker) Extent() float64 { return s.Radius }

// Alive reports whether the sticker can still be collected.
func (s *Sticker) Alive() bool { return s.Active && !s.Collected }

// Shift moves the sticker down by dy.
func (s *Sticker) Shift(dy float64) { s.Y += dy }

// Retire takes the sticker out of play.
func (s *Sticker) Retire() { s.Active = false }

// PickupKind is the closed set of powerups.
type PickupKind int

const (
	PickupSpeedBoost  PickupKind = iota // Faster steering
	PickupMultiplierA                   // Score x2
	PickupMultiplierB                   // Score x3, impaired steering
	PickupShield                        // One consumable shield charge
	PickupTimeEffect                    // Slows the world
	PickupCount                         // Sentinel for counting kinds
)

var pickupNames = [...]string{
	PickupSpeedBoost:  "speed_boost",
	PickupMultiplierA: "multiplier_a",
	PickupMultiplierB: "multiplier_b",
	PickupShield:      "shield",
	PickupTimeEffect:  "time_effect",
}

// String returns the config name of the pickup kind.
func (k PickupKind) String() string {
	if k < 0 || k >= PickupCount {
		return "?"
	}
	return pickupNames[k]
}

// Label returns the short HUD label.
func (k PickupKind) Label() string {
	switch k {
	case PickupSpeedBoost:
		return "BOOST"
	case PickupMultiplierA:
		return "x2"
	case PickupMultiplierB:
		return "x3"
	case PickupShield:
		return "SHIELD"
	case PickupTimeEffect:
		return "SLOW-MO"
	default:
		return "?"
	}
}

// Glyph returns the display character for a pickup kind.
func (k PickupKind) Glyph() rune {
	switch k {
	case PickupSpeedBoost:
		return '»'
	case PickupMultiplierA:
		return '2'
	case PickupMultiplierB:
		return '3'
	case PickupShield:
		return '◊'
	case PickupTimeEffect:
		return '◷'
	default:
		return '?'
	}
}

// ParsePickupKind maps a config name to its kind.
func ParsePickupKind(name string) (PickupKind, bool) {
	for k, n := range pickupNames {
		if n == name {
			return PickupKind(k), true
		}
	}
	return 0, false
}

// Pickup is a falling powerup.
type Pickup struct {
	Kind      PickupKind
	X, Y      float64
	Radius    float64
	Pulse     float64 // Cosmetic phase, advanced by dt
	Collected bool
	Active    bool
}

// Pos returns the pickup centre.
func (p *Pickup) Pos() core.Vec2 { return core.Vec2{X: p.X, Y: p.Y} }

// Extent returns the pickup radius.
func (p *Pickup) Extent() float64 { return p.Radius }

// Alive reports whether the pickup can still be collected.
func (p *Pickup) Alive() bool { return p.Active && !p.Collected }

// Shift moves the pickup down by dy.
func (p *Pickup) Shift(dy float64) { p.Y += dy }

// Retire takes the pickup out of play.
func (p *Pickup) Retire() { p.Active = false }

// Projectile is one of the boss's fixed roster of rocks.
// It reuses the obstacle shape: a circle is an ellipse with equal axes.
type Projectile struct {
	Slot   int
	X, Y   float64
	Radius float64
	VY     float64
	Spin   float64 // Cosmetic rotation
	Wiggle float64 // Cosmetic timer while armed
	Armed  bool    // Reached the arm line
	Thrown bool
	Active bool
}

// Pos returns the projectile centre.
func (p *Projectile) Pos() core.Vec2 { return core.Vec2{X: p.X, Y: p.Y} }

// Extent returns the projectile radius.
func (p *Projectile) Extent() float64 { return p.Radius }

// Alive reports whether the projectile is in play.
func (p *Projectile) Alive() bool { return p.Active }

// Shift moves the projectile down by dy.
func (p *Projectile) Shift(dy float64) { p.Y += dy }

// Retire takes the projectile out of play.
func (p *Projectile) Retire() { p.Active = false }

// Hits reports whether a circle overlaps this projectile.
func (p *Projectile) Hits(x, y, r float64) bool {
	return core.CircleHit(x, y, r, p.X, p.Y, p.Radius)
}

// Advance moves every live entity down by speed*dt.
func Advance[T Body](items []T, dt, speed float64) {
	dy := speed * dt
	for _, it := range items {
		if it.Alive() {
			it.Shift(dy)
		}
	}
}

// RetireOffscreen marks entities that have fallen past fieldH inactive.
// Nothing is removed here.
func RetireOffscreen[T Body](items []T, fieldH float64) {
	for _, it := range items {
		if it.Alive() && it.Pos().Y-it.Extent() > fieldH {
			it.Retire()
		}
	}
}

// compact drops dead entities in place. Entities are only marked inactive
// during a frame; removal happens here, once, at the end of it.
func compact[T Body](items []T) []T {
	alive := items[:0]
	for _, it := range items {
		if it.Alive() {
			alive = append(alive, it)
		}
	}
	clear(items[len(alive):])
	return alive
}
