package astrodash

import (
	"github.com/vovakirdan/astro-dash/internal/config"
)

// EffectManager tracks powerup effects. Speed boost and the two multipliers
// share one exclusive slot: a new one overwrites the old. The time effect
// runs in its own slot and shield charges stack up to a maximum.
// Deadlines are on the simulation clock.
type EffectManager struct {
	cfg config.EffectsConfig

	slot       PickupKind
	slotActive bool
	slotUntil  float64
	multiplier int
	movement   float64

	timeActive bool
	timeUntil  float64

	shield int
}

// NewEffectManager creates a manager with no effects.
func NewEffectManager(cfg config.EffectsConfig) *EffectManager {
	m := &EffectManager{cfg: cfg}
	m.ClearTimed()
	return m
}

// Apply activates the effect of a collected pickup at simulation time now.
func (m *EffectManager) Apply(kind PickupKind, now float64) {
	switch kind {
	case PickupSpeedBoost:
		m.setSlot(kind, now, m.cfg.SpeedBoost, 1)
	case PickupMultiplierA:
		m.setSlot(kind, now, m.cfg.MultiplierA, int(m.cfg.MultiplierA.Factor))
	case PickupMultiplierB:
		m.setSlot(kind, now, m.cfg.MultiplierB, int(m.cfg.MultiplierB.Factor))
	case PickupTimeEffect:
		m.timeActive = true
		m.timeUntil = now + m.cfg.TimeEffect.Duration
	case PickupShield:
		if m.shield < m.cfg.ShieldMax {
			m.shield++
		}
	}
}

func (m *EffectManager) setSlot(kind PickupKind, now float64, e config.TimedEffect, mult int) {
	m.slot = kind
	m.slotActive = true
	m.slotUntil = now + e.Duration
	m.multiplier = clampMultiplier(mult)

	m.movement = 1
	switch {
	case kind == PickupSpeedBoost && e.Factor > 0:
		m.movement = e.Factor
	case e.Movement > 0:
		m.movement = e.Movement
	}
}

// Expire ends effects whose deadline has passed and returns them.
// The slot's multiplier and movement reset together.
func (m *EffectManager) Expire(now float64) []PickupKind {
	var expired []PickupKind
	if m.slotActive && now >= m.slotUntil {
		expired = append(expired, m.slot)
		m.resetSlot()
	}
	if m.timeActive && now >= m.timeUntil {
		expired = append(expired, PickupTimeEffect)
		m.timeActive = false
		m.timeUntil = 0
	}
	return expired
}

// ClearTimed drops the slot and time effects. Shield charges are kept.
func (m *EffectManager) ClearTimed() {
	m.resetSlot()
	m.timeActive = false
	m.timeUntil = 0
}

func (m *EffectManager) resetSlot() {
	m.slotActive = false
	m.slotUntil = 0
	m.multiplier = 1
	m.movement = 1
}

// ConsumeShield uses one shield charge if there is one.
func (m *EffectManager) ConsumeShield() bool {
	if m.shield <= 0 {
		return false
	}
	m.shield--
	return true
}

// Multiplier returns the score multiplier (1, 2 or 3).
func (m *EffectManager) Multiplier() int { return m.multiplier }

// Movement returns the steering speed factor.
func (m *EffectManager) Movement() float64 { return m.movement }

// WorldFactor returns the factor applied to scroll and spawn timers.
func (m *EffectManager) WorldFactor() float64 {
	if m.timeActive && m.cfg.TimeEffect.Factor > 0 {
		return m.cfg.TimeEffect.Factor
	}
	return 1
}

// Shield returns the shield charges held.
func (m *EffectManager) Shield() int { return m.shield }

// SetShield sets the shield charges, clamped to [0, max].
func (m *EffectManager) SetShield(n int) {
	m.shield = max(0, min(n, m.cfg.ShieldMax))
}

// Slot returns the exclusive effect and its remaining time.
func (m *EffectManager) Slot(now float64) (PickupKind, float64, bool) {
	if !m.slotActive {
		return 0, 0, false
	}
	return m.slot, max(0, m.slotUntil-now), true
}

// TimeEffect returns the remaining time of the time effect.
func (m *EffectManager) TimeEffect(now float64) (float64, bool) {
	if !m.timeActive {
		return 0, false
	}
	return max(0, m.timeUntil-now), true
}

func clampMultiplier(v int) int {
	return max(1, min(3, v))
}
