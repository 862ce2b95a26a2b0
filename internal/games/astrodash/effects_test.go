package astrodash

import (
	"testing"

	"github.com/vovakirdan/astro-dash/internal/config"
)

func newTestEffects() *EffectManager {
	return NewEffectManager(config.DefaultConfig().Effects)
}

func TestEffectsStartNeutral(t *testing.T) {
	m := newTestEffects()
	if m.Multiplier() != 1 || m.Movement() != 1 || m.WorldFactor() != 1 || m.Shield() != 0 {
		t.Errorf("new manager not neutral: mult=%d move=%v world=%v shield=%d",
			m.Multiplier(), m.Movement(), m.WorldFactor(), m.Shield())
	}
}

func TestEffectsApply(t *testing.T) {
	tests := []struct {
		kind     PickupKind
		mult     int
		movement float64
	}{
		{PickupSpeedBoost, 1, 1.5},
		{PickupMultiplierA, 2, 1},
		{PickupMultiplierB, 3, 0.6},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			m := newTestEffects()
			m.Apply(tc.kind, 0)
			if m.Multiplier() != tc.mult {
				t.Errorf("Multiplier() = %d, expected %d", m.Multiplier(), tc.mult)
			}
			if m.Movement() != tc.movement {
				t.Errorf("Movement() = %v, expected %v", m.Movement(), tc.movement)
			}
		})
	}
}

func TestEffectsSlotIsExclusive(t *testing.T) {
	m := newTestEffects()
	m.Apply(PickupMultiplierB, 0)
	m.Apply(PickupMultiplierA, 1)

	if m.Multiplier() != 2 {
		t.Errorf("new effect should overwrite the old multiplier, got %d", m.Multiplier())
	}
	if m.Movement() != 1 {
		t.Errorf("overwriting multiplier-B should restore movement, got %v", m.Movement())
	}
	kind, left, ok := m.Slot(1)
	if !ok || kind != PickupMultiplierA || left != 10 {
		t.Errorf("Slot() = %v %v %v, expected multiplier_a with 10s", kind, left, ok)
	}
}

func TestEffectsExpireAtomically(t *testing.T) {
	m := newTestEffects()
	m.Apply(PickupMultiplierB, 2)

	if expired := m.Expire(9.99); len(expired) != 0 {
		t.Fatalf("expired early: %v", expired)
	}
	expired := m.Expire(10)
	if len(expired) != 1 || expired[0] != PickupMultiplierB {
		t.Fatalf("Expire() = %v, expected [multiplier_b]", expired)
	}
	if m.Multiplier() != 1 || m.Movement() != 1 {
		t.Errorf("multiplier and movement must reset together: mult=%d move=%v", m.Multiplier(), m.Movement())
	}
}

func TestTimeEffectRunsAlongsideSlot(t *testing.T) {
	m := newTestEffects()
	m.Apply(PickupMultiplierA, 0)
	m.Apply(PickupTimeEffect, 1)

	if m.Multiplier() != 2 || m.WorldFactor() != 0.5 {
		t.Fatalf("time effect and multiplier should both be active: mult=%d world=%v", m.Multiplier(), m.WorldFactor())
	}

	expired := m.Expire(7)
	if len(expired) != 1 || expired[0] != PickupTimeEffect {
		t.Fatalf("Expire(7) = %v, expected only the time effect", expired)
	}
	if m.Multiplier() != 2 {
		t.Error("time effect expiry should not touch the multiplier")
	}
	if m.WorldFactor() != 1 {
		t.Error("world factor should return to 1")
	}
}

func TestShieldCharges(t *testing.T) {
	m := newTestEffects()
	for i := 0; i < 5; i++ {
		m.Apply(PickupShield, 0)
	}
	if m.Shield() != 3 {
		t.Fatalf("shield should cap at 3, got %d", m.Shield())
	}

	for i := 3; i > 0; i-- {
		if !m.ConsumeShield() {
			t.Fatalf("ConsumeShield failed with %d charges", i)
		}
	}
	if m.ConsumeShield() {
		t.Error("ConsumeShield with no charges should fail")
	}
	if m.Shield() < 0 {
		t.Error("shield went negative")
	}
}

func TestClearTimedKeepsShield(t *testing.T) {
	m := newTestEffects()
	m.Apply(PickupShield, 0)
	m.Apply(PickupSpeedBoost, 0)
	m.Apply(PickupTimeEffect, 0)

	m.ClearTimed()
	if m.Shield() != 1 {
		t.Errorf("shield should persist, got %d", m.Shield())
	}
	if _, _, ok := m.Slot(0); ok {
		t.Error("slot effect should be cleared")
	}
	if m.WorldFactor() != 1 || m.Movement() != 1 {
		t.Error("timed effects should be cleared")
	}
}

func TestMultiplierAlwaysInRange(t *testing.T) {
	cfg := config.DefaultConfig().Effects
	cfg.MultiplierB.Factor = 7
	m := NewEffectManager(cfg)

	for _, k := range []PickupKind{PickupMultiplierB, PickupMultiplierA, PickupSpeedBoost, PickupTimeEffect} {
		m.Apply(k, 0)
		if got := m.Multiplier(); got < 1 || got > 3 {
			t.Fatalf("after %v multiplier = %d, expected 1..3", k, got)
		}
	}
}
