package astrodash

import (
	"github.com/vovakirdan/astro-dash/internal/config"
	"github.com/vovakirdan/astro-dash/internal/rng"
)

// plannedPickup is one pickup committed at level start.
type plannedPickup struct {
	Kind    PickupKind
	Trigger float64 // Spawn when time remaining drops to this value
	X       float64
	Spawned bool
}

// PickupPlan holds the pickups a level commits to. Trigger times and
// positions are drawn once when the plan is made and never re-rolled.
type PickupPlan struct {
	entries []plannedPickup
	radius  float64
}

// PlanPickups commits the level's two pickup kinds plus a shield over a
// window of the given duration. Each entry draws its time, then its x.
func PlanPickups(gen *rng.Generator, kinds []PickupKind, duration float64, cfg config.GameConfig) *PickupPlan {
	all := make([]PickupKind, 0, len(kinds)+1)
	all = append(all, kinds...)
	all = append(all, PickupShield)

	lo := cfg.Pickups.EarliestAt
	hi := duration - cfg.Pickups.LatestGap
	if hi < lo {
		hi = lo
	}
	r := cfg.Pickups.Radius
	margin := r + cfg.Obstacles.Margin

	plan := &PickupPlan{radius: r, entries: make([]plannedPickup, 0, len(all))}
	for _, k := range all {
		at := gen.Range(lo, hi)
		x := gen.Range(margin, cfg.Field.Width-margin)
		plan.entries = append(plan.entries, plannedPickup{
			Kind:    k,
			Trigger: duration - at,
			X:       x,
		})
	}
	return plan
}

// Due returns the pickups whose trigger has been reached and marks them spawned.
func (p *PickupPlan) Due(remaining float64) []*Pickup {
	var out []*Pickup
	for i := range p.entries {
		e := &p.entries[i]
		if e.Spawned || remaining > e.Trigger {
			continue
		}
		e.Spawned = true
		out = append(out, &Pickup{
			Kind:   e.Kind,
			X:      e.X,
			Y:      -p.radius,
			Radius: p.radius,
			Active: true,
		})
	}
	return out
}

// SkipPast marks entries whose trigger is already behind as spawned, for a
// plan rebuilt partway through its window.
func (p *PickupPlan) SkipPast(remaining float64) {
	for i := range p.entries {
		if remaining < p.entries[i].Trigger {
			p.entries[i].Spawned = true
		}
	}
}

// Kinds returns the planned kinds in plan order.
func (p *PickupPlan) Kinds() []PickupKind {
	out := make([]PickupKind, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Kind
	}
	return out
}

// Triggers returns the planned trigger values in plan order.
func (p *PickupPlan) Triggers() []float64 {
	out := make([]float64, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Trigger
	}
	return out
}

// levelPickupKinds parses a level row's pickup names, skipping unknown ones.
func levelPickupKinds(lvl config.LevelConfig) []PickupKind {
	kinds := make([]PickupKind, 0, len(lvl.Pickups))
	for _, name := range lvl.Pickups {
		if k, ok := ParsePickupKind(name); ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
