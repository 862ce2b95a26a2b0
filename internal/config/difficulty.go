package config

import "math"

// DifficultyResolver maps a campaign level or an endless tier to the bundle
// the spawner reads. It is a pure lookup; nothing is interpolated mid-tier.
type DifficultyResolver struct {
	levels  []LevelConfig
	endless EndlessConfig
}

// NewDifficultyResolver creates a resolver over the config's tables.
func NewDifficultyResolver(cfg GameConfig) *DifficultyResolver {
	return &DifficultyResolver{
		levels:  cfg.Levels,
		endless: cfg.Endless,
	}
}

// Level returns the bundle for a 1-based campaign level. Levels past the
// table reuse its last row.
func (d *DifficultyResolver) Level(level int) Difficulty {
	if len(d.levels) == 0 {
		return Difficulty{}
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(d.levels) {
		idx = len(d.levels) - 1
	}
	return d.levels[idx].Difficulty
}

// Tier returns the bundle for a 1-based endless tier. Each parameter starts
// at the level-1 value and moves by one step per tier until it reaches its
// limit, where it stays.
func (d *DifficultyResolver) Tier(tier int) Difficulty {
	if tier < 1 {
		tier = 1
	}
	base := d.Level(1)
	n := float64(tier - 1)
	step := d.endless.Step
	limit := d.endless.Limit

	out := Difficulty{
		ScrollSpeed:       approach(base.ScrollSpeed, step.ScrollSpeed, limit.ScrollSpeed, n),
		SpawnMin:          approach(base.SpawnMin, step.SpawnMin, limit.SpawnMin, n),
		SpawnMax:          approach(base.SpawnMax, step.SpawnMax, limit.SpawnMax, n),
		DoubleSpawnChance: approach(base.DoubleSpawnChance, step.DoubleSpawnChance, limit.DoubleSpawnChance, n),
		BigObstacleChance: approach(base.BigObstacleChance, step.BigObstacleChance, limit.BigObstacleChance, n),
	}
	if out.SpawnMax < out.SpawnMin {
		out.SpawnMax = out.SpawnMin
	}
	return out
}

// TierAt returns the 1-based tier for a number of elapsed seconds.
func (d *DifficultyResolver) TierAt(elapsed float64) int {
	if d.endless.TierDuration <= 0 || elapsed < 0 {
		return 1
	}
	return 1 + int(math.Floor(elapsed/d.endless.TierDuration))
}

// approach moves start by n steps and clamps at limit in the step's direction.
// A zero limit means uncapped.
func approach(start, step, limit, n float64) float64 {
	v := start + step*n
	if limit == 0 {
		return v
	}
	if step >= 0 {
		return math.Min(v, math.Max(limit, start))
	}
	return math.Max(v, math.Min(limit, start))
}
