// Package config provides YAML-based game configuration loading and
// difficulty resolution for Astro Dash.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned (wrapped) when a loaded config cannot drive a run.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains all tunables for a run.
type GameConfig struct {
	Field     FieldConfig    `yaml:"field"`
	Player    PlayerConfig   `yaml:"player"`
	Seed      SeedConfig     `yaml:"seed"`
	Run       RunConfig      `yaml:"run"`
	Levels    []LevelConfig  `yaml:"levels"`
	Endless   EndlessConfig  `yaml:"endless"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Stickers  StickerConfig  `yaml:"stickers"`
	Pickups   PickupConfig   `yaml:"pickups"`
	Effects   EffectsConfig  `yaml:"effects"`
	Boss      BossConfig     `yaml:"boss"`
}

// FieldConfig is the logical play field. Y grows downward.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the player's hitbox and steering.
type PlayerConfig struct {
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"` // units per second
}

// SeedConfig defines the static seed and the purpose-tag prefix.
type SeedConfig struct {
	Static uint32 `yaml:"static"`
	Tag    string `yaml:"tag"`
}

// RunConfig defines lives, timers and scoring for a run. Durations are seconds.
type RunConfig struct {
	StartLives       int     `yaml:"start_lives"`
	MaxLives         int     `yaml:"max_lives"`
	ExtraLifeEvery   int     `yaml:"extra_life_every"` // stickers per extra life, 0 disables
	LevelDuration    float64 `yaml:"level_duration"`
	NameDisplay      float64 `yaml:"name_display"`
	CountdownStep    float64 `yaml:"countdown_step"`
	HitStop          float64 `yaml:"hit_stop"`
	Shake            float64 `yaml:"shake"`
	Invulnerability  float64 `yaml:"invulnerability"`
	OutOfTimeDisplay float64 `yaml:"out_of_time_display"`
	LevelBonus       int     `yaml:"level_bonus"` // multiplied by the level number
}

// Difficulty is the bundle the spawner reads for a level or tier.
type Difficulty struct {
	ScrollSpeed       float64 `yaml:"scroll_speed"`
	SpawnMin          float64 `yaml:"spawn_min"`
	SpawnMax          float64 `yaml:"spawn_max"`
	DoubleSpawnChance float64 `yaml:"double_spawn_chance"`
	BigObstacleChance float64 `yaml:"big_obstacle_chance"`
}

// LevelConfig is one row of the campaign table.
type LevelConfig struct {
	Name       string     `yaml:"name"`
	Difficulty Difficulty `yaml:",inline"`
	Pickups    []string   `yaml:"pickups"` // exactly two kinds; a shield is always added
}

// EndlessConfig defines the survival mode tier formula.
// Each tier moves the level-1 bundle by Step, clamped at Limit.
type EndlessConfig struct {
	TierDuration  float64    `yaml:"tier_duration"`
	Step          Difficulty `yaml:"step"`
	Limit         Difficulty `yaml:"limit"`
	StickerChance float64    `yaml:"sticker_chance"`
}

// ObstacleConfig defines asteroid shapes.
type ObstacleConfig struct {
	RadiusX         float64 `yaml:"radius_x"`
	RadiusY         float64 `yaml:"radius_y"`
	BigScale        float64 `yaml:"big_scale"`
	Sprites         int     `yaml:"sprites"`
	Margin          float64 `yaml:"margin"` // keep spawn x this far from the field edges
	DoubleOffsetMin float64 `yaml:"double_offset_min"`
	DoubleOffsetMax float64 `yaml:"double_offset_max"`
}

// StickerConfig defines collectibles.
type StickerConfig struct {
	Chance      float64 `yaml:"chance"`
	ThickChance float64 `yaml:"thick_chance"`
	EdgeBand    float64 `yaml:"edge_band"`
	Radius      float64 `yaml:"radius"`
	Points      int     `yaml:"points"`
	ThickPoints int     `yaml:"thick_points"`
}

// PickupConfig defines powerup pickup placement.
type PickupConfig struct {
	Radius     float64 `yaml:"radius"`
	EarliestAt float64 `yaml:"earliest_at"` // seconds into the level
	LatestGap  float64 `yaml:"latest_gap"`  // seconds before the level ends
}

// EffectsConfig defines each powerup's effect.
type EffectsConfig struct {
	SpeedBoost  TimedEffect `yaml:"speed_boost"`
	MultiplierA TimedEffect `yaml:"multiplier_a"`
	MultiplierB TimedEffect `yaml:"multiplier_b"`
	TimeEffect  TimedEffect `yaml:"time_effect"`
	ShieldMax   int         `yaml:"shield_max"`
}

// TimedEffect is a factor applied for a duration.
type TimedEffect struct {
	Factor   float64 `yaml:"factor"`
	Movement float64 `yaml:"movement"` // movement factor while active, 0 means unchanged
	Duration float64 `yaml:"duration"`
}

// BossConfig defines the final encounter.
type BossConfig struct {
	Name             string   `yaml:"name"`
	Waves            int      `yaml:"waves"`
	Radius           float64  `yaml:"radius"`
	EntryY           float64  `yaml:"entry_y"`
	EntrySpeed       float64  `yaml:"entry_speed"`
	RestY            float64  `yaml:"rest_y"`
	ArmLineY         float64  `yaml:"arm_line_y"`
	ArmSpeed         float64  `yaml:"arm_speed"`
	ArmHold          float64  `yaml:"arm_hold"`
	ProjectileRadius float64  `yaml:"projectile_radius"`
	ThrowSpeed       float64  `yaml:"throw_speed"`
	ThrowSpeedStep   float64  `yaml:"throw_speed_step"` // fraction added per wave
	BlinkInterval    float64  `yaml:"blink_interval"`
	WaveBonus        int      `yaml:"wave_bonus"`
	WavePause        float64  `yaml:"wave_pause"`
	RainGap          float64  `yaml:"rain_gap"`
	CheckerGap       float64  `yaml:"checker_gap"`
	FallAccel        float64  `yaml:"fall_accel"`
	Spin             float64  `yaml:"spin"`
	VictoryDelay     float64  `yaml:"victory_delay"`
	Taunts           []string `yaml:"taunts"`
}

// PickupKinds lists the pickup names accepted in level tables.
var PickupKinds = []string{"speed_boost", "multiplier_a", "multiplier_b", "shield", "time_effect"}

// IsPickupKind reports whether name is a known pickup kind.
func IsPickupKind(name string) bool {
	for _, k := range PickupKinds {
		if k == name {
			return true
		}
	}
	return false
}

// Validate checks that the config can drive a run.
func (c GameConfig) Validate() error {
	var problems []string

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		problems = append(problems, "field dimensions must be positive")
	}
	if len(c.Levels) == 0 {
		problems = append(problems, "at least one level is required")
	}
	for i, lvl := range c.Levels {
		d := lvl.Difficulty
		if d.SpawnMin <= 0 || d.SpawnMin > d.SpawnMax {
			problems = append(problems, fmt.Sprintf("level %d: need 0 < spawn_min <= spawn_max", i+1))
		}
		if d.ScrollSpeed <= 0 {
			problems = append(problems, fmt.Sprintf("level %d: scroll_speed must be positive", i+1))
		}
		for _, p := range lvl.Pickups {
			if !IsPickupKind(p) {
				problems = append(problems, fmt.Sprintf("level %d: unknown pickup %q", i+1, p))
			}
		}
	}
	if c.Run.LevelDuration <= 0 {
		problems = append(problems, "run.level_duration must be positive")
	}
	if c.Run.StartLives <= 0 || c.Run.StartLives > c.Run.MaxLives {
		problems = append(problems, "run: need 0 < start_lives <= max_lives")
	}
	if c.Endless.TierDuration <= 0 {
		problems = append(problems, "endless.tier_duration must be positive")
	}
	if c.Boss.Waves <= 0 {
		problems = append(problems, "boss.waves must be positive")
	}
	if c.Effects.ShieldMax < 0 {
		problems = append(problems, "effects.shield_max must not be negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset parses a --difficulty value. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(strings.ToLower(s)) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// scrollScaleForPreset returns the factor applied to scroll speeds.
func scrollScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.85
	case DifficultyHard:
		return 1.15
	default:
		return 1.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	scale := scrollScaleForPreset(preset)
	for i := range cfg.Levels {
		cfg.Levels[i].Difficulty.ScrollSpeed *= scale
	}
	cfg.Endless.Limit.ScrollSpeed *= scale

	switch preset {
	case DifficultyEasy:
		cfg.Run.StartLives = 5
	case DifficultyHard:
		cfg.Run.StartLives = 2
	}
	if cfg.Run.StartLives > cfg.Run.MaxLives {
		cfg.Run.StartLives = cfg.Run.MaxLives
	}
}
