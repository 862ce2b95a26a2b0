package config

import (
	_ "embed"
)

//go:embed defaults/astrodash.yaml
var defaultAstroDashYAML []byte

// DefaultTaunts are the boss lines shown while it blinks during arming.
var DefaultTaunts = []string{
	"You call that flying?",
	"My rocks have rocks!",
	"Catch!",
	"Still here? Not for long.",
	"This orbit is MINE.",
	"Dodge THIS!",
}

// DefaultConfig returns the built-in configuration. The embedded YAML carries
// the same values; this is the last fallback if that fails to parse.
func DefaultConfig() GameConfig {
	return GameConfig{
		Field:  FieldConfig{Width: 360, Height: 640},
		Player: PlayerConfig{Y: 560, Radius: 16, Speed: 260},
		Seed:   SeedConfig{Static: 34125, Tag: "AstroDash"},
		Run: RunConfig{
			StartLives:       3,
			MaxLives:         10,
			ExtraLifeEvery:   25,
			LevelDuration:    30,
			NameDisplay:      1.5,
			CountdownStep:    0.7,
			HitStop:          0.25,
			Shake:            0.4,
			Invulnerability:  1.5,
			OutOfTimeDisplay: 1.5,
			LevelBonus:       500,
		},
		Levels: []LevelConfig{
			{
				Name:       "Low Orbit",
				Difficulty: Difficulty{ScrollSpeed: 180, SpawnMin: 0.9, SpawnMax: 1.4, DoubleSpawnChance: 0.10, BigObstacleChance: 0.10},
				Pickups:    []string{"speed_boost", "multiplier_a"},
			},
			{
				Name:       "Asteroid Belt",
				Difficulty: Difficulty{ScrollSpeed: 230, SpawnMin: 0.7, SpawnMax: 1.15, DoubleSpawnChance: 0.20, BigObstacleChance: 0.18},
				Pickups:    []string{"multiplier_b", "time_effect"},
			},
			{
				Name:       "Deep Field",
				Difficulty: Difficulty{ScrollSpeed: 285, SpawnMin: 0.55, SpawnMax: 0.95, DoubleSpawnChance: 0.30, BigObstacleChance: 0.25},
				Pickups:    []string{"time_effect", "multiplier_a"},
			},
		},
		Endless: EndlessConfig{
			TierDuration:  15,
			Step:          Difficulty{ScrollSpeed: 18, SpawnMin: -0.04, SpawnMax: -0.05, DoubleSpawnChance: 0.03, BigObstacleChance: 0.02},
			Limit:         Difficulty{ScrollSpeed: 420, SpawnMin: 0.35, SpawnMax: 0.60, DoubleSpawnChance: 0.45, BigObstacleChance: 0.35},
			StickerChance: 0.35,
		},
		Obstacles: ObstacleConfig{
			RadiusX:         22,
			RadiusY:         17,
			BigScale:        1.6,
			Sprites:         3,
			Margin:          24,
			DoubleOffsetMin: 70,
			DoubleOffsetMax: 130,
		},
		Stickers: StickerConfig{
			Chance:      0.45,
			ThickChance: 0.08,
			EdgeBand:    60,
			Radius:      12,
			Points:      10,
			ThickPoints: 50,
		},
		Pickups: PickupConfig{Radius: 14, EarliestAt: 4, LatestGap: 6},
		Effects: EffectsConfig{
			SpeedBoost:  TimedEffect{Factor: 1.5, Duration: 8},
			MultiplierA: TimedEffect{Factor: 2, Duration: 10},
			MultiplierB: TimedEffect{Factor: 3, Movement: 0.6, Duration: 8},
			TimeEffect:  TimedEffect{Factor: 0.5, Duration: 6},
			ShieldMax:   3,
		},
		Boss: BossConfig{
			Name:             "Rockmonger",
			Waves:            10,
			Radius:           40,
			EntryY:           -80,
			EntrySpeed:       90,
			RestY:            90,
			ArmLineY:         200,
			ArmSpeed:         160,
			ArmHold:          0.6,
			ProjectileRadius: 14,
			ThrowSpeed:       380,
			ThrowSpeedStep:   0.08,
			BlinkInterval:    1.1,
			WaveBonus:        250,
			WavePause:        1.0,
			RainGap:          0.5,
			CheckerGap:       0.9,
			FallAccel:        400,
			Spin:             6,
			VictoryDelay:     2.5,
			Taunts:           append([]string(nil), DefaultTaunts...),
		},
	}
}
