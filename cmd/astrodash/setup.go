package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/vovakirdan/astro-dash/internal/assets"
	"github.com/vovakirdan/astro-dash/internal/audio"
	"github.com/vovakirdan/astro-dash/internal/config"
	"github.com/vovakirdan/astro-dash/internal/core"
	"github.com/vovakirdan/astro-dash/internal/games/astrodash"
	"github.com/vovakirdan/astro-dash/internal/rng"
	"github.com/vovakirdan/astro-dash/internal/storage"
)

// applyGameFlags validates the flags every command shares and hands the
// config path and difficulty to the game package.
func applyGameFlags() error {
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := rng.ParseMode(flagSeedMode); err != nil {
		return err
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	astrodash.SetConfigPath(flagConfig)
	astrodash.SetDifficultyPreset(flagDifficulty)
	return nil
}

// loadGameConfig loads the game config the same way the game does.
func loadGameConfig() (config.GameConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// resolveSeeds applies --seed and --seed-mode over the configured seed.
func resolveSeeds(cfg config.GameConfig, now time.Time) rng.Seeds {
	mode, err := rng.ParseMode(flagSeedMode)
	if err != nil {
		mode = rng.ModeStatic
	}
	base := cfg.Seed.Static
	if flagSeed != 0 {
		base = uint32(flagSeed) //#nosec G115 -- seeds are 32-bit
	}
	return rng.NewSeeds(mode, base, cfg.Seed.Tag, now)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS

	gameCfg, err := loadGameConfig()
	if err != nil {
		logger.Warn("using default game config", "err", err)
		gameCfg = config.DefaultConfig()
	}
	seeds := resolveSeeds(gameCfg, time.Now())
	cfg.Seed = int64(seeds.Base)
	cfg.SeedTag = seeds.Tag
	logger.Debug("seeds resolved", "mode", seeds.Mode, "base", seeds.Base, "tag", seeds.Tag)
	return cfg
}

// mustLoadAssets loads the manifest and exits if a required asset is missing.
func mustLoadAssets() *assets.Provider {
	provider, err := assets.Load(flagAssets)
	if err == nil {
		err = provider.Verify()
	}
	if err != nil {
		logger.Fatal("cannot start", "assets", flagAssets, "err", err)
	}

	sprites, sounds := provider.Counts()
	logger.Debug("assets loaded", "source", provider.Source(), "sprites", sprites, "sounds", sounds)
	astrodash.SetSprites(provider)
	return provider
}

// newAudio rings the terminal bell for the cues the manifest has sounds for.
func newAudio(provider *assets.Provider) audio.Player {
	var bells []string
	for _, key := range audio.DefaultBellKeys {
		if provider.HasSound(key) {
			bells = append(bells, key)
		}
	}
	sinks := audio.MultiSink{audio.NewLogSink(logger)}
	if len(bells) > 0 {
		sinks = append(sinks, audio.NewBellSink(os.Stderr, bells...))
	}
	return audio.NewThrottled(sinks)
}

// openBoard opens the score board, falling back to memory.
func openBoard() *storage.Resilient {
	return storage.OpenResilient(flagDBPath, logger)
}
