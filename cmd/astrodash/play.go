package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-dash/internal/platform/tui"
	"github.com/vovakirdan/astro-dash/internal/registry"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Astro Dash",
	Long: `Start a run directly, skipping the mode picker.

Controls:
  Left/Right, A/D  - Steer (hold)
  Down/S           - Stop steering
  Enter/Space      - Start, skip intro, continue
  P/Esc            - Pause
  R                - Retry (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, slower scrolling
  normal - The default tuning
  hard   - Fewer lives, faster scrolling

Seed modes:
  static - The configured seed, or --seed
  daily  - Everyone gets the same layout today
  weekly - Everyone gets the same layout this ISO week

Examples:
  astrodash play
  astrodash play --endless
  astrodash play --difficulty hard --seed 42
  astrodash play --seed-mode daily
  astrodash play --config ./my-astrodash.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play endless mode instead of the campaign")
}

func runPlay(_ *cobra.Command, _ []string) {
	provider := mustLoadAssets()
	cfg := runtimeConfig()

	gameID := "astrodash"
	if flagEndless {
		gameID = "astrodash_endless"
	}
	game, err := registry.Create(gameID)
	if err != nil {
		logger.Fatal("cannot create game", "id", gameID, "err", err)
	}

	board := openBoard()
	runErr := tui.Run(game, cfg, tui.Options{
		Board:      board,
		Audio:      newAudio(provider),
		PlayerName: os.Getenv("USER"),
	})

	// Close board before potential exit
	if err := board.Close(); err != nil {
		logger.Warn("closing score board", "err", err)
	}

	if runErr != nil {
		logger.Error("game failed", "err", runErr)
		os.Exit(1)
	}
}
