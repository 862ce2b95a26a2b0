// astrodash is a terminal port of Astro Dash: steer a ship through falling
// asteroids, collect stickers and outlast the boss.
//
// Usage:
//
//	astrodash                  - Start the mode picker menu
//	astrodash play             - Play the campaign directly (--endless for endless)
//	astrodash list             - List available modes
//	astrodash scores [mode]    - Show high scores and lifetime stats
//	astrodash seed             - Print the seeds a run will use
//	astrodash serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Base seed for static seed mode (0 = configured seed)
//	--seed-mode <mode>    - static, daily or weekly
//	--db <path>           - Set database path (default: ~/.astrodash/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--assets <path>       - Custom asset manifest YAML
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/astro-dash/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagSeedMode   string
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagAssets     string
	flagVerbose    bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "astrodash",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "astrodash",
	Short: "Astro Dash - dodge asteroids in your terminal",
	Long: `Astro Dash is a terminal arcade game. Steer left and right through
falling asteroids, grab stickers and powerups across three timed sectors,
then survive the ten waves of the boss. Endless mode keeps going until the
last life is gone.

Available commands:
  play     - Play a mode directly
  list     - Show all available modes
  scores   - View high scores and lifetime stats
  seed     - Show or verify the seeds of a run
  serve    - Start SSH server for remote play

Run without a command to open the mode picker.

Examples:
  astrodash
  astrodash play --difficulty hard
  astrodash play --endless --seed-mode daily
  astrodash seed --verify
  astrodash serve --ssh :2222`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
		return applyGameFlags()
	},
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Base seed for static seed mode (0 = configured seed)")
	rootCmd.PersistentFlags().StringVar(&flagSeedMode, "seed-mode", "static", "Seed mode: static, daily, weekly")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.astrodash/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Path to custom asset manifest YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output, including sound cues")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(serveCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	provider := mustLoadAssets()
	cfg := runtimeConfig()

	board := openBoard()
	defer board.Close()

	err := tui.RunSession(cfg, tui.Options{
		Board:      board,
		Audio:      newAudio(provider),
		PlayerName: os.Getenv("USER"),
	})
	if err != nil {
		logger.Error("session failed", "err", err)
		os.Exit(1)
	}
}
