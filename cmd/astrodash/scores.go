package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/astro-dash/internal/games/astrodash"
	"github.com/vovakirdan/astro-dash/internal/platform/tui"
	"github.com/vovakirdan/astro-dash/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTable bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|endless]",
	Short: "Show high scores and lifetime stats",
	Long: `Display the best scores for a mode, or for both modes when none is given,
followed by the lifetime counters.

Examples:
  astrodash scores
  astrodash scores endless --limit 20
  astrodash scores --table
  astrodash scores campaign --clear`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	Run:       runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show per mode")
	scoresCmd.Flags().BoolVar(&flagScoresTable, "table", false, "Open the interactive score table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score of the given mode")
}

func parseBoardMode(s string) (astrodash.GameMode, error) {
	switch s {
	case "campaign":
		return astrodash.ModeCampaign, nil
	case "endless":
		return astrodash.ModeEndless, nil
	}
	return astrodash.ModeCampaign, fmt.Errorf("unknown mode %q (want campaign or endless)", s)
}

func runScores(_ *cobra.Command, args []string) {
	modes := tui.BoardModes
	if len(args) == 1 {
		mode, err := parseBoardMode(args[0])
		if err != nil {
			logger.Fatal("bad argument", "err", err)
		}
		modes = []astrodash.GameMode{mode}
	}

	if flagScoresTable {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		board := openBoard()
		defer board.Close()
		if _, err := tui.RunScoreboard(board, modes[0], width, height); err != nil {
			logger.Error("score table failed", "err", err)
		}
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open scores database", "path", flagDBPath, "err", err)
	}
	defer store.Close()

	if flagScoresClear {
		if len(args) == 0 {
			logger.Error("--clear needs a mode")
			return
		}
		if err := store.ClearScores(modes[0].String()); err != nil {
			logger.Error("cannot clear scores", "err", err)
			return
		}
		fmt.Printf("Cleared %s scores.\n", modes[0])
		return
	}

	for _, mode := range modes {
		printModeScores(store, mode)
	}

	stats, err := store.LoadStats()
	if err != nil {
		logger.Error("cannot load stats", "err", err)
		return
	}
	fmt.Println("Lifetime")
	fmt.Printf("  Personal best:  %d\n", stats.PersonalBest)
	fmt.Printf("  Games played:   %d\n", stats.LifetimeGames)
	fmt.Printf("  Stickers:       %d\n", stats.LifetimeStickers)
}

func printModeScores(store *storage.Store, mode astrodash.GameMode) {
	scores, err := store.TopScores(mode.String(), flagScoresLimit)
	if err != nil {
		logger.Error("cannot retrieve scores", "mode", mode, "err", err)
		return
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("  No scores recorded yet.")
		fmt.Println()
		return
	}

	fmt.Printf("  %-4s  %-*s  %-8s  %-4s  %-3s  %s\n", "Rank", storage.MaxNameLen, "Name", "Score", "Stk", "Lvl", "Date")
	fmt.Printf("  %-4s  %-*s  %-8s  %-4s  %-3s  %s\n", "----", storage.MaxNameLen, "----", "-----", "---", "---", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-*s  %-8d  %-4d  %-3d  %s\n",
			i+1, storage.MaxNameLen, e.Name, e.Score, e.Stickers, e.Level, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if ms, err := store.GetModeStats(mode.String()); err == nil {
		fmt.Println()
		fmt.Printf("  Runs: %d  Best: %d  Average: %.0f  Furthest level: %d\n",
			ms.GamesCount, ms.HighScore, ms.AvgScore, ms.BestLevel)
	}
	fmt.Println()
}
