package astrodash

import "github.com/vovakirdan/astro-dash/internal/core"

// RunResult is what a finished run reports for scores and stats.
type RunResult struct {
	Score        int
	Stickers     int // Run counter, as shown on the score board
	StickersEver int // Every sticker touched, including rolled-back attempts
	Level        int
	Won          bool
	Mode         string
}

// Result returns the run's result so far.
func (g *Game) Result() RunResult {
	return RunResult{
		Score:        g.run.Score,
		Stickers:     g.run.RunStickers,
		StickersEver: g.run.StickersEver,
		Level:        g.run.Level,
		Won:          g.state == StateWin || g.state == StateCredits,
		Mode:         g.mode.String(),
	}
}

// RecordRun folds a finished run into the persisted counters and reports
// whether it set a new personal best.
func RecordRun(stats core.Stats, r RunResult) (core.Stats, bool) {
	stats.LifetimeGames++
	stats.LifetimeStickers += r.StickersEver

	newBest := r.Score > stats.PersonalBest
	if newBest {
		stats.PersonalBest = r.Score
	}
	return stats, newBest
}
