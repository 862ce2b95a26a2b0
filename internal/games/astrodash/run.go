package astrodash

// levelSnapshot is what a failed attempt rolls back to.
type levelSnapshot struct {
	Score         int
	RunStickers   int
	LevelStickers int
}

// RunState is the score-keeping half of a run. The game owns exactly one and
// is its only writer.
type RunState struct {
	Lives    int
	MaxLives int
	Score    int
	Level    int // 1-based level, or the tier in endless mode

	RunStickers   int // Collected this run; rolls back with the score
	LevelStickers int // Collected in the current level attempt
	StickersEver  int // Never rolls back; drives extra lives and lifetime stats

	TimeRemaining float64 // Campaign countdown
	Elapsed       float64 // Endless count-up, never rolled back
	Tier          int

	extraLifeEvery int
	snapshot       levelSnapshot
}

// NewRunState creates a run with the given lives.
func NewRunState(lives, maxLives, extraLifeEvery int) RunState {
	return RunState{
		Lives:          min(lives, maxLives),
		MaxLives:       maxLives,
		Level:          1,
		Tier:           1,
		extraLifeEvery: extraLifeEvery,
	}
}

// TakeSnapshot records the level-start values.
func (r *RunState) TakeSnapshot() {
	r.snapshot = levelSnapshot{
		Score:         r.Score,
		RunStickers:   r.RunStickers,
		LevelStickers: r.LevelStickers,
	}
}

// Snapshot returns the recorded level-start values.
func (r *RunState) Snapshot() (score, runStickers, levelStickers int) {
	return r.snapshot.Score, r.snapshot.RunStickers, r.snapshot.LevelStickers
}

// Rollback restores the level-start values. StickersEver is not touched.
func (r *RunState) Rollback() {
	r.Score = r.snapshot.Score
	r.RunStickers = r.snapshot.RunStickers
	r.LevelStickers = r.snapshot.LevelStickers
}

// StartLevel resets the per-level counters for a fresh level.
func (r *RunState) StartLevel(level int) {
	r.Level = level
	r.LevelStickers = 0
}

// AddScore adds points. Negative amounts are ignored.
func (r *RunState) AddScore(points int) {
	if points > 0 {
		r.Score += points
	}
}

// CollectSticker counts a sticker worth points and reports whether it earned
// an extra life.
func (r *RunState) CollectSticker(points int) bool {
	r.AddScore(points)
	r.RunStickers++
	r.LevelStickers++
	r.StickersEver++

	if r.extraLifeEvery <= 0 || r.StickersEver%r.extraLifeEvery != 0 {
		return false
	}
	if r.Lives >= r.MaxLives {
		return false
	}
	r.Lives++
	return true
}

// LoseLife takes a life and returns how many remain.
func (r *RunState) LoseLife() int {
	r.Lives = max(0, r.Lives-1)
	return r.Lives
}
