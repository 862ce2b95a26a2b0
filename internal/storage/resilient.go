package storage

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// Messages shown to the player after a submission.
const (
	MsgSaved       = "Score saved"
	MsgSavedLocal  = "Saved for this session (board offline)"
	MsgSaveFailed  = "Failed to save, try again"
	MsgInvalidName = "Name must be 1-12 printable characters"
)

// Resilient is the board the game talks to. It reads and writes through a
// primary backend and, on the first failure, switches to an in-memory
// fallback for the rest of the process. Nothing it does fails a run.
type Resilient struct {
	mu       sync.Mutex
	primary  Backend
	fallback *Memory
	degraded bool
	retry    *Submission // Failed submission already kept in memory
	logger   *log.Logger
}

// NewResilient wraps primary. A nil primary starts degraded.
func NewResilient(primary Backend, logger *log.Logger) *Resilient {
	if logger == nil {
		logger = log.Default()
	}
	return &Resilient{
		primary:  primary,
		fallback: NewMemory(),
		degraded: primary == nil,
		logger:   logger,
	}
}

// OpenResilient opens the SQLite board at path, degrading to memory if it
// cannot be opened.
func OpenResilient(path string, logger *log.Logger) *Resilient {
	store, err := Open(path)
	if err != nil {
		r := NewResilient(nil, logger)
		r.logger.Warn("score board unavailable, using memory", "path", path, "err", err)
		return r
	}
	return NewResilient(store, logger)
}

// Degraded reports whether the fallback is in use.
func (r *Resilient) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

// backend returns the backend to use and whether it is the primary.
func (r *Resilient) backend() (Backend, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.degraded {
		return r.fallback, false
	}
	return r.primary, true
}

func (r *Resilient) fail(op string, err error) {
	r.mu.Lock()
	first := !r.degraded
	r.degraded = true
	r.mu.Unlock()

	if first {
		r.logger.Warn("score board failed, switching to memory", "op", op, "err", err)
	}
}

// SubmitScore records a finished run and reports whether it was accepted.
// The submission that hits a storage failure is kept in memory and the player
// is asked to retry; retrying it is accepted without a second copy, and later
// ones go straight to memory.
func (r *Resilient) SubmitScore(sub Submission) SubmitResult {
	name, err := NormalizeName(sub.Name)
	if err != nil {
		return SubmitResult{Success: false, Message: MsgInvalidName}
	}
	sub.Name = name

	r.mu.Lock()
	retried := r.retry != nil && *r.retry == sub
	if retried {
		r.retry = nil
	}
	r.mu.Unlock()
	if retried {
		return SubmitResult{Success: true, Message: MsgSavedLocal}
	}

	b, primary := r.backend()
	if _, err := b.SaveScore(sub); err != nil {
		if errors.Is(err, ErrInvalidName) {
			return SubmitResult{Success: false, Message: MsgInvalidName}
		}
		if primary {
			r.fail("submit", err)
			//nolint:errcheck // Memory never fails a valid submission
			r.fallback.SaveScore(sub)
			r.mu.Lock()
			r.retry = &sub
			r.mu.Unlock()
		}
		return SubmitResult{Success: false, Message: MsgSaveFailed}
	}
	if !primary {
		return SubmitResult{Success: true, Message: MsgSavedLocal}
	}
	return SubmitResult{Success: true, Message: MsgSaved}
}

// TopScores returns the best scores for a mode. Failures fall back to memory.
func (r *Resilient) TopScores(mode string, limit int) []ScoreEntry {
	b, primary := r.backend()
	entries, err := b.TopScores(mode, limit)
	if err != nil && primary {
		r.fail("top_scores", err)
		entries, _ = r.fallback.TopScores(mode, limit)
	}
	return entries
}

// HighScore returns the best score for a mode, or 0 on failure.
func (r *Resilient) HighScore(mode string) int {
	b, primary := r.backend()
	score, err := b.HighScore(mode)
	if err != nil && primary {
		r.fail("high_score", err)
		score, _ = r.fallback.HighScore(mode)
	}
	return score
}

// LoadStats returns the persisted counters, or the in-memory ones on failure.
func (r *Resilient) LoadStats() core.Stats {
	b, primary := r.backend()
	stats, err := b.LoadStats()
	if err != nil && primary {
		r.fail("load_stats", err)
		stats, _ = r.fallback.LoadStats()
	}
	return stats
}

// SaveStats writes the counters. A failure keeps them in memory.
func (r *Resilient) SaveStats(stats core.Stats) {
	b, primary := r.backend()
	if err := b.SaveStats(stats); err != nil && primary {
		r.fail("save_stats", err)
		//nolint:errcheck // Memory never fails
		r.fallback.SaveStats(stats)
	}
}

// Close closes the primary backend.
func (r *Resilient) Close() error {
	if r.primary == nil {
		return nil
	}
	return r.primary.Close()
}
