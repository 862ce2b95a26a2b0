package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// Memory is an in-process board. It is the fallback when the database is
// unavailable and loses everything on exit.
type Memory struct {
	mu      sync.Mutex
	entries []ScoreEntry
	stats   core.Stats
	nextID  int64
	now     func() time.Time
}

var _ Backend = (*Memory)(nil)

// NewMemory creates an empty in-memory board.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// SaveScore records a finished run.
func (m *Memory) SaveScore(sub Submission) (int64, error) {
	name, err := NormalizeName(sub.Name)
	if err != nil {
		return 0, fmt.Errorf("storage: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.entries = append(m.entries, ScoreEntry{
		ID:        m.nextID,
		Name:      name,
		Mode:      sub.Mode,
		Score:     sub.Score,
		Stickers:  sub.Stickers,
		Level:     sub.Level,
		CreatedAt: m.now(),
	})
	return m.nextID, nil
}

// TopScores returns the best scores for a mode, earlier entries first on ties.
func (m *Memory) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ScoreEntry
	for _, e := range m.entries {
		if e.Mode == mode {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// HighScore returns the best score for a mode, or 0.
func (m *Memory) HighScore(mode string) (int, error) {
	top, _ := m.TopScores(mode, 1)
	if len(top) == 0 {
		return 0, nil
	}
	return top[0].Score, nil
}

// LoadStats returns the stored counters.
func (m *Memory) LoadStats() (core.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats, nil
}

// SaveStats replaces the stored counters.
func (m *Memory) SaveStats(stats core.Stats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = stats
	return nil
}

// Close implements Backend.
func (m *Memory) Close() error {
	return nil
}
