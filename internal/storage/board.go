package storage

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// ErrInvalidName is returned for empty, overlong or unprintable names.
var ErrInvalidName = errors.New("invalid player name")

// MaxNameLen is the longest name the board accepts, in runes.
const MaxNameLen = 12

// Submission is one finished run offered to the score board.
type Submission struct {
	Name     string
	Mode     string // "campaign" or "endless"
	Score    int
	Stickers int
	Level    int
}

// SubmitResult tells the UI whether a submission was accepted.
type SubmitResult struct {
	Success bool
	Message string
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Name      string
	Mode      string
	Score     int
	Stickers  int
	Level     int
	CreatedAt time.Time
}

// ModeStats contains aggregated statistics for a game mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestLevel  int
	LastPlayed time.Time
}

// Backend is a concrete persistence medium.
type Backend interface {
	SaveScore(sub Submission) (int64, error)
	TopScores(mode string, limit int) ([]ScoreEntry, error)
	HighScore(mode string) (int, error)
	LoadStats() (core.Stats, error)
	SaveStats(stats core.Stats) error
	Close() error
}

// NormalizeName trims a name and checks it is usable on the board.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLen {
		return "", ErrInvalidName
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return "", ErrInvalidName
		}
	}
	return name, nil
}

// parseTime handles both time.Time and the SQLite text format.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
