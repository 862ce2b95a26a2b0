package storage

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-dash/internal/core"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"  ace  ", "ace", false},
		{"Ünïcødé", "Ünïcødé", false},
		{"", "", true},
		{"   ", "", true},
		{"abcdefghijklm", "", true},
		{"tab\there", "", true},
	}

	for _, tc := range tests {
		got, err := NormalizeName(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func newTestResilient(t *testing.T) (*Resilient, *Store, *bytes.Buffer) {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	r := NewResilient(store, log.New(&buf))
	t.Cleanup(func() { r.Close() })
	return r, store, &buf
}

func TestResilientSubmit(t *testing.T) {
	r, _, _ := newTestResilient(t)

	res := r.SubmitScore(Submission{Name: " pilot ", Mode: "campaign", Score: 640, Stickers: 12, Level: 3})
	if !res.Success || res.Message != MsgSaved {
		t.Fatalf("SubmitScore() = %+v", res)
	}
	top := r.TopScores("campaign", 5)
	if len(top) != 1 || top[0].Name != "pilot" {
		t.Errorf("TopScores() = %+v", top)
	}
	if r.HighScore("campaign") != 640 {
		t.Error("HighScore() should see the submission")
	}
}

func TestResilientInvalidName(t *testing.T) {
	r, _, _ := newTestResilient(t)

	res := r.SubmitScore(Submission{Name: "", Mode: "campaign", Score: 1})
	if res.Success || res.Message != MsgInvalidName {
		t.Errorf("SubmitScore() = %+v, expected an invalid name result", res)
	}
	if r.Degraded() {
		t.Error("a bad name is not a storage failure")
	}
}

func TestResilientFallsBackOnFailure(t *testing.T) {
	r, store, logs := newTestResilient(t)
	store.Close() // every query now fails

	res := r.SubmitScore(Submission{Name: "ace", Mode: "campaign", Score: 300})
	if res.Success || res.Message != MsgSaveFailed {
		t.Fatalf("SubmitScore() = %+v, expected a retry message", res)
	}
	if !r.Degraded() {
		t.Fatal("board should be degraded after a failure")
	}
	if !strings.Contains(logs.String(), "switching to memory") {
		t.Errorf("expected a warning, got %q", logs.String())
	}

	// The failed entry is kept locally
	top := r.TopScores("campaign", 5)
	if len(top) != 1 || top[0].Score != 300 {
		t.Errorf("fallback should hold the entry: %+v", top)
	}

	res = r.SubmitScore(Submission{Name: "bob", Mode: "campaign", Score: 100})
	if !res.Success || res.Message != MsgSavedLocal {
		t.Errorf("submit after degrading = %+v", res)
	}
}

func TestResilientRetryKeepsOneCopy(t *testing.T) {
	r, store, _ := newTestResilient(t)
	store.Close()

	sub := Submission{Name: "ace", Mode: "endless", Score: 420, Stickers: 9, Level: 2}
	if res := r.SubmitScore(sub); res.Success {
		t.Fatalf("first submit should fail: %+v", res)
	}

	res := r.SubmitScore(sub)
	if !res.Success || res.Message != MsgSavedLocal {
		t.Fatalf("retry = %+v, expected %q", res, MsgSavedLocal)
	}
	if top := r.TopScores("endless", 10); len(top) != 1 {
		t.Errorf("retry stored %d entries, expected 1", len(top))
	}

	// A second retry is a new submission
	r.SubmitScore(sub)
	if top := r.TopScores("endless", 10); len(top) != 2 {
		t.Errorf("expected 2 entries after resubmitting, got %d", len(top))
	}
}

func TestResilientStatsSurviveFailure(t *testing.T) {
	r, store, _ := newTestResilient(t)

	r.SaveStats(core.Stats{PersonalBest: 10, LifetimeGames: 1})
	if got := r.LoadStats(); got.PersonalBest != 10 {
		t.Fatalf("LoadStats() = %+v", got)
	}

	store.Close()
	if got := r.LoadStats(); got != (core.Stats{}) {
		t.Errorf("failed load should fall back to defaults, got %+v", got)
	}

	r.SaveStats(core.Stats{PersonalBest: 99})
	if got := r.LoadStats(); got.PersonalBest != 99 {
		t.Errorf("stats should persist in memory, got %+v", got)
	}
}

func TestOpenResilientBadPath(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	// A directory cannot be opened as a database file
	r := OpenResilient(dir, log.New(&buf))
	defer r.Close()

	if !r.Degraded() {
		t.Skip("driver accepted a directory path")
	}
	res := r.SubmitScore(Submission{Name: "ace", Mode: "endless", Score: 5})
	if !res.Success || res.Message != MsgSavedLocal {
		t.Errorf("degraded submit = %+v", res)
	}
}

func TestMemoryTopScores(t *testing.T) {
	m := NewMemory()
	for i, score := range []int{30, 90, 60, 90} {
		if _, err := m.SaveScore(Submission{Name: string(rune('a' + i)), Mode: "campaign", Score: score}); err != nil {
			t.Fatal(err)
		}
	}
	m.SaveScore(Submission{Name: "z", Mode: "endless", Score: 1000})

	top, _ := m.TopScores("campaign", 3)
	if len(top) != 3 || top[0].Name != "b" || top[1].Name != "d" || top[2].Score != 60 {
		t.Errorf("TopScores() = %+v", top)
	}
	if hs, _ := m.HighScore("endless"); hs != 1000 {
		t.Errorf("HighScore() = %d", hs)
	}
}
