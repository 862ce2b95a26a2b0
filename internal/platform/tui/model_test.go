package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-dash/internal/core"
	"github.com/vovakirdan/astro-dash/internal/games/astrodash"
	"github.com/vovakirdan/astro-dash/internal/storage"
)

// stubGame ends its run after endAfter steps and goes back to the title on confirm.
type stubGame struct {
	steps    int
	renders  int
	endAfter int
	score    int
	inputs   []core.InputFrame
	received []core.InputFrame
	dts      []float64
	state    core.GameState
	pending  []core.Event
}

func (s *stubGame) ID() string                  { return "stub" }
func (s *stubGame) Title() string               { return "Stub" }
func (s *stubGame) Reset(core.RuntimeConfig)    { s.state = core.GameState{Phase: astrodash.StateTitle} }
func (s *stubGame) Render(dst *core.Screen)     { s.renders++; dst.DrawText(0, 0, "STUB") }
func (s *stubGame) State() core.GameState       { return s.state }
func (s *stubGame) Result() astrodash.RunResult { return s.result() }

func (s *stubGame) result() astrodash.RunResult {
	return astrodash.RunResult{
		Score:        s.state.Score,
		Stickers:     s.state.Stickers,
		StickersEver: s.state.Stickers + 2,
		Level:        s.state.Level,
		Mode:         "campaign",
	}
}

func (s *stubGame) Step(in core.InputFrame, dt float64) core.StepResult {
	s.steps++
	s.inputs = append(s.inputs, in.Clone())
	s.received = append(s.received, in)
	s.dts = append(s.dts, dt)

	switch {
	case s.state.GameOver && in.Has(core.ActionConfirm):
		s.state = core.GameState{Phase: astrodash.StateTitle}
	case s.endAfter > 0 && s.steps == s.endAfter:
		s.state = core.GameState{
			Phase:    astrodash.StateGameOver,
			Score:    s.score,
			Stickers: 4,
			Level:    2,
			GameOver: true,
		}
	}

	events := s.pending
	s.pending = nil
	return core.StepResult{State: s.state, Events: events}
}

type cueRecorder struct{ keys []string }

func (r *cueRecorder) Play(key string, _ time.Duration) { r.keys = append(r.keys, key) }

type harness struct {
	t     *testing.T
	m     Model
	game  *stubGame
	board *storage.Resilient
	cues  *cueRecorder
	clock time.Time
}

func newHarness(t *testing.T, game *stubGame, withBoard bool) *harness {
	t.Helper()
	h := &harness{t: t, game: game, cues: &cueRecorder{}, clock: time.Unix(1000, 0)}
	if withBoard {
		h.board = storage.NewResilient(storage.NewMemory(), log.New(io.Discard))
	}

	h.m = NewModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 20, TickRate: 60}, Options{
		Board:      h.board,
		Audio:      h.cues,
		PlayerName: "ace",
	})
	h.m.now = func() time.Time { return h.clock }
	h.m.Init()
	return h
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	next, _ := h.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.m = m
}

func (h *harness) tick(after time.Duration) {
	h.t.Helper()
	h.clock = h.clock.Add(after)
	h.send(TickMsg(h.clock))
}

func TestModelFrameDeltas(t *testing.T) {
	h := newHarness(t, &stubGame{}, false)

	h.tick(0)
	h.tick(16 * time.Millisecond)
	h.tick(time.Second) // stalled refresh

	want := []float64{0, 0.016, 0.033}
	if len(h.game.dts) != len(want) {
		t.Fatalf("stepped %d times, expected %d", len(h.game.dts), len(want))
	}
	for i, dt := range want {
		if diff := h.game.dts[i] - dt; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("frame %d dt = %v, expected %v", i, h.game.dts[i], dt)
		}
	}
}

func TestModelBlurPausesDriver(t *testing.T) {
	h := newHarness(t, &stubGame{}, false)
	h.tick(0)

	h.send(tea.BlurMsg{})
	h.tick(16 * time.Millisecond)
	h.tick(16 * time.Millisecond)
	if h.game.steps != 1 {
		t.Fatalf("hidden model stepped the game: %d steps", h.game.steps)
	}

	h.send(tea.FocusMsg{})
	h.tick(5 * time.Second)
	if h.game.steps != 2 {
		t.Fatalf("expected a step after focus, got %d", h.game.steps)
	}
	if dt := h.game.dts[1]; dt != 0 {
		t.Errorf("first frame after focus dt = %v, expected 0", dt)
	}
}

func TestModelBlurSkipsRendering(t *testing.T) {
	h := newHarness(t, &stubGame{}, false)
	h.tick(0)
	shown := h.m.View()
	renders := h.game.renders

	h.send(tea.BlurMsg{})
	h.tick(16 * time.Millisecond)
	if got := h.m.View(); got != shown {
		t.Error("hidden model should keep showing the last frame")
	}
	if h.game.renders != renders {
		t.Errorf("hidden model rendered the game %d times", h.game.renders-renders)
	}

	h.send(tea.FocusMsg{})
	h.tick(16 * time.Millisecond)
	h.m.View()
	if h.game.renders != renders+1 {
		t.Errorf("renders after focus = %d, expected %d", h.game.renders, renders+1)
	}
}

func TestModelHeldSteering(t *testing.T) {
	h := newHarness(t, &stubGame{}, false)

	h.send(tea.KeyMsg{Type: tea.KeyLeft})
	h.tick(16 * time.Millisecond)
	if got := h.game.inputs[0].Hold; got != core.DirLeft {
		t.Errorf("hold = %v, expected Left", got)
	}

	h.tick(HoldFirst)
	if got := h.game.inputs[1].Hold; got != core.DirNone {
		t.Errorf("hold after the window = %v, expected None", got)
	}
}

func TestModelActionsLastOneFrame(t *testing.T) {
	h := newHarness(t, &stubGame{}, false)

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(0)
	h.tick(16 * time.Millisecond)

	if !h.game.inputs[0].Has(core.ActionConfirm) {
		t.Error("confirm should reach the next frame")
	}
	if h.game.inputs[1].Has(core.ActionConfirm) {
		t.Error("confirm should be cleared after one frame")
	}
	if !h.game.received[0].Has(core.ActionConfirm) {
		t.Error("clearing the next frame changed the one the game was given")
	}
}

func TestModelDispatchesCues(t *testing.T) {
	game := &stubGame{}
	h := newHarness(t, game, false)

	game.pending = []core.Event{{Kind: core.EventSticker}, {Kind: core.EventLevelComplete}}
	h.tick(0)

	if len(h.cues.keys) != 1 || h.cues.keys[0] != "sticker" {
		t.Errorf("cues = %v, expected [sticker]", h.cues.keys)
	}
}

func TestModelRecordsRunAndSubmits(t *testing.T) {
	h := newHarness(t, &stubGame{endAfter: 2, score: 120}, true)

	h.tick(0)
	if h.m.naming {
		t.Fatal("name entry opened before the run ended")
	}
	h.tick(16 * time.Millisecond)
	if !h.m.naming {
		t.Fatal("name entry should open after a scoring run")
	}

	stats := h.board.LoadStats()
	expected := core.Stats{PersonalBest: 120, LifetimeStickers: 6, LifetimeGames: 1}
	if stats != expected {
		t.Errorf("stats = %+v, expected %+v", stats, expected)
	}
	if !h.m.newBest {
		t.Error("first scoring run should be a personal best")
	}

	// Further frames do not record the run twice
	h.tick(16 * time.Millisecond)
	if got := h.board.LoadStats().LifetimeGames; got != 1 {
		t.Errorf("run recorded %d times", got)
	}

	if view := h.m.View(); !strings.Contains(view, "NEW PERSONAL BEST") {
		t.Errorf("name entry view missing title:\n%s", view)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.m.naming {
		t.Error("name entry should close after a successful submit")
	}
	if h.m.status != storage.MsgSaved {
		t.Errorf("status = %q, expected %q", h.m.status, storage.MsgSaved)
	}

	top := h.board.TopScores("campaign", 10)
	if len(top) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(top))
	}
	if e := top[0]; e.Name != "ace" || e.Score != 120 || e.Stickers != 4 || e.Level != 2 {
		t.Errorf("entry = %+v", e)
	}
}

func TestModelNameEntryKeepsKeysFromGame(t *testing.T) {
	h := newHarness(t, &stubGame{endAfter: 1, score: 50}, true)
	h.tick(0)

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if h.m.IsQuitting() {
		t.Error("q should be typed into the name, not quit")
	}
	if got := h.m.nameInput.Value(); got != "aceq" {
		t.Errorf("name = %q, expected %q", got, "aceq")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.naming {
		t.Error("esc should skip the name entry")
	}
	if n := len(h.board.TopScores("campaign", 10)); n != 0 {
		t.Errorf("skipped entry was saved: %d entries", n)
	}
}

func TestModelZeroScoreSkipsNameEntry(t *testing.T) {
	h := newHarness(t, &stubGame{endAfter: 1}, true)
	h.tick(0)

	if h.m.naming {
		t.Error("a zero score should not ask for a name")
	}
	if got := h.board.LoadStats().LifetimeGames; got != 1 {
		t.Errorf("LifetimeGames = %d, expected 1", got)
	}
}

func TestModelNewRunResetsRecording(t *testing.T) {
	game := &stubGame{endAfter: 1}
	h := newHarness(t, game, true)
	h.tick(0)
	if !h.m.finished {
		t.Fatal("run end not recorded")
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.tick(16 * time.Millisecond)
	if h.m.finished {
		t.Error("back on the title the next run end should be recorded again")
	}
}

func TestModelWithoutBoard(t *testing.T) {
	h := newHarness(t, &stubGame{endAfter: 1, score: 90}, false)
	h.tick(0)

	if h.m.naming {
		t.Error("no board means no name entry")
	}
	if !strings.Contains(h.m.View(), "STUB") {
		t.Error("view should render the game")
	}
}

func TestModelBackToMenu(t *testing.T) {
	h := newHarness(t, &stubGame{}, false)

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})
	if !h.m.BackToMenu() {
		t.Error("b on the title should go back to the menu")
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("abcdefghijklmnop"); got != "abcdefghijkl" {
		t.Errorf("truncateName() = %q", got)
	}
	if got := truncateName("ace"); got != "ace" {
		t.Errorf("truncateName() = %q", got)
	}
}
