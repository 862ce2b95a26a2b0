package astrodash

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/astro-dash/internal/config"
	"github.com/vovakirdan/astro-dash/internal/core"
	"github.com/vovakirdan/astro-dash/internal/rng"
)

const frameDT = 1.0 / 60

var testTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newTestGame(mode GameMode) *Game {
	return NewWithConfig(mode, config.DefaultConfig(), core.DefaultConfig())
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

// stepUntil steps idle frames until cond holds, failing after limit seconds.
func stepUntil(t *testing.T, g *Game, limit float64, cond func() bool) []core.Event {
	t.Helper()
	var events []core.Event
	for elapsed := 0.0; elapsed < limit; elapsed += frameDT {
		if cond() {
			return events
		}
		events = append(events, g.Step(idle(), frameDT).Events...)
	}
	if !cond() {
		t.Fatalf("condition not reached within %vs (state %s)", limit, g.state)
	}
	return events
}

// toPlay goes from the title through a skipped intro and the countdown.
func toPlay(t *testing.T, g *Game) {
	t.Helper()
	g.Step(press(core.ActionConfirm), frameDT)
	g.Step(press(core.ActionConfirm), frameDT)
	stepUntil(t, g, 10, func() bool { return g.state == StatePlay })
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func findEvent(events []core.Event, kind core.EventKind) (core.Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return core.Event{}, false
}

func dropObstacleOnPlayer(g *Game) {
	g.obstacles = append(g.obstacles, &Obstacle{X: g.player.X, Y: g.player.Y, RX: 20, RY: 15, Active: true})
}

func dropStickerOnPlayer(g *Game, thick bool) {
	g.stickers = append(g.stickers, &Sticker{X: g.player.X, Y: g.player.Y, Radius: 12, Thick: thick, Active: true})
}

func TestNewGameStartsOnTitle(t *testing.T) {
	g := newTestGame(ModeCampaign)
	state := g.State()

	if state.Phase != StateTitle {
		t.Errorf("Phase = %q, expected %q", state.Phase, StateTitle)
	}
	if state.Lives != 3 || state.Score != 0 || state.Level != 1 {
		t.Errorf("unexpected initial state: %+v", state)
	}
	if g.ID() != "astrodash" || NewEndless().ID() != "astrodash_endless" {
		t.Error("unexpected game IDs")
	}
}

func TestIntroPlaysThenCountsDown(t *testing.T) {
	g := newTestGame(ModeCampaign)
	g.Step(press(core.ActionConfirm), frameDT)

	if g.state != StateStart {
		t.Fatalf("confirm on title should start the intro, state=%s", g.state)
	}
	if len(g.sceneLines) != 1 {
		t.Errorf("first intro line should show at once, got %d lines", len(g.sceneLines))
	}

	limit := float64(len(introLines))*introLineGap + 0.5
	stepUntil(t, g, limit, func() bool { return g.state == StateCountdown })
	if len(g.sceneLines) != len(introLines) {
		t.Errorf("intro showed %d of %d lines", len(g.sceneLines), len(introLines))
	}
}

func TestSkipIntroIsIdempotent(t *testing.T) {
	g := newTestGame(ModeCampaign)
	g.Step(press(core.ActionConfirm), frameDT)
	g.Step(press(core.ActionConfirm), frameDT)

	if g.state != StateCountdown {
		t.Fatalf("skipping the intro should start the countdown, state=%s", g.state)
	}
	if g.cutscene.Pending() != 0 {
		t.Errorf("skip should cancel pending intro cues, %d left", g.cutscene.Pending())
	}

	g.Step(idle(), frameDT)
	timer, step := g.countdownTimer, g.countdownStep
	g.IntroFinished()
	if g.state != StateCountdown || g.countdownTimer != timer || g.countdownStep != step {
		t.Error("a second IntroFinished should do nothing")
	}
}

func TestCountdownSequence(t *testing.T) {
	g := newTestGame(ModeCampaign)
	g.Step(press(core.ActionConfirm), frameDT)
	g.Step(press(core.ActionConfirm), frameDT)

	var ticks []int
	elapsed := 0.0
	gos := 0
	for g.state == StateCountdown && elapsed < 10 {
		res := g.Step(idle(), frameDT)
		elapsed += frameDT
		for _, ev := range res.Events {
			switch ev.Kind {
			case core.EventCountdownTick:
				ticks = append(ticks, ev.Value)
			case core.EventCountdownGo:
				gos++
			}
		}
	}

	if len(ticks) != 3 || ticks[0] != 3 || ticks[1] != 2 || ticks[2] != 1 {
		t.Errorf("ticks = %v, expected [3 2 1]", ticks)
	}
	if gos != 1 {
		t.Errorf("GO raised %d times, expected once", gos)
	}

	cfg := g.Config()
	want := cfg.Run.NameDisplay + 4*cfg.Run.CountdownStep
	if elapsed < want-2*frameDT || elapsed > want+2*frameDT {
		t.Errorf("countdown took %.3fs, expected about %.3fs", elapsed, want)
	}
	if g.state != StatePlay {
		t.Errorf("state = %s after countdown, expected play", g.state)
	}
}

func TestFirstObstacleMatchesLevelSeed(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.Step(idle(), frameDT)

	if len(g.obstacles) == 0 {
		t.Fatal("first play frame should spawn a wave")
	}
	cfg := g.Config()
	margin := cfg.Obstacles.Margin
	want := rng.NewGenerator(1262626).Range(margin, cfg.Field.Width-margin)
	if g.obstacles[0].X != want {
		t.Errorf("first obstacle x = %v, expected %v", g.obstacles[0].X, want)
	}
}

func TestSteeringClampsToField(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.player.Invulnerable = 1e9

	left := core.NewInputFrame()
	left.Hold = core.DirLeft
	for i := 0; i < 120; i++ {
		g.Step(left, frameDT)
	}
	if g.player.X != g.player.Radius {
		t.Errorf("player x = %v, expected clamped to %v", g.player.X, g.player.Radius)
	}
}

func TestStickerScoring(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)

	dropStickerOnPlayer(g, false)
	res := g.Step(idle(), frameDT)
	if ev, ok := findEvent(res.Events, core.EventSticker); !ok || ev.Value != 10 {
		t.Fatalf("expected a sticker event worth 10, got %+v", res.Events)
	}

	g.pickups = append(g.pickups, &Pickup{Kind: PickupMultiplierA, X: g.player.X, Y: g.player.Y, Radius: 14, Active: true})
	g.Step(idle(), frameDT)
	if g.effects.Multiplier() != 2 {
		t.Fatalf("multiplier pickup not applied, got %d", g.effects.Multiplier())
	}

	dropStickerOnPlayer(g, true)
	res = g.Step(idle(), frameDT)
	if ev, ok := findEvent(res.Events, core.EventThickSticker); !ok || ev.Value != 100 {
		t.Errorf("expected a thick sticker worth 100 under x2, got %+v", res.Events)
	}
	if g.run.Score != 110 || g.run.RunStickers != 2 {
		t.Errorf("score=%d stickers=%d, expected 110 and 2", g.run.Score, g.run.RunStickers)
	}
}

func TestExtraLifeFromStickers(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.run.StickersEver = 24

	dropStickerOnPlayer(g, false)
	res := g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventExtraLife) != 1 || g.run.Lives != 4 {
		t.Errorf("25th sticker should grant a life: lives=%d events=%+v", g.run.Lives, res.Events)
	}

	g.run.Lives = g.run.MaxLives
	g.run.StickersEver = 49
	dropStickerOnPlayer(g, false)
	res = g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventExtraLife) != 0 || g.run.Lives != g.run.MaxLives {
		t.Error("lives must not exceed the maximum")
	}
}

func TestShieldAbsorbsCollision(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.effects.SetShield(1)

	dropObstacleOnPlayer(g)
	res := g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventShieldHit) != 1 {
		t.Fatalf("expected a shield hit, got %+v", res.Events)
	}
	if g.run.Lives != 3 || g.effects.Shield() != 0 || g.state != StatePlay {
		t.Fatalf("shield hit changed the run: lives=%d shield=%d state=%s", g.run.Lives, g.effects.Shield(), g.state)
	}
	if g.player.Invulnerable <= 0 {
		t.Fatal("shield hit should grant invulnerability")
	}

	// A second overlap inside the window does nothing
	dropObstacleOnPlayer(g)
	res = g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventCollision) != 0 || g.run.Lives != 3 {
		t.Errorf("collision inside the invulnerability window should be ignored")
	}
}

func TestCollisionRollsBackLevel(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)

	// Clear level 1 untouched to get a non-zero snapshot for level 2
	g.player.Invulnerable = 1e9
	stepUntil(t, g, 40, func() bool { return g.run.Level == 2 })
	stepUntil(t, g, 10, func() bool { return g.state == StatePlay })

	g.effects.SetShield(0)
	g.effects.ClearTimed()
	g.clearEntities()

	s0 := g.run.Score
	if s0 < g.Config().Run.LevelBonus {
		t.Fatalf("level 2 should start with the level bonus, score=%d", s0)
	}
	_, runStickers0, _ := g.run.Snapshot()
	ever0 := g.run.StickersEver

	dropStickerOnPlayer(g, false)
	g.Step(idle(), frameDT)
	if g.run.Score <= s0 || g.run.LevelStickers != 1 {
		t.Fatalf("sticker not collected: score=%d", g.run.Score)
	}
	lives0 := g.run.Lives

	dropObstacleOnPlayer(g)
	res := g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventCollision) != 1 {
		t.Fatalf("expected a collision, got %+v", res.Events)
	}
	if g.run.Lives != lives0-1 {
		t.Errorf("lives = %d, expected %d", g.run.Lives, lives0-1)
	}

	stepUntil(t, g, 1, func() bool { return g.state == StateCountdown })
	if g.run.Score != s0 {
		t.Errorf("score = %d after rollback, expected %d", g.run.Score, s0)
	}
	if g.run.RunStickers != runStickers0 || g.run.LevelStickers != 0 {
		t.Errorf("sticker counters not rolled back: run=%d level=%d", g.run.RunStickers, g.run.LevelStickers)
	}
	if g.run.StickersEver != ever0+1 {
		t.Errorf("StickersEver = %d, expected %d", g.run.StickersEver, ever0+1)
	}
	if g.run.Level != 2 || g.run.TimeRemaining != g.Config().Run.LevelDuration {
		t.Errorf("attempt should restart level 2 with a full timer: level=%d time=%v", g.run.Level, g.run.TimeRemaining)
	}
	if len(g.obstacles) != 0 {
		t.Error("restart should clear the field")
	}
}

func TestRetryReplaysSameLayout(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.Step(idle(), frameDT)
	first := *g.obstacles[0]

	dropObstacleOnPlayer(g)
	g.Step(idle(), frameDT)
	stepUntil(t, g, 10, func() bool { return g.state == StatePlay })
	g.Step(idle(), frameDT)

	if g.obstacles[0].X != first.X || g.obstacles[0].Angle != first.Angle {
		t.Errorf("retried attempt spawned a different first obstacle: %+v vs %+v", *g.obstacles[0], first)
	}
}

func TestLastLifeEndsRun(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.run.Lives = 1

	dropStickerOnPlayer(g, false)
	g.Step(idle(), frameDT)
	score := g.run.Score

	dropObstacleOnPlayer(g)
	res := g.Step(idle(), frameDT)
	if g.state != StateGameOver {
		t.Fatalf("state = %s, expected gameover", g.state)
	}
	if ev, ok := findEvent(res.Events, core.EventGameOver); !ok || ev.Value != score {
		t.Errorf("game over event should carry the score %d: %+v", score, res.Events)
	}
	if st := g.State(); !st.GameOver || st.Won || st.Score != score {
		t.Errorf("unexpected state after game over: %+v", st)
	}

	g.Step(press(core.ActionRestart), frameDT)
	if g.state != StateCountdown || g.run.Lives != 3 || g.run.Score != 0 {
		t.Errorf("restart should begin a fresh run: state=%s lives=%d score=%d", g.state, g.run.Lives, g.run.Score)
	}
}

func TestOutOfTimeAdvancesLevel(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.player.Invulnerable = 1e9

	events := stepUntil(t, g, 35, func() bool { return g.state == StateOutOfTime })
	if countEvents(events, core.EventOutOfTime) != 1 {
		t.Errorf("expected one out-of-time event")
	}

	score := g.run.Score
	events = stepUntil(t, g, 5, func() bool { return g.state == StateCountdown })
	ev, ok := findEvent(events, core.EventLevelComplete)
	if !ok || ev.Value != 500 {
		t.Fatalf("expected a level bonus of 500, got %+v", events)
	}
	if g.run.Score != score+500 || g.run.Level != 2 {
		t.Errorf("score=%d level=%d, expected %d and 2", g.run.Score, g.run.Level, score+500)
	}
	if g.diff != g.resolver.Level(2) {
		t.Error("level 2 should use its own difficulty row")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.player.Invulnerable = 1e9
	g.Step(idle(), frameDT)

	clock := g.Clock()
	res := g.Step(press(core.ActionPause), frameDT)
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}
	for i := 0; i < 30; i++ {
		g.Step(idle(), frameDT)
	}
	if g.Clock() != clock {
		t.Errorf("clock moved while paused: %v -> %v", clock, g.Clock())
	}

	res = g.Step(press(core.ActionPause), frameDT)
	if res.State.Paused || g.Clock() <= clock {
		t.Error("second pause should resume")
	}
}

func TestTitleIgnoresPause(t *testing.T) {
	g := newTestGame(ModeCampaign)
	if res := g.Step(press(core.ActionPause), frameDT); res.State.Paused {
		t.Error("title screen should not pause")
	}
}

func TestBossEncounterWins(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.startBoss(true)
	g.player.Invulnerable = 1e9

	score := g.run.Score
	events := stepUntil(t, g, 150, func() bool { return g.state == StateWin })

	if n := countEvents(events, core.EventWaveComplete); n != 10 {
		t.Errorf("%d waves completed, expected 10", n)
	}
	if n := countEvents(events, core.EventBossDefeated); n != 1 {
		t.Errorf("boss defeated %d times", n)
	}
	if n := countEvents(events, core.EventWin); n != 1 {
		t.Errorf("win raised %d times", n)
	}
	if g.run.Score != score+2500 {
		t.Errorf("score = %d, expected %d", g.run.Score, score+2500)
	}
	if st := g.State(); !st.Won || !st.GameOver || st.Level != 4 {
		t.Errorf("unexpected state after win: %+v", st)
	}
}

func TestWinRollsCreditsToTitle(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.startBoss(true)
	g.player.Invulnerable = 1e9
	stepUntil(t, g, 150, func() bool { return g.state == StateWin })

	res := g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventWin) != 0 || g.state != StateWin {
		t.Fatal("win should hold until confirmed and fire only once")
	}

	g.Step(press(core.ActionConfirm), frameDT)
	if g.state != StateCredits {
		t.Fatalf("confirm on win should roll credits, state=%s", g.state)
	}
	if !g.Result().Won {
		t.Error("result should report a won run during credits")
	}
	limit := float64(len(creditLines)+2) * creditLineGap
	stepUntil(t, g, limit, func() bool { return g.state == StateTitle })
}

func TestBossFailureRestartsEncounter(t *testing.T) {
	g := newTestGame(ModeCampaign)
	toPlay(t, g)
	g.startBoss(true)
	g.player.Invulnerable = 1e9

	s0 := g.run.Score
	stepUntil(t, g, 20, func() bool { return g.boss.WavesDone() == 1 })
	if g.run.Score != s0+250 {
		t.Fatalf("wave bonus not awarded: %d", g.run.Score)
	}

	g.player.Invulnerable = 0
	g.effects.SetShield(0)
	p := g.boss.Slots[0]
	p.Active = true
	p.X, p.Y = g.player.X, g.player.Y
	res := g.Step(idle(), frameDT)
	if countEvents(res.Events, core.EventCollision) != 1 || g.run.Lives != 2 {
		t.Fatalf("rock should cost a life: lives=%d events=%+v", g.run.Lives, res.Events)
	}

	stepUntil(t, g, 1, func() bool { return g.hitStop == 0 })
	if g.state != StateBoss {
		t.Fatalf("state = %s, expected boss", g.state)
	}
	if g.run.Score != s0 {
		t.Errorf("score = %d, expected rollback to %d", g.run.Score, s0)
	}
	if g.boss.Phase != BossEntering || g.boss.Wave != 0 || g.boss.WavesDone() != 0 {
		t.Errorf("encounter should restart from its entrance: phase=%v wave=%d", g.boss.Phase, g.boss.Wave)
	}
}

func TestEndlessTierUp(t *testing.T) {
	g := newTestGame(ModeEndless)
	toPlay(t, g)
	g.player.Invulnerable = 1e9

	events := stepUntil(t, g, 16, func() bool { return g.run.Tier == 2 })
	ev, ok := findEvent(events, core.EventTierUp)
	if !ok || ev.Value != 2 {
		t.Fatalf("expected a tier-up to 2, got %+v", events)
	}
	if g.state != StatePlay {
		t.Errorf("tier-up should not interrupt play, state=%s", g.state)
	}
	if g.diff != g.resolver.Tier(2) {
		t.Error("tier 2 difficulty not applied")
	}

	snapScore, _, _ := g.run.Snapshot()
	elapsed := g.run.Elapsed

	g.player.Invulnerable = 0
	g.effects.SetShield(0)
	g.clearEntities()
	dropStickerOnPlayer(g, false)
	g.Step(idle(), frameDT)
	dropObstacleOnPlayer(g)
	g.Step(idle(), frameDT)
	stepUntil(t, g, 1, func() bool { return g.state == StateCountdown })

	if g.run.Score != snapScore {
		t.Errorf("score = %d, expected rollback to tier checkpoint %d", g.run.Score, snapScore)
	}
	if g.run.Tier != 2 || g.run.Elapsed < elapsed {
		t.Errorf("endless time must not roll back: tier=%d elapsed=%v", g.run.Tier, g.run.Elapsed)
	}
}

func TestEndlessHasNoBoss(t *testing.T) {
	g := newTestGame(ModeEndless)
	toPlay(t, g)
	g.player.Invulnerable = 1e9

	for i := 0; i < 60*50; i++ {
		g.Step(idle(), frameDT)
		if g.state == StateOutOfTime || g.state == StateBoss {
			t.Fatalf("endless mode reached %s", g.state)
		}
	}
	if g.run.Tier < 4 {
		t.Errorf("tier = %d after 50s, expected at least 4", g.run.Tier)
	}
}

func scriptedInput(i int) core.InputFrame {
	in := core.NewInputFrame()
	if i < 2 {
		in.Set(core.ActionConfirm)
	}
	switch (i / 90) % 3 {
	case 0:
		in.Hold = core.DirLeft
	case 1:
		in.Hold = core.DirRight
	}
	return in
}

func TestDeterministicReplay(t *testing.T) {
	a := newTestGame(ModeCampaign)
	b := newTestGame(ModeCampaign)

	for i := 0; i < 60*40; i++ {
		a.Step(scriptedInput(i), frameDT)
		b.Step(scriptedInput(i), frameDT)
		if i%60 == 0 && a.Snapshot().Hash() != b.Snapshot().Hash() {
			t.Fatalf("runs diverged at frame %d", i)
		}
	}
	if a.Snapshot().Hash() != b.Snapshot().Hash() {
		t.Error("runs diverged by the end")
	}
}

func TestSeedChangesLayout(t *testing.T) {
	rt := core.DefaultConfig()
	rt.Seed = 99
	a := newTestGame(ModeCampaign)
	b := NewWithConfig(ModeCampaign, config.DefaultConfig(), rt)

	toPlay(t, a)
	toPlay(t, b)
	a.Step(idle(), frameDT)
	b.Step(idle(), frameDT)
	if a.obstacles[0].X == b.obstacles[0].X {
		t.Error("different seeds produced the same first obstacle")
	}
	if b.Seeds().Base != 99 {
		t.Errorf("runtime seed not applied: %d", b.Seeds().Base)
	}
}

func TestRenderAllStates(t *testing.T) {
	g := newTestGame(ModeCampaign)
	screen := core.NewScreen(80, 40)

	g.Render(screen)
	if !strings.Contains(screen.String(), "ENTER") {
		t.Error("title screen should prompt for ENTER")
	}

	g.Step(press(core.ActionConfirm), frameDT)
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), introLines[0]) {
		t.Error("intro should show its first line")
	}

	g.Step(press(core.ActionConfirm), frameDT)
	stepUntil(t, g, 10, func() bool { return g.state == StatePlay })
	g.player.Invulnerable = 1e9
	for i := 0; i < 120; i++ {
		g.Step(idle(), frameDT)
	}
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), "Score:") {
		t.Error("play screen should show the HUD")
	}

	g.startBoss(true)
	for i := 0; i < 240; i++ {
		g.Step(idle(), frameDT)
	}
	screen.Clear()
	g.Render(screen)

	small := core.NewScreen(10, 5)
	g.Render(small)
}

type fakeSprites map[string][2]float64

func (f fakeSprites) Size(key string) (float64, float64, bool) {
	s, ok := f[key]
	return s[0], s[1], ok
}

func (f fakeSprites) Glyph(_ string, fallback rune) rune { return fallback }

func TestSpriteSizesDriveHitboxes(t *testing.T) {
	SetSprites(fakeSprites{"asteroid": {60, 30}, "boss": {100, 90}})
	defer SetSprites(nil)

	g := newTestGame(ModeCampaign)
	if g.shapes.RadiusX != 30 || g.shapes.RadiusY != 15 {
		t.Errorf("asteroid radii = %v/%v, expected 30/15", g.shapes.RadiusX, g.shapes.RadiusY)
	}
	if g.cfg.Boss.Radius != 50 {
		t.Errorf("boss radius = %v, expected 50", g.cfg.Boss.Radius)
	}
	if g.stickerR != g.cfg.Stickers.Radius {
		t.Error("missing sticker sprite should keep the configured radius")
	}
}
