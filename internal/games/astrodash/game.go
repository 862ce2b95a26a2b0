// Package astrodash implements Astro Dash: steer a ship left and right to
// dodge falling asteroids, collect stickers and powerups across timed
// sectors, then survive the boss's ten waves of thrown rocks.
package astrodash

import (
	"github.com/vovakirdan/astro-dash/internal/config"
	"github.com/vovakirdan/astro-dash/internal/core"
	"github.com/vovakirdan/astro-dash/internal/registry"
	"github.com/vovakirdan/astro-dash/internal/rng"
)

// Run states
const (
	StateTitle     = "title"       // Waiting for confirm
	StateStart     = "start"       // Intro briefing, confirm skips
	StateCountdown = "countdown"   // Level name, then 3-2-1-GO
	StatePlay      = "play"        // Regular level or endless tier
	StateOutOfTime = "out_of_time" // Level timer ran out, showing the result
	StateBoss      = "boss"        // Final encounter
	StateWin       = "win"         // Boss defeated
	StateGameOver  = "gameover"    // No lives left
	StateCredits   = "credits"     // Credits roll after a win
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Timed levels, then the boss
	ModeEndless                  // Survive escalating tiers until game over
)

// String returns the mode name used for score storage.
func (m GameMode) String() string {
	if m == ModeEndless {
		return "endless"
	}
	return "campaign"
}

// SpriteSource reports sprite sizes in field units and their display glyphs.
type SpriteSource interface {
	Size(key string) (w, h float64, ok bool)
	Glyph(key string, fallback rune) rune
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// sprites supplies hitbox sizes and glyphs from loaded art, if any
var sprites SpriteSource

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetSprites sets the source of obstacle, sticker and boss sizes.
// Missing sprites fall back to the configured radii and built-in glyphs.
func SetSprites(s SpriteSource) {
	sprites = s
}

var introLines = []string{
	"Year 2184. The orbital lanes are full of rock.",
	"Someone is throwing it there on purpose.",
	"Dodge the asteroids. Grab the stickers.",
	"Clear every sector and find out who.",
}

var creditLines = []string{
	"ASTRO DASH",
	"Piloting: you",
	"Rocks thrown: too many",
	"Rockmonger will be back",
	"Thanks for playing!",
}

const (
	introLineGap  = 1.6
	creditLineGap = 1.2
)

// Player is the ship. Its hitbox is one circle whatever the sprite does.
type Player struct {
	X, Y         float64
	Radius       float64
	Invulnerable float64 // Seconds of collision immunity left
}

// Game implements the Astro Dash run state machine.
type Game struct {
	mode     GameMode
	cfg      config.GameConfig
	runtime  core.RuntimeConfig
	seeds    rng.Seeds
	resolver *config.DifficultyResolver

	state  string
	paused bool
	clock  float64 // Simulation clock; effect deadlines live here
	frame  uint64

	run     RunState
	player  Player
	effects *EffectManager
	spawner *Spawner
	plan    *PickupPlan
	boss    *Boss
	diff    config.Difficulty

	obstacles []*Obstacle
	stickers  []*Sticker
	pickups   []*Pickup

	countdownStep  int // 0 = level name, 1-3 = numbers, 4 = GO
	countdownTimer float64
	outOfTimeTimer float64
	hitStop        float64
	shake          float64
	failing        bool // Hit-stop ends in a restart of the attempt
	tierStart      float64

	cutscene   Sequencer
	sceneLines []string

	shapes   config.ObstacleConfig
	stickerR float64
	events   []core.Event
}

func init() {
	registry.Register("astrodash", func() registry.Game {
		return New()
	})
	registry.Register("astrodash_endless", func() registry.Game {
		return NewEndless()
	})
}

// New creates a new Astro Dash game instance (campaign mode).
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new Astro Dash game instance in endless mode.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// NewWithConfig creates a game that uses cfg instead of loading one.
func NewWithConfig(mode GameMode, cfg config.GameConfig, runtime core.RuntimeConfig) *Game {
	g := &Game{mode: mode}
	g.setup(runtime, cfg)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "astrodash_endless"
	}
	return "astrodash"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Astro Dash (Endless)"
	}
	return "Astro Dash"
}

// Mode returns the game mode.
func (g *Game) Mode() GameMode {
	return g.mode
}

// Reset loads the configuration and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}

	g.setup(runtime, cfg)
}

func (g *Game) setup(runtime core.RuntimeConfig, cfg config.GameConfig) {
	g.runtime = runtime
	g.cfg = cfg
	g.resolver = config.NewDifficultyResolver(cfg)

	base, tag := cfg.Seed.Static, cfg.Seed.Tag
	if runtime.Seed != 0 {
		base = uint32(runtime.Seed) //#nosec G115 -- seeds are 32-bit by design
	}
	if runtime.SeedTag != "" {
		tag = runtime.SeedTag
	}
	g.seeds = rng.Seeds{Mode: rng.ModeStatic, Base: base, Tag: tag}

	g.shapes = cfg.Obstacles
	g.stickerR = cfg.Stickers.Radius
	g.applySpriteSizes()

	g.cutscene.Reset()
	g.sceneLines = nil
	g.newRun()
	g.state = StateTitle
}

func (g *Game) applySpriteSizes() {
	if sprites == nil {
		return
	}
	if w, h, ok := sprites.Size("asteroid"); ok && w > 0 && h > 0 {
		g.shapes.RadiusX = w / 2
		g.shapes.RadiusY = h / 2
	}
	if w, h, ok := sprites.Size("sticker"); ok && w > 0 && h > 0 {
		g.stickerR = max(w, h) / 2
	}
	if w, h, ok := sprites.Size("boss"); ok && w > 0 && h > 0 {
		g.cfg.Boss.Radius = max(w, h) / 2
	}
}

// newRun resets everything a run owns. Stats outlive it.
func (g *Game) newRun() {
	g.run = NewRunState(g.cfg.Run.StartLives, g.cfg.Run.MaxLives, g.cfg.Run.ExtraLifeEvery)
	g.effects = NewEffectManager(g.cfg.Effects)
	g.player = Player{
		X:      g.cfg.Field.Width / 2,
		Y:      g.cfg.Player.Y,
		Radius: g.cfg.Player.Radius,
	}
	g.clock = 0
	g.frame = 0
	g.paused = false
	g.hitStop = 0
	g.shake = 0
	g.failing = false
	g.tierStart = 0
	g.boss = nil
	g.clearEntities()
}

func (g *Game) clearEntities() {
	g.obstacles = g.obstacles[:0]
	g.stickers = g.stickers[:0]
	g.pickups = g.pickups[:0]
}

func (g *Game) emit(kind core.EventKind, text string, value int) {
	g.events = append(g.events, core.Event{Kind: kind, Text: text, Value: value})
}

// Step advances the simulation by dt seconds. The caller clamps dt.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	g.events = g.events[:0]
	if dt < 0 {
		dt = 0
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && g.pausable() {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}
	g.frame++

	switch g.state {
	case StateTitle:
		if in.Has(core.ActionConfirm) {
			g.startIntro()
		}
	case StateStart:
		if in.Has(core.ActionConfirm) {
			g.IntroFinished()
		} else {
			g.cutscene.Advance(dt)
		}
	case StateCountdown:
		g.movePlayer(in.Hold, dt)
		g.updateCountdown(dt)
	case StatePlay:
		g.updatePlay(in, dt)
	case StateOutOfTime:
		g.outOfTimeTimer -= dt
		if g.outOfTimeTimer <= 0 {
			g.resolveOutOfTime()
		}
	case StateBoss:
		g.updateBoss(in, dt)
	case StateWin:
		if in.Has(core.ActionConfirm) {
			g.startCredits()
		}
	case StateCredits:
		if in.Has(core.ActionConfirm) {
			g.cutscene.CancelAll()
			g.state = StateTitle
		} else {
			g.cutscene.Advance(dt)
		}
	case StateGameOver:
		if in.Has(core.ActionRestart) {
			g.newRun()
			g.beginRun()
		} else if in.Has(core.ActionConfirm) {
			g.state = StateTitle
		}
	}

	if g.shake > 0 && g.hitStop <= 0 {
		g.shake = max(0, g.shake-dt)
	}

	return g.result()
}

func (g *Game) pausable() bool {
	switch g.state {
	case StateCountdown, StatePlay, StateOutOfTime, StateBoss:
		return true
	}
	return false
}

func (g *Game) result() core.StepResult {
	var events []core.Event
	if len(g.events) > 0 {
		events = append(events, g.events...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// startIntro plays the briefing. IntroFinished runs when it ends or is skipped.
func (g *Game) startIntro() {
	g.newRun()
	g.state = StateStart
	g.cutscene.Reset()
	g.sceneLines = g.sceneLines[:0]
	for i, line := range introLines {
		g.cutscene.Schedule(float64(i)*introLineGap, func() {
			g.sceneLines = append(g.sceneLines, line)
		})
	}
	g.cutscene.Schedule(float64(len(introLines))*introLineGap, g.IntroFinished)
	g.cutscene.Advance(0)
}

// IntroFinished ends the briefing and starts the first countdown.
// Calling it outside the briefing, or twice, does nothing.
func (g *Game) IntroFinished() {
	if g.state != StateStart {
		return
	}
	g.cutscene.CancelAll()
	g.beginRun()
}

func (g *Game) beginRun() {
	if g.mode == ModeEndless {
		g.run.Elapsed = 0
		g.beginTier(1)
		g.prepareAttempt()
		g.startCountdown()
		return
	}
	g.beginLevel(1)
}

// beginLevel starts a campaign level: fresh timer, fresh streams, snapshot.
func (g *Game) beginLevel(level int) {
	g.run.StartLevel(level)
	g.run.TimeRemaining = g.cfg.Run.LevelDuration
	g.diff = g.resolver.Level(level)
	g.effects.ClearTimed()
	g.run.TakeSnapshot()
	g.prepareAttempt()
	g.startCountdown()
}

// beginTier moves endless mode to a tier. The tier is a checkpoint: the
// snapshot is re-taken and the streams are re-derived for it.
func (g *Game) beginTier(tier int) {
	g.run.Tier = tier
	g.run.StartLevel(tier)
	g.diff = g.resolver.Tier(tier)
	g.tierStart = g.cfg.Endless.TierDuration * float64(tier-1)
	g.run.TakeSnapshot()
}

// levelRow returns the table row whose pickups a level or tier uses.
func (g *Game) levelRow(n int) config.LevelConfig {
	idx := (n - 1) % len(g.cfg.Levels)
	if idx < 0 {
		idx = 0
	}
	return g.cfg.Levels[idx]
}

// prepareAttempt clears the field and rebuilds the level's streams so an
// attempt replays the same layout.
func (g *Game) prepareAttempt() {
	n := g.run.Level
	g.clearEntities()
	g.player.X = g.cfg.Field.Width / 2
	g.player.Invulnerable = 0

	chance := g.cfg.Stickers.Chance
	window := g.cfg.Run.LevelDuration
	if g.mode == ModeEndless {
		chance = g.cfg.Endless.StickerChance
		window = g.cfg.Endless.TierDuration
	}

	g.spawner = g.newSpawner(n, chance)
	g.plan = PlanPickups(rng.NewGenerator(g.seeds.Powerups(n)), levelPickupKinds(g.levelRow(n)), window, g.cfg)
	if g.mode == ModeEndless {
		g.plan.SkipPast(g.tierRemaining())
	}
}

func (g *Game) newSpawner(n int, chance float64) *Spawner {
	s := NewSpawner(g.cfg, g.seeds.Level(n), g.seeds.Stickers(n), chance)
	s.SetShapes(g.shapes)
	s.SetStickerRadius(g.stickerR)
	return s
}

func (g *Game) tierRemaining() float64 {
	return g.cfg.Endless.TierDuration - (g.run.Elapsed - g.tierStart)
}

func (g *Game) startCountdown() {
	g.state = StateCountdown
	g.countdownStep = 0
	g.countdownTimer = g.cfg.Run.NameDisplay
}

func (g *Game) updateCountdown(dt float64) {
	g.countdownTimer -= dt
	for g.countdownTimer <= 0 && g.state == StateCountdown {
		g.countdownStep++
		switch {
		case g.countdownStep <= 3:
			g.emit(core.EventCountdownTick, "", 4-g.countdownStep)
			g.countdownTimer += g.cfg.Run.CountdownStep
		case g.countdownStep == 4:
			g.emit(core.EventCountdownGo, "", 0)
			g.countdownTimer += g.cfg.Run.CountdownStep
		default:
			g.state = StatePlay
		}
	}
}

// updatePlay runs one frame of a level in a fixed order: clock and effects,
// steering, timers, spawning, movement, collisions, retirement.
func (g *Game) updatePlay(in core.InputFrame, dt float64) {
	if g.hitStop > 0 {
		g.tickHitStop(dt)
		return
	}

	g.clock += dt
	g.expireEffects()
	g.player.Invulnerable = max(0, g.player.Invulnerable-dt)
	g.movePlayer(in.Hold, dt)

	var remaining float64
	if g.mode == ModeEndless {
		g.run.Elapsed += dt
		if tier := g.resolver.TierAt(g.run.Elapsed); tier > g.run.Tier {
			g.tierUp(tier)
		}
		remaining = g.tierRemaining()
	} else {
		g.run.TimeRemaining -= dt
		remaining = g.run.TimeRemaining
	}

	world := g.effects.WorldFactor()
	g.pickups = append(g.pickups, g.plan.Due(remaining)...)
	wave, sticker := g.spawner.Update(dt*world, g.diff)
	g.obstacles = append(g.obstacles, wave...)
	if sticker != nil {
		g.stickers = append(g.stickers, sticker)
	}

	scroll := g.diff.ScrollSpeed * world
	Advance(g.obstacles, dt, scroll)
	Advance(g.stickers, dt, scroll)
	Advance(g.pickups, dt, scroll)
	for _, p := range g.pickups {
		p.Pulse += dt
	}

	g.collectStickers()
	g.collectPickups()
	ended := g.checkObstacles()

	fieldH := g.cfg.Field.Height
	RetireOffscreen(g.obstacles, fieldH)
	RetireOffscreen(g.stickers, fieldH)
	RetireOffscreen(g.pickups, fieldH)
	g.obstacles = compact(g.obstacles)
	g.stickers = compact(g.stickers)
	g.pickups = compact(g.pickups)

	if ended {
		return
	}
	if g.mode == ModeCampaign && g.run.TimeRemaining <= 0 {
		g.run.TimeRemaining = 0
		g.state = StateOutOfTime
		g.outOfTimeTimer = g.cfg.Run.OutOfTimeDisplay
		g.emit(core.EventOutOfTime, "", g.run.Level)
	}
}

// tierUp swaps difficulty and streams without clearing the field.
func (g *Game) tierUp(tier int) {
	next := g.spawner.NextWave()
	g.beginTier(tier)

	chance := g.cfg.Endless.StickerChance
	g.spawner = g.newSpawner(tier, chance)
	g.spawner.Delay(next)
	g.plan = PlanPickups(rng.NewGenerator(g.seeds.Powerups(tier)), levelPickupKinds(g.levelRow(tier)), g.cfg.Endless.TierDuration, g.cfg)
	g.plan.SkipPast(g.tierRemaining())

	g.emit(core.EventTierUp, "", tier)
}

func (g *Game) expireEffects() {
	for _, k := range g.effects.Expire(g.clock) {
		g.emit(core.EventEffectExpired, k.String(), int(k))
	}
}

func (g *Game) movePlayer(dir core.Direction, dt float64) {
	speed := g.cfg.Player.Speed * g.effects.Movement()
	g.player.X += dir.Sign() * speed * dt
	r := g.player.Radius
	g.player.X = core.ClampF(g.player.X, r, g.cfg.Field.Width-r)
}

func (g *Game) collectStickers() {
	for _, s := range g.stickers {
		if !s.Alive() || !core.CircleHit(g.player.X, g.player.Y, g.player.Radius, s.X, s.Y, s.Radius) {
			continue
		}
		s.Collected = true
		s.Active = false

		points := g.cfg.Stickers.Points
		kind := core.EventSticker
		if s.Thick {
			points = g.cfg.Stickers.ThickPoints
			kind = core.EventThickSticker
		}
		points *= g.effects.Multiplier()

		extra := g.run.CollectSticker(points)
		g.emit(kind, "", points)
		if extra {
			g.emit(core.EventExtraLife, "", g.run.Lives)
		}
	}
}

func (g *Game) collectPickups() {
	for _, p := range g.pickups {
		if !p.Alive() || !core.CircleHit(g.player.X, g.player.Y, g.player.Radius, p.X, p.Y, p.Radius) {
			continue
		}
		p.Collected = true
		p.Active = false
		g.effects.Apply(p.Kind, g.clock)
		g.emit(core.EventPickup, p.Kind.String(), int(p.Kind))
	}
}

// checkObstacles resolves at most one obstacle hit per frame. Returns true
// if the hit ended normal play (hit-stop or game over).
func (g *Game) checkObstacles() bool {
	if g.player.Invulnerable > 0 {
		return false
	}
	for _, o := range g.obstacles {
		if !o.Alive() || !o.Hits(g.player.X, g.player.Y, g.player.Radius) {
			continue
		}
		o.Crashed = true
		return g.onCollision()
	}
	return false
}

// onCollision applies a would-be life loss. A shield charge is always spent
// first. Returns true if play stops (hit-stop or game over).
func (g *Game) onCollision() bool {
	if g.effects.ConsumeShield() {
		g.player.Invulnerable = g.cfg.Run.Invulnerability
		g.emit(core.EventShieldHit, "", g.effects.Shield())
		return false
	}

	g.shake = g.cfg.Run.Shake
	if g.run.LoseLife() == 0 {
		g.state = StateGameOver
		g.emit(core.EventGameOver, "", g.run.Score)
		return true
	}

	g.emit(core.EventCollision, "", g.run.Lives)
	g.hitStop = g.cfg.Run.HitStop
	g.failing = true
	return true
}

// tickHitStop runs the freeze. Nothing else moves until it ends.
func (g *Game) tickHitStop(dt float64) {
	g.hitStop -= dt
	if g.hitStop > 0 {
		return
	}
	g.hitStop = 0
	if g.failing {
		g.failing = false
		g.retry()
	}
}

// retry rolls back to the attempt's snapshot and restarts it.
func (g *Game) retry() {
	g.run.Rollback()
	g.effects.ClearTimed()

	if g.state == StateBoss {
		g.startBoss(false)
		return
	}
	if g.mode == ModeCampaign {
		g.run.TimeRemaining = g.cfg.Run.LevelDuration
	}
	g.prepareAttempt()
	g.startCountdown()
}

func (g *Game) resolveOutOfTime() {
	bonus := g.cfg.Run.LevelBonus * g.run.Level
	g.run.AddScore(bonus)
	g.emit(core.EventLevelComplete, "", bonus)

	if g.run.Level < len(g.cfg.Levels) {
		g.beginLevel(g.run.Level + 1)
		return
	}
	g.startBoss(true)
}

// startBoss begins (or restarts) the encounter. A fresh start takes the
// snapshot a boss failure rolls back to.
func (g *Game) startBoss(fresh bool) {
	if fresh {
		g.run.StartLevel(len(g.cfg.Levels) + 1)
		g.run.TakeSnapshot()
	}
	g.effects.ClearTimed()
	g.clearEntities()
	g.player.X = g.cfg.Field.Width / 2
	g.player.Invulnerable = 0

	g.boss = NewBoss(g.cfg, g.seeds.Boss())
	g.state = StateBoss
	g.emit(core.EventBossEnter, g.boss.Name(), 0)
}

func (g *Game) updateBoss(in core.InputFrame, dt float64) {
	if g.hitStop > 0 {
		g.tickHitStop(dt)
		return
	}

	g.clock += dt
	g.expireEffects()
	g.player.Invulnerable = max(0, g.player.Invulnerable-dt)
	g.movePlayer(in.Hold, dt)

	events, won := g.boss.Update(dt)
	for _, ev := range events {
		if ev.Kind == core.EventWaveComplete {
			g.run.AddScore(ev.Value)
		}
		g.events = append(g.events, ev)
	}
	if won {
		g.state = StateWin
		g.emit(core.EventWin, "", g.run.Score)
		return
	}

	if g.player.Invulnerable > 0 {
		return
	}
	if g.boss.Hit(g.player.X, g.player.Y, g.player.Radius) != nil {
		g.onCollision()
	}
}

// startCredits rolls the credits, then returns to the title.
func (g *Game) startCredits() {
	g.state = StateCredits
	g.cutscene.Reset()
	g.sceneLines = g.sceneLines[:0]
	for i, line := range creditLines {
		g.cutscene.Schedule(float64(i)*creditLineGap, func() {
			g.sceneLines = append(g.sceneLines, line)
		})
	}
	g.cutscene.Schedule(float64(len(creditLines)+1)*creditLineGap, func() {
		g.state = StateTitle
	})
	g.cutscene.Advance(0)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Phase:    g.state,
		Score:    g.run.Score,
		Stickers: g.run.RunStickers,
		Level:    g.run.Level,
		Lives:    g.run.Lives,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Won:      g.state == StateWin,
		Paused:   g.paused,
	}
}

// Run returns a copy of the run state.
func (g *Game) Run() RunState { return g.run }

// Player returns a copy of the player.
func (g *Game) Player() Player { return g.player }

// Effects returns the effect manager.
func (g *Game) Effects() *EffectManager { return g.effects }

// Boss returns the boss encounter, or nil outside it.
func (g *Game) Boss() *Boss { return g.boss }

// Clock returns the simulation clock in seconds.
func (g *Game) Clock() float64 { return g.clock }

// Config returns the configuration in use.
func (g *Game) Config() config.GameConfig { return g.cfg }

// Seeds returns the seed derivation in use.
func (g *Game) Seeds() rng.Seeds { return g.seeds }
