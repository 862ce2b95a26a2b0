package astrodash

import (
	"github.com/vovakirdan/astro-dash/internal/config"
	"github.com/vovakirdan/astro-dash/internal/core"
	"github.com/vovakirdan/astro-dash/internal/rng"
)

// BossSlots is the size of the boss's projectile roster.
const BossSlots = 5

// BossPhase is the encounter's sub-state.
type BossPhase int

const (
	BossEntering     BossPhase = iota // Descending to its resting height
	BossArming                        // Rocks descend to the arm line
	BossThrowing                      // Rocks launched on the wave's schedule
	BossWaveComplete                  // Bonus awarded, pausing before the next wave
	BossVictory                       // Falling and spinning off screen
)

// String returns the phase name.
func (p BossPhase) String() string {
	switch p {
	case BossEntering:
		return "entering"
	case BossArming:
		return "arming"
	case BossThrowing:
		return "throwing"
	case BossWaveComplete:
		return "wave_complete"
	case BossVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// throwPattern is how a wave launches its rocks.
type throwPattern int

const (
	patternBatches throwPattern = iota // Two sub-batches from the arm line
	patternRain                        // One slot at a time, sweeping across
	patternChecker                     // Even/odd slots alternating
)

// batchSplit is the first-batch size and the gap before the second batch.
type batchSplit struct {
	first int
	gap   float64
}

// batchSplits is indexed by wave/2 for waves 0-5.
var batchSplits = [...]batchSplit{
	{first: 2, gap: 1.0},
	{first: 3, gap: 0.6},
	{first: 4, gap: 0.4},
}

// checkerGroups are the four drops of a checkerboard wave.
var checkerGroups = [][]int{{0, 2, 4}, {1, 3}, {0, 2, 4}, {1, 3}}

func patternFor(wave int) throwPattern {
	switch {
	case wave < 6:
		return patternBatches
	case wave < 8:
		return patternRain
	default:
		return patternChecker
	}
}

// Boss runs the final encounter: enter, then arm and throw for each wave,
// then fall away. All randomness (batch order, taunts, voice pacing) comes
// from the boss stream, so a retried encounter replays identically.
type Boss struct {
	cfg   config.BossConfig
	field config.FieldConfig
	gen   *rng.Generator

	Phase BossPhase
	Wave  int
	X, Y  float64
	VY    float64
	Angle float64
	Slots [BossSlots]*Projectile

	Blink bool
	Taunt string

	seq         Sequencer
	holdTimer   float64
	blinkTimer  float64
	tauntCount  int
	voiceAt     int
	throwsLeft  int
	wavesDone   int
	bonusTotal  int
	victoryTime float64
	won         bool
	events      []core.Event
}

// NewBoss creates an encounter at the start of its entrance.
func NewBoss(cfg config.GameConfig, seed uint32) *Boss {
	b := &Boss{
		cfg:   cfg.Boss,
		field: cfg.Field,
		gen:   rng.NewGenerator(seed),
		Phase: BossEntering,
		X:     cfg.Field.Width / 2,
		Y:     cfg.Boss.EntryY,
	}
	b.voiceAt = b.drawVoiceThreshold()
	for i := range b.Slots {
		b.Slots[i] = &Projectile{
			Slot:   i,
			X:      b.slotX(i),
			Y:      b.Y,
			Radius: cfg.Boss.ProjectileRadius,
		}
	}
	return b
}

// slotX returns the fixed x of a roster slot.
func (b *Boss) slotX(i int) float64 {
	return b.field.Width * float64(i+1) / float64(BossSlots+1)
}

func (b *Boss) drawVoiceThreshold() int {
	return 2 + b.gen.Intn(2)
}

// WavesDone returns the number of completed waves.
func (b *Boss) WavesDone() int { return b.wavesDone }

// BonusTotal returns the wave bonus awarded so far.
func (b *Boss) BonusTotal() int { return b.bonusTotal }

// Radius returns the boss body radius.
func (b *Boss) Radius() float64 { return b.cfg.Radius }

// Name returns the boss's display name.
func (b *Boss) Name() string { return b.cfg.Name }

// Update advances the encounter by dt. It returns the events raised this
// frame and true exactly once, when the victory fall has finished.
func (b *Boss) Update(dt float64) ([]core.Event, bool) {
	b.events = b.events[:0]

	switch b.Phase {
	case BossEntering:
		b.Y += b.cfg.EntrySpeed * dt
		if b.Y >= b.cfg.RestY {
			b.Y = b.cfg.RestY
			b.beginWave()
		}
	case BossArming:
		b.updateArming(dt)
	case BossThrowing:
		b.seq.Advance(dt)
		b.moveThrown(dt)
		if b.throwsLeft == 0 && !b.anyActive() {
			b.completeWave()
		}
	case BossWaveComplete:
		b.moveThrown(dt)
		b.seq.Advance(dt)
	case BossVictory:
		b.VY += b.cfg.FallAccel * dt
		b.Y += b.VY * dt
		b.Angle += b.cfg.Spin * dt
		b.victoryTime += dt
		if !b.won && b.victoryTime >= b.cfg.VictoryDelay {
			b.won = true
			return b.events, true
		}
	}

	return b.events, false
}

func (b *Boss) emit(kind core.EventKind, text string, value int) {
	b.events = append(b.events, core.Event{Kind: kind, Text: text, Value: value})
}

// beginWave starts the current wave. Rain and checkerboard waves skip arming.
func (b *Boss) beginWave() {
	if patternFor(b.Wave) != patternBatches {
		b.Phase = BossThrowing
		b.scheduleThrows()
		return
	}

	b.Phase = BossArming
	b.holdTimer = 0
	b.blinkTimer = 0
	for i, p := range b.Slots {
		p.X = b.slotX(i)
		p.Y = b.Y + b.cfg.Radius/2
		p.VY = 0
		p.Armed = false
		p.Thrown = false
		p.Active = true
	}
}

func (b *Boss) updateArming(dt float64) {
	allArmed := true
	for _, p := range b.Slots {
		p.Wiggle += dt
		if p.Armed {
			continue
		}
		p.Y += b.cfg.ArmSpeed * dt
		if p.Y >= b.cfg.ArmLineY {
			p.Y = b.cfg.ArmLineY
			p.Armed = true
		} else {
			allArmed = false
		}
	}

	b.blinkTimer += dt
	if b.cfg.BlinkInterval > 0 && b.blinkTimer >= b.cfg.BlinkInterval {
		b.blinkTimer -= b.cfg.BlinkInterval
		b.Blink = !b.Blink
		b.taunt()
	}

	if !allArmed {
		return
	}
	b.holdTimer += dt
	if b.holdTimer >= b.cfg.ArmHold {
		b.Phase = BossThrowing
		b.Blink = false
		b.scheduleThrows()
	}
}

// taunt picks a line and, every two or three taunts, asks for a voice clip.
func (b *Boss) taunt() {
	if len(b.cfg.Taunts) == 0 {
		return
	}
	b.Taunt = b.cfg.Taunts[b.gen.Intn(len(b.cfg.Taunts))]
	b.emit(core.EventBossTaunt, b.Taunt, b.Wave)

	b.tauntCount++
	if b.tauntCount >= b.voiceAt {
		b.emit(core.EventBossVoice, b.Taunt, b.Wave)
		b.tauntCount = 0
		b.voiceAt = b.drawVoiceThreshold()
	}
}

// throwSpeed returns the launch speed for the current wave.
func (b *Boss) throwSpeed() float64 {
	return b.cfg.ThrowSpeed * (1 + b.cfg.ThrowSpeedStep*float64(b.Wave))
}

// scheduleThrows queues the wave's launches and fires the ones due now.
func (b *Boss) scheduleThrows() {
	b.seq.Reset()
	b.throwsLeft = 0

	switch patternFor(b.Wave) {
	case patternBatches:
		split := batchSplits[min(b.Wave/2, len(batchSplits)-1)]
		order := b.gen.Shuffle(BossSlots)
		for i, slot := range order {
			at := 0.0
			if i >= split.first {
				at = split.gap
			}
			b.queueThrow(at, slot, false)
		}
	case patternRain:
		leftToRight := b.Wave%2 == 0
		for i := 0; i < BossSlots; i++ {
			slot := i
			if !leftToRight {
				slot = BossSlots - 1 - i
			}
			b.queueThrow(float64(i)*b.cfg.RainGap, slot, true)
		}
	case patternChecker:
		for k, group := range checkerGroups {
			for _, slot := range group {
				b.queueThrow(float64(k)*b.cfg.CheckerGap, slot, true)
			}
		}
	}

	b.seq.Advance(0)
}

func (b *Boss) queueThrow(at float64, slot int, fromBoss bool) {
	b.throwsLeft++
	b.seq.Schedule(at, func() { b.throw(slot, fromBoss) })
}

// throw launches a slot. Unarmed patterns launch from the boss itself.
func (b *Boss) throw(slot int, fromBoss bool) {
	p := b.Slots[slot]
	if fromBoss {
		p.X = b.slotX(slot)
		p.Y = b.Y + b.cfg.Radius/2
	}
	p.Armed = false
	p.Thrown = true
	p.Active = true
	p.VY = b.throwSpeed()
	b.throwsLeft--
	b.emit(core.EventBossThrow, "", slot)
}

func (b *Boss) moveThrown(dt float64) {
	for _, p := range b.Slots {
		if !p.Active || !p.Thrown {
			continue
		}
		p.Y += p.VY * dt
		p.Spin += 8 * dt
		if p.Y-p.Radius > b.field.Height {
			p.Active = false
			p.Thrown = false
		}
	}
}

func (b *Boss) anyActive() bool {
	for _, p := range b.Slots {
		if p.Active {
			return true
		}
	}
	return false
}

// completeWave awards the bonus and schedules the next wave after a pause.
func (b *Boss) completeWave() {
	b.Phase = BossWaveComplete
	b.wavesDone++
	b.bonusTotal += b.cfg.WaveBonus
	b.emit(core.EventWaveComplete, "", b.cfg.WaveBonus)

	b.seq.Reset()
	b.seq.Schedule(b.cfg.WavePause, func() {
		b.Wave++
		if b.Wave >= b.cfg.Waves {
			b.enterVictory()
			return
		}
		b.beginWave()
	})
}

func (b *Boss) enterVictory() {
	if b.Phase == BossVictory {
		return
	}
	b.Phase = BossVictory
	b.VY = 0
	b.Taunt = ""
	b.Blink = false
	for _, p := range b.Slots {
		p.Active = false
	}
	b.emit(core.EventBossDefeated, b.cfg.Name, b.wavesDone)
}

// Hit returns the first live projectile overlapping the circle, or nil.
func (b *Boss) Hit(x, y, r float64) *Projectile {
	if b.Phase == BossVictory {
		return nil
	}
	for _, p := range b.Slots {
		if p.Active && p.Hits(x, y, r) {
			return p
		}
	}
	return nil
}
