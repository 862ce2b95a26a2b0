// Package audio turns simulation events into sound cues. Playing a cue is
// fire-and-forget: nothing here blocks the frame or reports back.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// Player plays a cue, dropping it if the same key played within throttle.
type Player interface {
	Play(key string, throttle time.Duration)
}

// Sink is where accepted cues end up.
type Sink interface {
	Emit(key string)
}

// Throttled is a Player that rate-limits each key before handing it to a sink.
type Throttled struct {
	mu   sync.Mutex
	sink Sink
	last map[string]time.Time
	now  func() time.Time
}

// NewThrottled creates a throttled player over sink.
func NewThrottled(sink Sink) *Throttled {
	return &Throttled{
		sink: sink,
		last: make(map[string]time.Time),
		now:  time.Now,
	}
}

// Play implements Player.
func (t *Throttled) Play(key string, throttle time.Duration) {
	t.mu.Lock()
	now := t.now()
	if prev, ok := t.last[key]; ok && throttle > 0 && now.Sub(prev) < throttle {
		t.mu.Unlock()
		return
	}
	t.last[key] = now
	t.mu.Unlock()

	t.sink.Emit(key)
}

// Nop discards every cue.
type Nop struct{}

// Play implements Player.
func (Nop) Play(string, time.Duration) {}

// BellSink rings the terminal bell for a small set of loud cues.
type BellSink struct {
	w    io.Writer
	keys map[string]bool
}

// DefaultBellKeys are the cues worth interrupting the player for.
var DefaultBellKeys = []string{"collision", "extra_life", "game_over", "win"}

// NewBellSink writes BEL to w for the given keys.
func NewBellSink(w io.Writer, keys ...string) *BellSink {
	if len(keys) == 0 {
		keys = DefaultBellKeys
	}
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return &BellSink{w: w, keys: set}
}

// Emit implements Sink.
func (b *BellSink) Emit(key string) {
	if !b.keys[key] {
		return
	}
	//nolint:errcheck // Best-effort bell
	b.w.Write([]byte{'\a'})
}

// LogSink records cues at debug level.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink over logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit implements Sink.
func (l *LogSink) Emit(key string) {
	l.logger.Debug("cue", "key", key)
}

// MultiSink fans a cue out to several sinks.
type MultiSink []Sink

// Emit implements Sink.
func (m MultiSink) Emit(key string) {
	for _, s := range m {
		s.Emit(key)
	}
}

// Cue is the sound an event maps to.
type Cue struct {
	Key      string
	Throttle time.Duration
}

// Cues maps event kinds to sounds. Events not listed are silent.
var Cues = map[core.EventKind]Cue{
	core.EventCountdownTick: {Key: "countdown_tick"},
	core.EventCountdownGo:   {Key: "countdown_go"},
	core.EventCollision:     {Key: "collision", Throttle: 250 * time.Millisecond},
	core.EventShieldHit:     {Key: "shield_hit", Throttle: 250 * time.Millisecond},
	core.EventSticker:       {Key: "sticker", Throttle: 60 * time.Millisecond},
	core.EventThickSticker:  {Key: "thick_sticker"},
	core.EventPickup:        {Key: "pickup"},
	core.EventTierUp:        {Key: "tier_up"},
	core.EventExtraLife:     {Key: "extra_life"},
	core.EventBossVoice:     {Key: "boss_voice", Throttle: 2 * time.Second},
	core.EventBossThrow:     {Key: "boss_throw", Throttle: 100 * time.Millisecond},
	core.EventGameOver:      {Key: "game_over"},
	core.EventWin:           {Key: "win"},
}

// Dispatch plays the cue for every event that has one.
func Dispatch(p Player, events []core.Event) {
	for _, ev := range events {
		if cue, ok := Cues[ev.Kind]; ok {
			p.Play(cue.Key, cue.Throttle)
		}
	}
}
