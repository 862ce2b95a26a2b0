package core

// EventKind identifies something the simulation did during a frame.
// The platform turns these into sound cues and status text; nothing it does
// with them is ever read back by the simulation.
type EventKind int

const (
	EventCountdownTick EventKind = iota // 3, 2, 1
	EventCountdownGo
	EventCollision     // life lost
	EventShieldHit     // shield charge consumed
	EventSticker       // sticker collected
	EventThickSticker  // rare sticker collected
	EventPickup        // powerup collected
	EventEffectExpired // timed effect ended
	EventTierUp        // endless difficulty step
	EventExtraLife
	EventOutOfTime
	EventLevelComplete
	EventBossEnter
	EventBossTaunt
	EventBossVoice
	EventBossThrow
	EventWaveComplete
	EventBossDefeated
	EventGameOver
	EventWin
)

var eventNames = map[EventKind]string{
	EventCountdownTick: "countdown_tick",
	EventCountdownGo:   "countdown_go",
	EventCollision:     "collision",
	EventShieldHit:     "shield_hit",
	EventSticker:       "sticker",
	EventThickSticker:  "thick_sticker",
	EventPickup:        "pickup",
	EventEffectExpired: "effect_expired",
	EventTierUp:        "tier_up",
	EventExtraLife:     "extra_life",
	EventOutOfTime:     "out_of_time",
	EventLevelComplete: "level_complete",
	EventBossEnter:     "boss_enter",
	EventBossTaunt:     "boss_taunt",
	EventBossVoice:     "boss_voice",
	EventBossThrow:     "boss_throw",
	EventWaveComplete:  "wave_complete",
	EventBossDefeated:  "boss_defeated",
	EventGameOver:      "game_over",
	EventWin:           "win",
}

// String returns the stable key used for cue lookup and logging.
func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a single thing that happened in a frame.
type Event struct {
	Kind  EventKind
	Text  string // Optional detail (taunt line, pickup name)
	Value int    // Optional amount (points awarded, tier reached)
}
