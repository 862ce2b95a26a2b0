package rng

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects where the base seed comes from.
type Mode int

const (
	ModeStatic Mode = iota // configured fixed seed
	ModeDaily              // same layout for everyone on a calendar day (UTC)
	ModeWeekly             // same layout for an ISO week
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDaily:
		return "daily"
	case ModeWeekly:
		return "weekly"
	default:
		return "static"
	}
}

// ParseMode parses a --seed-mode value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "static":
		return ModeStatic, nil
	case "daily":
		return ModeDaily, nil
	case "weekly":
		return ModeWeekly, nil
	default:
		return ModeStatic, fmt.Errorf("rng: unknown seed mode %q (want static, daily or weekly)", s)
	}
}

// Seeds derives every per-level stream seed from one base seed and a tag.
type Seeds struct {
	Mode Mode
	Base uint32
	Tag  string
}

// NewSeeds resolves the base seed and tag for a mode. staticBase and tag are
// used as-is in static mode; daily and weekly modes hash the date and suffix
// the tag with it so pickup streams follow the same calendar key.
func NewSeeds(mode Mode, staticBase uint32, tag string, now time.Time) Seeds {
	now = now.UTC()
	switch mode {
	case ModeDaily:
		day := now.Format("2006-01-02")
		return Seeds{Mode: mode, Base: HashToSeed("daily:" + day), Tag: tag + "-" + day}
	case ModeWeekly:
		year, week := now.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		return Seeds{Mode: mode, Base: HashToSeed("weekly:" + key), Tag: tag + "-" + key}
	default:
		return Seeds{Mode: ModeStatic, Base: staticBase, Tag: tag}
	}
}

// LevelSeed is the obstacle stream seed: base*37 + level, wrapping at 32 bits.
func LevelSeed(base uint32, level int) uint32 {
	return base*37 + uint32(level) //#nosec G115 -- level numbers are small and positive
}

// Level returns the obstacle stream seed for a level (or endless tier).
func (s Seeds) Level(level int) uint32 {
	return LevelSeed(s.Base, level)
}

// Stickers returns the sticker stream seed for a level.
func (s Seeds) Stickers(level int) uint32 {
	return HashToSeed(fmt.Sprintf("%d:Stickers", s.Level(level)))
}

// Powerups returns the pickup-plan stream seed for a level.
func (s Seeds) Powerups(level int) uint32 {
	return HashToSeed(fmt.Sprintf("%s:Level%d", s.Tag, level))
}

// Boss returns the boss encounter stream seed.
func (s Seeds) Boss() uint32 {
	return HashToSeed(s.Tag + ":Boss")
}
