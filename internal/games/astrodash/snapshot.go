package astrodash

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// Snapshot contains the observable run state for determinism checks.
// Entity data is flattened to float slices in a fixed field order.
type Snapshot struct {
	Frame    uint64
	Clock    float64
	State    string
	Mode     int
	Score    int
	Lives    int
	Level    int
	Tier     int
	Stickers int // Run counter
	Ever     int // Never rolled back
	Shield   int
	Mult     int
	PlayerX  float64
	Remain   float64
	Elapsed  float64
	NextWave float64

	// Each obstacle is 6 floats: X, Y, RX, RY, Angle, Crashed
	ObstacleData []float64
	// Each sticker is 3 floats: X, Y, Thick
	StickerData []float64
	// Each pickup is 3 floats: Kind, X, Y
	PickupData []float64

	BossPhase int
	BossWave  int
	BossY     float64
	// Each slot is 4 floats: X, Y, Active, Thrown
	SlotData []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:    g.frame,
		Clock:    g.clock,
		State:    g.state,
		Mode:     int(g.mode),
		Score:    g.run.Score,
		Lives:    g.run.Lives,
		Level:    g.run.Level,
		Tier:     g.run.Tier,
		Stickers: g.run.RunStickers,
		Ever:     g.run.StickersEver,
		Shield:   g.effects.Shield(),
		Mult:     g.effects.Multiplier(),
		PlayerX:  g.player.X,
		Remain:   g.run.TimeRemaining,
		Elapsed:  g.run.Elapsed,
	}
	if g.spawner != nil {
		snap.NextWave = g.spawner.NextWave()
	}

	snap.ObstacleData = make([]float64, 0, len(g.obstacles)*6)
	for _, o := range g.obstacles {
		snap.ObstacleData = append(snap.ObstacleData, o.X, o.Y, o.RX, o.RY, o.Angle, boolFloat(o.Crashed))
	}
	snap.StickerData = make([]float64, 0, len(g.stickers)*3)
	for _, s := range g.stickers {
		snap.StickerData = append(snap.StickerData, s.X, s.Y, boolFloat(s.Thick))
	}
	snap.PickupData = make([]float64, 0, len(g.pickups)*3)
	for _, p := range g.pickups {
		snap.PickupData = append(snap.PickupData, float64(p.Kind), p.X, p.Y)
	}

	if g.boss != nil {
		snap.BossPhase = int(g.boss.Phase)
		snap.BossWave = g.boss.Wave
		snap.BossY = g.boss.Y
		for _, p := range g.boss.Slots {
			snap.SlotData = append(snap.SlotData, p.X, p.Y, boolFloat(p.Active), boolFloat(p.Thrown))
		}
	}
	return snap
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Hash returns an FNV-64a hash over a canonical little-endian encoding.
// Two runs with the same seed and inputs give the same hash.
func (snap Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	putI := func(v int) { putU(uint64(int64(v))) } //#nosec G115 -- hash input
	putF := func(v float64) { putU(math.Float64bits(v)) }
	putFs := func(vs []float64) {
		putI(len(vs))
		for _, v := range vs {
			putF(v)
		}
	}

	putU(snap.Frame)
	putF(snap.Clock)
	putI(len(snap.State))
	_, _ = h.Write([]byte(snap.State))
	for _, v := range []int{snap.Mode, snap.Score, snap.Lives, snap.Level, snap.Tier, snap.Stickers, snap.Ever, snap.Shield, snap.Mult} {
		putI(v)
	}
	for _, v := range []float64{snap.PlayerX, snap.Remain, snap.Elapsed, snap.NextWave} {
		putF(v)
	}
	putFs(snap.ObstacleData)
	putFs(snap.StickerData)
	putFs(snap.PickupData)
	putI(snap.BossPhase)
	putI(snap.BossWave)
	putF(snap.BossY)
	putFs(snap.SlotData)

	return h.Sum64()
}
