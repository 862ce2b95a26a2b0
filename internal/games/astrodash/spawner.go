package astrodash

import (
	"math"

	"github.com/vovakirdan/astro-dash/internal/config"
	"github.com/vovakirdan/astro-dash/internal/rng"
)

// Spawner produces obstacle waves and stickers for one level (or endless
// tier) from two independent streams. It keeps no state beyond its streams
// and the wave timer; callers own the entities it returns.
type Spawner struct {
	obstacles *rng.Generator
	stickers  *rng.Generator

	field         config.FieldConfig
	shapes        config.ObstacleConfig
	stick         config.StickerConfig
	stickerChance float64

	nextWave float64 // Seconds until the next wave
	started  bool
}

// NewSpawner creates a spawner over the given stream seeds.
// stickerChance is the per-wave sticker probability for the mode.
func NewSpawner(cfg config.GameConfig, obstacleSeed, stickerSeed uint32, stickerChance float64) *Spawner {
	return &Spawner{
		obstacles:     rng.NewGenerator(obstacleSeed),
		stickers:      rng.NewGenerator(stickerSeed),
		field:         cfg.Field,
		shapes:        cfg.Obstacles,
		stick:         cfg.Stickers,
		stickerChance: stickerChance,
	}
}

// SetShapes overrides obstacle radii, e.g. from sprite sizes.
func (s *Spawner) SetShapes(shapes config.ObstacleConfig) {
	s.shapes = shapes
}

// SetStickerRadius overrides the sticker radius.
func (s *Spawner) SetStickerRadius(r float64) {
	s.stick.Radius = r
}

// NextWave returns the seconds left until the next wave.
func (s *Spawner) NextWave() float64 {
	return s.nextWave
}

// Update counts the wave timer down by dt and spawns a wave when it runs out.
// The first wave comes on the first call.
func (s *Spawner) Update(dt float64, d config.Difficulty) ([]*Obstacle, *Sticker) {
	if s.started {
		s.nextWave -= dt
		if s.nextWave > 0 {
			return nil, nil
		}
	}
	s.started = true

	wave := s.SpawnWave(d)
	s.nextWave += s.obstacles.Range(d.SpawnMin, d.SpawnMax)
	if s.nextWave < 0 {
		s.nextWave = 0
	}
	return wave, s.SpawnSticker()
}

// SpawnObstacle creates one obstacle above the field at a random x.
// Draw order: x, big, sprite, rotation.
func (s *Spawner) SpawnObstacle(d config.Difficulty) *Obstacle {
	margin := s.shapes.Margin
	x := s.obstacles.Range(margin, s.field.Width-margin)
	return s.shapeObstacle(x, d)
}

// SpawnWave creates one obstacle and, on a double roll, a second one offset
// to a random side. Draw order after the first obstacle: double roll, side,
// distance, then the second obstacle's big, sprite, rotation.
func (s *Spawner) SpawnWave(d config.Difficulty) []*Obstacle {
	first := s.SpawnObstacle(d)
	wave := []*Obstacle{first}

	if !s.obstacles.Chance(d.DoubleSpawnChance) {
		return wave
	}

	side := 1.0
	if s.obstacles.Chance(0.5) {
		side = -1
	}
	dist := s.obstacles.Range(s.shapes.DoubleOffsetMin, s.shapes.DoubleOffsetMax)

	x := first.X + side*dist
	margin := s.shapes.Margin
	if x < margin || x > s.field.Width-margin {
		x = first.X - side*dist // Mirror if it would leave the field
	}
	x = math.Max(margin, math.Min(s.field.Width-margin, x))

	second := s.shapeObstacle(x, d)
	second.Y -= second.RY // Stagger so the pair is not a flat wall
	return append(wave, second)
}

func (s *Spawner) shapeObstacle(x float64, d config.Difficulty) *Obstacle {
	big := s.obstacles.Chance(d.BigObstacleChance)
	sprites := s.shapes.Sprites
	if sprites < 1 {
		sprites = 1
	}
	sprite := s.obstacles.Intn(sprites)
	angle := s.obstacles.Range(0, 2*math.Pi)

	rx, ry := s.shapes.RadiusX, s.shapes.RadiusY
	if big {
		rx *= s.shapes.BigScale
		ry *= s.shapes.BigScale
	}

	return &Obstacle{
		X:      x,
		Y:      -math.Max(rx, ry),
		RX:     rx,
		RY:     ry,
		Angle:  angle,
		Sprite: sprite,
		Big:    big,
		Active: true,
	}
}

// SpawnSticker rolls for a sticker. Returns nil when the roll fails.
// Draw order: spawn roll, thick roll, then x (thick: edge side, then band offset).
func (s *Spawner) SpawnSticker() *Sticker {
	if !s.stickers.Chance(s.stickerChance) {
		return nil
	}
	thick := s.stickers.Chance(s.stick.ThickChance)
	r := s.stick.Radius

	var x float64
	if thick {
		band := math.Max(s.stick.EdgeBand-r, 0)
		offset := s.stickers.Range(0, band)
		if s.stickers.Chance(0.5) {
			x = r + offset
		} else {
			x = s.field.Width - r - offset
		}
	} else {
		x = s.stickers.Range(r, s.field.Width-r)
	}

	return &Sticker{
		X:      x,
		Y:      -r - s.shapes.RadiusY*2, // Trails the wave so it is not buried in it
		Radius: r,
		Thick:  thick,
		Active: true,
	}
}

// Delay sets the time to the next wave, skipping the immediate first wave.
func (s *Spawner) Delay(seconds float64) {
	s.started = true
	s.nextWave = max(0, seconds)
}
