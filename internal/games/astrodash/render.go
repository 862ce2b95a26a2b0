package astrodash

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/astro-dash/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar     = '▲'
	PlayerWingL    = '◢'
	PlayerWingR    = '◣'
	StickerChar    = '✦'
	ThickChar      = '★'
	ProjectileChar = '●'
	CrashedChar    = '*'
	StarChar       = '·'
)

// Asteroid glyphs by sprite index (cycling through)
var AsteroidGlyphs = []rune{'@', '#', '%', '&'}

var titleArt = []string{
	`   _       _               ___          _    `,
	`  /_\  ___| |_ _ _ ___   |   \ __ _ __| |_  `,
	` / _ \(_-<  _| '_/ _ \  | |) / _' (_-< ' \ `,
	`/_/ \_\__/\__|_| \___/  |___/\__,_/__/_||_|`,
}

var bossFace = [2][]string{
	{`/^^^^^\`, `| o o |`, `\_www_/`},
	{`/^^^^^\`, `| - - |`, `\_www_/`},
}

const hudRows = 2

// viewport maps field units to screen cells. Terminal cells are about twice
// as tall as wide, so x gets twice the vertical scale.
type viewport struct {
	box    core.Rect
	ox, oy int
	sx, sy float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	availH := dst.Height() - hudRows - 2
	availW := dst.Width() - 2

	sy := float64(availH) / g.cfg.Field.Height
	if w := g.cfg.Field.Width * sy * 2; w > float64(availW) {
		sy = float64(availW) / (g.cfg.Field.Width * 2)
	}
	sx := sy * 2

	innerW := int(math.Ceil(g.cfg.Field.Width * sx))
	innerH := int(math.Ceil(g.cfg.Field.Height * sy))
	boxX := (dst.Width() - innerW - 2) / 2

	v := viewport{
		box: core.NewRect(boxX, hudRows, innerW+2, innerH+2),
		ox:  boxX + 1,
		oy:  hudRows + 1,
		sx:  sx,
		sy:  sy,
	}
	if g.shake > 0 {
		if g.frame%2 == 0 {
			v.ox++
		} else {
			v.ox--
		}
	}
	return v
}

// cell returns the screen cell for a field point.
func (v viewport) cell(x, y float64) (int, int) {
	return v.ox + int(math.Floor(x*v.sx)), v.oy + int(math.Floor(y*v.sy))
}

// world returns the field point at the centre of a screen cell.
func (v viewport) world(cx, cy int) (float64, float64) {
	return (float64(cx-v.ox) + 0.5) / v.sx, (float64(cy-v.oy) + 0.5) / v.sy
}

// inside reports whether a cell is inside the field area.
func (v viewport) inside(cx, cy int) bool {
	return cx > v.box.X && cx < v.box.Right()-1 && cy > v.box.Y && cy < v.box.Bottom()-1
}

// Render draws the current state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if dst.Width() < 24 || dst.Height() < 14 {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Need 24x14")
		return
	}

	switch g.state {
	case StateTitle:
		g.renderTitle(dst)
		return
	case StateStart, StateCredits:
		g.renderScene(dst)
		return
	}

	g.renderHUD(dst)

	v := g.viewport(dst)
	dst.DrawBox(v.box, core.ColorGray)
	g.renderStars(dst, v)
	g.renderStickers(dst, v)
	g.renderPickups(dst, v)
	g.renderObstacles(dst, v)
	g.renderBoss(dst, v)
	g.renderPlayer(dst, v)

	g.renderOverlay(dst)
}

func (g *Game) renderTitle(dst *core.Screen) {
	top := dst.Height()/2 - len(titleArt) - 2
	for i, line := range titleArt {
		dst.DrawTextCenteredColored(top+i, line, core.ColorBrightCyan)
	}
	y := top + len(titleArt) + 2
	dst.DrawTextCenteredColored(y, g.Title(), core.ColorYellow)
	dst.DrawTextCentered(y+2, "Press ENTER to start")
	dst.DrawTextCenteredColored(y+3, "←/→ steer   P pause   Q quit", core.ColorGray)
}

func (g *Game) renderScene(dst *core.Screen) {
	top := (dst.Height() - len(g.sceneLines)*2) / 2
	for i, line := range g.sceneLines {
		dst.DrawTextCentered(top+i*2, line)
	}
	dst.DrawTextCenteredColored(dst.Height()-1, "ENTER to skip", core.ColorGray)
}

// renderHUD draws score, lives, level and timer, then active effects.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.run.Score))

	hearts := strings.Repeat("♥", g.run.Lives)
	dst.DrawTextCenteredColored(0, hearts, core.ColorRed)

	var right string
	switch {
	case g.state == StateBoss && g.boss != nil:
		right = fmt.Sprintf("BOSS  Wave %d/%d", min(g.boss.Wave+1, g.cfg.Boss.Waves), g.cfg.Boss.Waves)
	case g.mode == ModeEndless:
		right = fmt.Sprintf("Tier %d  %5.1fs", g.run.Tier, g.run.Elapsed)
	default:
		right = fmt.Sprintf("L%d/%d  %4.1fs", g.run.Level, len(g.cfg.Levels), max(0, g.run.TimeRemaining))
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)

	dst.DrawText(1, 1, g.effectsString())
}

func (g *Game) effectsString() string {
	var parts []string
	if kind, left, ok := g.effects.Slot(g.clock); ok {
		parts = append(parts, fmt.Sprintf("%s %.1fs", kind.Label(), left))
	}
	if left, ok := g.effects.TimeEffect(g.clock); ok {
		parts = append(parts, fmt.Sprintf("%s %.1fs", PickupTimeEffect.Label(), left))
	}
	if n := g.effects.Shield(); n > 0 {
		parts = append(parts, fmt.Sprintf("SHIELD x%d", n))
	}
	parts = append(parts, fmt.Sprintf("Stickers: %d", g.run.RunStickers))
	return strings.Join(parts, "  ")
}

// renderStars draws a sparse backdrop that scrolls with the clock.
// glyph returns the sprite's display rune, or fallback without loaded art.
func glyph(key string, fallback rune) rune {
	if sprites == nil {
		return fallback
	}
	return sprites.Glyph(key, fallback)
}

func (g *Game) renderStars(dst *core.Screen, v viewport) {
	innerH := v.box.H - 2
	if innerH <= 0 {
		return
	}
	shift := int(g.clock * 4)
	for i := 0; i < v.box.W-2; i += 7 {
		cy := v.oy + (i*13+shift)%innerH
		cx := v.ox + i
		if v.inside(cx, cy) {
			dst.SetColored(cx, cy, StarChar, core.ColorGray)
		}
	}
}

func (g *Game) renderObstacles(dst *core.Screen, v viewport) {
	for _, o := range g.obstacles {
		if !o.Active {
			continue
		}
		ch := AsteroidGlyphs[o.Sprite%len(AsteroidGlyphs)]
		color := core.ColorWhite
		if o.Big {
			color = core.ColorOrange
		}
		if o.Crashed {
			ch = CrashedChar
			color = core.ColorBrightRed
		}

		ext := o.Extent()
		x0, y0 := v.cell(o.X-ext, o.Y-ext)
		x1, y1 := v.cell(o.X+ext, o.Y+ext)
		drawn := false
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				if !v.inside(cx, cy) {
					continue
				}
				wx, wy := v.world(cx, cy)
				if core.EllipseHit(wx, wy, 0, o.X, o.Y, o.RX, o.RY, o.Angle) {
					dst.SetColored(cx, cy, ch, color)
					drawn = true
				}
			}
		}
		if !drawn {
			if cx, cy := v.cell(o.X, o.Y); v.inside(cx, cy) {
				dst.SetColored(cx, cy, ch, color)
			}
		}
	}
}

func (g *Game) renderStickers(dst *core.Screen, v viewport) {
	for _, s := range g.stickers {
		if !s.Alive() {
			continue
		}
		cx, cy := v.cell(s.X, s.Y)
		if !v.inside(cx, cy) {
			continue
		}
		if s.Thick {
			dst.SetColored(cx, cy, ThickChar, core.ColorBrightYellow)
		} else {
			dst.SetColored(cx, cy, glyph("sticker", StickerChar), core.ColorYellow)
		}
	}
}

func (g *Game) renderPickups(dst *core.Screen, v viewport) {
	for _, p := range g.pickups {
		if !p.Alive() {
			continue
		}
		cx, cy := v.cell(p.X, p.Y)
		if !v.inside(cx, cy) {
			continue
		}
		color := core.ColorCyan
		if int(p.Pulse*4)%2 == 0 {
			color = core.ColorBrightCyan
		}
		dst.SetColored(cx, cy, p.Kind.Glyph(), color)
	}
}

func (g *Game) renderBoss(dst *core.Screen, v viewport) {
	if g.boss == nil || g.state != StateBoss {
		return
	}
	b := g.boss

	face := bossFace[0]
	if b.Blink {
		face = bossFace[1]
	}
	cx, cy := v.cell(b.X, b.Y)
	color := core.ColorMagenta
	if b.Phase == BossVictory && int(b.Angle*2)%2 == 0 {
		color = core.ColorRed
	}
	for i, line := range face {
		row := cy - 1 + i
		x := cx - len(line)/2
		for j, r := range line {
			if v.inside(x+j, row) {
				dst.SetColored(x+j, row, r, color)
			}
		}
	}
	if b.Taunt != "" && b.Phase == BossArming {
		row := cy + 2
		x := cx - len([]rune(b.Taunt))/2
		x = max(v.box.X+1, min(x, v.box.Right()-1-len([]rune(b.Taunt))))
		dst.DrawTextColored(x, row, b.Taunt, core.ColorMagenta)
	}

	for _, p := range b.Slots {
		if !p.Active {
			continue
		}
		px, py := v.cell(p.X, p.Y)
		if p.Armed && int(p.Wiggle*6)%2 == 0 {
			px++
		}
		if v.inside(px, py) {
			dst.SetColored(px, py, glyph("rock", ProjectileChar), core.ColorOrange)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	if g.player.Invulnerable > 0 && g.frame%4 < 2 {
		return // Blink while invulnerable
	}
	color := core.ColorWhite
	if g.effects.Shield() > 0 {
		color = core.ColorBrightCyan
	}
	if g.hitStop > 0 {
		color = core.ColorBrightRed
	}
	cx, cy := v.cell(g.player.X, g.player.Y)
	dst.SetColored(cx-1, cy, PlayerWingL, color)
	dst.SetColored(cx, cy, glyph("player", PlayerChar), color)
	dst.SetColored(cx+1, cy, PlayerWingR, color)
}

// renderOverlay draws the countdown and end-of-phase messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	if g.paused {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
		return
	}

	switch g.state {
	case StateCountdown:
		g.drawCenteredBox(dst, g.countdownText(), "")

	case StateOutOfTime:
		subtitle := fmt.Sprintf("Sector clear  +%d", g.cfg.Run.LevelBonus*g.run.Level)
		g.drawCenteredBox(dst, "OUT OF TIME", subtitle)

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  |  R retry  ENTER title", g.run.Score)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("Final Score: %d  |  ENTER for credits", g.run.Score)
		g.drawCenteredBox(dst, "YOU WIN!", subtitle)

	case StateBoss:
		if g.boss != nil && g.boss.Phase == BossWaveComplete {
			dst.DrawTextCenteredColored(dst.Height()-1, fmt.Sprintf("Wave clear  +%d", g.cfg.Boss.WaveBonus), core.ColorGreen)
		}
	}
}

func (g *Game) countdownText() string {
	switch g.countdownStep {
	case 0:
		if g.mode == ModeEndless {
			return fmt.Sprintf("TIER %d", g.run.Tier)
		}
		return strings.ToUpper(fmt.Sprintf("Sector %d: %s", g.run.Level, g.levelRow(g.run.Level).Name))
	case 1, 2, 3:
		return fmt.Sprintf("%d", 4-g.countdownStep)
	default:
		return "GO!"
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorWhite)

	// Draw text
	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
