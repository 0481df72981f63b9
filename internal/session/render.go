package session

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/invaders"
)

// Glyphs
const (
	PlayerGlyph    = 'A'
	ChickenGlyph   = 'W'
	BossGlyph      = 'M'
	BulletGlyph    = '|'
	EggGlyph       = 'o'
	ExplosionGlyph = '*'
	SeparatorGlyph = '─'
)

var powerUpGlyphs = map[invaders.PowerUpType]rune{
	invaders.SpreadShot: 'S',
	invaders.RapidFire:  'R',
	invaders.Shield:     'O',
	invaders.DamageUp:   'D',
}

var powerUpColors = map[invaders.PowerUpType]core.Color{
	invaders.SpreadShot: core.ColorSpreadShot,
	invaders.RapidFire:  core.ColorRapidFire,
	invaders.Shield:     core.ColorShield,
	invaders.DamageUp:   core.ColorDamageUp,
}

// Render draws the current state.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()

	if s.layout.TooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	s.renderHUD(dst)
	if s.data.Phase == invaders.PhaseMenu {
		s.renderMenu(dst)
		return
	}

	s.renderChickens(dst)
	s.renderProjectiles(dst)
	s.renderPowerUps(dst)
	s.renderExplosions(dst)
	s.renderPlayer(dst)
	s.renderOverlay(dst)
}

func (s *Session) renderHUD(dst *core.Screen) {
	d := s.data
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", d.Score))

	lives := fmt.Sprintf("Lives: %s", strings.Repeat("♥", max(d.Player.Lives, 0)))
	dst.DrawTextColored((dst.Width()-len([]rune(lives)))/2, 0, lives, core.ColorLives)

	wave := fmt.Sprintf("Wave: %d", d.Wave)
	if s.machine != nil && s.machine.MaxWave() > 0 {
		wave = fmt.Sprintf("Wave: %d/%d", d.Wave, s.machine.MaxWave())
	}
	right := fmt.Sprintf("%s  Best: %d", wave, d.HighScore)
	dst.DrawText(dst.Width()-len(right)-1, 0, right)

	if effects := powerUpStatus(d.ActivePowerUps); effects != "" {
		dst.DrawTextColored(1, 1, effects, core.ColorStatus)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), SeparatorGlyph)
}

// powerUpStatus lists active power-ups with whole seconds remaining.
func powerUpStatus(active invaders.ActivePowerUps) string {
	var parts []string
	for _, t := range invaders.PowerUpTypes {
		if !active.Has(t) {
			continue
		}
		secs := int(active.Remaining(t)+999) / 1000
		parts = append(parts, fmt.Sprintf("%s(%ds)", t, secs))
	}
	return strings.Join(parts, " ")
}

func (s *Session) renderChickens(dst *core.Screen) {
	for _, c := range s.data.Chickens {
		glyph, color := ChickenGlyph, core.ColorChicken
		if c.MaxHP >= invaders.BossHP {
			glyph, color = BossGlyph, core.ColorBoss
			if c.HP*2 <= c.MaxHP {
				color = core.ColorBossWounded
			}
		} else if c.Row%2 == 1 {
			color = core.ColorChickenAlt
		}
		s.fillEntity(dst, c.Entity, glyph, color)
	}
}

func (s *Session) renderProjectiles(dst *core.Screen) {
	for _, b := range s.data.Bullets {
		color := core.ColorBullet
		if b.Damage > 1 {
			color = core.ColorHeavyBullet
		}
		s.setPoint(dst, b.CenterX(), b.CenterY(), BulletGlyph, color)
	}
	for _, e := range s.data.Eggs {
		s.setPoint(dst, e.CenterX(), e.CenterY(), EggGlyph, core.ColorEgg)
	}
}

func (s *Session) renderPowerUps(dst *core.Screen) {
	for _, p := range s.data.PowerUps {
		s.setPoint(dst, p.CenterX(), p.CenterY(), powerUpGlyphs[p.Type], powerUpColors[p.Type])
	}
}

func (s *Session) renderExplosions(dst *core.Screen) {
	for _, e := range s.data.Explosions {
		color := core.ColorExplosion
		if e.Duration < e.MaxDuration/2 {
			color = core.ColorSmoke
		}
		s.setPoint(dst, e.CenterX(), e.CenterY(), ExplosionGlyph, color)
	}
}

func (s *Session) renderPlayer(dst *core.Screen) {
	color := core.ColorShip
	if s.data.Player.Shield {
		color = core.ColorShipShielded
	}
	s.fillEntity(dst, s.data.Player.Entity, PlayerGlyph, color)
}

func (s *Session) renderMenu(dst *core.Screen) {
	lines := []string{
		s.Title(),
		"",
		"←/→ or A/D move   SPACE fire   P pause",
		"",
		"Press ENTER or SPACE to start",
	}
	top := (dst.Height() - len(lines)) / 2
	for i, line := range lines {
		dst.DrawTextCentered(top+i, line)
	}
	title := lines[0]
	dst.DrawTextColored((dst.Width()-len([]rune(title)))/2, top, title, core.ColorTitle)
}

func (s *Session) renderOverlay(dst *core.Screen) {
	switch s.data.Phase {
	case invaders.PhasePaused:
		drawCenteredBox(dst, "PAUSED", "P to resume  |  B to give up")
	case invaders.PhaseGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  Wave: %d  |  Press R to restart", s.data.Score, s.data.Wave))
	case invaders.PhaseVictory:
		drawCenteredBox(dst, "VICTORY!", fmt.Sprintf("Final Score: %d  |  Press R to restart", s.data.Score))
	}
}

// fillEntity paints every cell an entity covers, clipped to the playfield.
func (s *Session) fillEntity(dst *core.Screen, e invaders.Entity, glyph rune, color core.Color) {
	x, y, w, h := s.layout.CellRect(e)
	for cy := y; cy < y+h; cy++ {
		if cy < s.layout.FieldTop {
			continue
		}
		for cx := x; cx < x+w; cx++ {
			dst.SetColored(cx, cy, glyph, color)
		}
	}
}

func (s *Session) setPoint(dst *core.Screen, px, py float64, glyph rune, color core.Color) {
	y := s.layout.CellY(py)
	if y < s.layout.FieldTop {
		return
	}
	dst.SetColored(s.layout.CellX(px), y, glyph, color)
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	boxW := max(len(title), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ')
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorTitle)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
