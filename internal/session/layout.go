package session

import (
	"math"

	"github.com/vovakirdan/chicken-invaders/internal/config"
	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/invaders"
)

// HUD and minimum terminal size, in cells.
const (
	HUDRows    = 2
	MinScreenW = 30
	MinScreenH = 12
)

// Layout maps a terminal viewport onto the simulation playfield.
// The playfield is measured in pixels; every cell covers a fixed
// number of them until the configured bounds clamp the playfield, after
// which cells stretch to fit.
type Layout struct {
	ScreenW   int
	ScreenH   int
	FieldTop  int // first screen row of the playfield
	FieldRows int
	TooSmall  bool

	// Settings holds the base tuning for this viewport, before difficulty
	// scaling.
	Settings invaders.Settings
}

// NewLayout derives the playfield and per-frame settings for a screen size.
func NewLayout(cfg config.InvadersConfig, screenW, screenH int) Layout {
	l := Layout{
		ScreenW:   screenW,
		ScreenH:   screenH,
		FieldTop:  HUDRows,
		FieldRows: max(screenH-HUDRows, 1),
		TooSmall:  screenW < MinScreenW || screenH < MinScreenH,
	}

	pf := cfg.Playfield
	width := core.ClampF(float64(screenW)*pf.CellWidth, pf.MinWidth, pf.MaxWidth)
	height := core.ClampF(float64(l.FieldRows)*pf.CellHeight, pf.MinHeight, pf.MaxHeight)
	scale := math.Min(width/pf.BaseWidth, height/pf.BaseHeight)

	cols := int(math.Floor(width / cfg.Gameplay.ColumnWidth))
	cols = max(min(cols, cfg.Gameplay.MaxChickenCols), 1)

	l.Settings = invaders.Settings{
		Playfield:    invaders.Size{Width: width, Height: height},
		PlayerSpeed:  cfg.Speeds.Player * scale,
		BulletSpeed:  cfg.Speeds.Bullet * scale,
		ChickenSpeed: cfg.Speeds.Chicken * scale,
		EggSpeed:     cfg.Speeds.Egg * scale,
		FireRate:     cfg.Speeds.FireRate,
		ChickenRows:  cfg.Gameplay.ChickenRows,
		ChickenCols:  cols,
	}
	return l
}

// CellX converts a playfield x coordinate to a screen column.
func (l Layout) CellX(px float64) int {
	return int(math.Floor(px * float64(l.ScreenW) / l.Settings.Playfield.Width))
}

// CellY converts a playfield y coordinate to a screen row.
func (l Layout) CellY(py float64) int {
	return l.FieldTop + int(math.Floor(py*float64(l.FieldRows)/l.Settings.Playfield.Height))
}

// CellRect returns the screen cells covered by an entity. Every entity
// occupies at least one cell.
func (l Layout) CellRect(e invaders.Entity) (x, y, w, h int) {
	x, y = l.CellX(e.X), l.CellY(e.Y)
	x2 := l.CellX(e.X + e.Width)
	y2 := l.CellY(e.Y + e.Height)
	return x, y, max(x2-x, 1), max(y2-y, 1)
}
