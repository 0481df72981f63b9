package session

import (
	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/invaders"
)

// DefaultHoldMs is how long a key press keeps acting as a held key.
// Terminals deliver presses and auto-repeats, never releases.
const DefaultHoldMs = 150.0

// Intent is what the player wants this frame.
type Intent struct {
	Dir  int // -1 left, +1 right, 0 still
	Fire bool
}

// Controller turns discrete key presses into held movement and fire.
type Controller struct {
	holdMs float64
	left   float64 // ms of hold remaining
	right  float64
	fire   float64
}

// NewController creates a controller with the given hold window.
func NewController(holdMs float64) *Controller {
	return &Controller{holdMs: holdMs}
}

// Reset releases every held key.
func (c *Controller) Reset() {
	c.left, c.right, c.fire = 0, 0, 0
}

// Update registers this frame's presses and returns the active intent.
// Opposite directions cancel the older one.
func (c *Controller) Update(in core.InputFrame, elapsedMs float64) Intent {
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	switch {
	case left && right:
		c.left, c.right = 0, 0
	case left:
		c.left, c.right = c.holdMs, 0
	case right:
		c.right, c.left = c.holdMs, 0
	}
	if in.Has(core.ActionFire) {
		c.fire = c.holdMs
	}

	var intent Intent
	if c.left > 0 {
		intent.Dir--
	}
	if c.right > 0 {
		intent.Dir++
	}
	intent.Fire = c.fire > 0

	c.left = max(c.left-elapsedMs, 0)
	c.right = max(c.right-elapsedMs, 0)
	c.fire = max(c.fire-elapsedMs, 0)
	return intent
}

// MoveCommand builds the MovePlayer for a direction, keeping the ship
// inside [0, width-player.width].
func MoveCommand(p invaders.Player, dir int, s invaders.Settings, elapsedMs float64) invaders.MovePlayer {
	x := p.X + float64(dir)*s.PlayerSpeed*elapsedMs/1000
	x = core.ClampF(x, 0, max(s.Playfield.Width-p.Width, 0))
	return invaders.MovePlayer{X: x, Y: p.Y}
}

// RefitCommand puts the ship back on its resting row for s and pulls it
// inside the playfield horizontally. Used after the layout changes mid-run.
func RefitCommand(p invaders.Player, s invaders.Settings) invaders.MovePlayer {
	x := core.ClampF(p.X, 0, max(s.Playfield.Width-p.Width, 0))
	return invaders.MovePlayer{X: x, Y: invaders.ShipY(s)}
}
