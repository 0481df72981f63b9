package session

import (
	"math"

	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/invaders"
)

// dodgeWindow is how far above the ship an egg has to be before the
// autopilot steps aside, in px.
const dodgeWindow = 120.0

// Autopilot picks input for a headless run: start from the menu, dodge
// eggs that are about to land on the ship, otherwise chase the lowest
// chicken and keep firing.
func Autopilot(d invaders.GameData) core.InputFrame {
	in := core.NewInputFrame()

	switch d.Phase {
	case invaders.PhaseMenu:
		in.Set(core.ActionConfirm)
		return in
	case invaders.PhasePlaying:
	default:
		return in
	}

	in.Set(core.ActionFire)
	p := d.Player
	if dir := dodge(p, d.Eggs); dir != 0 {
		setDir(&in, dir)
		return in
	}

	target, ok := lowestChicken(d.Chickens)
	if !ok {
		return in
	}
	if dx := target.CenterX() - p.CenterX(); math.Abs(dx) > p.Width/4 {
		setDir(&in, int(math.Copysign(1, dx)))
	}
	return in
}

// dodge returns the direction away from the nearest threatening egg, or 0.
func dodge(p invaders.Player, eggs []invaders.Bullet) int {
	for _, e := range eggs {
		above := p.Y - (e.Y + e.Height)
		if above < 0 || above > dodgeWindow {
			continue
		}
		if e.X+e.Width < p.X || e.X > p.X+p.Width {
			continue
		}
		if e.CenterX() < p.CenterX() {
			return 1
		}
		return -1
	}
	return 0
}

func lowestChicken(chickens []invaders.Chicken) (invaders.Chicken, bool) {
	if len(chickens) == 0 {
		return invaders.Chicken{}, false
	}
	best := chickens[0]
	for _, c := range chickens[1:] {
		if c.Y > best.Y {
			best = c
		}
	}
	return best, true
}

func setDir(in *core.InputFrame, dir int) {
	if dir < 0 {
		in.Set(core.ActionLeft)
	} else {
		in.Set(core.ActionRight)
	}
}
