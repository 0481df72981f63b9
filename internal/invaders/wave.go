package invaders

import (
	"math"
	"slices"
)

// Wave tuning.
const (
	BaseMoveInterval = 1200.0 // ms between formation steps at speed 1, wave 1
	BaseEggInterval  = 3000.0 // ms between egg drops at wave 1
	DifficultyStep   = 0.15   // per-wave speedup
	BossWaveEvery    = 5
	MaxGridRows      = 6
	EggTargetPool    = 3 // nearest chickens considered for an egg drop
)

// Difficulty returns the wave multiplier. It shrinks intervals, never step sizes.
func Difficulty(wave int) float64 {
	return 1 + float64(wave-1)*DifficultyStep
}

// Director owns formation layout, movement, egg drops and wave advancement.
type Director struct {
	factory *Factory
	rng     Source
}

// NewDirector creates a director using the given factory and source.
func NewDirector(factory *Factory, rng Source) *Director {
	return &Director{factory: factory, rng: rng}
}

// MoveInterval returns the ms between formation steps.
func MoveInterval(s Settings, wave int) float64 {
	return BaseMoveInterval / (s.ChickenSpeed * Difficulty(wave))
}

// EggInterval returns the ms between egg drops.
func EggInterval(wave int) float64 {
	return BaseEggInterval / Difficulty(wave)
}

// FormationMargin is the distance from either side wall that triggers a reversal.
func FormationMargin(s Settings) float64 {
	return math.Max(30, s.Playfield.Width*0.05)
}

// FormationStepX is the horizontal distance of one formation step.
func FormationStepX(s Settings) float64 {
	return math.Max(15, s.Playfield.Width*0.02)
}

// FormationStepDown is the drop applied on each reversal.
func FormationStepDown(s Settings) float64 {
	return math.Max(15, s.Playfield.Height*0.025)
}

// GridOrigin returns the top-left corner of a fresh chicken grid.
func GridOrigin(s Settings) (float64, float64) {
	return math.Max(50, s.Playfield.Width*0.1), math.Max(80, s.Playfield.Height*0.15)
}

// FormationBounds returns the left and right extent of the living chickens.
// An empty formation yields (0, 0).
func FormationBounds(chickens []Chicken) (left, right float64) {
	if len(chickens) == 0 {
		return 0, 0
	}
	left, right = math.Inf(1), math.Inf(-1)
	for _, c := range chickens {
		left = math.Min(left, c.X)
		right = math.Max(right, c.X+c.Width)
	}
	return left, right
}

// StepFormation advances the move timer and, once it reaches the interval,
// performs exactly one formation step. Returns true when a step happened.
func (d *Director) StepFormation(data *GameData, s Settings, elapsedMs float64) bool {
	data.MoveTimer += elapsedMs
	if data.MoveTimer < MoveInterval(s, data.Wave) {
		return false
	}
	data.MoveTimer = 0

	left, right := FormationBounds(data.Chickens)
	margin := FormationMargin(s)

	if (data.Direction > 0 && right >= s.Playfield.Width-margin) ||
		(data.Direction < 0 && left <= margin) {
		data.Direction = -data.Direction
		dy := FormationStepDown(s)
		for i := range data.Chickens {
			data.Chickens[i].Y += dy
		}
		return true
	}

	// A step never carries the formation past a margin; the following step
	// then sees the edge and reverses.
	var dx float64
	if data.Direction > 0 {
		dx = math.Min(FormationStepX(s), s.Playfield.Width-margin-right)
	} else {
		dx = -math.Min(FormationStepX(s), left-margin)
	}
	for i := range data.Chickens {
		data.Chickens[i].X += dx
	}
	return true
}

// DropEgg advances the egg timer and, once it reaches the interval, drops an
// egg from one of the chickens nearest the player. Returns true when an egg
// was spawned.
func (d *Director) DropEgg(data *GameData, s Settings, elapsedMs float64) bool {
	data.EggTimer += elapsedMs
	if data.EggTimer < EggInterval(data.Wave) {
		return false
	}
	data.EggTimer = 0

	if len(data.Chickens) == 0 {
		return false
	}

	target := d.pickEggDropper(data.Chickens, data.Player.CenterX())
	data.Eggs = append(data.Eggs, d.factory.Bullet(
		target.CenterX(),
		target.Y+target.Height,
		s.EggSpeed,
		1,
	))
	return true
}

// pickEggDropper chooses uniformly among the chickens whose centers are
// horizontally nearest to playerX.
func (d *Director) pickEggDropper(chickens []Chicken, playerX float64) Chicken {
	sorted := slices.Clone(chickens)
	slices.SortStableFunc(sorted, func(a, b Chicken) int {
		da := math.Abs(a.CenterX() - playerX)
		db := math.Abs(b.CenterX() - playerX)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		default:
			return 0
		}
	})
	pool := sorted[:min(EggTargetPool, len(sorted))]
	return pool[d.rng.Intn(len(pool))]
}

// SpawnWave returns the chickens for the given wave number.
func (d *Director) SpawnWave(wave int, s Settings) []Chicken {
	if wave%BossWaveEvery == 0 {
		return d.factory.Boss(s.Playfield.Width, s.Playfield.Height)
	}
	rows := min(s.ChickenRows+wave/4, MaxGridRows)
	x, y := GridOrigin(s)
	return d.factory.ChickenGrid(rows, s.ChickenCols, x, y, s.Playfield.Width)
}

// Advance moves to the next wave: spawns its formation, clears projectiles
// and explosions, and resets the timers and direction. Falling power-ups and
// active effects carry over.
func (d *Director) Advance(data *GameData, s Settings) {
	data.Wave++
	data.Chickens = d.SpawnWave(data.Wave, s)
	data.Bullets = []Bullet{}
	data.Eggs = []Bullet{}
	data.Explosions = []Explosion{}
	data.Direction = 1
	data.MoveTimer = 0
	data.EggTimer = 0
}
