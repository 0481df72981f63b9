package invaders

import (
	"math"
	"slices"
)

// Simulation constants.
const (
	MaxElapsedMs  = 1000.0 / 30 // longest frame the host loop should integrate
	StartingLives = 5
	BottomMargin  = 50.0 // chickens reaching this close to the floor end the run
)

// Machine is the phase state machine. It is the only component that drives
// the factory, the power-up rules and the wave director.
type Machine struct {
	factory  *Factory
	director *Director
	rng      Source
	lives    int
	maxWave  int
}

// Option configures a Machine.
type Option func(*Machine)

// WithMaxWave ends the run in victory once the given wave is cleared.
// Zero (the default) means waves continue forever.
func WithMaxWave(n int) Option {
	return func(m *Machine) {
		m.maxWave = max(n, 0)
	}
}

// WithLives sets the number of lives a run starts with.
func WithLives(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.lives = n
		}
	}
}

// NewMachine creates a state machine drawing all randomness from rng.
func NewMachine(rng Source, opts ...Option) *Machine {
	factory := NewFactory(rng)
	m := &Machine{
		factory:  factory,
		director: NewDirector(factory, rng),
		rng:      rng,
		lives:    StartingLives,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Factory returns the entity factory the machine uses.
func (m *Machine) Factory() *Factory {
	return m.factory
}

// MaxWave returns the victory wave, or 0 for endless play.
func (m *Machine) MaxWave() int {
	return m.maxWave
}

// NewGameData returns the menu state, carrying over a known high score.
func (m *Machine) NewGameData(highScore int) GameData {
	return GameData{
		Player: Player{
			Entity: Entity{ID: "player", X: 375, Y: 550, Width: 40, Height: 30},
			Lives:  m.lives,
		},
		Bullets:        []Bullet{},
		Chickens:       []Chicken{},
		Eggs:           []Bullet{},
		PowerUps:       []PowerUp{},
		Explosions:     []Explosion{},
		Wave:           1,
		HighScore:      highScore,
		Phase:          PhaseMenu,
		ActivePowerUps: ActivePowerUps{},
		LastShotMs:     math.Inf(-1),
		Direction:      1,
	}
}

// Apply runs one command against data and returns the next state.
// data itself is never modified. Commands that do not apply in the current
// phase, and unknown commands, return the state unchanged.
func (m *Machine) Apply(data GameData, cmd Command) StepResult {
	next := data.Clone()
	var events []Event

	switch c := cmd.(type) {
	case Start:
		if next.Phase == PhaseMenu {
			next = m.start(next.HighScore, c.Settings)
		}

	case Tick:
		if next.Phase == PhasePlaying {
			elapsed := c.ElapsedMs
			if math.IsNaN(elapsed) || elapsed < 0 {
				elapsed = 0
			}
			events = m.resolveTick(&next, c.Settings, elapsed, events)
			events = m.evaluateTransition(&next, c.Settings, events)
		}

	case MovePlayer:
		if next.Phase == PhasePlaying {
			next.Player.X = c.X
			next.Player.Y = c.Y
		}

	case Shoot:
		if next.Phase == PhasePlaying {
			events = m.shoot(&next, c, events)
		}

	case Pause:
		if next.Phase == PhasePlaying {
			next.Phase = PhasePaused
		}

	case Resume:
		if next.Phase == PhasePaused {
			next.Phase = PhasePlaying
		}

	case Restart:
		if next.Phase == PhaseMenu || next.Phase.Terminal() {
			next = m.NewGameData(max(next.Score, next.HighScore))
		}

	case ForceGameOver:
		if next.Phase == PhasePlaying || next.Phase == PhasePaused {
			events = m.endRun(&next, PhaseGameOver, events)
		}

	case AdvanceWave:
		if next.Phase == PhasePlaying {
			m.director.Advance(&next, c.Settings)
		}
	}

	return StepResult{Data: next, Events: events}
}

// start builds a fresh playing state sized to the playfield.
func (m *Machine) start(highScore int, s Settings) GameData {
	data := m.NewGameData(highScore)
	data.Phase = PhasePlaying

	w, h := s.Playfield.Width, s.Playfield.Height
	data.Player.X = w/2 - 20
	data.Player.Y = ShipY(s)
	data.Player.Width = math.Min(40, w*0.05)
	data.Player.Height = math.Min(30, h*0.05)

	x, y := GridOrigin(s)
	data.Chickens = m.factory.ChickenGrid(s.ChickenRows, s.ChickenCols, x, y, w)
	return data
}

// ShipY is the ship's resting height for a playfield.
func ShipY(s Settings) float64 {
	h := s.Playfield.Height
	return h - math.Max(60, h*0.1)
}

// shoot fires one or three bullets if the cooldown allows it.
func (m *Machine) shoot(data *GameData, c Shoot, events []Event) []Event {
	cooldown := data.ActivePowerUps.Cooldown(c.Settings.FireRate)
	if c.NowMs-data.LastShotMs < cooldown {
		return events
	}

	cx := data.Player.CenterX()
	for _, offset := range data.ActivePowerUps.SpreadOffsets() {
		data.Bullets = append(data.Bullets, m.factory.Bullet(cx+offset, data.Player.Y, c.Settings.BulletSpeed, 1))
	}
	data.LastShotMs = c.NowMs
	return append(events, Event{Kind: EventShot, Wave: data.Wave})
}

// resolveTick runs the per-frame phases in order: power-up decay,
// integration, formation step, egg drop and the three collision passes.
func (m *Machine) resolveTick(data *GameData, s Settings, elapsedMs float64, events []Event) []Event {
	dt := elapsedMs / 1000

	// Power-up timers
	data.ActivePowerUps = data.ActivePowerUps.Decay(elapsedMs)
	data.Player.Shield = data.ActivePowerUps.Has(Shield)

	// Integration
	data.Bullets = moveAndFilter(data.Bullets, func(b *Bullet) bool {
		b.Y -= s.BulletSpeed * dt
		return b.Y+b.Height > 0
	})
	data.Eggs = moveAndFilter(data.Eggs, func(e *Bullet) bool {
		e.Y += s.EggSpeed * dt
		return e.Y < s.Playfield.Height
	})
	data.PowerUps = moveAndFilter(data.PowerUps, func(p *PowerUp) bool {
		p.Y += PowerUpFallSpeed * dt
		return p.Y < s.Playfield.Height
	})
	data.Explosions = moveAndFilter(data.Explosions, func(e *Explosion) bool {
		e.Duration -= elapsedMs
		return e.Duration > 0
	})

	// Formation
	m.director.StepFormation(data, s, elapsedMs)
	m.director.DropEgg(data, s, elapsedMs)

	// Collisions
	events = m.resolveBulletHits(data, events)
	events = m.resolveEggHits(data, events)
	events = m.resolvePickups(data, events)
	return events
}

// resolveBulletHits lets each bullet hit at most one chicken.
func (m *Machine) resolveBulletHits(data *GameData, events []Event) []Event {
	damage := data.ActivePowerUps.Damage()
	survivors := make([]Bullet, 0, len(data.Bullets))

	for _, b := range data.Bullets {
		idx := slices.IndexFunc(data.Chickens, func(c Chicken) bool {
			return Collides(b.Entity, c.Entity)
		})
		if idx < 0 {
			survivors = append(survivors, b)
			continue
		}

		chicken := &data.Chickens[idx]
		chicken.HP -= damage
		if chicken.HP > 0 {
			events = append(events, Event{Kind: EventChickenHit, Wave: data.Wave, Value: chicken.HP})
			continue
		}

		dead := *chicken
		data.Chickens = slices.Delete(data.Chickens, idx, idx+1)
		data.Score += dead.Points
		data.Explosions = append(data.Explosions, m.factory.Explosion(dead.CenterX(), dead.CenterY(), ExplosionSize))
		events = append(events, Event{Kind: EventChickenKilled, Wave: data.Wave, Value: dead.Points})

		if m.rng.Float64() < PowerUpDropChance {
			t := m.factory.PickPowerUpType()
			data.PowerUps = append(data.PowerUps, m.factory.PowerUp(dead.CenterX(), dead.CenterY(), t))
			events = append(events, Event{Kind: EventPowerUpDropped, Wave: data.Wave, Value: int(t)})
		}
	}

	data.Bullets = survivors
	return events
}

// resolveEggHits applies eggs that reached the ship. A shield absorbs
// exactly one egg.
func (m *Machine) resolveEggHits(data *GameData, events []Event) []Event {
	survivors := make([]Bullet, 0, len(data.Eggs))

	for _, egg := range data.Eggs {
		if !Collides(egg.Entity, data.Player.Entity) {
			survivors = append(survivors, egg)
			continue
		}

		if data.Player.Shield {
			data.ActivePowerUps = data.ActivePowerUps.Revoke(Shield)
			data.Player.Shield = false
			events = append(events, Event{Kind: EventShieldAbsorbed, Wave: data.Wave})
			continue
		}

		if data.Player.Lives > 0 {
			data.Player.Lives--
		}
		data.Explosions = append(data.Explosions, m.factory.Explosion(
			data.Player.CenterX(), data.Player.CenterY(), PlayerHitSize))
		events = append(events, Event{Kind: EventPlayerHit, Wave: data.Wave, Value: data.Player.Lives})
	}

	data.Eggs = survivors
	return events
}

// resolvePickups grants every power-up the ship touches.
func (m *Machine) resolvePickups(data *GameData, events []Event) []Event {
	survivors := make([]PowerUp, 0, len(data.PowerUps))

	for _, p := range data.PowerUps {
		if !Collides(p.Entity, data.Player.Entity) {
			survivors = append(survivors, p)
			continue
		}
		data.ActivePowerUps = data.ActivePowerUps.Grant(p.Type)
		events = append(events, Event{Kind: EventPowerUpCollected, Wave: data.Wave, Value: int(p.Type)})
	}

	data.PowerUps = survivors
	data.Player.Shield = data.ActivePowerUps.Has(Shield)
	return events
}

// evaluateTransition checks the win condition, then the lose condition.
// A cleared wave short-circuits the lose check for this tick.
func (m *Machine) evaluateTransition(data *GameData, s Settings, events []Event) []Event {
	if len(data.Chickens) == 0 {
		events = append(events, Event{Kind: EventWaveCleared, Wave: data.Wave})
		if m.maxWave > 0 && data.Wave >= m.maxWave {
			return m.endRun(data, PhaseVictory, events)
		}
		m.director.Advance(data, s)
		return events
	}

	if data.Player.Lives <= 0 || reachedBottom(data.Chickens, s.Playfield.Height) {
		return m.endRun(data, PhaseGameOver, events)
	}
	return events
}

// endRun moves to a terminal phase and folds the score into the high score.
func (m *Machine) endRun(data *GameData, phase Phase, events []Event) []Event {
	data.Phase = phase
	data.HighScore = max(data.Score, data.HighScore)

	kind := EventGameOver
	if phase == PhaseVictory {
		kind = EventVictory
	}
	return append(events, Event{Kind: kind, Wave: data.Wave, Value: data.Score})
}

// reachedBottom reports whether any chicken is within BottomMargin of the floor.
func reachedBottom(chickens []Chicken, playfieldHeight float64) bool {
	return slices.ContainsFunc(chickens, func(c Chicken) bool {
		return c.Y+c.Height >= playfieldHeight-BottomMargin
	})
}

// ClampElapsed bounds a frame's elapsed time to [0, MaxElapsedMs]. Host
// loops apply it before building a Tick.
func ClampElapsed(ms float64) float64 {
	if math.IsNaN(ms) || ms < 0 {
		return 0
	}
	return math.Min(ms, MaxElapsedMs)
}

// moveAndFilter updates every element in place and keeps those for which
// step returns true.
func moveAndFilter[T any](items []T, step func(*T) bool) []T {
	out := items[:0]
	for i := range items {
		if step(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
