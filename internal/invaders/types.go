// Package invaders implements the deterministic simulation for the
// chicken invaders shooter: entity construction, collisions, power-up
// effects, formation movement and the phase state machine.
//
// The package is pure. It never reads clocks, global random generators or
// storage; everything it needs arrives through commands and an injected
// Source.
package invaders

import (
	"io"
	"maps"
	"slices"

	"github.com/vovakirdan/chicken-invaders/internal/core"
)

// Source supplies every random decision the simulation makes.
// core.RNG and *math/rand.Rand both satisfy it.
type Source interface {
	Intn(n int) int
	Float64() float64
	io.Reader
}

// Size is a width/height pair in playfield pixels.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Settings are the per-frame tuning values computed by the layout
// collaborator from the viewport. They are read-only inside the core.
type Settings struct {
	Playfield    Size
	PlayerSpeed  float64 // px/s
	BulletSpeed  float64 // px/s
	ChickenSpeed float64 // formation speed factor
	EggSpeed     float64 // px/s
	FireRate     float64 // ms between shots
	ChickenRows  int
	ChickenCols  int
}

// Entity is the shared rectangle every game object occupies.
type Entity struct {
	ID     string
	X, Y   float64
	Width  float64
	Height float64
}

// Rect returns the entity bounds.
func (e Entity) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.Width, e.Height)
}

// CenterX returns the horizontal center.
func (e Entity) CenterX() float64 {
	return e.X + e.Width/2
}

// CenterY returns the vertical center.
func (e Entity) CenterY() float64 {
	return e.Y + e.Height/2
}

// Player is the ship. There is exactly one per run.
type Player struct {
	Entity
	Lives  int
	Shield bool // mirrors an active shield power-up
}

// Bullet is a projectile. Player bullets travel up, eggs fall down.
type Bullet struct {
	Entity
	Speed  float64
	Damage int
}

// Chicken is one enemy in the formation.
type Chicken struct {
	Entity
	HP     int
	MaxHP  int
	Points int
	Row    int
	Col    int
}

// PowerUpType is the closed set of pickups.
type PowerUpType int

const (
	SpreadShot PowerUpType = iota
	RapidFire
	Shield
	DamageUp
)

// PowerUpTypes lists every pickup kind in declaration order.
var PowerUpTypes = []PowerUpType{SpreadShot, RapidFire, Shield, DamageUp}

// String returns the name of the power-up type.
func (t PowerUpType) String() string {
	switch t {
	case SpreadShot:
		return "spread_shot"
	case RapidFire:
		return "rapid_fire"
	case Shield:
		return "shield"
	case DamageUp:
		return "damage_up"
	default:
		return "unknown"
	}
}

// PowerUp is a falling pickup dropped by a dead chicken.
type PowerUp struct {
	Entity
	Type PowerUpType
}

// Explosion is a cosmetic countdown consumed only by the presentation layer.
type Explosion struct {
	Entity
	Duration    float64 // ms remaining
	MaxDuration float64
}

// Phase is the top-level game phase.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
	PhaseVictory
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	case PhaseVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseVictory
}

// GameData is the aggregate root of the simulation.
type GameData struct {
	Player         Player
	Bullets        []Bullet
	Chickens       []Chicken
	Eggs           []Bullet
	PowerUps       []PowerUp
	Explosions     []Explosion
	Score          int
	Wave           int
	HighScore      int
	Phase          Phase
	ActivePowerUps ActivePowerUps
	LastShotMs     float64
	Direction      int     // formation direction, -1 or +1
	MoveTimer      float64 // ms accumulated toward the next formation step
	EggTimer       float64 // ms accumulated toward the next egg drop
}

// Clone returns a deep copy so a transition never aliases its input.
func (d GameData) Clone() GameData {
	out := d
	out.Bullets = slices.Clone(d.Bullets)
	out.Chickens = slices.Clone(d.Chickens)
	out.Eggs = slices.Clone(d.Eggs)
	out.PowerUps = slices.Clone(d.PowerUps)
	out.Explosions = slices.Clone(d.Explosions)
	out.ActivePowerUps = maps.Clone(d.ActivePowerUps)
	if out.ActivePowerUps == nil {
		out.ActivePowerUps = ActivePowerUps{}
	}
	return out
}
