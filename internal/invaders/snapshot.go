package invaders

import (
	"bytes"
	"fmt"
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"
)

// EntityRecord is the serialised form of an Entity.
type EntityRecord struct {
	ID     string  `msgpack:"id"`
	X      float64 `msgpack:"x"`
	Y      float64 `msgpack:"y"`
	Width  float64 `msgpack:"w"`
	Height float64 `msgpack:"h"`
}

// ChickenRecord is the serialised form of a Chicken.
type ChickenRecord struct {
	EntityRecord `msgpack:",inline"`
	HP           int `msgpack:"hp"`
	MaxHP        int `msgpack:"max_hp"`
	Points       int `msgpack:"points"`
	Row          int `msgpack:"row"`
	Col          int `msgpack:"col"`
}

// BulletRecord is the serialised form of a Bullet or egg.
type BulletRecord struct {
	EntityRecord `msgpack:",inline"`
	Speed        float64 `msgpack:"speed"`
	Damage       int     `msgpack:"damage"`
}

// PowerUpRecord is the serialised form of a PowerUp.
type PowerUpRecord struct {
	EntityRecord `msgpack:",inline"`
	Type         PowerUpType `msgpack:"type"`
}

// ExplosionRecord is the serialised form of an Explosion.
type ExplosionRecord struct {
	EntityRecord `msgpack:",inline"`
	Duration     float64 `msgpack:"duration"`
	MaxDuration  float64 `msgpack:"max_duration"`
}

// EffectRecord is one active power-up and its remaining time in ms.
type EffectRecord struct {
	Type      PowerUpType `msgpack:"type"`
	Remaining float64     `msgpack:"remaining"`
}

// Snapshot is a serialisable copy of GameData.
type Snapshot struct {
	Phase          Phase                   `msgpack:"phase"`
	Wave           int                     `msgpack:"wave"`
	Score          int                     `msgpack:"score"`
	HighScore      int                     `msgpack:"high_score"`
	Player         EntityRecord            `msgpack:"player"`
	Lives          int                     `msgpack:"lives"`
	Shield         bool                    `msgpack:"shield"`
	Bullets        []BulletRecord          `msgpack:"bullets"`
	Chickens       []ChickenRecord         `msgpack:"chickens"`
	Eggs           []BulletRecord          `msgpack:"eggs"`
	PowerUps       []PowerUpRecord         `msgpack:"power_ups"`
	Explosions     []ExplosionRecord       `msgpack:"explosions"`
	ActivePowerUps []EffectRecord          `msgpack:"active_power_ups"` // ordered by Type
	LastShotMs     float64                 `msgpack:"last_shot_ms"`
	Direction      int                     `msgpack:"direction"`
	MoveTimer      float64                 `msgpack:"move_timer"`
	EggTimer       float64                 `msgpack:"egg_timer"`
}

func recordOf(e Entity) EntityRecord {
	return EntityRecord{ID: e.ID, X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

func (r EntityRecord) entity() Entity {
	return Entity{ID: r.ID, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// NewSnapshot copies data into its serialisable form.
func NewSnapshot(data GameData) Snapshot {
	s := Snapshot{
		Phase:          data.Phase,
		Wave:           data.Wave,
		Score:          data.Score,
		HighScore:      data.HighScore,
		Player:         recordOf(data.Player.Entity),
		Lives:          data.Player.Lives,
		Shield:         data.Player.Shield,
		Bullets:        make([]BulletRecord, 0, len(data.Bullets)),
		Chickens:       make([]ChickenRecord, 0, len(data.Chickens)),
		Eggs:           make([]BulletRecord, 0, len(data.Eggs)),
		PowerUps:       make([]PowerUpRecord, 0, len(data.PowerUps)),
		Explosions:     make([]ExplosionRecord, 0, len(data.Explosions)),
		ActivePowerUps: make([]EffectRecord, 0, len(data.ActivePowerUps)),
		LastShotMs:     data.LastShotMs,
		Direction:      data.Direction,
		MoveTimer:      data.MoveTimer,
		EggTimer:       data.EggTimer,
	}
	for _, b := range data.Bullets {
		s.Bullets = append(s.Bullets, BulletRecord{recordOf(b.Entity), b.Speed, b.Damage})
	}
	for _, c := range data.Chickens {
		s.Chickens = append(s.Chickens, ChickenRecord{recordOf(c.Entity), c.HP, c.MaxHP, c.Points, c.Row, c.Col})
	}
	for _, e := range data.Eggs {
		s.Eggs = append(s.Eggs, BulletRecord{recordOf(e.Entity), e.Speed, e.Damage})
	}
	for _, p := range data.PowerUps {
		s.PowerUps = append(s.PowerUps, PowerUpRecord{recordOf(p.Entity), p.Type})
	}
	for _, e := range data.Explosions {
		s.Explosions = append(s.Explosions, ExplosionRecord{recordOf(e.Entity), e.Duration, e.MaxDuration})
	}
	for _, t := range PowerUpTypes {
		if remaining, ok := data.ActivePowerUps[t]; ok {
			s.ActivePowerUps = append(s.ActivePowerUps, EffectRecord{Type: t, Remaining: remaining})
		}
	}
	return s
}

// GameData rebuilds the simulation state from a snapshot.
func (s Snapshot) GameData() GameData {
	data := GameData{
		Player: Player{
			Entity: s.Player.entity(),
			Lives:  s.Lives,
			Shield: s.Shield,
		},
		Bullets:        make([]Bullet, 0, len(s.Bullets)),
		Chickens:       make([]Chicken, 0, len(s.Chickens)),
		Eggs:           make([]Bullet, 0, len(s.Eggs)),
		PowerUps:       make([]PowerUp, 0, len(s.PowerUps)),
		Explosions:     make([]Explosion, 0, len(s.Explosions)),
		Score:          s.Score,
		Wave:           s.Wave,
		HighScore:      s.HighScore,
		Phase:          s.Phase,
		ActivePowerUps: make(ActivePowerUps, len(s.ActivePowerUps)),
		LastShotMs:     s.LastShotMs,
		Direction:      s.Direction,
		MoveTimer:      s.MoveTimer,
		EggTimer:       s.EggTimer,
	}
	for _, b := range s.Bullets {
		data.Bullets = append(data.Bullets, Bullet{Entity: b.entity(), Speed: b.Speed, Damage: b.Damage})
	}
	for _, c := range s.Chickens {
		data.Chickens = append(data.Chickens, Chicken{
			Entity: c.entity(), HP: c.HP, MaxHP: c.MaxHP, Points: c.Points, Row: c.Row, Col: c.Col,
		})
	}
	for _, e := range s.Eggs {
		data.Eggs = append(data.Eggs, Bullet{Entity: e.entity(), Speed: e.Speed, Damage: e.Damage})
	}
	for _, p := range s.PowerUps {
		data.PowerUps = append(data.PowerUps, PowerUp{Entity: p.entity(), Type: p.Type})
	}
	for _, e := range s.Explosions {
		data.Explosions = append(data.Explosions, Explosion{
			Entity: e.entity(), Duration: e.Duration, MaxDuration: e.MaxDuration,
		})
	}
	for _, e := range s.ActivePowerUps {
		data.ActivePowerUps[e.Type] = e.Remaining
	}
	return data
}

// EncodeSnapshot serialises data with msgpack. Snapshots hold no maps, so
// equal states always encode to equal bytes.
func EncodeSnapshot(data GameData) ([]byte, error) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(NewSnapshot(data)); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot restores data previously written by EncodeSnapshot.
func DecodeSnapshot(b []byte) (GameData, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return GameData{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s.GameData(), nil
}

// Hash returns a fingerprint of the encoded state, used to compare runs.
func Hash(data GameData) (uint64, error) {
	b, err := EncodeSnapshot(data)
	if err != nil {
		return 0, err
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return h.Sum64(), nil
}
