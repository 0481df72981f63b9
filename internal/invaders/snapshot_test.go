package invaders

import (
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/chicken-invaders/internal/core"
)

func TestSnapshotRestoresState(t *testing.T) {
	m := NewMachine(core.NewRNG(11))
	data := startGame(t, m)
	data = m.Apply(data, Shoot{NowMs: 0, Settings: testSettings()}).Data
	data.ActivePowerUps = data.ActivePowerUps.Grant(RapidFire).Grant(Shield)
	data.PowerUps = append(data.PowerUps, m.Factory().PowerUp(200, 200, DamageUp))
	data.Score = 75

	b, err := EncodeSnapshot(data)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(restored, data) {
		t.Errorf("restored state differs:\n got %+v\nwant %+v", restored, data)
	}
}

func TestSnapshotKeepsUnfiredSentinel(t *testing.T) {
	m := NewMachine(core.NewRNG(1))
	b, err := EncodeSnapshot(m.NewGameData(0))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	restored, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !math.IsInf(restored.LastShotMs, -1) {
		t.Errorf("LastShotMs = %v, want -Inf", restored.LastShotMs)
	}
}

func TestHashStableAcrossMapOrder(t *testing.T) {
	m := NewMachine(core.NewRNG(1))
	data := m.NewGameData(0)
	data.ActivePowerUps = ActivePowerUps{Shield: 1, RapidFire: 2, DamageUp: 3, SpreadShot: 4}

	first, err := Hash(data)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	for i := range 200 {
		// Rebuild the map in a rotating insertion order each round
		other := data.Clone()
		other.ActivePowerUps = ActivePowerUps{}
		for j := range PowerUpTypes {
			pt := PowerUpTypes[(i+j)%len(PowerUpTypes)]
			other.ActivePowerUps[pt] = data.ActivePowerUps[pt]
		}
		h, err := Hash(other)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		if h != first {
			t.Fatalf("round %d: hash changed between identical states", i)
		}
	}
}

func TestSnapshotOrdersActiveEffects(t *testing.T) {
	data := GameData{ActivePowerUps: ActivePowerUps{DamageUp: 3, SpreadShot: 4, Shield: 1}}

	got := NewSnapshot(data).ActivePowerUps
	want := []EffectRecord{{SpreadShot, 4}, {Shield, 1}, {DamageUp, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("effects = %+v, want %+v", got, want)
	}
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Error("expected an error for invalid input")
	}
}
