package invaders

import "maps"

// Power-up tuning.
const (
	PowerUpDuration   = 15000.0 // ms granted on pickup, overwrites any remainder
	PowerUpDropChance = 0.2     // chance a dead chicken drops a pickup
	PowerUpFallSpeed  = 80.0    // px/s
	SpreadOffset      = 15.0    // px between spread-shot bullets
	RapidFireDivisor  = 4.0
)

// ActivePowerUps maps each active kind to its remaining duration in ms.
// A kind that is absent is inactive; an entry is never left at <= 0.
type ActivePowerUps map[PowerUpType]float64

// Decay returns a new map with elapsedMs subtracted from every entry and
// expired entries dropped.
func (a ActivePowerUps) Decay(elapsedMs float64) ActivePowerUps {
	out := make(ActivePowerUps, len(a))
	for t, remaining := range a {
		if left := remaining - elapsedMs; left > 0 {
			out[t] = left
		}
	}
	return out
}

// Has reports whether the kind is active.
func (a ActivePowerUps) Has(t PowerUpType) bool {
	return a[t] > 0
}

// Remaining returns the ms left for a kind, or 0.
func (a ActivePowerUps) Remaining(t PowerUpType) float64 {
	return a[t]
}

// Grant returns a copy with the kind set to the full duration.
// Picking up the same kind twice refreshes rather than stacks.
func (a ActivePowerUps) Grant(t PowerUpType) ActivePowerUps {
	out := maps.Clone(a)
	if out == nil {
		out = ActivePowerUps{}
	}
	out[t] = PowerUpDuration
	return out
}

// Revoke returns a copy without the kind.
func (a ActivePowerUps) Revoke(t PowerUpType) ActivePowerUps {
	out := maps.Clone(a)
	if out == nil {
		out = ActivePowerUps{}
	}
	delete(out, t)
	return out
}

// Cooldown returns the minimum ms between shots for the given fire rate.
func (a ActivePowerUps) Cooldown(fireRate float64) float64 {
	if a.Has(RapidFire) {
		return fireRate / RapidFireDivisor
	}
	return fireRate
}

// Damage returns the damage one bullet deals on impact.
func (a ActivePowerUps) Damage() int {
	if a.Has(DamageUp) {
		return 2
	}
	return 1
}

// SpreadOffsets returns the horizontal offsets of the bullets a single
// shot emits, relative to the ship's center.
func (a ActivePowerUps) SpreadOffsets() []float64 {
	if a.Has(SpreadShot) {
		return []float64{-SpreadOffset, 0, SpreadOffset}
	}
	return []float64{0}
}
