package invaders

import (
	"math"

	"github.com/google/uuid"
)

// Entity sizing.
const (
	BulletWidth       = 6.0
	BulletHeight      = 12.0
	PowerUpSize       = 36.0
	ExplosionSize     = 50.0
	PlayerHitSize     = 60.0
	ExplosionLifetime = 400.0 // ms

	BossHP     = 8
	BossPoints = 300
)

// powerUpWeights is the drop table. Spread shot and rapid fire appear twice.
var powerUpWeights = []PowerUpType{
	SpreadShot,
	RapidFire,
	Shield,
	DamageUp,
	SpreadShot,
	RapidFire,
}

// Factory builds entities. All ids and random picks come from its Source.
type Factory struct {
	rng Source
}

// NewFactory creates a factory drawing from rng.
func NewFactory(rng Source) *Factory {
	return &Factory{rng: rng}
}

// NewID returns a fresh random UUID read from the source.
func (f *Factory) NewID() string {
	id, err := uuid.NewRandomFromReader(f.rng)
	if err != nil {
		// Only a failing reader gets here; Source readers never fail.
		return uuid.Nil.String()
	}
	return id.String()
}

// ChickenGrid lays out rows*cols chickens, left to right and top to bottom,
// sized so that cols of them fit between the two side margins implied by startX.
func (f *Factory) ChickenGrid(rows, cols int, startX, startY, playfieldWidth float64) []Chicken {
	if rows <= 0 || cols <= 0 {
		return []Chicken{}
	}

	available := playfieldWidth - startX*2
	width := math.Max(25, math.Min(35, available/(float64(cols)*1.5)))
	height := math.Max(20, math.Floor(width*0.8))

	spacingX := 0.0
	if cols > 1 {
		spacingX = math.Max(10, (available-float64(cols)*width)/float64(cols-1))
	}
	spacingY := math.Max(35, height+15)

	chickens := make([]Chicken, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			// Front rows take two hits
			hp := 1
			if row < 2 {
				hp = 2
			}
			chickens = append(chickens, Chicken{
				Entity: Entity{
					ID:     f.NewID(),
					X:      startX + float64(col)*(width+spacingX),
					Y:      startY + float64(row)*spacingY,
					Width:  width,
					Height: height,
				},
				HP:     hp,
				MaxHP:  hp,
				Points: (rows-row)*5 + 10,
				Row:    row,
				Col:    col,
			})
		}
	}
	return chickens
}

// Boss returns the two-chicken boss layout near the top center.
func (f *Factory) Boss(playfieldWidth, playfieldHeight float64) []Chicken {
	size := math.Min(60, playfieldWidth*0.08)
	height := math.Floor(size * 0.75)
	y := math.Max(120, playfieldHeight*0.2)

	xs := []float64{playfieldWidth/2 - size, playfieldWidth/2 + 20}
	bosses := make([]Chicken, 0, len(xs))
	for col, x := range xs {
		bosses = append(bosses, Chicken{
			Entity: Entity{
				ID:     f.NewID(),
				X:      x,
				Y:      y,
				Width:  size,
				Height: height,
			},
			HP:     BossHP,
			MaxHP:  BossHP,
			Points: BossPoints,
			Row:    0,
			Col:    col,
		})
	}
	return bosses
}

// Bullet creates a projectile horizontally centered on x with its top at y.
func (f *Factory) Bullet(x, y, speed float64, damage int) Bullet {
	return Bullet{
		Entity: Entity{
			ID:     f.NewID(),
			X:      x - BulletWidth/2,
			Y:      y,
			Width:  BulletWidth,
			Height: BulletHeight,
		},
		Speed:  speed,
		Damage: damage,
	}
}

// PowerUp creates a pickup horizontally centered on x with its top at y.
func (f *Factory) PowerUp(x, y float64, t PowerUpType) PowerUp {
	return PowerUp{
		Entity: Entity{
			ID:     f.NewID(),
			X:      x - PowerUpSize/2,
			Y:      y,
			Width:  PowerUpSize,
			Height: PowerUpSize,
		},
		Type: t,
	}
}

// Explosion creates an explosion of the given size centered on (x, y).
func (f *Factory) Explosion(x, y, size float64) Explosion {
	return Explosion{
		Entity: Entity{
			ID:     f.NewID(),
			X:      x - size/2,
			Y:      y - size/2,
			Width:  size,
			Height: size,
		},
		Duration:    ExplosionLifetime,
		MaxDuration: ExplosionLifetime,
	}
}

// PickPowerUpType draws a kind from the weighted drop table.
func (f *Factory) PickPowerUpType() PowerUpType {
	return powerUpWeights[f.rng.Intn(len(powerUpWeights))]
}
