package core

// Color is the role a screen cell plays. The platform layer decides how
// each role looks, so the simulation shell never deals in ANSI codes.
type Color uint8

const (
	ColorDefault Color = iota

	// Ship
	ColorShip
	ColorShipShielded

	// Enemies
	ColorChicken
	ColorChickenAlt // every other grid row
	ColorBoss
	ColorBossWounded // boss at half health or less

	// Projectiles
	ColorBullet
	ColorHeavyBullet // damage-up bullets
	ColorEgg

	// Effects
	ColorExplosion
	ColorSmoke // fading explosion

	// Power-ups, one per type
	ColorSpreadShot
	ColorRapidFire
	ColorShield
	ColorDamageUp

	// HUD
	ColorLives
	ColorStatus
	ColorTitle
)
