package invaders

import (
	"math"
	"testing"

	"github.com/vovakirdan/chicken-invaders/internal/core"
)

func TestChickenGridLayout(t *testing.T) {
	f := NewFactory(core.NewRNG(1))
	chickens := f.ChickenGrid(4, 8, 50, 80, 800)

	if len(chickens) != 32 {
		t.Fatalf("expected 32 chickens, got %d", len(chickens))
	}

	for i, c := range chickens {
		wantHP := 1
		if c.Row < 2 {
			wantHP = 2
		}
		if c.HP != wantHP || c.MaxHP != wantHP {
			t.Errorf("chicken %d row %d: hp=%d max=%d, want %d", i, c.Row, c.HP, c.MaxHP, wantHP)
		}
		if c.Points != (4-c.Row)*5+10 {
			t.Errorf("chicken %d row %d: points=%d", i, c.Row, c.Points)
		}
		if c.Col > 0 {
			prev := chickens[i-1]
			if c.X <= prev.X {
				t.Errorf("row %d: x not increasing at col %d", c.Row, c.Col)
			}
			if prev.X+prev.Width > c.X {
				t.Errorf("row %d: cols %d and %d overlap", c.Row, prev.Col, c.Col)
			}
		}
	}
}

func TestChickenGridEdgeCases(t *testing.T) {
	f := NewFactory(core.NewRNG(1))

	if got := f.ChickenGrid(0, 8, 50, 80, 800); len(got) != 0 {
		t.Errorf("zero rows should give no chickens, got %d", len(got))
	}
	if got := f.ChickenGrid(3, 0, 50, 80, 800); len(got) != 0 {
		t.Errorf("zero cols should give no chickens, got %d", len(got))
	}

	column := f.ChickenGrid(3, 1, 50, 80, 800)
	if len(column) != 3 {
		t.Fatalf("expected 3 chickens, got %d", len(column))
	}
	for _, c := range column {
		if c.X != 50 {
			t.Errorf("single column chicken at x=%v, want 50", c.X)
		}
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		wave int
		want float64
	}{
		{1, 1},
		{2, 1.15},
		{5, 1.6},
		{11, 2.5},
	}
	for _, tt := range tests {
		if got := Difficulty(tt.wave); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Difficulty(%d) = %v, want %v", tt.wave, got, tt.want)
		}
	}

	if EggInterval(2) >= EggInterval(1) {
		t.Error("egg interval should shrink with waves")
	}
	s := testSettings()
	if MoveInterval(s, 3) >= MoveInterval(s, 1) {
		t.Error("move interval should shrink with waves")
	}
}

func TestSpawnWave(t *testing.T) {
	s := testSettings()
	d := NewDirector(NewFactory(core.NewRNG(1)), core.NewRNG(2))

	tests := []struct {
		wave  int
		count int
	}{
		{1, 32},
		{4, 40},
		{5, 2},
		{8, 48},
		{10, 2},
		{13, 48},
	}
	for _, tt := range tests {
		if got := len(d.SpawnWave(tt.wave, s)); got != tt.count {
			t.Errorf("wave %d: %d chickens, want %d", tt.wave, got, tt.count)
		}
	}
}

func TestBossWave(t *testing.T) {
	s := testSettings()
	d := NewDirector(NewFactory(core.NewRNG(1)), core.NewRNG(2))

	bosses := d.SpawnWave(5, s)
	if len(bosses) != 2 {
		t.Fatalf("expected 2 bosses, got %d", len(bosses))
	}
	for _, b := range bosses {
		if b.HP != 8 || b.MaxHP != 8 || b.Points != 300 {
			t.Errorf("boss hp=%d max=%d points=%d", b.HP, b.MaxHP, b.Points)
		}
	}
	if bosses[0].X+bosses[0].Width > bosses[1].X {
		t.Error("bosses overlap")
	}
}

func TestStepFormationWaitsForInterval(t *testing.T) {
	s := testSettings()
	d := NewDirector(NewFactory(core.NewRNG(1)), core.NewRNG(2))
	data := GameData{Wave: 1, Direction: 1, Chickens: d.SpawnWave(1, s)}
	startX := data.Chickens[0].X

	if d.StepFormation(&data, s, MoveInterval(s, 1)/2) {
		t.Fatal("stepped before the interval elapsed")
	}
	if data.Chickens[0].X != startX {
		t.Error("formation moved early")
	}
	if !d.StepFormation(&data, s, MoveInterval(s, 1)/2) {
		t.Fatal("expected a step once the interval elapsed")
	}
	if data.MoveTimer != 0 {
		t.Errorf("timer should reset, got %v", data.MoveTimer)
	}
	if data.Chickens[0].X != startX+FormationStepX(s) {
		t.Errorf("x=%v, want %v", data.Chickens[0].X, startX+FormationStepX(s))
	}
}

func TestStepFormationReverses(t *testing.T) {
	s := testSettings()
	d := NewDirector(NewFactory(core.NewRNG(1)), core.NewRNG(2))
	margin := FormationMargin(s)
	c := Chicken{Entity: Entity{X: s.Playfield.Width - margin - 10, Y: 100, Width: 10, Height: 10}, HP: 1}
	data := GameData{Wave: 1, Direction: 1, Chickens: []Chicken{c}}

	d.StepFormation(&data, s, MoveInterval(s, 1))
	if data.Direction != -1 {
		t.Errorf("direction %d, want -1", data.Direction)
	}
	if data.Chickens[0].Y != 100+FormationStepDown(s) {
		t.Errorf("y=%v, want %v", data.Chickens[0].Y, 100+FormationStepDown(s))
	}
	if data.Chickens[0].X != c.X {
		t.Error("reversal step should not move sideways")
	}
}

func TestFormationStaysWithinMargins(t *testing.T) {
	s := testSettings()
	d := NewDirector(NewFactory(core.NewRNG(1)), core.NewRNG(2))
	data := GameData{Wave: 1, Direction: 1, Chickens: d.SpawnWave(1, s)}
	margin := FormationMargin(s)

	for i := range 200 {
		beforeY := data.Chickens[0].Y
		d.StepFormation(&data, s, MoveInterval(s, 1))
		if data.Chickens[0].Y != beforeY {
			continue
		}
		left, right := FormationBounds(data.Chickens)
		if left < margin || right > s.Playfield.Width-margin {
			t.Fatalf("step %d: bounds [%v, %v] outside [%v, %v]",
				i, left, right, margin, s.Playfield.Width-margin)
		}
	}
}

func TestFormationBoundsEmpty(t *testing.T) {
	left, right := FormationBounds(nil)
	if left != 0 || right != 0 {
		t.Errorf("empty bounds = (%v, %v), want (0, 0)", left, right)
	}
}

func TestDropEggPicksAmongNearest(t *testing.T) {
	s := testSettings()
	f := NewFactory(core.NewRNG(1))
	src := newScriptedSource([]int{2}, nil)
	d := NewDirector(f, src)

	xs := []float64{0, 100, 380, 420, 460, 700}
	chickens := make([]Chicken, 0, len(xs))
	for i, x := range xs {
		chickens = append(chickens, Chicken{Entity: Entity{ID: string(rune('a' + i)), X: x, Y: 100, Width: 20, Height: 20}, HP: 1})
	}
	data := GameData{
		Wave:     1,
		Chickens: chickens,
		Player:   Player{Entity: Entity{X: 380, Y: 540, Width: 40, Height: 30}},
	}

	if !d.DropEgg(&data, s, EggInterval(1)) {
		t.Fatal("expected an egg")
	}
	if len(data.Eggs) != 1 {
		t.Fatalf("expected 1 egg, got %d", len(data.Eggs))
	}

	// Player center 400: the nearest centers are 390, 430 and 470.
	egg := data.Eggs[0]
	if egg.CenterX() != 470 {
		t.Errorf("egg from x=%v, want the chicken centered at 470", egg.CenterX())
	}
	if egg.Y != 120 {
		t.Errorf("egg y=%v, want the chicken's bottom edge 120", egg.Y)
	}
	if data.EggTimer != 0 {
		t.Errorf("egg timer %v, want 0", data.EggTimer)
	}
}

func TestDropEggWithoutChickens(t *testing.T) {
	s := testSettings()
	d := NewDirector(NewFactory(core.NewRNG(1)), core.NewRNG(2))
	data := GameData{Wave: 1}

	if d.DropEgg(&data, s, EggInterval(1)) {
		t.Error("no egg expected from an empty formation")
	}
	if data.EggTimer != 0 {
		t.Errorf("timer should still reset, got %v", data.EggTimer)
	}
}

func TestAdvanceResetsWaveState(t *testing.T) {
	s := testSettings()
	f := NewFactory(core.NewRNG(1))
	d := NewDirector(f, core.NewRNG(2))
	data := GameData{
		Wave:           3,
		Direction:      -1,
		MoveTimer:      12,
		EggTimer:       400,
		Bullets:        []Bullet{f.Bullet(1, 1, 1, 1)},
		Eggs:           []Bullet{f.Bullet(1, 1, 1, 1)},
		Explosions:     []Explosion{f.Explosion(1, 1, 10)},
		PowerUps:       []PowerUp{f.PowerUp(1, 1, Shield)},
		ActivePowerUps: ActivePowerUps{RapidFire: 1000},
	}

	d.Advance(&data, s)
	if data.Wave != 4 || data.Direction != 1 || data.MoveTimer != 0 || data.EggTimer != 0 {
		t.Errorf("wave=%d dir=%d timers=%v/%v", data.Wave, data.Direction, data.MoveTimer, data.EggTimer)
	}
	if len(data.Bullets)+len(data.Eggs)+len(data.Explosions) != 0 {
		t.Error("projectiles and explosions should be cleared")
	}
	if len(data.PowerUps) != 1 || !data.ActivePowerUps.Has(RapidFire) {
		t.Error("power-ups should persist across waves")
	}
	if len(data.Chickens) != 40 {
		t.Errorf("wave 4 should have 5 rows of 8, got %d", len(data.Chickens))
	}
}
