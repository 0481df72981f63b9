package session

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chicken-invaders/internal/config"
	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/invaders"
	"github.com/vovakirdan/chicken-invaders/internal/registry"
)

const frame = 33 * time.Millisecond

type countingScores struct {
	best  int
	saves []int
}

func (c *countingScores) Load() (int, error) { return c.best, nil }
func (c *countingScores) Save(score int) error {
	c.saves = append(c.saves, score)
	return nil
}

type runLog struct {
	countingScores
	runs []string
}

func (r *runLog) SaveRun(score, wave int, outcome string) error {
	r.runs = append(r.runs, outcome)
	r.saves = append(r.saves, score)
	return nil
}

func newTestSession(t *testing.T, mode string, scores HighScores) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	s := New(mode, Deps{
		Config:    config.DefaultInvadersConfig(),
		ScoresFor: func(string) HighScores { return scores },
		Logger:    NewLogger(&buf, "debug"),
	})
	s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42})
	return s, &buf
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{ModeEndless, ModeCampaign} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id || !strings.HasPrefix(g.Title(), "Chicken Invaders") {
			t.Errorf("mode %q: id=%q title=%q", id, g.ID(), g.Title())
		}
	}
}

func TestPhaseFlow(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))

	s.Step(frameWith(), frame)
	if s.Data().Phase != invaders.PhaseMenu {
		t.Fatalf("idle menu frame changed phase to %v", s.Data().Phase)
	}

	s.Step(frameWith(core.ActionConfirm), frame)
	d := s.Data()
	if d.Phase != invaders.PhasePlaying || len(d.Chickens) == 0 {
		t.Fatalf("start: phase=%v chickens=%d", d.Phase, len(d.Chickens))
	}

	steps := []struct {
		in   core.InputFrame
		want invaders.Phase
	}{
		{frameWith(core.ActionPause), invaders.PhasePaused},
		{frameWith(), invaders.PhasePaused},
		{frameWith(core.ActionPause), invaders.PhasePlaying},
		{frameWith(core.ActionPause), invaders.PhasePaused},
		{frameWith(core.ActionBack), invaders.PhaseGameOver},
		{frameWith(core.ActionFire), invaders.PhaseGameOver},
		{frameWith(core.ActionRestart), invaders.PhaseMenu},
	}
	for i, st := range steps {
		res := s.Step(st.in, frame)
		if got := s.Data().Phase; got != st.want {
			t.Fatalf("step %d: phase = %v, want %v", i, got, st.want)
		}
		if res.State.Paused != (st.want == invaders.PhasePaused) {
			t.Errorf("step %d: Paused = %v", i, res.State.Paused)
		}
	}
}

func TestPausedFramesFreezeSimulation(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))
	s.Step(frameWith(core.ActionConfirm), frame)
	s.Step(frameWith(core.ActionPause), frame)

	before, _ := invaders.Hash(s.Data())
	for range 30 {
		s.Step(frameWith(core.ActionLeft, core.ActionFire), frame)
	}
	after, _ := invaders.Hash(s.Data())
	if before != after {
		t.Error("paused session changed state")
	}
}

func TestMovementAndShooting(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))
	s.Step(frameWith(core.ActionConfirm), frame)
	startX := s.Data().Player.X

	s.Step(frameWith(core.ActionLeft, core.ActionFire), frame)
	d := s.Data()
	if d.Player.X >= startX {
		t.Errorf("player did not move left: %v -> %v", startX, d.Player.X)
	}
	if len(d.Bullets) != 1 {
		t.Errorf("bullets = %d, want 1", len(d.Bullets))
	}

	for range 200 {
		s.Step(frameWith(core.ActionLeft), frame)
		if s.Data().Phase != invaders.PhasePlaying {
			break
		}
	}
	if x := s.Data().Player.X; x < 0 {
		t.Errorf("player left the playfield: x=%v", x)
	}
}

func TestElapsedIsClamped(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))
	s.Step(frameWith(core.ActionConfirm), frame)
	clock := s.clockMs

	s.Step(frameWith(), time.Second)
	if got := s.clockMs - clock; math.Abs(got-invaders.MaxElapsedMs) > 1e-9 {
		t.Errorf("clock advanced %v ms, want %v", got, invaders.MaxElapsedMs)
	}
	if s.playedMs != invaders.MaxElapsedMs {
		t.Errorf("played %v ms", s.playedMs)
	}
}

func TestRecordRunSavesNewHigh(t *testing.T) {
	mem := NewMemoryScores(100)
	s, _ := newTestSession(t, ModeEndless, mem)
	if s.Data().HighScore != 100 {
		t.Fatalf("high score not loaded: %d", s.Data().HighScore)
	}

	s.Step(frameWith(core.ActionConfirm), frame)
	s.data.Score = 500
	s.Apply(invaders.ForceGameOver{})

	if best, _ := mem.Load(); best != 500 {
		t.Errorf("stored best = %d, want 500", best)
	}
	if got := s.Events(); len(got) != 1 || got[0].Kind != invaders.EventGameOver {
		t.Errorf("events = %+v", got)
	}

	s.Step(frameWith(core.ActionRestart), frame)
	if d := s.Data(); d.Phase != invaders.PhaseMenu || d.HighScore != 500 {
		t.Errorf("after restart phase=%v high=%d", d.Phase, d.HighScore)
	}
}

func TestRecordRunSkipsLowerScore(t *testing.T) {
	scores := &countingScores{best: 1000}
	s, _ := newTestSession(t, ModeEndless, scores)
	s.Step(frameWith(core.ActionConfirm), frame)
	s.data.Score = 10
	s.Apply(invaders.ForceGameOver{})

	if len(scores.saves) != 0 {
		t.Errorf("saved %v, want nothing", scores.saves)
	}
}

func TestRecordRunUsesRecorder(t *testing.T) {
	scores := &runLog{}
	s, _ := newTestSession(t, ModeCampaign, scores)

	s.Step(frameWith(core.ActionConfirm), frame)
	s.Step(frameWith(core.ActionPause), frame)
	s.Step(frameWith(core.ActionBack), frame)
	// Terminal frames must not record the same run again.
	s.Step(frameWith(), frame)

	if len(scores.runs) != 1 || scores.runs[0] != "game_over" {
		t.Errorf("runs = %v", scores.runs)
	}
}

func TestPersistenceFailuresAreLogged(t *testing.T) {
	mem := NewMemoryScores(0)
	mem.Err = errors.New("disk gone")
	s, buf := newTestSession(t, ModeEndless, mem)

	if s.Data().HighScore != 0 {
		t.Errorf("high score = %d, want 0", s.Data().HighScore)
	}
	s.Step(frameWith(core.ActionConfirm), frame)
	s.data.Score = 70
	s.Apply(invaders.ForceGameOver{})

	if s.Data().Phase != invaders.PhaseGameOver || s.Data().HighScore != 70 {
		t.Errorf("phase=%v high=%d", s.Data().Phase, s.Data().HighScore)
	}
	out := buf.String()
	for _, msg := range []string{"could not load high score", "could not save score", "disk gone"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log missing %q:\n%s", msg, out)
		}
	}
}

func TestCampaignHasMaxWave(t *testing.T) {
	campaign, _ := newTestSession(t, ModeCampaign, NewMemoryScores(0))
	endless, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))

	if got := campaign.machine.MaxWave(); got != 20 {
		t.Errorf("campaign max wave = %d, want 20", got)
	}
	if got := endless.machine.MaxWave(); got != 0 {
		t.Errorf("endless max wave = %d, want 0", got)
	}
}

func TestDifficultyScalesEnemySpeeds(t *testing.T) {
	cfg := config.DefaultInvadersConfig()
	cfg.Difficulty.Enabled = true
	s := New(ModeEndless, Deps{Config: cfg, Logger: log.New(&bytes.Buffer{})})
	s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})

	base := s.Layout().Settings
	s.data.Score = cfg.Difficulty.Progression.MaxAt
	got := s.Settings()
	if want := base.ChickenSpeed * 1.5; got.ChickenSpeed != want {
		t.Errorf("chicken speed = %v, want %v", got.ChickenSpeed, want)
	}
	if want := base.EggSpeed * 1.5; got.EggSpeed != want {
		t.Errorf("egg speed = %v, want %v", got.EggSpeed, want)
	}
	if got.PlayerSpeed != base.PlayerSpeed {
		t.Error("player speed must not scale with difficulty")
	}
}

func TestTooSmallScreen(t *testing.T) {
	s := New(ModeEndless, Deps{})
	s.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, Seed: 1})

	s.Step(frameWith(core.ActionConfirm), frame)
	if s.Data().Phase != invaders.PhaseMenu {
		t.Error("too-small screen should not start a run")
	}

	scr := core.NewScreen(20, 8)
	s.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Errorf("render:\n%s", scr.String())
	}

	s.Resize(80, 24)
	s.Step(frameWith(core.ActionConfirm), frame)
	if s.Data().Phase != invaders.PhasePlaying {
		t.Error("resize should allow the run to start")
	}
}

func TestResizeDuringRunRefitsShip(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))
	s.Resize(192, 56)
	s.Step(frameWith(core.ActionConfirm), frame)
	if y := s.Data().Player.Y; y != 972 {
		t.Fatalf("ship y on the large field = %v, want 972", y)
	}

	s.Resize(80, 24)
	p := s.Data().Player
	field := s.Layout().Settings.Playfield
	if p.Y != 420 {
		t.Errorf("ship y after shrinking = %v, want 420", p.Y)
	}
	if p.X < 0 || p.X+p.Width > field.Width || p.Y+p.Height > field.Height {
		t.Errorf("ship %+v outside %vx%v playfield", p.Entity, field.Width, field.Height)
	}

	// A paused run keeps its state until it resumes
	s.Step(frameWith(core.ActionPause), frame)
	s.Resize(192, 56)
	if y := s.Data().Player.Y; y != 420 {
		t.Errorf("paused ship moved to y=%v", y)
	}
	s.Step(frameWith(core.ActionPause), frame)
	s.Step(frameWith(), frame)
	if y := s.Data().Player.Y; y != 972 {
		t.Errorf("ship y after resuming = %v, want 972", y)
	}
}

func TestRender(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(250))
	scr := core.NewScreen(80, 24)

	s.Render(scr)
	if out := scr.String(); !strings.Contains(out, "Press ENTER") || !strings.Contains(out, "Best: 250") {
		t.Errorf("menu render:\n%s", out)
	}

	s.Step(frameWith(core.ActionConfirm), frame)
	s.Render(scr)
	out := scr.String()
	for _, want := range []string{"Score: 0", "Wave: 1", string(PlayerGlyph), string(ChickenGlyph)} {
		if !strings.Contains(out, want) {
			t.Errorf("play render missing %q:\n%s", want, out)
		}
	}

	s.Step(frameWith(core.ActionPause), frame)
	s.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Errorf("pause render:\n%s", scr.String())
	}
}

func TestRenderBossStyleOnlyOnBossWaves(t *testing.T) {
	s, _ := newTestSession(t, ModeEndless, NewMemoryScores(0))
	s.Step(frameWith(core.ActionConfirm), frame)

	bossCells := func() int {
		scr := core.NewScreen(80, 24)
		s.Render(scr)
		n := 0
		for y := range scr.Height() {
			for x := range scr.Width() {
				if c := scr.GetCell(x, y); c.Rune == BossGlyph && c.Color == core.ColorBoss {
					n++
				}
			}
		}
		return n
	}

	tough := 0
	for _, c := range s.Data().Chickens {
		if c.MaxHP > 1 {
			tough++
		}
	}
	if tough == 0 {
		t.Fatal("wave 1 should have two-hit chickens in the front rows")
	}
	if n := bossCells(); n != 0 {
		t.Errorf("wave 1 drew %d boss cells", n)
	}

	for s.Data().Wave < 5 {
		s.Apply(invaders.AdvanceWave{Settings: s.Settings()})
	}
	if n := bossCells(); n == 0 {
		t.Error("boss wave drew no boss cells")
	}
}

func TestPowerUpStatus(t *testing.T) {
	active := invaders.ActivePowerUps{}.Grant(invaders.Shield).Grant(invaders.SpreadShot)
	active = active.Decay(1500)

	if got, want := powerUpStatus(active), "spread_shot(14s) shield(14s)"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if got := powerUpStatus(nil); got != "" {
		t.Errorf("empty status = %q", got)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func(seed int64) uint64 {
		s := New(ModeEndless, Deps{})
		s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})
		s.Step(frameWith(core.ActionConfirm), frame)
		for i := range 600 {
			in := frameWith(core.ActionFire)
			if i%40 < 20 {
				in.Set(core.ActionLeft)
			} else {
				in.Set(core.ActionRight)
			}
			s.Step(in, frame)
		}
		h, err := invaders.Hash(s.Data())
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		return h
	}

	if run(42) != run(42) {
		t.Error("same seed and input produced different states")
	}
}
