package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chicken-invaders/internal/core"
)

type recordingGame struct {
	steps    []time.Duration
	inputs   []core.InputFrame
	resized  [2]int
	gameOver bool
}

func (g *recordingGame) ID() string               { return "recording" }
func (g *recordingGame) Title() string            { return "Recording" }
func (g *recordingGame) Reset(core.RuntimeConfig) {}
func (g *recordingGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *recordingGame) Render(dst *core.Screen)  { dst.DrawText(0, 0, "frame") }
func (g *recordingGame) State() core.GameState    { return core.GameState{GameOver: g.gameOver} }

func (g *recordingGame) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.steps = append(g.steps, elapsed)
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.State()}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelTicksWithElapsedTime(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 20, Seed: 1})

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m = update(t, m, runeKey('a'))
	m = update(t, m, TickMsg(start))
	m = update(t, m, TickMsg(start.Add(70*time.Millisecond)))

	if len(g.steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.steps))
	}
	if g.steps[0] != 50*time.Millisecond {
		t.Errorf("first tick elapsed = %v, want one frame", g.steps[0])
	}
	if g.steps[1] != 70*time.Millisecond {
		t.Errorf("second tick elapsed = %v, want 70ms", g.steps[1])
	}
	if !g.inputs[0].Has(core.ActionLeft) || g.inputs[1].Has(core.ActionLeft) {
		t.Errorf("input should be delivered once, got %v then %v", g.inputs[0].Actions, g.inputs[1].Actions)
	}
}

func TestGameModelResizeAndView(t *testing.T) {
	g := &recordingGame{}
	m := NewGameModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30})

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("game resized to %v", g.resized)
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	if view := m.View(); len(view) == 0 {
		t.Error("empty view")
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	g := &recordingGame{gameOver: true}
	m := NewGameModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 30})
	m = update(t, m, TickMsg(time.Now()))

	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b after game over should return to menu")
	}

	m = update(t, m, runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestElapsedSince(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC)
	tests := []struct {
		name string
		last time.Time
		rate int
		want time.Duration
	}{
		{"first tick", time.Time{}, 30, time.Second / 30},
		{"first tick default rate", time.Time{}, 0, time.Second / 60},
		{"regular", now.Add(-40 * time.Millisecond), 30, 40 * time.Millisecond},
		{"clock went back", now.Add(time.Second), 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := elapsedSince(tt.last, now, tt.rate); got != tt.want {
				t.Errorf("elapsedSince = %v, want %v", got, tt.want)
			}
		})
	}
}
