// Package session drives the invaders simulation from a host loop. It owns
// the game state between frames, turns platform input into commands, derives
// settings from the screen size, renders into a cell buffer and persists
// high scores when a run ends.
package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chicken-invaders/internal/config"
	"github.com/vovakirdan/chicken-invaders/internal/core"
	"github.com/vovakirdan/chicken-invaders/internal/invaders"
	"github.com/vovakirdan/chicken-invaders/internal/registry"
)

// Mode identifiers.
const (
	ModeEndless  = "invaders"
	ModeCampaign = "invaders_campaign"
)

func init() {
	registry.Register(ModeEndless, func() registry.Game { return New(ModeEndless, currentDeps()) })
	registry.Register(ModeCampaign, func() registry.Game { return New(ModeCampaign, currentDeps()) })
}

// Deps are the collaborators a session is built with.
type Deps struct {
	Config config.InvadersConfig
	// ScoresFor returns the high-score store for a mode.
	ScoresFor func(mode string) HighScores
	Logger    *log.Logger
}

var (
	depsMu      sync.RWMutex
	defaultDeps = Deps{}
)

// SetDeps sets the collaborators used by sessions created through the
// registry. Missing fields fall back to defaults.
func SetDeps(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	defaultDeps = d
}

func currentDeps() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return defaultDeps
}

func (d Deps) withDefaults() Deps {
	if d.Config.Validate() != nil {
		d.Config = config.DefaultInvadersConfig()
	}
	if d.ScoresFor == nil {
		d.ScoresFor = func(string) HighScores { return NewMemoryScores(0) }
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}

// Session is one player's game. It is not safe for concurrent use.
type Session struct {
	mode   string
	cfg    config.InvadersConfig
	scores HighScores
	logger *log.Logger

	runtime    core.RuntimeConfig
	layout     Layout
	machine    *invaders.Machine
	difficulty *config.DifficultyManager
	controller *Controller

	data       invaders.GameData
	events     []invaders.Event
	storedHigh int
	clockMs    float64 // session clock fed to Shoot
	refit      bool    // layout changed since the ship was last placed
	playedMs   float64 // time spent playing this run
}

// New creates a session for a mode. Call Reset before stepping it.
func New(mode string, deps Deps) *Session {
	deps = deps.withDefaults()
	return &Session{
		mode:       mode,
		cfg:        deps.Config,
		scores:     deps.ScoresFor(mode),
		logger:     deps.Logger.With("mode", mode),
		controller: NewController(DefaultHoldMs),
	}
}

// ID returns the mode identifier.
func (s *Session) ID() string {
	return s.mode
}

// Title returns the display name.
func (s *Session) Title() string {
	if s.mode == ModeCampaign {
		return "Chicken Invaders (Campaign)"
	}
	return "Chicken Invaders"
}

// Reset starts over at the menu with a fresh random source.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime
	s.layout = NewLayout(s.cfg, runtime.ScreenW, runtime.ScreenH)
	s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)

	opts := []invaders.Option{invaders.WithLives(s.cfg.Gameplay.Lives)}
	if s.mode == ModeCampaign && s.cfg.Gameplay.CampaignWaves > 0 {
		opts = append(opts, invaders.WithMaxWave(s.cfg.Gameplay.CampaignWaves))
	}
	s.machine = invaders.NewMachine(core.NewRNG(runtime.Seed), opts...)

	high, err := s.scores.Load()
	if err != nil {
		s.logger.Warn("could not load high score", "err", err)
		high = 0
	}
	s.storedHigh = high
	s.data = s.machine.NewGameData(high)
	s.events = nil
	s.clockMs, s.playedMs = 0, 0
	s.refit = false
	s.controller.Reset()
}

// Resize adapts the playfield to a new screen size. The run continues with
// the ship moved onto the new playfield; a paused run is refitted on resume.
func (s *Session) Resize(w, h int) {
	s.runtime.ScreenW, s.runtime.ScreenH = w, h
	s.layout = NewLayout(s.cfg, w, h)
	s.refit = true
	s.refitShip()
}

func (s *Session) refitShip() {
	if !s.refit || s.layout.TooSmall || s.data.Phase != invaders.PhasePlaying {
		return
	}
	s.apply(RefitCommand(s.data.Player, s.layout.Settings))
	s.refit = false
}

// Settings returns this frame's tuning: the layout's base values with
// difficulty applied to enemy speeds.
func (s *Session) Settings() invaders.Settings {
	st := s.layout.Settings
	st.ChickenSpeed = s.difficulty.Speed(st.ChickenSpeed, s.data.Score, s.playedMs)
	st.EggSpeed = s.difficulty.Speed(st.EggSpeed, s.data.Score, s.playedMs)
	return st
}

// Step applies one host frame.
func (s *Session) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	s.events = s.events[:0]
	if s.layout.TooSmall {
		return core.StepResult{State: s.State()}
	}

	ms := invaders.ClampElapsed(float64(elapsed) / float64(time.Millisecond))
	s.clockMs += ms
	settings := s.Settings()
	prev := s.data.Phase

	switch s.data.Phase {
	case invaders.PhaseMenu:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			s.controller.Reset()
			s.playedMs = 0
			s.apply(invaders.Start{Settings: settings})
			s.refit = false
			s.logger.Info("run started", "seed", s.runtime.Seed)
		}

	case invaders.PhasePlaying:
		if in.Has(core.ActionPause) {
			s.apply(invaders.Pause{})
			break
		}
		s.refitShip()
		intent := s.controller.Update(in, ms)
		if intent.Dir != 0 {
			s.apply(MoveCommand(s.data.Player, intent.Dir, settings, ms))
		}
		if intent.Fire {
			s.apply(invaders.Shoot{NowMs: s.clockMs, Settings: settings})
		}
		s.apply(invaders.Tick{ElapsedMs: ms, Settings: settings})
		s.playedMs += ms

	case invaders.PhasePaused:
		switch {
		case in.Has(core.ActionPause) || in.Has(core.ActionConfirm):
			s.controller.Reset()
			s.apply(invaders.Resume{})
		case in.Has(core.ActionBack):
			s.apply(invaders.ForceGameOver{})
		}

	case invaders.PhaseGameOver, invaders.PhaseVictory:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			s.apply(invaders.Restart{})
		}
	}

	if !prev.Terminal() && s.data.Phase.Terminal() {
		s.recordRun()
	}
	return core.StepResult{State: s.State()}
}

// Apply runs a command directly against the session state.
// The CLI uses it for commands that have no key binding.
func (s *Session) Apply(cmd invaders.Command) {
	s.events = s.events[:0]
	prev := s.data.Phase
	s.apply(cmd)
	if !prev.Terminal() && s.data.Phase.Terminal() {
		s.recordRun()
	}
}

func (s *Session) apply(cmd invaders.Command) {
	res := s.machine.Apply(s.data, cmd)
	s.data = res.Data
	for _, ev := range res.Events {
		s.logEvent(ev)
	}
	s.events = append(s.events, res.Events...)
}

func (s *Session) logEvent(ev invaders.Event) {
	switch ev.Kind {
	case invaders.EventWaveCleared:
		s.logger.Info("wave cleared", "wave", ev.Wave, "score", s.data.Score)
	case invaders.EventPlayerHit:
		s.logger.Debug("player hit", "wave", ev.Wave, "lives", ev.Value)
	case invaders.EventPowerUpCollected:
		s.logger.Debug("power-up collected", "type", invaders.PowerUpType(ev.Value))
	case invaders.EventShot, invaders.EventChickenHit:
	default:
		s.logger.Debug(ev.Kind.String(), "wave", ev.Wave, "value", ev.Value)
	}
}

// recordRun persists a finished run. Failures are logged and never reach
// the simulation.
func (s *Session) recordRun() {
	score, wave := s.data.Score, s.data.Wave
	outcome := s.data.Phase.String()
	s.logger.Info("run ended", "outcome", outcome, "score", score, "wave", wave)

	var err error
	switch rec, ok := s.scores.(RunRecorder); {
	case ok:
		err = rec.SaveRun(score, wave, outcome)
	case score > s.storedHigh:
		err = s.scores.Save(score)
	default:
		return
	}
	if err != nil {
		s.logger.Warn("could not save score", "score", score, "err", err)
		return
	}
	s.storedHigh = max(s.storedHigh, score)
}

// Data returns a copy of the current game state.
func (s *Session) Data() invaders.GameData {
	return s.data.Clone()
}

// Events returns the events produced by the last Step or Apply.
func (s *Session) Events() []invaders.Event {
	return s.events
}

// Layout returns the current screen layout.
func (s *Session) Layout() Layout {
	return s.layout
}

// Mode returns the mode this session plays.
func (s *Session) Mode() string {
	return s.mode
}

// State returns the coarse state for the platform.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.data.Score,
		GameOver: s.data.Phase.Terminal(),
		Paused:   s.data.Phase == invaders.PhasePaused,
	}
}
