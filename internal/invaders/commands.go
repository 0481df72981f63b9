package invaders

// Command is a discrete input to the state machine. The set is closed:
// only the types in this file implement it.
type Command interface {
	command()
}

// Start begins a run from the menu.
type Start struct {
	Settings Settings
}

// Tick advances the simulation by one frame.
type Tick struct {
	ElapsedMs float64
	Settings  Settings
}

// MovePlayer places the ship. Bounds clamping is the caller's job.
type MovePlayer struct {
	X, Y float64
}

// Shoot fires if the cooldown has elapsed since the last accepted shot.
type Shoot struct {
	NowMs    float64
	Settings Settings
}

// Pause suspends a running game.
type Pause struct{}

// Resume continues a paused game.
type Resume struct{}

// Restart returns to the menu, keeping the best score.
type Restart struct{}

// ForceGameOver ends the run immediately.
type ForceGameOver struct{}

// AdvanceWave skips straight to the next wave.
type AdvanceWave struct {
	Settings Settings
}

func (Start) command()         {}
func (Tick) command()          {}
func (MovePlayer) command()    {}
func (Shoot) command()         {}
func (Pause) command()         {}
func (Resume) command()        {}
func (Restart) command()       {}
func (ForceGameOver) command() {}
func (AdvanceWave) command()   {}

// EventKind classifies something notable that happened during a transition.
type EventKind int

const (
	EventShot EventKind = iota
	EventChickenHit
	EventChickenKilled
	EventPowerUpDropped
	EventPlayerHit
	EventShieldAbsorbed
	EventPowerUpCollected
	EventWaveCleared
	EventGameOver
	EventVictory
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventChickenHit:
		return "chicken_hit"
	case EventChickenKilled:
		return "chicken_killed"
	case EventPowerUpDropped:
		return "powerup_dropped"
	case EventPlayerHit:
		return "player_hit"
	case EventShieldAbsorbed:
		return "shield_absorbed"
	case EventPowerUpCollected:
		return "powerup_collected"
	case EventWaveCleared:
		return "wave_cleared"
	case EventGameOver:
		return "game_over"
	case EventVictory:
		return "victory"
	default:
		return "unknown"
	}
}

// Event is an informational record of a transition. Events never feed back
// into the simulation.
type Event struct {
	Kind  EventKind
	Wave  int
	Value int // points, lives left or power-up type, depending on Kind
}

// StepResult is the outcome of applying one command.
type StepResult struct {
	Data   GameData
	Events []Event
}
