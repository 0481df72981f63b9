package storage

// Keeper is the high-score capability for a single mode. The session
// consults it on start and on every finished run.
type Keeper struct {
	store *Store
	mode  string
}

// NewKeeper binds a store to a mode.
func NewKeeper(store *Store, mode string) *Keeper {
	return &Keeper{store: store, mode: mode}
}

// Mode returns the mode the keeper records under.
func (k *Keeper) Mode() string {
	return k.mode
}

// Load returns the best recorded score for the mode.
func (k *Keeper) Load() (int, error) {
	return k.store.HighScore(k.mode)
}

// Save records a bare score.
func (k *Keeper) Save(score int) error {
	_, err := k.store.SaveScore(k.mode, score)
	return err
}

// SaveRun records a finished run with its wave and outcome.
func (k *Keeper) SaveRun(score, wave int, outcome string) error {
	_, err := k.store.SaveRun(RunResult{Mode: k.mode, Score: score, Wave: wave, Outcome: outcome})
	return err
}
