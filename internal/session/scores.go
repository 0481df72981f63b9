package session

import (
	"sync"

	"github.com/vovakirdan/chicken-invaders/internal/storage"
)

// HighScores is the persistence capability a session needs.
type HighScores interface {
	Load() (int, error)
	Save(score int) error
}

// RunRecorder is implemented by stores that keep a history of runs.
// When available, every finished run is recorded instead of only new highs.
type RunRecorder interface {
	SaveRun(score, wave int, outcome string) error
}

// MemoryScores keeps the best score in memory. It is used when no database
// is available and in tests.
type MemoryScores struct {
	mu   sync.Mutex
	best int
	// Err, when set, is returned from every call.
	Err error
}

// NewMemoryScores creates an in-memory store seeded with a best score.
func NewMemoryScores(best int) *MemoryScores {
	return &MemoryScores{best: best}
}

// Load returns the best score.
func (m *MemoryScores) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return m.best, nil
}

// Save keeps score if it beats the current best.
func (m *MemoryScores) Save(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.best = max(m.best, score)
	return nil
}

// StoreScores returns a ScoresFor function backed by a SQLite store.
// A nil store falls back to per-mode in-memory scores.
func StoreScores(store *storage.Store) func(mode string) HighScores {
	if store == nil {
		var mu sync.Mutex
		byMode := map[string]*MemoryScores{}
		return func(mode string) HighScores {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := byMode[mode]; !ok {
				byMode[mode] = NewMemoryScores(0)
			}
			return byMode[mode]
		}
	}
	return func(mode string) HighScores {
		return storage.NewKeeper(store, mode)
	}
}
