// Package state persists the engine's position between weekly runs: which
// week was last processed and the accumulated stock ledger that seeds the
// next window's initial stock.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

// RunState is the JSON document written after every successful run. The
// stock ledger is keyed by article code|size|color.
type RunState struct {
	LastWeek      int                `json:"last_week"`
	LastYear      int                `json:"last_year"`
	LastRunAt     time.Time          `json:"last_run_at"`
	StockLedger   map[string]float64 `json:"stock_ledger"`
	SectionsDone  []string           `json:"sections_done"`
	InputsDigest  string             `json:"inputs_digest,omitempty"`
}

// LedgerKey flattens an article key for the ledger map.
func LedgerKey(k domain.ArticleKey) string {
	return k.Code + "|" + k.Size + "|" + k.Color
}

type Manager struct {
	path string
}

func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load reads the persisted state. A missing file means a first run and
// returns an empty state, not an error.
func (m *Manager) Load() (*RunState, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return &RunState{StockLedger: make(map[string]float64)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state %s: %w", m.path, err)
	}
	var s RunState
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", m.path, err)
	}
	if s.StockLedger == nil {
		s.StockLedger = make(map[string]float64)
	}
	return &s, nil
}

// Save writes the state atomically: temp file in the same directory, then
// rename. A crash mid-write never corrupts the previous state.
func (m *Manager) Save(s *RunState) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}

// Advance folds a finished run into the state: bumps the week, refreshes the
// ledger from the final stocks and stamps the run time.
func (m *Manager) Advance(s *RunState, week, year int, results []domain.SectionResult) *RunState {
	next := &RunState{
		LastWeek:    week,
		LastYear:    year,
		LastRunAt:   time.Now().UTC(),
		StockLedger: make(map[string]float64, len(s.StockLedger)),
	}
	for k, v := range s.StockLedger {
		next.StockLedger[k] = v
	}
	for _, r := range results {
		next.SectionsDone = append(next.SectionsDone, r.Section)
		for _, a := range r.Articles {
			next.StockLedger[LedgerKey(a.Key)] = a.StockFinal
		}
	}
	return next
}
