package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jardineria-aranjuez/reposicion/internal/domain"
)

func TestLoadMissingFileIsColdStart(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "run_state.json"))
	s, err := m.Load()
	require.NoError(t, err)
	assert.Zero(t, s.LastWeek)
	assert.NotNil(t, s.StockLedger)
	assert.Empty(t, s.StockLedger)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_state.json")
	m := NewManager(path)

	s := &RunState{
		LastWeek: 34,
		LastYear: 2026,
		StockLedger: map[string]float64{
			"1101234567|M|Verde": 12,
		},
		SectionsDone: []string{"interior"},
	}
	require.NoError(t, m.Save(s))

	// The temp file must not survive a successful save.
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	loaded, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 34, loaded.LastWeek)
	assert.Equal(t, 2026, loaded.LastYear)
	assert.Equal(t, 12.0, loaded.StockLedger["1101234567|M|Verde"])
	assert.Equal(t, []string{"interior"}, loaded.SectionsDone)
}

func TestLoadCorruptStateFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewManager(path).Load()
	assert.Error(t, err)
}

func TestAdvanceFoldsRunIntoLedger(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "run_state.json"))
	prev := &RunState{
		LastWeek: 33,
		StockLedger: map[string]float64{
			"1101234567||": 5,  // updated below
			"5112345678||": 20, // untouched, carried over
		},
	}

	results := []domain.SectionResult{
		{
			Section: "interior",
			Week:    34,
			Articles: []domain.ArticleMetrics{
				{Key: domain.ArticleKey{Code: "1101234567"}, StockFinal: 9},
				{Key: domain.ArticleKey{Code: "1201234567"}, StockFinal: 4},
			},
		},
	}

	next := m.Advance(prev, 34, 2026, results)
	assert.Equal(t, 34, next.LastWeek)
	assert.Equal(t, 2026, next.LastYear)
	assert.False(t, next.LastRunAt.IsZero())
	assert.Equal(t, 9.0, next.StockLedger["1101234567||"])
	assert.Equal(t, 4.0, next.StockLedger["1201234567||"])
	assert.Equal(t, 20.0, next.StockLedger["5112345678||"])
	assert.Equal(t, []string{"interior"}, next.SectionsDone)

	// The previous state is untouched.
	assert.Equal(t, 5.0, prev.StockLedger["1101234567||"])
}

func TestLedgerKey(t *testing.T) {
	k := domain.ArticleKey{Code: "1101234567", Name: "Ficus", Size: "M", Color: "Verde"}
	assert.Equal(t, "1101234567|M|Verde", LedgerKey(k))
}
