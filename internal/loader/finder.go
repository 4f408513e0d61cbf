package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// InputSet points at the newest export of each table for a run.
type InputSet struct {
	Purchases string
	Sales     string
	Stock     string
}

var timestampPattern = regexp.MustCompile(`(\d{8})(?:[_-](\d{6}))?`)

// fileStamp extracts the embedded timestamp from an export filename
// (e.g. "Compras_20260817_093012.csv"). Files without one sort by mtime.
func fileStamp(path string, info os.FileInfo) time.Time {
	base := filepath.Base(path)
	m := timestampPattern.FindStringSubmatch(base)
	if m == nil {
		return info.ModTime()
	}
	layout, raw := "20060102", m[1]
	if m[2] != "" {
		layout, raw = "20060102150405", m[1]+m[2]
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return info.ModTime()
	}
	return t
}

// newestMatching returns the most recent CSV in dir whose name starts with
// prefix (case-insensitive).
func newestMatching(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var best string
	var bestStamp time.Time
	lower := strings.ToLower(prefix)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		if !strings.HasPrefix(name, lower) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(dir, e.Name())
		stamp := fileStamp(path, info)
		if best == "" || stamp.After(bestStamp) {
			best, bestStamp = path, stamp
		}
	}
	if best == "" {
		return "", fmt.Errorf("no %s export found in %s", prefix, dir)
	}
	return best, nil
}

// FindInputs locates the newest purchases, sales and stock exports in dir.
// All three must exist for a run to start.
func FindInputs(dir string) (InputSet, error) {
	var set InputSet
	var err error
	if set.Purchases, err = newestMatching(dir, "compras"); err != nil {
		return set, err
	}
	if set.Sales, err = newestMatching(dir, "ventas"); err != nil {
		return set, err
	}
	if set.Stock, err = newestMatching(dir, "stock"); err != nil {
		return set, err
	}
	return set, nil
}
