package drive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// exportPrefixes are the three table exports a run needs. The warehouse
// uploads them with names like "Compras_20260817.csv".
var exportPrefixes = []string{"compras", "ventas", "stock"}

// FetchWeeklyExports downloads the newest copy of each export from the
// folder into destDir and returns the local paths. Missing tables are an
// error; a run cannot start on a partial week.
func (s *Service) FetchWeeklyExports(folderID, destDir string) ([]string, error) {
	files, err := s.ListFiles(folderID)
	if err != nil {
		return nil, err
	}

	// Newest first by Drive's modified time (RFC 3339, so string order works).
	sort.Slice(files, func(a, b int) bool {
		return files[a].ModifiedTime > files[b].ModifiedTime
	})

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	var paths []string
	for _, prefix := range exportPrefixes {
		var found *File
		for _, f := range files {
			if strings.HasPrefix(strings.ToLower(f.Name), prefix) && strings.HasSuffix(strings.ToLower(f.Name), ".csv") {
				found = f
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("no %s export in drive folder %s", prefix, folderID)
		}

		dest := filepath.Join(destDir, found.Name)
		out, err := os.Create(dest)
		if err != nil {
			return nil, err
		}
		if err := s.DownloadFile(found.ID, out); err != nil {
			out.Close()
			return nil, fmt.Errorf("download %s: %w", found.Name, err)
		}
		if err := out.Close(); err != nil {
			return nil, err
		}
		log.Info().Str("file", found.Name).Str("dest", dest).Msg("export downloaded")
		paths = append(paths, dest)
	}
	return paths, nil
}
