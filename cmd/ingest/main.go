// Command ingest runs the small ops server the scheduler hits: a health
// endpoint and a trigger that pulls the newest exports from Drive into the
// input directory.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/drive"
	"github.com/jardineria-aranjuez/reposicion/pkg/logger"
)

type server struct {
	cfg   *config.Config
	drive *drive.Service

	mu      sync.Mutex
	running bool
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Setup(cfg.App.LogLevel)

	driveService, err := drive.NewService(os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Drive service")
	}

	s := &server{cfg: cfg, drive: driveService}

	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/ingest/run", s.triggerIngest).Methods("POST")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("ingest server starting")
	log.Fatal().Err(http.ListenAndServe(addr, r)).Msg("server stopped")
}

// triggerIngest downloads the newest exports. Only one ingest runs at a
// time; concurrent triggers get a 409.
func (s *server) triggerIngest(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		http.Error(w, "ingest already running", http.StatusConflict)
		return
	}
	s.running = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	paths, err := s.drive.FetchWeeklyExports(s.cfg.Storage.DriveFolderID, s.cfg.App.InputDir)
	if err != nil {
		log.Error().Err(err).Msg("ingest failed")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"files":  paths,
	})
}
