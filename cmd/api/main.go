package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jardineria-aranjuez/reposicion/internal/api"
	"github.com/jardineria-aranjuez/reposicion/internal/cache"
	"github.com/jardineria-aranjuez/reposicion/internal/config"
	"github.com/jardineria-aranjuez/reposicion/internal/repository/postgres"
	"github.com/jardineria-aranjuez/reposicion/internal/service"
	"github.com/jardineria-aranjuez/reposicion/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Setup(cfg.App.LogLevel)

	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	batchCache, err := cache.NewBatchCache(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, serving without it")
		batchCache = cache.NewNoopBatchCache()
	}

	resultsService := service.NewResultsService(postgres.NewResultsRepository(db), batchCache)

	router := api.NewRouter(&api.Services{ResultsService: resultsService}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
