package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/quizflash/internal/api"
	"github.com/vytor/quizflash/internal/config"
	"github.com/vytor/quizflash/internal/db"
	"github.com/vytor/quizflash/internal/jobs"
	"github.com/vytor/quizflash/internal/logger"
	"github.com/vytor/quizflash/internal/repository/sqlite"
	"github.com/vytor/quizflash/internal/services"
	"github.com/vytor/quizflash/internal/srs"
	"github.com/vytor/quizflash/internal/worker"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("QuizFlash Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_scale=%s", cfg.DefaultScale)
	log.Debug("new_cards_per_day=%d", cfg.NewCardsPerDay)
	log.Debug("due_cards_per_day=%d", cfg.DueCardsPerDay)
	log.Debug("achievement_worker_count=%d", cfg.AchievementWorkerCount)
	log.Debug("achievement_queue_size=%d", cfg.AchievementQueueSize)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("QuizFlash Server Stopped")
	log.Info("===========================================")
}

func run(cfg config.Config, log *logger.Logger) error {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	scale, err := srs.ParseScale(cfg.DefaultScale)
	if err != nil {
		return err
	}

	clock := srs.SystemClock{}
	store := sqlite.NewStore(database.DB)
	pool := worker.NewPool(cfg.AchievementWorkerCount, cfg.AchievementQueueSize)
	queue := jobs.NewWorkerQueue(pool, store, clock)

	srv, err := api.NewServer(api.Dependencies{
		Decks: services.NewDeckService(store.Decks()),
		Study: services.NewStudyService(store, srs.New(srs.WithClock(clock)), queue, services.StudyLimits{
			NewCardsPerDay: cfg.NewCardsPerDay,
			DueCardsPerDay: cfg.DueCardsPerDay,
		}),
		Stats:        services.NewStatsService(store, clock),
		DB:           database,
		DefaultScale: scale,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool.Start(context.Background())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Debug("shutting down HTTP server")
		err := httpServer.Shutdown(shutdownCtx)

		log.Debug("draining achievement pool")
		pool.Stop()
		return err
	})

	return g.Wait()
}
