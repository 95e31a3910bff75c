package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/santiagosossaa1/facturas/internal/auth"
	"github.com/santiagosossaa1/facturas/internal/config"
	"github.com/santiagosossaa1/facturas/internal/db"
	"github.com/santiagosossaa1/facturas/internal/logger"
	"github.com/santiagosossaa1/facturas/internal/server"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
	resetFlag       = flag.Bool("reset", false, "Wipe business data (keeps users) and exit")
)

func main() {
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("facturas", "info")
		bootLog.Fatal().Err(err).Msg("loading config")
	}
	log := logger.New("facturas", cfg.App.LogLevel)

	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}

	switch {
	case *migrateOnlyFlag:
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("migrations completed")
		return
	case *seedOnlyFlag:
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		if err := db.Seed(conn); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
		log.Info().Msg("seeding completed")
		return
	case *resetFlag:
		if err := db.Reset(conn); err != nil {
			log.Fatal().Err(err).Msg("reset failed")
		}
		log.Info().Msg("business data cleared")
		return
	}

	if cfg.App.Migrations {
		if err := db.Migrate(conn); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}
	if err := db.Seed(conn); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	sessions := auth.NewSessions(cfg.App.SessionSecret)
	handler := server.New(conn, sessions, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.App.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
