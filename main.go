package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/danielhkuo/sample-admin/auth"
	"github.com/danielhkuo/sample-admin/cliparse"
	"github.com/danielhkuo/sample-admin/db"
	"github.com/danielhkuo/sample-admin/router"
	"github.com/danielhkuo/sample-admin/seed"
	"github.com/danielhkuo/sample-admin/store"
)

func main() {
	var err error

	// Parse configuration
	cliparse.LoadDotEnv()
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	ctx := context.Background()

	if cfg.AdminPassword != "" {
		if err := auth.EnsureAdminUser(ctx, dbConn, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			slog.Error("admin user setup failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Admin user ready", "username", cfg.AdminUsername)
	}

	// Seed mode creates fake data and exits
	if cfg.SeedCount > 0 {
		seeder := seed.New(store.New(dbConn), gofakeit.New(0))
		if err := seeder.Run(ctx, cfg.SeedCount); err != nil {
			slog.Error("seeding failed", "error", err)
			dbConn.Close()
			os.Exit(1)
		}
		return
	}

	// Create router
	mux, err := router.NewRouter(dbConn, cfg)
	if err != nil {
		slog.Error("router setup failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
