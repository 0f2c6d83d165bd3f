// Package main is the entry point for the runkey daemon.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tkrajnik/runkey/internal/config"
	"github.com/tkrajnik/runkey/internal/database"
	"github.com/tkrajnik/runkey/internal/dispatch"
	"github.com/tkrajnik/runkey/internal/registry"
	"github.com/tkrajnik/runkey/internal/router"
	"github.com/tkrajnik/runkey/internal/services"
	"github.com/tkrajnik/runkey/internal/store"
	"github.com/tkrajnik/runkey/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	showVersion := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("runkey %s\n", version.Version)
		fmt.Printf("Build Time: %s\n", version.BuildTime)
		fmt.Printf("Git Commit: %s\n", version.GitCommit)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: could not load config from %s: %v", *configPath, err)
		log.Println("Using default configuration...")
		cfg, _ = config.Load("")
	}

	dataDir := cfg.Storage.DataDir
	if dataDir == "" {
		dataDir, err = store.DefaultDataDir()
		if err != nil {
			log.Fatalf("Failed to resolve data directory: %v", err)
		}
	}

	historyPath := cfg.History.Path
	if historyPath == "" {
		historyPath = filepath.Join(dataDir, "runs.db")
	}

	db, err := database.New(historyPath)
	if err != nil {
		log.Fatalf("Failed to open run history database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	settingsStore := store.NewSettingsStore(dataDir)
	commandStore := store.NewCommandStore(dataDir, settingsStore)
	reg := registry.New()

	commandService := services.NewCommandService(commandStore)
	historyService := services.NewHistoryService(db)
	executorService := services.NewExecutorService(commandService, settingsStore, reg, historyService)
	dispatcher := dispatch.NewDispatcher(commandService, executorService)

	r := router.New(cfg, commandService, executorService, historyService, dispatcher, settingsStore, commandStore)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("runkey %s starting on %s (data dir: %s)", version.Version, addr, dataDir)

	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
