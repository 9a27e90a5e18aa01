package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogAdapter "github.com/planforge/aps-go/internal/adapters/catalog"
	"github.com/planforge/aps-go/internal/adapters/persistence"
	"github.com/planforge/aps-go/internal/application/tables"
	"github.com/planforge/aps-go/internal/domain/lookup"
	"github.com/planforge/aps-go/internal/domain/shared"
	"github.com/planforge/aps-go/internal/infrastructure/config"
	"github.com/planforge/aps-go/internal/infrastructure/database"
	"github.com/planforge/aps-go/internal/infrastructure/logging"
	"github.com/planforge/aps-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	fmt.Println("APS Daemon v0.1.0")
	fmt.Println("=================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configFlag)

	logCloser, err := logging.Setup(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	defer logCloser.Close()

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	if err := pf.Acquire(); err != nil {
		if *forceFlag {
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			fmt.Println("Existing daemon killed")

			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			logging.Warnf("failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	// 1. Setup database connection
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)
	fmt.Println("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 2. Build the table registry over an empty catalog; scenario loading
	// registers resources before any simulation pass runs.
	cat := catalogAdapter.NewMemoryCatalog()
	ids := shared.NewSequentialIDGenerator(1)
	registry := tables.NewRegistry(cat, ids)
	store := tables.Store(persistence.NewGormLookupTableRepository(db))

	// 3. Restore persisted lookup tables
	if cfg.Scenario.RestoreOnStartup {
		linkErrs, err := registry.Restore(ctx, store)
		if err != nil {
			return fmt.Errorf("failed to restore lookup tables: %w", err)
		}
		for _, e := range linkErrs {
			logging.Warnf("restore: %v", e)
		}

		maxID := int64(0)
		total := 0
		for _, kind := range lookup.AllTableKinds() {
			m := registry.Manager(kind)
			total += m.Count()
			for _, t := range m.Tables() {
				if t.ID() > maxID {
					maxID = t.ID()
				}
			}
		}
		ids.Advance(maxID + 1)
		logging.Infof("restored %d lookup tables", total)
	}

	// 4. Periodic state saves until shutdown
	ticker := time.NewTicker(cfg.Daemon.SaveInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Daemon running - press Ctrl+C to stop")
	for {
		select {
		case <-ticker.C:
			if err := registry.Persist(ctx, store); err != nil {
				logging.Warnf("periodic save failed: %v", err)
			}
		case sig := <-sigCh:
			fmt.Printf("Received %s - shutting down...\n", sig)

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Daemon.ShutdownTimeout)
			defer cancel()
			if err := registry.Persist(shutdownCtx, store); err != nil {
				return fmt.Errorf("failed to save state on shutdown: %w", err)
			}
			fmt.Println("State saved")
			return nil
		}
	}
}
