package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/config"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/database"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/pkg/logger"
	"github.com/Joshtri/SIMTernakAyam-API-sub000/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		check   = flag.Bool("check", false, "Run the database connection check and exit")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if *check {
		runConnectionCheck()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.Must(logger.New(cfg.App.Environment))
	defer zlog.Sync()

	// Initialize database connection
	if err := database.Initialize(&cfg.Database); err != nil {
		zlog.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	// Check database connection
	if err := database.CheckConnection(database.DB); err != nil {
		zlog.Fatal("Database connection check failed", zap.Error(err))
	}

	// Run migration if requested
	if *migrate {
		zlog.Info("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			zlog.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.CreateIndexes(database.DB); err != nil {
			zlog.Fatal("Failed to create indexes", zap.Error(err))
		}
		zlog.Info("Migration completed successfully")
	}

	// Seed database if requested
	if *seed {
		zlog.Info("Seeding database with sample data...")
		if err := database.SeedData(database.DB); err != nil {
			zlog.Fatal("Failed to seed database", zap.Error(err))
		}
		zlog.Info("Database seeded successfully")
	}

	// Create and start web server
	server := web.NewServer(database.DB, zlog)

	// Start server in a goroutine
	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			zlog.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for interrupt signal
	<-quit
	zlog.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		zlog.Error("Server shutdown error", zap.Error(err))
	}
}

func showHelp() {
	log.Println(`
SIMTernakAyam Batch Stock Ledger Server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -check    Run the database connection check and exit
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration
  go run main.go -migrate

  # Start server with migration and seed
  go run main.go -migrate -seed

For full migration control, use:
  go run cmd/migrate/main.go

For full seed control, use:
  go run cmd/seed/main.go`)
}
