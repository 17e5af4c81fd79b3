package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	// Models are ordered so parent tables exist before children
	for _, model := range models.AllModels() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	log.Println("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		log.Printf("Warning: Some indexes could not be created: %v", err)
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// CreateIndexes creates performance indexes the ledger queries lean on
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		// Derived live counts aggregate events per batch by date
		{"idx_stock_events_batch_date", "CREATE INDEX IF NOT EXISTS idx_stock_events_batch_date ON stock_events(batch_id, event_date)"},
		{"idx_batches_enclosure_entry", "CREATE INDEX IF NOT EXISTS idx_batches_enclosure_entry ON batches(enclosure_id, entry_date)"},

		// Overlap checks and resolution scan active entries per scope
		{"idx_price_entries_active_scope", "CREATE INDEX IF NOT EXISTS idx_price_entries_active_scope ON price_entries(is_active, region, start_date)"},

		// Cost matching filters by enclosure and date window
		{"idx_cost_entries_enclosure_date", "CREATE INDEX IF NOT EXISTS idx_cost_entries_enclosure_date ON cost_entries(enclosure_id, recorded_date)"},

		{"idx_relocations_source", "CREATE INDEX IF NOT EXISTS idx_relocations_source ON relocations(source_enclosure_id, relocation_date)"},
	}

	successCount := 0
	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				log.Printf("  ⚠ Failed to create index %s: %v", idx.name, err)
			}
		} else {
			log.Printf("  ✓ Created index: %s", idx.name)
			successCount++
		}
	}

	if successCount > 0 {
		log.Printf("Successfully created %d indexes", successCount)
	}
	return nil
}
