package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Joshtri/SIMTernakAyam-API-sub000/models"
)

// SeedData seeds initial data into empty tables
func SeedData(db *gorm.DB) error {
	log.Println("Checking if database needs seeding...")

	var count int64
	db.Model(&models.Enclosure{}).Count(&count)
	if count > 0 {
		log.Println("Database already has data. Skipping seed.")
		return nil
	}

	log.Println("Database is empty. Starting seed process...")

	// Use transaction for data integrity
	return db.Transaction(func(tx *gorm.DB) error {
		users, err := seedUsers(tx)
		if err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		enclosures, err := seedEnclosures(tx, users)
		if err != nil {
			return fmt.Errorf("failed to seed enclosures: %w", err)
		}

		batches, err := seedBatches(tx, enclosures)
		if err != nil {
			return fmt.Errorf("failed to seed batches: %w", err)
		}

		if err := seedStockEvents(tx, batches); err != nil {
			return fmt.Errorf("failed to seed stock events: %w", err)
		}

		if err := seedPrices(tx); err != nil {
			return fmt.Errorf("failed to seed prices: %w", err)
		}

		if err := seedCosts(tx, enclosures); err != nil {
			return fmt.Errorf("failed to seed costs: %w", err)
		}

		log.Println("Seed completed successfully")
		return nil
	})
}

func seedUsers(tx *gorm.DB) ([]models.User, error) {
	users := []models.User{
		{Username: "admin", FullName: "Administrator", Role: "operator"},
		{Username: "yanto", FullName: "Yanto Wibowo", Role: "caretaker"},
		{Username: "siti", FullName: "Siti Rahma", Role: "caretaker"},
	}
	if err := tx.Create(&users).Error; err != nil {
		return nil, err
	}
	log.Printf("  ✓ Seeded %d users", len(users))
	return users, nil
}

func seedEnclosures(tx *gorm.DB, users []models.User) ([]models.Enclosure, error) {
	region := "east"
	enclosures := []models.Enclosure{
		{EnclosureCode: "KD-001", EnclosureName: "North coop", Capacity: 500, CaretakerID: &users[1].UserID},
		{EnclosureCode: "KD-002", EnclosureName: "South coop", Capacity: 300, CaretakerID: &users[2].UserID},
		{EnclosureCode: "KD-003", EnclosureName: "East coop", Capacity: 200, Region: &region, CaretakerID: &users[1].UserID},
	}
	if err := tx.Create(&enclosures).Error; err != nil {
		return nil, err
	}
	log.Printf("  ✓ Seeded %d enclosures", len(enclosures))
	return enclosures, nil
}

func seedBatches(tx *gorm.DB, enclosures []models.Enclosure) ([]models.Batch, error) {
	today := models.DateOnly(time.Now())
	reason := "carried over from previous cycle"
	flaggedAt := today.AddDate(0, 0, -30)
	batches := []models.Batch{
		{EnclosureID: enclosures[0].EnclosureID, EntryDate: today.AddDate(0, 0, -40), EntryQuantity: 400},
		{EnclosureID: enclosures[0].EnclosureID, EntryDate: today.AddDate(0, 0, -70), EntryQuantity: 80,
			Leftover: true, LeftoverReason: &reason, LeftoverFlaggedAt: &flaggedAt},
		{EnclosureID: enclosures[1].EnclosureID, EntryDate: today.AddDate(0, 0, -25), EntryQuantity: 250},
		{EnclosureID: enclosures[2].EnclosureID, EntryDate: today.AddDate(0, 0, -10), EntryQuantity: 150},
	}
	if err := tx.Create(&batches).Error; err != nil {
		return nil, err
	}
	log.Printf("  ✓ Seeded %d batches", len(batches))
	return batches, nil
}

func seedStockEvents(tx *gorm.DB, batches []models.Batch) error {
	today := models.DateOnly(time.Now())
	cause := "heat stress"
	timeOfDay := "14:30"
	weight := 1.9
	events := []models.StockEvent{
		{BatchID: batches[0].BatchID, Kind: models.EventDeath, EventDate: today.AddDate(0, 0, -12),
			EventTime: &timeOfDay, Quantity: 6, Cause: &cause},
		{BatchID: batches[0].BatchID, Kind: models.EventHarvest, EventDate: today.AddDate(0, 0, -3),
			Quantity: 120, AvgWeight: &weight},
		{BatchID: batches[2].BatchID, Kind: models.EventDeath, EventDate: today.AddDate(0, 0, -5),
			EventTime: &timeOfDay, Quantity: 3, Cause: &cause},
	}
	if err := tx.Create(&events).Error; err != nil {
		return err
	}
	log.Printf("  ✓ Seeded %d stock events", len(events))
	return nil
}

func seedPrices(tx *gorm.DB) error {
	today := models.DateOnly(time.Now())
	lastQuarterEnd := today.AddDate(0, 0, -60)
	region := "east"
	prices := []models.PriceEntry{
		{PricePerHead: 45000, PricePerKg: 19000, StartDate: today.AddDate(0, 0, -180),
			EndDate: &lastQuarterEnd, IsActive: false},
		{PricePerHead: 48000, PricePerKg: 20000, StartDate: lastQuarterEnd, IsActive: true},
		{PricePerHead: 50000, PricePerKg: 21000, StartDate: today.AddDate(0, 0, -30),
			Region: &region, IsActive: true},
	}
	if err := tx.Create(&prices).Error; err != nil {
		return err
	}
	log.Printf("  ✓ Seeded %d price entries", len(prices))
	return nil
}

func seedCosts(tx *gorm.DB, enclosures []models.Enclosure) error {
	today := models.DateOnly(time.Now())
	costs := []models.CostEntry{
		{Label: "feed delivery", Amount: 1200000, RecordedDate: today.AddDate(0, 0, -20),
			EnclosureID: &enclosures[0].EnclosureID},
		{Label: "vaccination", Amount: 450000, RecordedDate: today.AddDate(0, 0, -15),
			EnclosureID: &enclosures[1].EnclosureID},
		{Label: "electricity", Amount: 600000, RecordedDate: today.AddDate(0, 0, -18)},
	}
	if err := tx.Create(&costs).Error; err != nil {
		return err
	}
	log.Printf("  ✓ Seeded %d cost entries", len(costs))
	return nil
}
