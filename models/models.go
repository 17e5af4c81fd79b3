package models

// AllModels returns all model structs for auto-migration
// IMPORTANT: Order matters! Parent tables must be created before child tables
func AllModels() []interface{} {
	return []interface{}{
		// 1. Independent tables (no foreign keys)
		&User{},
		&PriceEntry{},

		// 2. Tables with single dependencies
		&Enclosure{}, // depends on: User
		&CostEntry{}, // depends on: Enclosure

		// 3. Ledger tables
		&Batch{},      // depends on: Enclosure
		&StockEvent{}, // depends on: Batch

		// 4. Cross-aggregate tables
		&Relocation{}, // depends on: Enclosure, Batch, User
	}
}
