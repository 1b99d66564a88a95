package main

import (
	"gorm.io/gorm"

	"github.com/airsense/platform/internal/models"
)

// registerModels returns all models that need migration
func registerModels() []interface{} {
	return []interface{}{
		// User management
		&models.User{},
		&models.EmailVerification{},

		// Sensors & readings
		&models.Gas{},
		&models.Node{},
		&models.Measurement{},
	}
}

// runMigrations executes all database migrations
func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(registerModels()...); err != nil {
		return err
	}

	// Run custom migrations
	return runCustomMigrations(db)
}

// runCustomMigrations handles schema changes AutoMigrate can't handle
func runCustomMigrations(db *gorm.DB) error {
	migrations := []func(*gorm.DB) error{
		seedGasTypes,
		addMeasurementIndexes,
	}

	for _, migration := range migrations {
		if err := migration(db); err != nil {
			return err
		}
	}

	return nil
}

// seedGasTypes fills the gas-type enumeration measurements reference.
func seedGasTypes(db *gorm.DB) error {
	gases := []models.Gas{
		{ID: 1, Name: "O3"},
		{ID: 2, Name: "NO2"},
		{ID: 3, Name: "SO2"},
		{ID: 4, Name: "CO"},
	}
	for _, g := range gases {
		if err := db.Where(models.Gas{ID: g.ID}).FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}
	return nil
}

// addMeasurementIndexes adds a composite index for the per-node timeline
// reads. MySQL has no CREATE INDEX IF NOT EXISTS, so existence is checked
// through the migrator first.
func addMeasurementIndexes(db *gorm.DB) error {
	if db.Migrator().HasIndex(&models.Measurement{}, "idx_measurements_node_timestamp") {
		return nil
	}
	return db.Exec(`CREATE INDEX idx_measurements_node_timestamp ON measurements(node_id, timestamp)`).Error
}
