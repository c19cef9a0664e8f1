// File: /database/database.go
package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ryde-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
		// Surface duplicate-key violations as gorm.ErrDuplicatedKey so the
		// repository can map them to the duplicate-relationship error.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// The pair_key unique index from the model tags closes the duplicate race;
	// these back it up at the row level.

	// Prevent self-friendships
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT ck_friendships_no_self CHECK (from_user_id != to_user_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add check constraint for friendships: %v\n", err)
	}

	// Coordinate ranges
	if err := db.Exec("ALTER TABLE users ADD CONSTRAINT ck_users_latitude CHECK (latitude IS NULL OR (latitude >= -90 AND latitude <= 90))").Error; err != nil {
		fmt.Printf("Warning: Could not add latitude check constraint: %v\n", err)
	}

	if err := db.Exec("ALTER TABLE users ADD CONSTRAINT ck_users_longitude CHECK (longitude IS NULL OR (longitude >= -180 AND longitude <= 180))").Error; err != nil {
		fmt.Printf("Warning: Could not add longitude check constraint: %v\n", err)
	}

	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// SeedData populates the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	testUsers := []models.User{
		{
			ID:        "user-1",
			Name:      "John Doe",
			Email:     "john@example.com",
			Password:  "$2a$10$dummy", // This should be properly hashed in real scenarios
			Latitude:  floatPtr(40.7128),
			Longitude: floatPtr(-74.0060),
			IsActive:  true,
		},
		{
			ID:        "user-2",
			Name:      "Jane Smith",
			Email:     "jane@example.com",
			Password:  "$2a$10$dummy",
			Latitude:  floatPtr(40.7589),
			Longitude: floatPtr(-73.9851),
			IsActive:  true,
		},
		{
			ID:       "user-3",
			Name:     "Sam Nolocation",
			Email:    "sam@example.com",
			Password: "$2a$10$dummy",
			IsActive: true,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
