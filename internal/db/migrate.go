package db

import (
	"expense_tracker/internal/domain" // Importing domain models
	"fmt"                             // Error wrapping

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.Expense{}); err != nil {
		return err
	}
	for _, stmt := range dialectStatements(db.Dialector.Name()) {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate %s: %w", db.Dialector.Name(), err)
		}
	}
	logrus.Info("Migration completed.")
	return nil
}

// dialectStatements returns schema adjustments AutoMigrate cannot express
// portably. Emails are case-sensitive identifiers, so on MySQL the column
// (and its unique index) gets a binary collation instead of the schema's
// case-insensitive default. SQLite compares text byte-wise already.
func dialectStatements(dialect string) []string {
	switch dialect {
	case "mysql":
		return []string{
			"ALTER TABLE users MODIFY email varchar(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL",
		}
	default:
		return nil
	}
}
