package database

import (
	"fmt"

	"clinic-intake/internal/domain/entity"

	"gorm.io/gorm"
)

// EnsureSchema creates the patients table when it does not exist yet.
// Existing tables are left untouched.
func EnsureSchema(db *gorm.DB) error {
	migrator := db.Migrator()
	if migrator.HasTable(&entity.PatientIntake{}) {
		return nil
	}
	if err := migrator.CreateTable(&entity.PatientIntake{}); err != nil {
		return fmt.Errorf("failed to create patients table: %w", err)
	}
	return nil
}
