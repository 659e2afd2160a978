package database

import (
	"errors"
	"fmt"

	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"gorm.io/gorm"
)

// MigrateDatabase runs the schema migration and seeds the rows every
// installation needs.
func MigrateDatabase(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}

	if _, err := EnsureGroup(db, constants.ITAdminGroup); err != nil {
		return fmt.Errorf("failed to seed groups: %w", err)
	}

	return nil
}

// EnsureGroup returns the named group, creating it when missing.
func EnsureGroup(db *gorm.DB, name string) (*models.Group, error) {
	var group models.Group
	err := db.Where("name = ?", name).First(&group).Error
	if err == nil {
		return &group, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find group %s: %w", name, err)
	}

	group = models.Group{Name: name}
	if err := db.Create(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to create group %s: %w", name, err)
	}
	return &group, nil
}
