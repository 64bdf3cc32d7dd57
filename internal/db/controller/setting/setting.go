// Package setting provides access to the flat key/value settings of the site.
package setting

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/folio-admin/folio-admin/internal/db/models"
)

const columnKey = "key"

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingNameEmpty is returned when attempting to write a setting with an empty name.
	ErrSettingNameEmpty = errors.New("setting name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

func byName(name string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: columnKey}, Value: name}
}

// upsert writes the row, overwriting the value of an existing key.
func upsert(tx *gorm.DB, name, value string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: columnKey}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Setting{Name: name, Value: value}).Error
}

// All returns every setting as a map. The map is empty, not nil, if nothing is set.
func All(db *gorm.DB) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Name] = s.Value
	}

	return out, nil
}

// Merge writes all given keys in one transaction.
// Keys that are not part of values keep their current value.
func Merge(db *gorm.DB, values map[string]string) error {
	if db == nil {
		return ErrDBNil
	}

	for name := range values {
		if name == "" {
			return ErrSettingNameEmpty
		}
	}

	if len(values) == 0 {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for name, value := range values {
			if err := upsert(tx, name, value); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("merge settings: %w", err)
	}

	return nil
}

// Get retrieves a setting by its name.
func Get(db *gorm.DB, name string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	var setting models.Setting

	result := db.Where(byName(name)).Take(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, fmt.Errorf("get setting %s: %w", name, result.Error)
	}

	return &setting, nil
}

// Set creates or updates a single setting.
func Set(db *gorm.DB, name, value string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return nil, ErrSettingNameEmpty
	}

	if err := upsert(db, name, value); err != nil {
		return nil, fmt.Errorf("set setting %s: %w", name, err)
	}

	return &models.Setting{Name: name, Value: value}, nil
}
