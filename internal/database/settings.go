package database

import (
	"errors"
	"fmt"

	"corb3d-backend/internal/models"

	"gorm.io/gorm"
)

type SettingsQueries struct {
	db *gorm.DB
}

func NewSettingsQueries(db *gorm.DB) *SettingsQueries {
	return &SettingsQueries{db: db}
}

func (q *SettingsQueries) GetAll() ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := q.db.Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

// Get returns the setting for key, or nil when it is not set.
func (q *SettingsQueries) Get(key string) (*models.SiteSetting, error) {
	var setting models.SiteSetting
	if err := q.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return &setting, nil
}

// Set creates the key when absent, updates it otherwise. The check and
// the write are separate statements; concurrent writers to the same key
// could race, which is acceptable for a single admin editor.
func (q *SettingsQueries) Set(key, value string) error {
	existing, err := q.Get(key)
	if err != nil {
		return err
	}

	if existing == nil {
		setting := models.SiteSetting{Key: key, Value: value}
		if err := q.db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to create setting %s: %w", key, err)
		}
		return nil
	}

	existing.Value = value
	if err := q.db.Save(existing).Error; err != nil {
		return fmt.Errorf("failed to update setting %s: %w", key, err)
	}
	return nil
}

// Delete removes the key; a missing key is not an error.
func (q *SettingsQueries) Delete(key string) error {
	if err := q.db.Where("key = ?", key).Delete(&models.SiteSetting{}).Error; err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
