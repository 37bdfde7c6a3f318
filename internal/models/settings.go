package models

import "time"

// SiteSetting is a single named configuration value editable through the
// admin panel (WhatsApp number, business hours, about-page content).
type SiteSetting struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Key       string    `json:"key" gorm:"size:255;uniqueIndex;not null"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SiteSetting) TableName() string {
	return "site_settings"
}
