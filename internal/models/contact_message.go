package models

import "time"

type ContactMessage struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null"`
	Phone     *string   `json:"phone" gorm:"size:50"`
	Service   *string   `json:"service" gorm:"size:255"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

type ContactMessageRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   *string `json:"phone"`
	Service *string `json:"service"`
	Message string  `json:"message" binding:"required"`
}

// FieldError is a single field-level validation failure returned to the
// client alongside the generic 400 message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
