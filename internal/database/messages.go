package database

import (
	"fmt"

	"corb3d-backend/internal/models"

	"gorm.io/gorm"
)

type MessageQueries struct {
	db *gorm.DB
}

func NewMessageQueries(db *gorm.DB) *MessageQueries {
	return &MessageQueries{db: db}
}

func (q *MessageQueries) Create(msg *models.ContactMessage) error {
	if err := q.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

// List returns all contact messages, newest first.
func (q *MessageQueries) List() ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	if err := q.db.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}

// SetRead flips the read flag; a missing id is not an error.
func (q *MessageQueries) SetRead(id int, read bool) error {
	if err := q.db.Model(&models.ContactMessage{}).Where("id = ?", id).Update("read", read).Error; err != nil {
		return fmt.Errorf("failed to update contact message %d: %w", id, err)
	}
	return nil
}

func (q *MessageQueries) Delete(id int) error {
	if err := q.db.Delete(&models.ContactMessage{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete contact message %d: %w", id, err)
	}
	return nil
}
