package database

import (
	"errors"
	"fmt"
	"time"

	"corb3d-backend/internal/models"

	"gorm.io/gorm"
)

type SessionQueries struct {
	db *gorm.DB
}

func NewSessionQueries(db *gorm.DB) *SessionQueries {
	return &SessionQueries{db: db}
}

func (q *SessionQueries) Create(id string, isAdmin bool, ttl time.Duration) error {
	session := models.Session{
		ID:        id,
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := q.db.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Get returns the live session for id, or nil when it does not exist.
// An expired session is deleted on touch and reported as absent.
func (q *SessionQueries) Get(id string) (*models.Session, error) {
	var session models.Session
	if err := q.db.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(time.Now()) {
		if err := q.Delete(id); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &session, nil
}

func (q *SessionQueries) Delete(id string) error {
	if err := q.db.Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired clears stale rows; called once at startup.
func (q *SessionQueries) DeleteExpired() error {
	if err := q.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
