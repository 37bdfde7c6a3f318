package database

import (
	"errors"
	"fmt"

	"corb3d-backend/internal/models"

	"gorm.io/gorm"
)

type UserQueries struct {
	db *gorm.DB
}

func NewUserQueries(db *gorm.DB) *UserQueries {
	return &UserQueries{db: db}
}

// GetByUsername returns the user, or nil when it does not exist.
func (q *UserQueries) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := q.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return &user, nil
}

func (q *UserQueries) Create(user *models.User) error {
	if err := q.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (q *UserQueries) Update(user *models.User) error {
	if err := q.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return nil
}
