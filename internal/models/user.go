package models

import "time"

// User is kept for schema completeness; admin login itself authenticates
// against the ADMIN_PASSWORD secret, not this table. Rows are created by
// cmd/create-admin only.
type User struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
