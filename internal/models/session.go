package models

import "time"

// Session is the server-side record behind the signed session cookie.
// The cookie carries only the ID; authorization state lives here.
type Session struct {
	ID        string `gorm:"primaryKey;size:64"`
	IsAdmin   bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its time-to-live.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
