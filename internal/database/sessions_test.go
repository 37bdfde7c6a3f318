package database

import (
	"testing"
	"time"

	"corb3d-backend/internal/models"
)

func TestSessionLifecycle(t *testing.T) {
	db := setupTestDB(t)
	q := NewSessionQueries(db)

	if err := q.Create("abc123", true, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}

	session, err := q.Get("abc123")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if session == nil || !session.IsAdmin {
		t.Fatalf("expected live admin session, got %+v", session)
	}

	if err := q.Delete("abc123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	session, err = q.Get("abc123")
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if session != nil {
		t.Errorf("expected session destroyed, got %+v", session)
	}
}

func TestExpiredSessionDeletedOnTouch(t *testing.T) {
	db := setupTestDB(t)
	q := NewSessionQueries(db)

	if err := q.Create("stale", true, -time.Minute); err != nil {
		t.Fatalf("create: %v", err)
	}

	session, err := q.Get("stale")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if session != nil {
		t.Errorf("expected expired session reported absent, got %+v", session)
	}

	var count int64
	if err := db.Model(&models.Session{}).Where("id = ?", "stale").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Error("expected expired row removed on touch")
	}
}

func TestDeleteExpiredKeepsLiveSessions(t *testing.T) {
	db := setupTestDB(t)
	q := NewSessionQueries(db)

	if err := q.Create("live", true, time.Hour); err != nil {
		t.Fatalf("create live: %v", err)
	}
	if err := q.Create("dead", true, -time.Hour); err != nil {
		t.Fatalf("create dead: %v", err)
	}

	if err := q.DeleteExpired(); err != nil {
		t.Fatalf("delete expired: %v", err)
	}

	var count int64
	if err := db.Model(&models.Session{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected only the live session to remain, got %d rows", count)
	}
}
