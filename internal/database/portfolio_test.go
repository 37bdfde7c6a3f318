package database

import (
	"testing"
	"time"

	"corb3d-backend/internal/models"
)

func createItemWithImages(t *testing.T, q *PortfolioQueries, title string, createdAt time.Time, imageURLs ...string) *models.PortfolioItem {
	t.Helper()

	item := &models.PortfolioItem{
		Title:     title,
		Category:  "Geral",
		ImageURL:  imageURLs[0],
		CreatedAt: createdAt,
	}
	if err := q.CreateItem(item); err != nil {
		t.Fatalf("create item: %v", err)
	}
	for i, url := range imageURLs {
		img := &models.PortfolioImage{
			PortfolioItemID: item.ID,
			ImageURL:        url,
			DisplayOrder:    i + 1,
		}
		if err := q.AddImage(img); err != nil {
			t.Fatalf("add image: %v", err)
		}
	}
	return item
}

func TestListItemsNewestFirstWithNestedImages(t *testing.T) {
	db := setupTestDB(t)
	q := NewPortfolioQueries(db)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	older := createItemWithImages(t, q, "Robo", base, "/uploads/images/a.png")
	newer := createItemWithImages(t, q, "Drone", base.Add(time.Hour), "/uploads/images/b.png", "/uploads/images/c.png")

	items, err := q.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != newer.ID || items[1].ID != older.ID {
		t.Errorf("expected newest-first ordering, got %d then %d", items[0].ID, items[1].ID)
	}
	if len(items[0].Images) != 2 {
		t.Fatalf("expected 2 nested images, got %d", len(items[0].Images))
	}
	if items[0].Images[0].ImageURL != "/uploads/images/b.png" {
		t.Errorf("expected images in display order, got %q first", items[0].Images[0].ImageURL)
	}
}

func TestGetItemMissingReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	q := NewPortfolioQueries(db)

	item, err := q.GetItem(999)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for missing item, got %+v", item)
	}
}

func TestDeleteItemCascadesImages(t *testing.T) {
	db := setupTestDB(t)
	q := NewPortfolioQueries(db)

	item := createItemWithImages(t, q, "Robo", time.Now(),
		"/uploads/images/a.png", "/uploads/images/b.png", "/uploads/images/c.png")

	urls, err := q.DeleteItem(item.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Cover URL plus the three image rows
	if len(urls) != 4 {
		t.Fatalf("expected 4 urls for disk cleanup, got %d: %v", len(urls), urls)
	}

	var imageCount int64
	if err := db.Model(&models.PortfolioImage{}).Where("portfolio_item_id = ?", item.ID).Count(&imageCount).Error; err != nil {
		t.Fatalf("count images: %v", err)
	}
	if imageCount != 0 {
		t.Errorf("expected image rows cascaded, found %d", imageCount)
	}

	items, err := q.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected item gone from listing, got %d items", len(items))
	}
}

func TestDeleteItemMissingReturnsNoURLs(t *testing.T) {
	db := setupTestDB(t)
	q := NewPortfolioQueries(db)

	urls, err := q.DeleteItem(123)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if urls != nil {
		t.Errorf("expected no urls for missing item, got %v", urls)
	}
}

func TestCountImages(t *testing.T) {
	db := setupTestDB(t)
	q := NewPortfolioQueries(db)

	item := createItemWithImages(t, q, "Robo", time.Now(), "/uploads/images/a.png", "/uploads/images/b.png")

	count, err := q.CountImages(item.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 images, got %d", count)
	}
}
