package database

import (
	"errors"
	"fmt"

	"corb3d-backend/internal/models"

	"gorm.io/gorm"
)

type PortfolioQueries struct {
	db *gorm.DB
}

func NewPortfolioQueries(db *gorm.DB) *PortfolioQueries {
	return &PortfolioQueries{db: db}
}

// ListItems returns all portfolio items newest first, with their images
// nested in display order.
func (q *PortfolioQueries) ListItems() ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := q.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolio items: %w", err)
	}
	return items, nil
}

// GetItem returns the item with its images, or nil when it does not exist.
func (q *PortfolioQueries) GetItem(id int) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := q.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get portfolio item %d: %w", id, err)
	}
	return &item, nil
}

func (q *PortfolioQueries) CreateItem(item *models.PortfolioItem) error {
	if item.DisplayOrder == 0 {
		var count int64
		if err := q.db.Model(&models.PortfolioItem{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count portfolio items: %w", err)
		}
		item.DisplayOrder = int(count) + 1
	}
	if err := q.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create portfolio item: %w", err)
	}
	return nil
}

func (q *PortfolioQueries) UpdateItem(item *models.PortfolioItem) error {
	if err := q.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to update portfolio item %d: %w", item.ID, err)
	}
	return nil
}

// DeleteItem removes the item and all its image rows (the cascade is
// enforced here, not left to the database) and returns every image URL
// the caller should remove from disk.
func (q *PortfolioQueries) DeleteItem(id int) ([]string, error) {
	item, err := q.GetItem(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	urls := make([]string, 0, len(item.Images)+1)
	urls = append(urls, item.ImageURL)
	for _, img := range item.Images {
		urls = append(urls, img.ImageURL)
	}

	if err := q.db.Where("portfolio_item_id = ?", id).Delete(&models.PortfolioImage{}).Error; err != nil {
		return nil, fmt.Errorf("failed to delete images of portfolio item %d: %w", id, err)
	}
	if err := q.db.Delete(&models.PortfolioItem{}, id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete portfolio item %d: %w", id, err)
	}

	return urls, nil
}

func (q *PortfolioQueries) CountImages(itemID int) (int64, error) {
	var count int64
	err := q.db.Model(&models.PortfolioImage{}).Where("portfolio_item_id = ?", itemID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count images of portfolio item %d: %w", itemID, err)
	}
	return count, nil
}

func (q *PortfolioQueries) AddImage(img *models.PortfolioImage) error {
	if img.DisplayOrder == 0 {
		count, err := q.CountImages(img.PortfolioItemID)
		if err != nil {
			return err
		}
		img.DisplayOrder = int(count) + 1
	}
	if err := q.db.Create(img).Error; err != nil {
		return fmt.Errorf("failed to create portfolio image: %w", err)
	}
	return nil
}

// GetImage returns the image row, or nil when it does not exist.
func (q *PortfolioQueries) GetImage(id int) (*models.PortfolioImage, error) {
	var img models.PortfolioImage
	if err := q.db.First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get portfolio image %d: %w", id, err)
	}
	return &img, nil
}

func (q *PortfolioQueries) DeleteImage(id int) error {
	if err := q.db.Delete(&models.PortfolioImage{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete portfolio image %d: %w", id, err)
	}
	return nil
}
