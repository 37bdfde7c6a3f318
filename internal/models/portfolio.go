package models

import "time"

// PortfolioItem is a titled gallery entry. ImageURL mirrors the first
// uploaded image at creation time but is stored independently.
type PortfolioItem struct {
	ID           int              `json:"id" gorm:"primaryKey"`
	Title        string           `json:"title" gorm:"size:255;not null"`
	Description  *string          `json:"description" gorm:"type:text"`
	Category     string           `json:"category" gorm:"size:255;not null;default:'Geral'"`
	ImageURL     string           `json:"imageUrl" gorm:"size:500;not null"`
	DisplayOrder int              `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt    time.Time        `json:"createdAt"`
	Images       []PortfolioImage `json:"images" gorm:"foreignKey:PortfolioItemID"`
}

func (PortfolioItem) TableName() string {
	return "portfolio_items"
}

type PortfolioImage struct {
	ID              int       `json:"id" gorm:"primaryKey"`
	PortfolioItemID int       `json:"portfolioItemId" gorm:"index;not null"`
	ImageURL        string    `json:"imageUrl" gorm:"size:500;not null"`
	DisplayOrder    int       `json:"displayOrder" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (PortfolioImage) TableName() string {
	return "portfolio_images"
}

// UpdatePortfolioItemRequest carries the editable subset of an item.
// Nil fields are left untouched.
type UpdatePortfolioItemRequest struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}
