package models

import "time"

// Product represents a product in the catalogue.
type Product struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Price        float64   `json:"price" gorm:"not null"`
	Availability bool      `json:"availability" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName pins the table name used by GORM.
func (Product) TableName() string {
	return "products"
}

// ProductListItem is the shape returned by the product list endpoint.
// Timestamps are never part of it; availability only when enabled.
type ProductListItem struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability *bool   `json:"availability,omitempty"`
}

// ListItem converts the product to its list representation.
func (p Product) ListItem(includeAvailability bool) ProductListItem {
	item := ProductListItem{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
	if includeAvailability {
		availability := p.Availability
		item.Availability = &availability
	}
	return item
}

// ProductInput carries the validated fields of a create or full update request.
type ProductInput struct {
	Name         string
	Price        float64
	Availability *bool // nil means "not provided"
}
