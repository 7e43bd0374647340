package repositories

import (
	"errors"

	"productapi/internal/models"
)

// ErrProductNotFound is returned (wrapped) when no product matches an ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product ordered by ID ascending.
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	// Create stores a new product and fills in its ID and timestamps.
	Create(product *models.Product) error
	// Update persists all fields of an existing product.
	Update(product *models.Product) error
	Delete(id uint) error
}
