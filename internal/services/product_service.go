package services

import (
	"fmt"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/gofiber/fiber/v2/log"
)

// EventPublisher publishes product change events. *rabbitmq.Client
// satisfies it.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // optional

	listIncludesAvailability bool
}

// ProductServiceOption configures a ProductService.
type ProductServiceOption func(*ProductService)

// WithEventPublisher makes the service publish an event after every
// successful mutation. Publishing runs on the calling goroutine, so a
// publisher that blocks (for example under broker flow control) delays
// the response of a write that has already been stored. Failures are only
// logged.
func WithEventPublisher(publisher EventPublisher) ProductServiceOption {
	return func(s *ProductService) {
		s.publisher = publisher
	}
}

// WithListAvailability controls whether list items carry availability.
func WithListAvailability(include bool) ProductServiceOption {
	return func(s *ProductService) {
		s.listIncludesAvailability = include
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo: repo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts retrieves all products in their list representation.
func (s *ProductService) GetAllProducts() ([]models.ProductListItem, error) {
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]models.ProductListItem, 0, len(products))
	for _, p := range products {
		items = append(items, p.ListItem(s.listIncludesAvailability))
	}
	return items, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new product. Availability defaults to true.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:         input.Name,
		Price:        input.Price,
		Availability: true,
	}
	if input.Availability != nil {
		product.Availability = *input.Availability
	}

	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(models.EventProductCreated, product)
	return product, nil
}

// UpdateProduct replaces name, price and availability of an existing product.
func (s *ProductService) UpdateProduct(id uint, input models.ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	if input.Availability != nil {
		product.Availability = *input.Availability
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(models.EventProductUpdated, product)
	return product, nil
}

// UpdateAvailability sets only the availability of an existing product.
// A nil availability leaves the product unchanged.
func (s *ProductService) UpdateAvailability(id uint, availability *bool) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if availability == nil {
		return product, nil
	}

	product.Availability = *availability
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	s.publish(models.EventProductAvailabilityUpdated, product)
	return product, nil
}

// DeleteProduct permanently removes an existing product.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(product.ID); err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	s.publish(models.EventProductDeleted, product)
	return nil
}

func (s *ProductService) publish(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(models.NewProductEvent(eventType, product)); err != nil {
		log.Warnf("failed to publish %s for product %d: %v", eventType, product.ID, err)
	}
}
