package services_test

import (
	"fmt"
	"testing"

	"productapi/internal/models"
	"productapi/internal/repositories"
	"productapi/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event models.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e models.ProductEvent) bool { return e.Type == eventType })
}

func boolPtr(b bool) *bool { return &b }

func notFound(id uint) error {
	return fmt.Errorf("product with ID %d: %w", id, repositories.ErrProductNotFound)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return([]models.Product{
		{ID: 1, Name: "Product A", Price: 10.0, Availability: true},
		{ID: 2, Name: "Product B", Price: 20.0, Availability: false},
	}, nil).Once()

	items, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Equal(t, []models.ProductListItem{
		{ID: 1, Name: "Product A", Price: 10.0},
		{ID: 2, Name: "Product B", Price: 20.0},
	}, items)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProductsWithAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, services.WithListAvailability(true))

	mockRepo.On("GetAll").Return([]models.Product{
		{ID: 1, Name: "Product A", Price: 10.0, Availability: false},
	}, nil).Once()

	items, err := service.GetAllProducts()

	assert.NoError(t, err)
	if assert.Len(t, items, 1) && assert.NotNil(t, items[0].Availability) {
		assert.False(t, *items[0].Availability)
	}
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetAllProductsError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return(nil, fmt.Errorf("connection refused")).Once()

	items, err := service.GetAllProducts()
	assert.Nil(t, items)
	assert.EqualError(t, err, "connection refused")
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}

	// Test successful retrieval
	mockRepo.On("GetByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, notFound(99)).Once()
	product, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductDefaultsAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Product).ID = 1
	}).Return(nil).Once()
	publisher.On("PublishProductEvent", eventOfType(models.EventProductCreated)).Return(nil).Once()

	product, err := service.CreateProduct(models.ProductInput{Name: "Mouse", Price: 70})

	assert.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)
	assert.True(t, product.Availability)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProductExplicitAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Desk" && !p.Availability
	})).Return(nil).Once()

	product, err := service.CreateProduct(models.ProductInput{Name: "Desk", Price: 120, Availability: boolPtr(false)})

	assert.NoError(t, err)
	assert.False(t, product.Availability)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()

	product, err := service.CreateProduct(models.ProductInput{Name: "Mouse", Price: 70})
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "database error")
	publisher.AssertNotCalled(t, "PublishProductEvent", mock.Anything)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	existing := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && p.Name == "Product A Updated" && p.Price == 12.0 && !p.Availability
	})).Return(nil).Once()
	publisher.On("PublishProductEvent", eventOfType(models.EventProductUpdated)).Return(nil).Once()

	product, err := service.UpdateProduct(1, models.ProductInput{Name: "Product A Updated", Price: 12.0, Availability: boolPtr(false)})

	assert.NoError(t, err)
	assert.Equal(t, "Product A Updated", product.Name)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetByID", uint(99)).Return(nil, notFound(99)).Once()

	product, err := service.UpdateProduct(99, models.ProductInput{Name: "NonExistent", Price: 1.0})
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_UpdateAvailability(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Product A" && p.Price == 10.0 && !p.Availability
	})).Return(nil).Once()

	product, err := service.UpdateAvailability(1, boolPtr(false))

	assert.NoError(t, err)
	assert.False(t, product.Availability)
	assert.Equal(t, "Product A", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateAvailabilityWithoutValue(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	existing := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Availability: true}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()

	product, err := service.UpdateAvailability(1, nil)

	assert.NoError(t, err)
	assert.True(t, product.Availability)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	// Test successful deletion
	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ID: 1, Name: "Product A"}, nil).Once()
	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	publisher.On("PublishProductEvent", eventOfType(models.EventProductDeleted)).Return(fmt.Errorf("broker down")).Once()
	err := service.DeleteProduct(1)
	assert.NoError(t, err, "publish failures must not fail the deletion")

	// Test product not found
	mockRepo.On("GetByID", uint(99)).Return(nil, notFound(99)).Once()
	err = service.DeleteProduct(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
