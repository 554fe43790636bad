package services_test

import (
	"testing"

	"storefront/internal/apperrors"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(name string) (*models.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCatalogService(productRepo, categoryRepo)

	categoryRepo.On("GetByName", "Electronics").Return(&models.Category{ID: "cat-1", Name: "Electronics"}, nil)

	err := service.CreateCategory(&models.Category{Name: "Electronics"})

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCatalogService(productRepo, categoryRepo)

	categoryRepo.On("GetByName", "Books").Return(nil, apperrors.NotFound("category not found"))
	categoryRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(nil)

	err := service.CreateCategory(&models.Category{Name: "Books"})

	assert.NoError(t, err)
	categoryRepo.AssertExpectations(t)
}

func TestCreateProduct_Validation(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCatalogService(productRepo, categoryRepo)

	negative := decimal.NewFromFloat(-1.00)
	err := service.CreateProduct(&models.Product{Name: "Bad", Price: negative, CategoryID: "cat-1"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = service.CreateProduct(&models.Product{Name: "Bad", Price: decimal.NewFromFloat(1.00), StockQuantity: -5, CategoryID: "cat-1"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// An unknown category is a validation error, not a lookup failure.
	categoryRepo.On("GetByID", "missing").Return(nil, apperrors.NotFound("category not found"))
	err = service.CreateProduct(&models.Product{Name: "Bad", Price: decimal.NewFromFloat(1.00), CategoryID: "missing"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	productRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateProduct_Success(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCatalogService(productRepo, categoryRepo)

	categoryRepo.On("GetByID", "cat-1").Return(&models.Category{ID: "cat-1", Name: "Electronics"}, nil)
	productRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	product := models.Product{
		Name:       "Zero Priced Sample",
		Price:      decimal.Zero,
		CategoryID: "cat-1",
	}
	// A zero price is allowed, only negative prices are rejected.
	err := service.CreateProduct(&product)

	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}

func TestGetProductByID_InactiveLooksAbsent(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCatalogService(productRepo, categoryRepo)

	productRepo.On("GetByID", "prod-1").Return(&models.Product{
		ID:       "prod-1",
		Name:     "Discontinued",
		IsActive: false,
	}, nil)

	_, err := service.GetProductByID("prod-1")

	assert.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
