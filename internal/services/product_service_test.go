package services_test

import (
	"fmt"
	"mime/multipart"
	"testing"

	"supermart/internal/models"
	"supermart/internal/repositories"
	"supermart/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(pageNumber, pageSize int) ([]models.Product, int64, error) {
	args := m.Called(pageNumber, pageSize)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
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

// MockFileSaver is a mock implementation of services.FileSaver.
type MockFileSaver struct {
	mock.Mock
}

func (m *MockFileSaver) Save(category string, file *multipart.FileHeader) (string, error) {
	args := m.Called(category, file)
	return args.String(0), args.Error(1)
}

func TestProductService_Create_WithImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	image := &multipart.FileHeader{Filename: "milk.png"}
	mockSaver.On("Save", "products", image).Return("/products/abc_milk.png", nil).Once()
	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.ImageURL == "/products/abc_milk.png"
	})).Return(nil).Once()

	product := &models.Product{Name: "Milk", Price: decimal.NewFromInt(3)}
	err := service.Create(product, image)

	assert.NoError(t, err)
	assert.Equal(t, "/products/abc_milk.png", product.ImageURL)
	mockRepo.AssertExpectations(t)
	mockSaver.AssertExpectations(t)
}

func TestProductService_Create_WithoutImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	mockRepo.On("Create", mock.Anything).Return(nil).Once()

	product := &models.Product{Name: "Milk", Price: decimal.NewFromInt(3)}
	err := service.Create(product, nil)

	assert.NoError(t, err)
	assert.Empty(t, product.ImageURL)
	mockSaver.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_SaveFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	image := &multipart.FileHeader{Filename: "milk.png"}
	mockSaver.On("Save", "products", image).Return("", fmt.Errorf("disk full")).Once()

	err := service.Create(&models.Product{Name: "Milk"}, image)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockSaver.AssertExpectations(t)
}

func TestProductService_Update_KeepsImageWhenOmitted(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	existing := &models.Product{
		ProductID: 1,
		Name:      "Milk",
		Price:     decimal.NewFromInt(3),
		ImageURL:  "/products/old_milk.png",
	}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "Whole Milk" && p.ImageURL == "/products/old_milk.png"
	})).Return(nil).Once()

	fields := models.Product{Name: "Whole Milk", Price: decimal.NewFromInt(4)}
	err := service.Update(1, fields, nil)

	assert.NoError(t, err)
	mockSaver.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update_ReplacesImage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	existing := &models.Product{ProductID: 1, Name: "Milk", ImageURL: "/products/old.png"}
	image := &multipart.FileHeader{Filename: "new.png"}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	mockSaver.On("Save", "products", image).Return("/products/def_new.png", nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.ImageURL == "/products/def_new.png"
	})).Return(nil).Once()

	err := service.Update(1, models.Product{Name: "Milk"}, image)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockSaver.AssertExpectations(t)
}

func TestProductService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	notFound := fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)
	mockRepo.On("GetByID", uint(99)).Return(nil, notFound).Once()

	err := service.Update(99, models.Product{Name: "Ghost"}, nil)

	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockSaver := new(MockFileSaver)
	service := services.NewProductService(mockRepo, mockSaver)

	mockRepo.On("GetByID", uint(1)).Return(&models.Product{ProductID: 1}, nil).Once()
	mockRepo.On("Delete", uint(1)).Return(nil).Once()

	assert.NoError(t, service.Delete(1))
	mockRepo.AssertExpectations(t)
}
