package services

import (
	"log"
	"mime/multipart"

	"supermart/internal/models"
	"supermart/internal/repositories"
)

const productUploadCategory = "products"

// ProductService handles business logic related to products.
type ProductService struct {
	repo  repositories.ProductRepository
	files FileSaver
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, files FileSaver) *ProductService {
	return &ProductService{repo: repo, files: files}
}

// List returns one page of products in the pagination envelope.
func (s *ProductService) List(pageNumber, pageSize int) (models.Page[models.Product], error) {
	products, total, err := s.repo.List(pageNumber, pageSize)
	if err != nil {
		return models.Page[models.Product]{}, err
	}
	return models.NewPage(products, total, pageNumber, pageSize), nil
}

// GetByID retrieves a single product.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create stores the image first (when present), then persists the product.
// A row-write failure after a successful file write leaves the file behind;
// it is logged and the error returned.
func (s *ProductService) Create(product *models.Product, image *multipart.FileHeader) error {
	if image != nil {
		url, err := s.files.Save(productUploadCategory, image)
		if err != nil {
			return err
		}
		product.ImageURL = url
	}
	if err := s.repo.Create(product); err != nil {
		if product.ImageURL != "" {
			log.Printf("orphaned upload %s: product row was not created: %v", product.ImageURL, err)
		}
		return err
	}
	return nil
}

// Update overwrites every mutable field of an existing product. Omitting
// the image keeps the previous imageUrl.
func (s *ProductService) Update(id uint, fields models.Product, image *multipart.FileHeader) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	existing.Name = fields.Name
	existing.Description = fields.Description
	existing.Price = fields.Price
	existing.StockQuantity = fields.StockQuantity
	existing.CategoryID = fields.CategoryID

	if image != nil {
		url, err := s.files.Save(productUploadCategory, image)
		if err != nil {
			return err
		}
		existing.ImageURL = url
	}
	return s.repo.Update(existing)
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
