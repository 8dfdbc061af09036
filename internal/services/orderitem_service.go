package services

import (
	"log"
	"mime/multipart"

	"supermart/internal/models"
	"supermart/internal/repositories"
)

const orderItemUploadCategory = "orderitems"

// OrderItemService handles business logic related to order items.
type OrderItemService struct {
	repo  repositories.OrderItemRepository
	files FileSaver
}

// NewOrderItemService creates a new OrderItemService.
func NewOrderItemService(repo repositories.OrderItemRepository, files FileSaver) *OrderItemService {
	return &OrderItemService{repo: repo, files: files}
}

// List returns one page of order items in the pagination envelope.
func (s *OrderItemService) List(pageNumber, pageSize int) (models.Page[models.OrderItem], error) {
	items, total, err := s.repo.List(pageNumber, pageSize)
	if err != nil {
		return models.Page[models.OrderItem]{}, err
	}
	return models.NewPage(items, total, pageNumber, pageSize), nil
}

// GetByID retrieves a single order item.
func (s *OrderItemService) GetByID(id uint) (*models.OrderItem, error) {
	return s.repo.GetByID(id)
}

// Create stores the image first (when present), then persists the item.
func (s *OrderItemService) Create(item *models.OrderItem, image *multipart.FileHeader) error {
	if image != nil {
		url, err := s.files.Save(orderItemUploadCategory, image)
		if err != nil {
			return err
		}
		item.ImageURL = url
	}
	if err := s.repo.Create(item); err != nil {
		if item.ImageURL != "" {
			log.Printf("orphaned upload %s: order item row was not created: %v", item.ImageURL, err)
		}
		return err
	}
	return nil
}

// Update overwrites every mutable field of an existing order item.
// Omitting the image keeps the previous imageUrl.
func (s *OrderItemService) Update(id uint, fields models.OrderItem, image *multipart.FileHeader) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	existing.OrderID = fields.OrderID
	existing.ProductID = fields.ProductID
	existing.Quantity = fields.Quantity
	existing.Subtotal = fields.Subtotal

	if image != nil {
		url, err := s.files.Save(orderItemUploadCategory, image)
		if err != nil {
			return err
		}
		existing.ImageURL = url
	}
	return s.repo.Update(existing)
}

// Delete removes an order item.
func (s *OrderItemService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
