package services

import (
	"log"
	"mime/multipart"

	"supermart/internal/models"
	"supermart/internal/repositories"
	"supermart/pkg/rabbitmq"
)

const orderUploadCategory = "orders"

// OrderService handles business logic related to orders. When an event
// publisher is configured, order creation publishes an "order.created"
// message; publish failures are logged and never fail the request.
type OrderService struct {
	repo     repositories.OrderRepository
	files    FileSaver
	mqClient *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, which
// disables event publishing.
func NewOrderService(repo repositories.OrderRepository, files FileSaver, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{repo: repo, files: files, mqClient: mqClient}
}

// List returns one page of orders in the pagination envelope.
func (s *OrderService) List(pageNumber, pageSize int) (models.Page[models.Order], error) {
	orders, total, err := s.repo.List(pageNumber, pageSize)
	if err != nil {
		return models.Page[models.Order]{}, err
	}
	return models.NewPage(orders, total, pageNumber, pageSize), nil
}

// GetByID retrieves a single order.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	return s.repo.GetByID(id)
}

// Create stores the image first (when present), then persists the order and
// publishes the creation event.
func (s *OrderService) Create(order *models.Order, image *multipart.FileHeader) error {
	if image != nil {
		url, err := s.files.Save(orderUploadCategory, image)
		if err != nil {
			return err
		}
		order.ImageURL = url
	}
	if err := s.repo.Create(order); err != nil {
		if order.ImageURL != "" {
			log.Printf("orphaned upload %s: order row was not created: %v", order.ImageURL, err)
		}
		return err
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"orderId":     order.OrderID,
			"orderDate":   order.OrderDate,
			"customerId":  order.CustomerID,
			"totalAmount": order.TotalAmount,
		}
		if err := s.mqClient.PublishOrderCreated(event); err != nil {
			log.Printf("Warning: failed to publish order created event for order %d: %v", order.OrderID, err)
		}
	}
	return nil
}

// Update overwrites every mutable field of an existing order. Omitting the
// image keeps the previous imageUrl.
func (s *OrderService) Update(id uint, fields models.Order, image *multipart.FileHeader) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	existing.OrderDate = fields.OrderDate
	existing.CustomerID = fields.CustomerID
	existing.TotalAmount = fields.TotalAmount

	if image != nil {
		url, err := s.files.Save(orderUploadCategory, image)
		if err != nil {
			return err
		}
		existing.ImageURL = url
	}
	return s.repo.Update(existing)
}

// Delete removes an order. Its order items keep their rows with the order
// reference nulled.
func (s *OrderService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
