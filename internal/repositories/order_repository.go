package repositories

import (
	"errors"
	"fmt"

	"supermart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	List(pageNumber, pageSize int) ([]models.Order, int64, error)
	GetByID(id uint) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	Delete(id uint) error
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// List retrieves one page of orders with customer and order items
// attached, plus the total row count.
func (r *GORMOrderRepository) List(pageNumber, pageSize int) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	if err := r.db.Preload("Customer").Preload("OrderItems").
		Scopes(paginate("order_id", pageNumber, pageSize)).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// GetByID retrieves a single order with customer and order items attached.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Customer").Preload("OrderItems").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Create inserts a new order; the store assigns the ID. Associations are
// omitted: order items are managed through their own resource.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Omit(clause.Associations).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update persists every field of an existing order without touching its
// preloaded associations.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Omit(clause.Associations).Save(order)
	if res.Error != nil {
		return fmt.Errorf("failed to update order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", order.OrderID, ErrNotFound)
	}
	return nil
}

// Delete removes an order by its ID. Order items referencing it keep
// their row with the order reference nulled.
func (r *GORMOrderRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Order{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
