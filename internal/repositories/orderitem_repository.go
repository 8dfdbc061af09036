package repositories

import (
	"errors"
	"fmt"

	"supermart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderItemRepository defines the interface for order item data access.
type OrderItemRepository interface {
	List(pageNumber, pageSize int) ([]models.OrderItem, int64, error)
	GetByID(id uint) (*models.OrderItem, error)
	Create(item *models.OrderItem) error
	Update(item *models.OrderItem) error
	Delete(id uint) error
}

// GORMOrderItemRepository is a GORM implementation of OrderItemRepository.
type GORMOrderItemRepository struct {
	db *gorm.DB
}

// NewGORMOrderItemRepository creates a new instance of GORMOrderItemRepository.
func NewGORMOrderItemRepository(db *gorm.DB) *GORMOrderItemRepository {
	return &GORMOrderItemRepository{db: db}
}

// List retrieves one page of order items with order and product attached,
// plus the total row count.
func (r *GORMOrderItemRepository) List(pageNumber, pageSize int) ([]models.OrderItem, int64, error) {
	var total int64
	if err := r.db.Model(&models.OrderItem{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count order items: %w", err)
	}

	var items []models.OrderItem
	if err := r.db.Preload("Order").Preload("Product").
		Scopes(paginate("order_item_id", pageNumber, pageSize)).
		Find(&items).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, total, nil
}

// GetByID retrieves a single order item with order and product attached.
func (r *GORMOrderItemRepository) GetByID(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.Preload("Order").Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order item by ID %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new order item; the store assigns the ID.
func (r *GORMOrderItemRepository) Create(item *models.OrderItem) error {
	if err := r.db.Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// Update persists every field of an existing order item without touching
// its preloaded associations.
func (r *GORMOrderItemRepository) Update(item *models.OrderItem) error {
	res := r.db.Omit(clause.Associations).Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %d: %w", item.OrderItemID, ErrNotFound)
	}
	return nil
}

// Delete removes an order item by its ID.
func (r *GORMOrderItemRepository) Delete(id uint) error {
	res := r.db.Delete(&models.OrderItem{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order item with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
