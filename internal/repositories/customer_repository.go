package repositories

import (
	"errors"
	"fmt"

	"supermart/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	List(pageNumber, pageSize int) ([]models.Customer, int64, error)
	GetByID(id uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	Delete(id uint) error
}

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{db: db}
}

// List retrieves one page of customers plus the total row count.
func (r *GORMCustomerRepository) List(pageNumber, pageSize int) ([]models.Customer, int64, error) {
	var total int64
	if err := r.db.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var customers []models.Customer
	if err := r.db.Scopes(paginate("customer_id", pageNumber, pageSize)).Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

// GetByID retrieves a single customer by its ID.
func (r *GORMCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("customer with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

// Create inserts a new customer; the store assigns the ID.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update persists every field of an existing customer.
func (r *GORMCustomerRepository) Update(customer *models.Customer) error {
	res := r.db.Save(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %d: %w", customer.CustomerID, ErrNotFound)
	}
	return nil
}

// Delete removes a customer by its ID. Orders referencing the customer
// keep their row with the customer reference nulled.
func (r *GORMCustomerRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Customer{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
