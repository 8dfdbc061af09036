package services

import (
	"supermart/internal/models"
	"supermart/internal/repositories"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// List returns one page of customers in the pagination envelope.
func (s *CustomerService) List(pageNumber, pageSize int) (models.Page[models.Customer], error) {
	customers, total, err := s.repo.List(pageNumber, pageSize)
	if err != nil {
		return models.Page[models.Customer]{}, err
	}
	return models.NewPage(customers, total, pageNumber, pageSize), nil
}

// GetByID retrieves a single customer.
func (s *CustomerService) GetByID(id uint) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// Create persists a new customer and returns it with its assigned ID.
func (s *CustomerService) Create(customer *models.Customer) error {
	return s.repo.Create(customer)
}

// Update overwrites every mutable field of an existing customer.
func (s *CustomerService) Update(id uint, fields models.Customer) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	existing.FirstName = fields.FirstName
	existing.LastName = fields.LastName
	existing.Email = fields.Email
	existing.Phone = fields.Phone
	return s.repo.Update(existing)
}

// Delete removes a customer. Orders that referenced it keep their rows
// with the customer reference nulled.
func (s *CustomerService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
