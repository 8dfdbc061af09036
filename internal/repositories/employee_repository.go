package repositories

import (
	"errors"
	"fmt"

	"supermart/internal/models"

	"gorm.io/gorm"
)

// EmployeeRepository defines the interface for employee data access.
type EmployeeRepository interface {
	List(pageNumber, pageSize int) ([]models.Employee, int64, error)
	GetByID(id uint) (*models.Employee, error)
	Create(employee *models.Employee) error
	Update(employee *models.Employee) error
	Delete(id uint) error
}

// GORMEmployeeRepository is a GORM implementation of EmployeeRepository.
type GORMEmployeeRepository struct {
	db *gorm.DB
}

// NewGORMEmployeeRepository creates a new instance of GORMEmployeeRepository.
func NewGORMEmployeeRepository(db *gorm.DB) *GORMEmployeeRepository {
	return &GORMEmployeeRepository{db: db}
}

// List retrieves one page of employees plus the total row count.
func (r *GORMEmployeeRepository) List(pageNumber, pageSize int) ([]models.Employee, int64, error) {
	var total int64
	if err := r.db.Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	var employees []models.Employee
	if err := r.db.Scopes(paginate("employee_id", pageNumber, pageSize)).Find(&employees).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// GetByID retrieves a single employee by its ID.
func (r *GORMEmployeeRepository) GetByID(id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("employee with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee by ID %d: %w", id, err)
	}
	return &employee, nil
}

// Create inserts a new employee; the store assigns the ID.
func (r *GORMEmployeeRepository) Create(employee *models.Employee) error {
	if err := r.db.Create(employee).Error; err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// Update persists every field of an existing employee.
func (r *GORMEmployeeRepository) Update(employee *models.Employee) error {
	res := r.db.Save(employee)
	if res.Error != nil {
		return fmt.Errorf("failed to update employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("employee with ID %d: %w", employee.EmployeeID, ErrNotFound)
	}
	return nil
}

// Delete removes an employee by its ID.
func (r *GORMEmployeeRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Employee{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete employee: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("employee with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
