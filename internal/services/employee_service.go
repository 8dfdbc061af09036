package services

import (
	"log"
	"mime/multipart"

	"supermart/internal/models"
	"supermart/internal/repositories"
)

const employeeUploadCategory = "employees"

// EmployeeService handles business logic related to employees.
type EmployeeService struct {
	repo  repositories.EmployeeRepository
	files FileSaver
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(repo repositories.EmployeeRepository, files FileSaver) *EmployeeService {
	return &EmployeeService{repo: repo, files: files}
}

// List returns one page of employees in the pagination envelope.
func (s *EmployeeService) List(pageNumber, pageSize int) (models.Page[models.Employee], error) {
	employees, total, err := s.repo.List(pageNumber, pageSize)
	if err != nil {
		return models.Page[models.Employee]{}, err
	}
	return models.NewPage(employees, total, pageNumber, pageSize), nil
}

// GetByID retrieves a single employee.
func (s *EmployeeService) GetByID(id uint) (*models.Employee, error) {
	return s.repo.GetByID(id)
}

// Create stores the image first (when present), then persists the employee.
func (s *EmployeeService) Create(employee *models.Employee, image *multipart.FileHeader) error {
	if image != nil {
		url, err := s.files.Save(employeeUploadCategory, image)
		if err != nil {
			return err
		}
		employee.ImageURL = url
	}
	if err := s.repo.Create(employee); err != nil {
		if employee.ImageURL != "" {
			log.Printf("orphaned upload %s: employee row was not created: %v", employee.ImageURL, err)
		}
		return err
	}
	return nil
}

// Update overwrites every mutable field of an existing employee. Omitting
// the image keeps the previous imageUrl.
func (s *EmployeeService) Update(id uint, fields models.Employee, image *multipart.FileHeader) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	existing.FirstName = fields.FirstName
	existing.LastName = fields.LastName
	existing.Role = fields.Role
	existing.Salary = fields.Salary

	if image != nil {
		url, err := s.files.Save(employeeUploadCategory, image)
		if err != nil {
			return err
		}
		existing.ImageURL = url
	}
	return s.repo.Update(existing)
}

// Delete removes an employee.
func (s *EmployeeService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
