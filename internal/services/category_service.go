package services

import (
	"supermart/internal/models"
	"supermart/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns one page of categories in the pagination envelope.
func (s *CategoryService) List(pageNumber, pageSize int) (models.Page[models.Category], error) {
	categories, total, err := s.repo.List(pageNumber, pageSize)
	if err != nil {
		return models.Page[models.Category]{}, err
	}
	return models.NewPage(categories, total, pageNumber, pageSize), nil
}

// GetByID retrieves a single category.
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	return s.repo.GetByID(id)
}

// Create persists a new category and returns it with its assigned ID.
func (s *CategoryService) Create(category *models.Category) error {
	return s.repo.Create(category)
}

// Update overwrites every mutable field of an existing category.
func (s *CategoryService) Update(id uint, fields models.Category) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	existing.Name = fields.Name
	return s.repo.Update(existing)
}

// Delete removes a category.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}
