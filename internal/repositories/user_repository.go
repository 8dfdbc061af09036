package repositories

import (
	"errors"
	"fmt"

	"supermart/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for credential and role data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByUserName(userName string) (*models.User, error)
	RoleExists(name string) (bool, error)
	EnsureRole(name string) (*models.Role, error)
	AssignRole(user *models.User, role *models.Role) error
}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create inserts a new user row.
func (r *GORMUserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUserName retrieves a user with their roles attached.
func (r *GORMUserRepository) GetByUserName(userName string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Roles").First(&user, "user_name = ?", userName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userName, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by username %s: %w", userName, err)
	}
	return &user, nil
}

// RoleExists reports whether a role row with the given name exists. The
// first-user-becomes-Admin policy hangs off this check, so it must hit the
// role table rather than any in-memory state.
func (r *GORMUserRepository) RoleExists(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check role %s: %w", name, err)
	}
	return count > 0, nil
}

// EnsureRole returns the role with the given name, creating it if missing.
func (r *GORMUserRepository) EnsureRole(name string) (*models.Role, error) {
	var role models.Role
	if err := r.db.Where(models.Role{Name: name}).FirstOrCreate(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure role %s: %w", name, err)
	}
	return &role, nil
}

// AssignRole adds a role membership for the user.
func (r *GORMUserRepository) AssignRole(user *models.User, role *models.Role) error {
	if err := r.db.Model(user).Association("Roles").Append(role); err != nil {
		return fmt.Errorf("failed to assign role %s to user %s: %w", role.Name, user.UserName, err)
	}
	return nil
}
