package repo

import "github.com/labforge/labstock/internal/models"

// UserFilter narrows user listings.
type UserFilter struct {
	Role     *models.Role
	IsActive *bool
}

// UserRepository defines the interface for user account operations.
type UserRepository interface {
	Create(u models.User) (models.User, error)
	GetByEmail(email string) (models.User, error)
	GetByID(id int) (models.User, error)
	List(uf UserFilter) ([]models.User, error)
	Update(u models.User) (models.User, error)
	Deactivate(id int) error
}
