package repo

import "github.com/labforge/labstock/internal/models"

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	Create(c models.Category) (models.Category, error)
	GetAll() ([]models.Category, error)
	GetByID(id int) (models.Category, error)
	Update(c models.Category) (models.Category, error)
	Delete(id int) error
}
