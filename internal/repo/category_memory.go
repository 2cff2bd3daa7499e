package repo

import (
	"sort"
	"sync"

	"github.com/labforge/labstock/internal/models"
)

type InMemoryCategoryRepository struct {
	mu         sync.Mutex
	categories []models.Category
	components *InMemoryComponentRepository
	nextID     int
}

func NewInMemoryCategoryRepository(components *InMemoryComponentRepository) *InMemoryCategoryRepository {
	return &InMemoryCategoryRepository{
		categories: []models.Category{},
		components: components,
		nextID:     1,
	}
}

func (r *InMemoryCategoryRepository) Create(c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Name == c.Name {
			return models.Category{}, ErrDuplicateCategoryName
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.categories = append(r.categories, c)
	return c, nil
}

func (r *InMemoryCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryCategoryRepository) GetByID(id int) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Update(c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Name == c.Name && existing.ID != c.ID {
			return models.Category{}, ErrDuplicateCategoryName
		}
	}
	for i, existing := range r.categories {
		if existing.ID == c.ID {
			c.CreatedAt = existing.CreatedAt
			r.categories[i] = c
			return c, nil
		}
	}
	return models.Category{}, ErrCategoryNotFound
}

func (r *InMemoryCategoryRepository) Delete(id int) error {
	if r.components != nil {
		components, _ := r.components.GetAll()
		for _, c := range components {
			if c.CategoryID == id {
				return ErrCategoryInUse
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, c := range r.categories {
		if c.ID == id {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return ErrCategoryNotFound
}

// Clear removes all categories; test hook.
func (r *InMemoryCategoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = []models.Category{}
	r.nextID = 1
}
