package repo

import (
	"sync"
	"time"

	"github.com/labforge/labstock/internal/models"
)

type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  []models.User
	nextID int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:  []models.User{},
		nextID: 1,
	}
}

func (r *InMemoryUserRepository) Create(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == u.Email || user.Username == u.Username {
			return models.User{}, ErrDuplicateEmail
		}
	}
	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) GetByEmail(email string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(id int) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) List(uf UserFilter) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.User
	for _, user := range r.users {
		if uf.Role != nil && user.Role != *uf.Role {
			continue
		}
		if uf.IsActive != nil && user.IsActive != *uf.IsActive {
			continue
		}
		out = append(out, user)
	}
	return out, nil
}

func (r *InMemoryUserRepository) Update(u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.ID != u.ID && (existing.Email == u.Email || existing.Username == u.Username) {
			return models.User{}, ErrDuplicateEmail
		}
	}
	for i, existing := range r.users {
		if existing.ID == u.ID {
			u.CreatedAt = existing.CreatedAt
			u.PasswordHash = existing.PasswordHash
			r.users[i] = u
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) Deactivate(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.ID == id {
			r.users[i].IsActive = false
			r.users[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrUserNotFound
}

// Clear removes all users; test hook.
func (r *InMemoryUserRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = []models.User{}
	r.nextID = 1
}
