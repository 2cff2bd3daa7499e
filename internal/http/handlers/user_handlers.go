package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/labforge/labstock/internal/models"
	"github.com/labforge/labstock/internal/repo"
)

// CreateUserHandler godoc
// @Summary Create a user account with a role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User to create"
// @Success 201 {object} models.User
// @Failure 400 {array} ValidationError
// @Failure 409 {string} string "Duplicate email"
// @Router /users [post]
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateUser(req, true)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	username := req.Username
	if username == "" {
		username = strings.SplitN(req.Email, "@", 2)[0]
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		Username:     username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := userRepo.Create(user)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			http.Error(w, "email already exists", http.StatusConflict)
			return
		}
		http.Error(w, "could not create user", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusCreated, created); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// ListUsersHandler godoc
// @Summary List user accounts
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {array} models.User
// @Failure 500 {string} string "Internal error"
// @Router /users [get]
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.UserFilter{}

	if roleStr := q.Get("role"); roleStr != "" {
		role := models.Role(roleStr)
		if !role.Valid() {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		filter.Role = &role
	}
	if activeStr := q.Get("is_active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			http.Error(w, "invalid is_active value", http.StatusBadRequest)
			return
		}
		filter.IsActive = &active
	}

	users, err := userRepo.List(filter)
	if err != nil {
		http.Error(w, "could not fetch users", http.StatusInternalServerError)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	if err := writeJSON(w, http.StatusOK, users); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// UpdateUserHandler godoc
// @Summary Update a user account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param user body UserRequest true "Updated user"
// @Success 200 {object} models.User
// @Failure 400 {array} ValidationError
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Duplicate email"
// @Router /users/{id} [put]
func UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateUser(req, false)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(validationErrors)
		return
	}

	existing, err := userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}

	role := req.Role
	if role == "" {
		role = existing.Role
	}
	username := req.Username
	if username == "" {
		username = existing.Username
	}
	isActive := existing.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := models.User{
		ID:        id,
		Username:  username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
		IsActive:  isActive,
		UpdatedAt: time.Now().UTC(),
	}

	updated, err := userRepo.Update(user)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrUserNotFound):
			http.Error(w, "user not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrDuplicateEmail):
			http.Error(w, "email already exists", http.StatusConflict)
		default:
			http.Error(w, "could not update user", http.StatusInternalServerError)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, updated); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

// DeactivateUserHandler godoc
// @Summary Deactivate a user account
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "Deactivated"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Router /users/{id} [delete]
func DeactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	if err := userRepo.Deactivate(id); err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not deactivate user", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
