package models

import "time"

type Role string

const (
	RoleAdmin                 Role = "ADMIN"
	RoleLabTechnician         Role = "LAB_TECHNICIAN"
	RoleResearcher            Role = "RESEARCHER"
	RoleManufacturingEngineer Role = "MANUFACTURING_ENGINEER"
	RoleUser                  Role = "USER"
)

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLabTechnician, RoleResearcher, RoleManufacturingEngineer, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DisplayName is the denormalized actor name carried on transactions.
func (u User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
