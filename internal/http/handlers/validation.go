package handlers

import "strings"

type ValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateComponent(c ComponentRequest) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ValidationError{Field: "Name", Description: "Name is required"})
	}
	if strings.TrimSpace(c.PartNumber) == "" {
		errs = append(errs, ValidationError{Field: "PartNumber", Description: "Part number is required"})
	}
	if c.CategoryID <= 0 {
		errs = append(errs, ValidationError{Field: "CategoryID", Description: "Category is required"})
	}
	if c.Quantity < 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	if c.UnitPrice < 0 {
		errs = append(errs, ValidationError{Field: "UnitPrice", Description: "Unit price cannot be negative"})
	}
	if c.CriticalLowThreshold < 0 {
		errs = append(errs, ValidationError{Field: "CriticalLowThreshold", Description: "Threshold cannot be negative"})
	}
	return errs
}

func validateTransaction(t TransactionRequest) []ValidationError {
	errs := []ValidationError{}
	if t.ComponentID <= 0 {
		errs = append(errs, ValidationError{Field: "ComponentID", Description: "Component is required"})
	}
	if !t.Type.Valid() {
		errs = append(errs, ValidationError{Field: "Type", Description: "Type must be INWARD or OUTWARD"})
	}
	if t.Quantity <= 0 {
		errs = append(errs, ValidationError{Field: "Quantity", Description: "Quantity must be a positive integer"})
	}
	return errs
}

func validateUser(u UserRequest, requirePassword bool) []ValidationError {
	errs := []ValidationError{}
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		errs = append(errs, ValidationError{Field: "Email", Description: "A valid email is required"})
	}
	if requirePassword && len(u.Password) < 6 {
		errs = append(errs, ValidationError{Field: "Password", Description: "Password must be at least 6 characters"})
	}
	if u.Role != "" && !u.Role.Valid() {
		errs = append(errs, ValidationError{Field: "Role", Description: "Unknown role"})
	}
	return errs
}
