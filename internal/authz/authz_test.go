package authz_test

import (
	"testing"

	"github.com/labforge/labstock/internal/authz"
	"github.com/labforge/labstock/internal/models"
)

func TestCan(t *testing.T) {
	tests := []struct {
		role       models.Role
		capability authz.Capability
		expected   bool
	}{
		{models.RoleAdmin, authz.ManageUsers, true},
		{models.RoleAdmin, authz.ManageInventory, true},
		{models.RoleAdmin, authz.RecordTransactions, true},
		{models.RoleAdmin, authz.ViewReports, true},

		{models.RoleLabTechnician, authz.ManageUsers, false},
		{models.RoleLabTechnician, authz.ManageInventory, true},
		{models.RoleLabTechnician, authz.RecordTransactions, true},
		{models.RoleLabTechnician, authz.ViewReports, true},

		{models.RoleResearcher, authz.ManageUsers, false},
		{models.RoleResearcher, authz.ManageInventory, false},
		{models.RoleResearcher, authz.RecordTransactions, true},
		{models.RoleResearcher, authz.ViewReports, true},

		{models.RoleManufacturingEngineer, authz.ManageUsers, false},
		{models.RoleManufacturingEngineer, authz.ManageInventory, false},
		{models.RoleManufacturingEngineer, authz.RecordTransactions, true},
		{models.RoleManufacturingEngineer, authz.ViewReports, false},

		{models.RoleUser, authz.ManageUsers, false},
		{models.RoleUser, authz.ManageInventory, false},
		{models.RoleUser, authz.RecordTransactions, true},
		{models.RoleUser, authz.ViewReports, false},
	}

	for _, tt := range tests {
		if got := authz.Can(tt.role, tt.capability); got != tt.expected {
			t.Errorf("Can(%s, %s) = %v, want %v", tt.role, tt.capability, got, tt.expected)
		}
	}
}

func TestCanUnknownRole(t *testing.T) {
	if authz.Can(models.Role("SUPERVISOR"), authz.RecordTransactions) {
		t.Error("expected unknown role to hold no capabilities")
	}
}
