// Package authz owns the role/capability table. Every API boundary check
// goes through Can; permissions are never re-derived per handler.
package authz

import "github.com/labforge/labstock/internal/models"

type Capability string

const (
	ManageUsers        Capability = "manage_users"
	ManageInventory    Capability = "manage_inventory"
	RecordTransactions Capability = "record_transactions"
	ViewReports        Capability = "view_reports"
)

var grants = map[models.Role]map[Capability]bool{
	models.RoleAdmin: {
		ManageUsers:        true,
		ManageInventory:    true,
		RecordTransactions: true,
		ViewReports:        true,
	},
	models.RoleLabTechnician: {
		ManageInventory:    true,
		RecordTransactions: true,
		ViewReports:        true,
	},
	models.RoleResearcher: {
		RecordTransactions: true,
		ViewReports:        true,
	},
	models.RoleManufacturingEngineer: {
		RecordTransactions: true,
	},
	models.RoleUser: {
		RecordTransactions: true,
	},
}

// Can reports whether the role holds the capability. Unknown roles hold
// nothing.
func Can(role models.Role, capability Capability) bool {
	return grants[role][capability]
}
