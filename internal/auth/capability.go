package auth

import "storerating/internal/model"

// Capability names an operation family gated by role.
type Capability string

const (
	CapManageAccount  Capability = "account:manage"
	CapBrowseStores   Capability = "stores:browse"
	CapRateStores     Capability = "stores:rate"
	CapAdminister     Capability = "admin"
	CapOwnerDashboard Capability = "owner:dashboard"
)

var grants = map[model.Role]map[Capability]bool{
	model.RoleAdmin: {
		CapManageAccount: true,
		CapBrowseStores:  true,
		CapAdminister:    true,
	},
	model.RoleUser: {
		CapManageAccount: true,
		CapBrowseStores:  true,
		CapRateStores:    true,
	},
	model.RoleOwner: {
		CapManageAccount:  true,
		CapBrowseStores:   true,
		CapOwnerDashboard: true,
	},
}

// Can reports whether role holds capability. Unknown roles hold nothing.
func Can(role model.Role, capability Capability) bool {
	return grants[role][capability]
}
