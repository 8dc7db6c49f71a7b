// Package security provides role-based access decisions.
//
// Authorization is a fixed table mapping (role, resource, action) to allow.
// The table is evaluated once at the request boundary by the RequirePolicy
// middleware; handlers and services never branch on roles themselves.
package security

// Role is one of the fixed platform roles.
type Role string

const (
	RoleSuperAdmin    Role = "SuperAdmin"
	RoleTenantAdmin   Role = "TenantAdmin"
	RoleTenantManager Role = "TenantManager"
	RoleTenantStaff   Role = "TenantStaff"
)

// Resource identifies an API resource group.
type Resource string

const (
	ResourceTenants    Resource = "tenants"
	ResourceCategories Resource = "categories"
	ResourceProducts   Resource = "products"
	ResourceCustomers  Resource = "customers"
	ResourceOrders     Resource = "orders"
	ResourceReports    Resource = "reports"
	ResourceUsers      Resource = "users"
)

// Action is an operation on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type rule struct {
	resource Resource
	action   Action
}

// policy is the full allow table. Anything not listed is denied.
// SuperAdmin is handled separately: it is allowed everything.
var policy = map[Role]map[rule]bool{
	RoleTenantAdmin: allowAll(
		ResourceCategories, ResourceProducts, ResourceCustomers,
		ResourceOrders, ResourceReports, ResourceUsers,
	),
	RoleTenantManager: merge(
		allowAll(ResourceCategories, ResourceProducts, ResourceCustomers, ResourceOrders),
		allow(ResourceReports, ActionRead),
	),
	RoleTenantStaff: merge(
		allow(ResourceCategories, ActionRead),
		allow(ResourceProducts, ActionRead),
		allow(ResourceCustomers, ActionRead, ActionCreate, ActionUpdate),
		allow(ResourceOrders, ActionRead, ActionCreate, ActionUpdate),
		allow(ResourceReports, ActionRead),
	),
}

// Allow reports whether the role may perform action on resource.
func Allow(role Role, resource Resource, action Action) bool {
	if role == RoleSuperAdmin {
		return true
	}
	rules, ok := policy[role]
	if !ok {
		return false
	}
	return rules[rule{resource, action}]
}

// AllowAny reports whether any of the roles may perform action on resource.
func AllowAny(roles []string, resource Resource, action Action) bool {
	for _, r := range roles {
		if Allow(Role(r), resource, action) {
			return true
		}
	}
	return false
}

// IsValidRole reports whether s names one of the fixed roles.
func IsValidRole(s string) bool {
	switch Role(s) {
	case RoleSuperAdmin, RoleTenantAdmin, RoleTenantManager, RoleTenantStaff:
		return true
	}
	return false
}

func allow(resource Resource, actions ...Action) map[rule]bool {
	m := make(map[rule]bool, len(actions))
	for _, a := range actions {
		m[rule{resource, a}] = true
	}
	return m
}

func allowAll(resources ...Resource) map[rule]bool {
	m := make(map[rule]bool)
	for _, res := range resources {
		for _, a := range []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete} {
			m[rule{res, a}] = true
		}
	}
	return m
}

func merge(maps ...map[rule]bool) map[rule]bool {
	out := make(map[rule]bool)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
