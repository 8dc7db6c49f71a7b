package security

import "testing"

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{"super admin manages tenants", RoleSuperAdmin, ResourceTenants, ActionDelete, true},
		{"tenant admin cannot manage tenants", RoleTenantAdmin, ResourceTenants, ActionCreate, false},
		{"tenant admin manages users", RoleTenantAdmin, ResourceUsers, ActionCreate, true},
		{"manager deletes products", RoleTenantManager, ResourceProducts, ActionDelete, true},
		{"manager cannot manage users", RoleTenantManager, ResourceUsers, ActionRead, false},
		{"staff reads products", RoleTenantStaff, ResourceProducts, ActionRead, true},
		{"staff cannot delete products", RoleTenantStaff, ResourceProducts, ActionDelete, false},
		{"staff creates orders", RoleTenantStaff, ResourceOrders, ActionCreate, true},
		{"staff cannot delete orders", RoleTenantStaff, ResourceOrders, ActionDelete, false},
		{"staff reads reports", RoleTenantStaff, ResourceReports, ActionRead, true},
		{"unknown role denied", Role("Intern"), ResourceProducts, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allow(tt.role, tt.resource, tt.action); got != tt.want {
				t.Errorf("Allow(%s, %s, %s) = %v, want %v", tt.role, tt.resource, tt.action, got, tt.want)
			}
		})
	}
}

func TestAllowAny(t *testing.T) {
	roles := []string{"TenantStaff", "TenantManager"}
	if !AllowAny(roles, ResourceProducts, ActionDelete) {
		t.Error("expected manager role in the set to allow product delete")
	}
	if AllowAny([]string{"TenantStaff"}, ResourceUsers, ActionRead) {
		t.Error("staff must not read users")
	}
	if AllowAny(nil, ResourceProducts, ActionRead) {
		t.Error("empty role set must be denied")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{"SuperAdmin", "TenantAdmin", "TenantManager", "TenantStaff"} {
		if !IsValidRole(r) {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if IsValidRole("superadmin") {
		t.Error("role names are case sensitive")
	}
}
