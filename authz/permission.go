package authz

import "github.com/ichi1107/bento-order-system/models"

// Permission tags an operation on a store's resources
type Permission string

const (
	PermissionView         Permission = "view"
	PermissionManageOrders Permission = "manage-orders"
	PermissionManageMenus  Permission = "manage-menus"
	PermissionDeleteMenu   Permission = "delete-menu"
	PermissionViewReports  Permission = "view-reports"
	PermissionManageStore  Permission = "manage-store"
)

// allowedRoles is the authoritative permission matrix. An empty entry means
// any store-scoped caller holds the permission without a fine-grained role.
var allowedRoles = map[Permission][]string{
	PermissionView:         {},
	PermissionManageOrders: {models.RoleNameOwner, models.RoleNameManager, models.RoleNameStaff},
	PermissionManageMenus:  {models.RoleNameOwner, models.RoleNameManager},
	PermissionDeleteMenu:   {models.RoleNameOwner},
	PermissionViewReports:  {models.RoleNameOwner, models.RoleNameManager},
	PermissionManageStore:  {models.RoleNameOwner},
}

// Can reports whether a caller may perform perm on the target store's
// resources. Rules are evaluated in order: customers hold no store
// permissions; a store caller scoped to a different store (or to none) is
// always denied; otherwise the matrix decides. Pure decision, no side effects.
func Can(primaryRole models.UserRole, callerStoreID *uint, targetStoreID uint, roleNames []string, perm Permission) bool {
	if primaryRole != models.RoleStore {
		return false
	}
	// Tenant isolation: cross-store access is never permitted
	if callerStoreID == nil || *callerStoreID != targetStoreID {
		return false
	}
	required, ok := allowedRoles[perm]
	if !ok {
		return false
	}
	if len(required) == 0 {
		return true
	}
	for _, have := range roleNames {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Permissions returns the full matrix for documentation
func Permissions() map[Permission][]string {
	out := make(map[Permission][]string, len(allowedRoles))
	for p, roles := range allowedRoles {
		out[p] = append([]string(nil), roles...)
	}
	return out
}
