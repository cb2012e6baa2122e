// Package access holds the static authorization tables: which roles may call
// which operations, and which client routes each role may open.
package access

import "shop_backoffice/internal/models"

// RoleSet is an allow-list of roles. There is no role hierarchy.
type RoleSet map[models.Role]struct{}

// NewRoleSet builds an allow-list.
func NewRoleSet(roles ...models.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Roles returns the members in canonical order.
func (s RoleSet) Roles() []models.Role {
	out := make([]models.Role, 0, len(s))
	for _, r := range models.AllRoles {
		if _, ok := s[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// IsAllowed reports whether role is a member of allowed.
func IsAllowed(role models.Role, allowed RoleSet) bool {
	_, ok := allowed[role]
	return ok
}

// Server-side allow-lists, one per operation group.
var (
	DashboardRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin)

	ProductReadRoles  = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin, models.RoleShopAgent, models.RoleWarehouseAgent)
	ProductWriteRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin)

	StockRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin, models.RoleWarehouseAgent)

	OrderReadRoles   = NewRoleSet(models.AllRoles...)
	OrderCreateRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin, models.RoleShopAgent)
	OrderStatusRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin, models.RoleConfirmer, models.RoleWarehouseAgent)
	OrderDeleteRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin)

	ExpenseRoles = NewRoleSet(models.RoleSuperAdmin, models.RoleAdmin)

	SalaryRoles = NewRoleSet(models.RoleSuperAdmin)
	UserRoles   = NewRoleSet(models.RoleSuperAdmin)
)
