package models

import "time"

// Role is the closed set of business roles.
type Role string

const (
	RoleSuperAdmin     Role = "SUPER_ADMIN"
	RoleAdmin          Role = "ADMIN"
	RoleShopAgent      Role = "SHOP_AGENT"
	RoleWarehouseAgent Role = "WAREHOUSE_AGENT"
	RoleConfirmer      Role = "CONFIRMER"
)

// AllRoles lists every role in display order.
var AllRoles = []Role{RoleSuperAdmin, RoleAdmin, RoleShopAgent, RoleWarehouseAgent, RoleConfirmer}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents a back-office account.
type User struct {
	ID           int64      `json:"id"`
	Phone        string     `json:"phone"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         Role       `json:"role"`
	AvatarURL    *string    `json:"avatarUrl"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// UserFilters narrows user listings.
type UserFilters struct {
	Role   Role
	Search string
	Page   int
	Limit  int
}
