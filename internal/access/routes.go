package access

import (
	"strings"

	"shop_backoffice/internal/models"
)

// RouteRule is the client navigation rule for one role.
type RouteRule struct {
	Landing  string
	Prefixes []string
}

var routeTable = map[models.Role]RouteRule{
	models.RoleSuperAdmin: {
		Landing:  "/dashboard",
		Prefixes: []string{"dashboard", "orders", "products", "stock", "charges", "ads-costs", "salaries", "users", "profile"},
	},
	models.RoleAdmin: {
		Landing:  "/dashboard",
		Prefixes: []string{"dashboard", "orders", "products", "stock", "charges", "ads-costs", "profile"},
	},
	models.RoleShopAgent: {
		Landing:  "/orders",
		Prefixes: []string{"orders", "products", "profile"},
	},
	models.RoleWarehouseAgent: {
		Landing:  "/stock",
		Prefixes: []string{"stock", "products", "orders", "profile"},
	},
	models.RoleConfirmer: {
		Landing:  "/orders",
		Prefixes: []string{"orders", "profile"},
	},
}

const loginRoute = "/login"

// LandingRoute is where role lands after login. Unknown roles go to the login page.
func LandingRoute(role models.Role) string {
	rule, ok := routeTable[role]
	if !ok {
		return loginRoute
	}
	return rule.Landing
}

// AllowedPaths lists the client paths role may open.
func AllowedPaths(role models.Role) []string {
	rule := routeTable[role]
	out := make([]string, 0, len(rule.Prefixes))
	for _, p := range rule.Prefixes {
		out = append(out, "/"+p)
	}
	return out
}

// RedirectFor returns the landing route and true when the leading segment of
// path is not permitted for role.
func RedirectFor(role models.Role, path string) (string, bool) {
	rule, ok := routeTable[role]
	if !ok {
		return loginRoute, true
	}
	segment := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)[0]
	for _, p := range rule.Prefixes {
		if p == segment {
			return "", false
		}
	}
	return rule.Landing, true
}
