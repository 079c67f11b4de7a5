package auth

import "github.com/golang-jwt/jwt/v5"

// Claims carried by gateway-issued access tokens. Company scopes the caller
// to a tenant; Roles gate what the operational surface lets them do.
type Claims struct {
	jwt.RegisteredClaims
	Company string   `json:"company"`
	Roles   []string `json:"roles"`
}

// HasRole reports whether the token grants the given role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Roles recognised on the operational surface.
const (
	RoleOperator = "operator"
	RoleAuditor  = "auditor"
	RoleService  = "service"
)
