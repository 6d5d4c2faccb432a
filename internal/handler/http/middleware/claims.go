package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// Identity is what the access token says about the caller.
type Identity struct {
	StaffID        string
	OrganizationID string
	Role           string
}

// IdentityFromRequest reads the caller's identity out of the verified token.
func IdentityFromRequest(r *http.Request) (Identity, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return Identity{}, false
	}

	staffID, ok := claims["staff_id"].(string)
	if !ok {
		return Identity{}, false
	}
	organizationID, ok := claims["organization_id"].(string)
	if !ok {
		return Identity{}, false
	}
	role, _ := claims["role"].(string)

	return Identity{
		StaffID:        staffID,
		OrganizationID: organizationID,
		Role:           role,
	}, true
}
