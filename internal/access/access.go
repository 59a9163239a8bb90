// Package access decides whether a session may enter a role-restricted area.
package access

// Redirect targets returned with a denial.
const (
	RedirectLogin = "/login"
	RedirectRoot  = "/"
)

// Session is the authenticated identity derived from a validated token.
type Session struct {
	UserID     int64  `json:"usuarioId"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"rol"`
	CustomerID *int64 `json:"clienteId,omitempty"`
	StaffID    *int64 `json:"personalId,omitempty"`
}

// Decision is the outcome of Evaluate. Redirect is empty when Allowed.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Evaluate grants access when a session exists and its role is listed.
// A nil allowedRoles means any authenticated session may enter; an empty
// non-nil list admits nobody.
func Evaluate(session *Session, allowedRoles []string) Decision {
	if session == nil {
		return Decision{Redirect: RedirectLogin}
	}
	if allowedRoles == nil {
		return Decision{Allowed: true}
	}
	for _, role := range allowedRoles {
		if role == session.Role {
			return Decision{Allowed: true}
		}
	}
	return Decision{Redirect: RedirectRoot}
}

// HasRole reports whether the session carries one of roles.
func (s *Session) HasRole(roles ...string) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if r == s.Role {
			return true
		}
	}
	return false
}

// ActsForCustomer reports whether the session may act on customerID's data.
// Customer sessions are limited to their own profile; other roles are not.
func (s *Session) ActsForCustomer(customerRole string, customerID int64) bool {
	if s == nil {
		return false
	}
	if s.Role != customerRole {
		return true
	}
	return s.CustomerID != nil && *s.CustomerID == customerID
}
