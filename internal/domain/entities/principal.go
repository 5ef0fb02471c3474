package entities

import "github.com/google/uuid"

// PrincipalKind discriminates the two authentication paths
type PrincipalKind string

const (
	PrincipalUser   PrincipalKind = "USER"
	PrincipalAPIKey PrincipalKind = "API_KEY"
)

// PermissionWildcard grants every permission
const PermissionWildcard = "*"

// Principal is the authenticated identity attached to a request. Exactly one
// kind is produced per successful authentication: a human session (user
// fields set) or a machine client (key fields set), never both.
type Principal struct {
	Kind PrincipalKind `json:"kind"`

	// User session fields
	UserID uuid.UUID `json:"userId,omitempty"`
	Email  string    `json:"email,omitempty"`
	Role   UserRole  `json:"role,omitempty"`

	// API key fields
	KeyName     string   `json:"keyName,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
	RateLimit   int      `json:"rateLimit,omitempty"`
}

// Name returns the identity used for rate limiting and analytics keys
func (p *Principal) Name() string {
	if p.Kind == PrincipalAPIKey {
		return p.KeyName
	}
	return p.Email
}

// HasPermission reports whether the principal holds perm. User sessions are
// scoped by role, not permission tokens, and always pass; API keys match the
// exact token or the reserved wildcard.
func (p *Principal) HasPermission(perm string) bool {
	if p.Kind == PrincipalUser {
		return true
	}
	for _, granted := range p.Permissions {
		if granted == perm || granted == PermissionWildcard {
			return true
		}
	}
	return false
}
