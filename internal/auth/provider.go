package auth

import "context"

// AuthProvider identifies the configured identity provider
type AuthProvider string

const (
	AuthProviderSupabase AuthProvider = "supabase"
)

// Claims carries the identity extracted from a validated access token
type Claims struct {
	UserID   string
	TenantID string
	Email    string
}

// Provider validates access tokens and manages tenant assignment. Signup and
// login flows live in the identity provider itself; this service only
// consumes tokens it issued.
type Provider interface {
	GetProvider() AuthProvider
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	AssignUserToTenant(ctx context.Context, userID string, tenantID string) error
}
