package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gymflow/gymflow/internal/config"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	supa "github.com/nedpals/supabase-go"
)

type supabaseAuth struct {
	authConfig config.AuthConfig
	client     *supa.Client
	logger     *logger.Logger
}

// NewSupabaseAuth creates an auth provider backed by Supabase. Users sign up
// through the Supabase UI; this provider validates the HS256 tokens Supabase
// issues and manages tenant assignment via the admin API.
func NewSupabaseAuth(cfg *config.Configuration, log *logger.Logger) (Provider, error) {
	client := supa.CreateClient(cfg.Auth.Supabase.BaseURL, cfg.Auth.Supabase.ServiceKey)
	if client == nil {
		return nil, ierr.NewError("failed to create supabase client").
			WithHint("Check auth.supabase.base_url and service key").
			Mark(ierr.ErrSystem)
	}

	return &supabaseAuth{
		authConfig: cfg.Auth,
		client:     client,
		logger:     log,
	}, nil
}

func (s *supabaseAuth) GetProvider() AuthProvider {
	return AuthProviderSupabase
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithReportableDetails(map[string]interface{}{
					"signing_method": token.Method.Alg(),
				}).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(s.authConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, ierr.NewError("token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	email, _ := claims["email"].(string)

	// tenant_id is set on app_metadata when the user is assigned to a gym
	var tenantID string
	if appMetadata, ok := claims["app_metadata"].(map[string]interface{}); ok {
		if tid, ok := appMetadata["tenant_id"].(string); ok {
			tenantID = tid
		}
	}
	if tenantID == "" {
		return nil, ierr.NewError("token missing tenant assignment").
			WithHint("The user is not assigned to any gym").
			Mark(ierr.ErrPermissionDenied)
	}

	return &Claims{
		UserID:   userID,
		TenantID: tenantID,
		Email:    email,
	}, nil
}

func (s *supabaseAuth) AssignUserToTenant(ctx context.Context, userID string, tenantID string) error {
	params := supa.AdminUserParams{
		AppMetadata: map[string]interface{}{
			"tenant_id": tenantID,
		},
	}

	if _, err := s.client.Admin.UpdateUser(ctx, userID, params); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to assign tenant to user").
			Mark(ierr.ErrSystem)
	}

	s.logger.Debugw("assigned tenant to user", "user_id", userID, "tenant_id", tenantID)
	return nil
}
