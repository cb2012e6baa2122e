package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/internal/revocation"
	"shop_backoffice/pkg/utils"
)

// AuthCookieName is the HTTP-only session cookie set on login.
const AuthCookieName = "auth_token"

// Authenticator resolves the user behind a request.
type Authenticator interface {
	// ResolveUser returns nil for every failure; callers cannot tell why.
	ResolveUser(ctx context.Context, r *http.Request) *models.User
}

type authenticator struct {
	tokens  *utils.TokenManager
	revoked revocation.Store
	users   repositories.UserRepository
}

// NewAuthenticator creates a new instance of Authenticator.
func NewAuthenticator(tokens *utils.TokenManager, revoked revocation.Store, users repositories.UserRepository) Authenticator {
	return &authenticator{tokens: tokens, revoked: revoked, users: users}
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token
			}
		}
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (a *authenticator) ResolveUser(ctx context.Context, r *http.Request) *models.User {
	token := TokenFromRequest(r)
	if token == "" {
		return nil
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil
	}

	revoked, err := a.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		utils.LogError(err, "ResolveUser: revocation check failed")
		return nil
	}
	if revoked {
		return nil
	}

	user, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			utils.LogError(err, "ResolveUser: user lookup failed")
		}
		return nil
	}
	if !user.IsActive {
		return nil
	}
	return user
}
