package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"schoolsite-backend-go/internal/models"
	"schoolsite-backend-go/internal/services"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	Email    *string `json:"email"`
	IsActive bool    `json:"is_active"`
}

type contextKey string

const ctxIdentity contextKey = "identity"

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxIdentity, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(Identity)
	return id, ok
}

// CurrentIsAdmin reports whether the request carries an administrative
// identity.
func CurrentIsAdmin(r *http.Request) bool {
	id, ok := IdentityFromContext(r.Context())
	return ok && services.IsAdminRole(id.Role)
}

// TokenVerifier is the subset of the token service the guard needs.
type TokenVerifier interface {
	Verify(token string) (services.VerifiedToken, error)
}

// AccountLookup loads an alive account by id and returns a 404 ServiceError
// when there is none.
type AccountLookup interface {
	Get(ctx context.Context, id int64) (models.Account, error)
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

// resolveIdentity verifies the bearer token and re-reads the account so the
// role and active flag reflect storage rather than the token claims.
func resolveIdentity(r *http.Request, tokens TokenVerifier, accounts AccountLookup) (Identity, error) {
	raw, ok := bearerToken(r)
	if !ok {
		return Identity{}, services.ErrUnauthorized("No token provided")
	}
	verified, err := tokens.Verify(raw)
	switch {
	case errors.Is(err, services.ErrTokenExpired):
		return Identity{}, services.ErrUnauthorized("Token expired")
	case err != nil:
		return Identity{}, services.ErrUnauthorized("Invalid token")
	}
	account, err := accounts.Get(r.Context(), verified.AccountID)
	if err != nil {
		if services.IsStatus(err, http.StatusNotFound) {
			return Identity{}, services.ErrNotFound("User not found")
		}
		return Identity{}, err
	}
	if !account.IsActive {
		return Identity{}, services.ErrForbidden("User account is inactive")
	}
	return Identity{
		ID:       account.ID,
		Username: account.Username,
		Role:     account.RoleName(),
		Email:    account.Email,
		IsActive: account.IsActive,
	}, nil
}

// Authenticate rejects requests without a valid token for an alive, active
// account.
func Authenticate(tokens TokenVerifier, accounts AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolveIdentity(r, tokens, accounts)
			if err != nil {
				WriteServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth attaches an identity when one can be resolved and otherwise
// lets the request through anonymously.
func OptionalAuth(tokens TokenVerifier, accounts AccountLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, err := resolveIdentity(r, tokens, accounts); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Authorize admits identities whose role exactly matches one of roles.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	allowed := map[string]bool{}
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !allowed[identity.Role] {
				WriteError(w, http.StatusForbidden, "Access denied. Insufficient permissions.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
