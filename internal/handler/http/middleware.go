package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/studysphere/backend/internal/auth"
	"github.com/studysphere/backend/internal/repository"
	apperrors "github.com/studysphere/backend/pkg/errors"
	"github.com/studysphere/backend/pkg/httputil"
	"github.com/studysphere/backend/pkg/logger"
)

// bearerPrefix is the exact required Authorization scheme prefix. Matching is
// case-sensitive and the single space is mandatory.
const bearerPrefix = "Bearer "

// Identity is the authenticated account attached to the request context by
// RequireAuth or OptionalAuth.
type Identity struct {
	UserID   string
	Email    string
	Username string
}

type identityContextKey struct{}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*Identity)
	return id, ok
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType,
					httputil.ErrorResponse{Error: "Content-Type must be application/json"})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// resolveIdentity extracts and verifies the bearer token, then loads the
// account it names. The returned identity is nil when any step fails; the
// caller decides whether that is fatal.
func resolveIdentity(r *http.Request, tokens *auth.TokenService, accounts repository.AccountRepository) *Identity {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil
	}

	claims, err := tokens.VerifyAccessToken(header[len(bearerPrefix):])
	if err != nil {
		return nil
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return nil
	}

	user, err := accounts.GetByID(r.Context(), userID)
	if err != nil {
		return nil
	}

	return &Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}
}

// RequireAuth rejects any request without a valid bearer access token naming
// an existing account. Every failure mode collapses to the same 401 body so
// callers cannot distinguish a bad signature from a deleted account.
func RequireAuth(tokens *auth.TokenService, accounts repository.AccountRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolveIdentity(r, tokens, accounts)
			if identity == nil {
				httputil.WriteUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			ctx = logger.WithUserID(ctx, identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an identity when a valid bearer token is presented
// and proceeds anonymously otherwise. It never rejects a request.
func OptionalAuth(tokens *auth.TokenService, accounts repository.AccountRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity := resolveIdentity(r, tokens, accounts); identity != nil {
				ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
				ctx = logger.WithUserID(ctx, identity.UserID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireGroupOwner restricts a route to the owner of the group named by the
// {name} path parameter. It must be composed after RequireAuth.
func RequireGroupOwner(groups repository.GroupRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				httputil.WriteUnauthorized(w)
				return
			}

			name := chi.URLParam(r, "name")
			group, err := groups.GetByName(r.Context(), name)
			if err != nil {
				if apperrors.HTTPStatus(err) == http.StatusNotFound {
					httputil.WriteError(w, r, apperrors.NotFound("group"), nil)
					return
				}
				httputil.WriteError(w, r, err, nil)
				return
			}

			if group.OwnerID != identity.UserID {
				httputil.WriteError(w, r, apperrors.Forbidden("Forbidden"), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
