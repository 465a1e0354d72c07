package auth

import (
	"log/slog"
	"net/http"
)

// Authorization is the request gate for permission-protected endpoints. It
// runs after AuthMiddleware, so the user in context already carries the
// permission set loaded from the store for this request.
type Authorization struct {
	logger *slog.Logger
}

func NewAuthorization(logger *slog.Logger) *Authorization {
	return &Authorization{logger: logger}
}

// Require builds a middleware that rejects requests whose user lacks the
// named permission. Missing user → 401; missing permission → 403. The
// handler body never executes on failure.
func (a *Authorization) Require(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				a.logger.Warn("authorization check failed: user not found in context",
					"required_permission", permission)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasPermission(permission) {
				a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permission", permission,
					"user_permissions", user.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAny is like Require but passes when the user holds any one of the
// listed permissions.
func (a *Authorization) RequireAny(permissions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasAnyPermission(permissions) {
				a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permissions", permissions,
					"user_permissions", user.Permissions)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
