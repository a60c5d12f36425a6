package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/jwt"
)

// RequireBusiness rejects tokens that carry no business scope or an unknown
// role.
func RequireBusiness(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := jwt.PrincipalFromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrBusinessIDRequired)
			return
		}

		if _, err := user.ParseRole(string(principal.Role)); err != nil {
			response.Forbidden(w, err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin requires the admin or developer role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := jwt.PrincipalFromContext(r.Context())
		if err != nil || !principal.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := jwt.PrincipalFromContext(r.Context())
			if err != nil {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			if !user.HasPermission(principal.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, principal.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
