package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftclock/timeclock-backend-go/internal/domain/auth"
	"github.com/shiftclock/timeclock-backend-go/internal/domain/user"
	"github.com/shiftclock/timeclock-backend-go/internal/handler/http/response"
)

// AdminOnly gates mutating admin endpoints on the role claim. Managers and
// viewers can read but not change payroll data.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || !user.Role(role).CanAdminister() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
