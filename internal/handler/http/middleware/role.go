package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/techstaffhub/attendance-kiosk/internal/domain/user"
	"github.com/techstaffhub/attendance-kiosk/internal/handler/http/response"
)

// RequireHr requires the HR or admin role
func RequireHr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrHrAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrHrAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if !role.CanReviewTimelogs() {
			response.HandleError(w, user.ErrHrAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
