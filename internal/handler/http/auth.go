package http

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vasiliy-maslov/courses-api/internal/user"
)

// authenticate resolves the request's Basic Auth credentials to a stored
// user. All credential failures surface as user.ErrInvalidCredentials; the
// client response is the same generic 401 either way.
func authenticate(users user.Service, r *http.Request) (*user.User, error) {
	email, password, ok := r.BasicAuth()
	if !ok {
		log.Warn().Msg("authentication failed: no credentials presented")
		return nil, user.ErrInvalidCredentials
	}

	return users.Authenticate(r.Context(), email, password)
}

// respondAccessDenied writes the single body every authentication failure
// gets, regardless of which check failed.
func respondAccessDenied(w http.ResponseWriter) {
	respondWithError(w, http.StatusUnauthorized, "Access Denied")
}
