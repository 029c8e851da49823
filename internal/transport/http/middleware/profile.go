package middleware

import (
	"context"
	"errors"
	"net/http"

	"teamtime-bot/internal/models"
	"teamtime-bot/internal/service"
	"teamtime-bot/internal/transport/http/api"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// UserHeader carries the id of the selected profile.
const UserHeader = "X-User-ID"

type contextKey string

const userKey contextKey = "user"

// UserLookup resolves a profile id.
type UserLookup interface {
	GetUser(userID string) (*models.User, error)
}

// Profile loads the user named by the X-User-ID header into the request
// context. Requests without the header pass through with no user.
func Profile(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := r.Header.Get(UserHeader)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUser(userID)
			if errors.Is(err, service.ErrNotFound) {
				api.Fail(w, http.StatusUnauthorized, "unknown_profile", "no profile with id "+userID, chimw.GetReqID(r.Context()))
				return
			}
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "profile_failed", "failed to load profile", chimw.GetReqID(r.Context()))
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
		})
	}
}

func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}
