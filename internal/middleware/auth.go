package middleware

import (
	"context"
	"net/http"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/gorilla/sessions"
)

type contextKey string

const (
	// UserContextKey is where LoadUser stores the authenticated user
	UserContextKey contextKey = "user"

	// SessionName is the cookie name for the login session
	SessionName = "partier_session"
)

// UserGetter resolves a session user id to an account
type UserGetter interface {
	GetUser(id int) (*models.User, error)
}

// AuthMiddleware provides session-backed authentication
type AuthMiddleware struct {
	users UserGetter
	store sessions.Store
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(users UserGetter, store sessions.Store) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
		store: store,
	}
}

// LoadUser loads the current user from the session cookie and adds it
// to the request context. Requests without a valid session continue
// anonymously.
func (m *AuthMiddleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, SessionName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		userID, ok := session.Values["user_id"].(int)
		if !ok || userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.users.GetUser(userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects anonymous requests
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserFromContext(r.Context()) == nil {
			http.Error(w, `{"message":"authentication required"}`, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireOrganizer rejects callers without the organizer capability
func (m *AuthMiddleware) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			http.Error(w, `{"message":"authentication required"}`, http.StatusUnauthorized)
			return
		}

		if !user.CanManageEvents() {
			http.Error(w, `{"message":"organizer capability required"}`, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin rejects callers without the super admin capability
func (m *AuthMiddleware) RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		if user == nil {
			http.Error(w, `{"message":"authentication required"}`, http.StatusUnauthorized)
			return
		}

		if !user.CanManageUsers() {
			http.Error(w, `{"message":"super admin capability required"}`, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext returns the authenticated user, or nil for
// anonymous requests
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
