package handlers

import (
	"net/http"

	"github.com/Adityadhvn/Partier/internal/middleware"
	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/gorilla/sessions"
)

// AuthServiceInterface covers what the auth handler needs from the
// auth service
type AuthServiceInterface interface {
	Register(req *models.UserCreateRequest) (*models.User, error)
	Login(username, password string) (*models.User, error)
}

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	authService AuthServiceInterface
	store       sessions.Store
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthServiceInterface, store sessions.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid user data")
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// loginRequest is the POST /api/auth/login payload
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login and starts a session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid login data")
		return
	}

	user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout and ends the session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.store.Get(r, middleware.SessionName)
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me and returns the current caller
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "not logged in")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
