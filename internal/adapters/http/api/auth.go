// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// AuthDependencies defines the interface for account operations.
type AuthDependencies interface {
	SignUp(ctx context.Context, email, name, password string) (User, string, error)
	SignIn(ctx context.Context, email, password string) (User, string, error)
	SignOut(ctx context.Context, token string) error
}

// AuthHandler handles account requests.
type AuthHandler struct {
	deps AuthDependencies
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(deps AuthDependencies) *AuthHandler {
	return &AuthHandler{deps: deps}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (req signUpRequest) validate() error {
	switch {
	case strings.TrimSpace(req.Email) == "":
		return errors.New("missing email")
	case !strings.Contains(req.Email, "@"):
		return errors.New("invalid email")
	case len(req.Password) < 8:
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// HandleSignUp handles POST /api/auth/signup requests.
func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	user, token, err := h.deps.SignUp(r.Context(), strings.TrimSpace(req.Email), strings.TrimSpace(req.Name), req.Password)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// HandleSignIn handles POST /api/auth/signin requests.
func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	const op = "api.signin"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	user, token, err := h.deps.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		Token: token,
		User:  userResponse{ID: user.ID, Email: user.Email, Name: user.Name},
	})
}

// HandleSignOut handles POST /api/auth/signout requests. It runs behind
// AuthMiddleware, so the token is known to be valid.
func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	const op = "api.signout"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.SignOut(r.Context(), bearerToken(r)); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
