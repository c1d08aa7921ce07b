package http

import (
	"net/http"

	"leaseflow-backend/internal/domain"
	"leaseflow-backend/internal/service"
)

// AuthHandler serves login and user administration endpoints
type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token, User: user})
}

type createUserRequest struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              string `json:"role"`
	Password          string `json:"password"`
	CommissionLevelID string `json:"commission_level_id,omitempty"`
}

func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req createUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user := &domain.User{
		Email: req.Email,
		Name:  req.Name,
		Role:  domain.Role(req.Role),
	}
	if req.CommissionLevelID != "" {
		user.CommissionLevelID = &req.CommissionLevelID
	}

	created, err := h.auth.CreateUser(r.Context(), actor, user, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
