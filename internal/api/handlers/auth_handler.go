package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/airsense/platform/internal/api/middleware"
	"github.com/airsense/platform/internal/api/types"
	"github.com/airsense/platform/internal/api/validators"
	"github.com/airsense/platform/internal/models"
	"github.com/airsense/platform/internal/services"
)

type AuthHandler struct {
	auth  services.AuthService
	users services.UserService
}

func NewAuthHandler(auth services.AuthService, users services.UserService) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.auth.Register(r.Context(), services.RegisterInput{
		Name:      req.Name,
		Surname1:  req.Surname1,
		Surname2:  req.Surname2,
		Email:     req.Email,
		Telephone: req.Telephone,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{
		Success: true,
		Data:    types.AuthData{Token: token, TokenType: "Bearer", User: user},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    types.AuthData{Token: token, TokenType: "Bearer", User: user},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetToken(r.Context())
	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "logged out successfully"},
	})
}

// CheckAuth reports the identity behind the presented token. The identity
// middleware has already rejected anonymous callers by the time this runs.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data: map[string]any{
			"id":    middleware.GetUserID(r.Context()),
			"email": middleware.GetEmail(r.Context()),
		},
	})
}

func (h *AuthHandler) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := h.auth.SendVerificationEmail(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "verification email sent"},
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	code := r.URL.Query().Get("code")
	if err := h.auth.ValidateEmailCode(r.Context(), email, code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "email verified successfully"},
	})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if err := h.auth.ResetPassword(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "password changed successfully"},
	})
}

// UpdateUserData applies a partial update to the authenticated user's own
// profile.
func (h *AuthHandler) UpdateUserData(w http.ResponseWriter, r *http.Request) {
	var req types.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	userID := middleware.GetUserID(r.Context())
	err := h.users.Update(r.Context(), models.UserUpdate{
		ID:        userID,
		Name:      req.Name,
		Surname1:  req.Surname1,
		Surname2:  req.Surname2,
		Telephone: req.Telephone,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "data changed successfully"},
	})
}
