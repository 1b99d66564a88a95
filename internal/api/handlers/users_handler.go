package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/airsense/platform/internal/api/types"
	"github.com/airsense/platform/internal/api/validators"
	"github.com/airsense/platform/internal/models"
	"github.com/airsense/platform/internal/services"
)

type UsersHandler struct {
	users services.UserService
}

func NewUsersHandler(users services.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeErrorStr(w, http.StatusBadRequest, "email query parameter is required")
		return
	}
	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: user})
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.users.Create(r.Context(), services.CreateUserInput{
		Name:       req.Name,
		Surname1:   req.Surname1,
		Surname2:   req.Surname2,
		Email:      req.Email,
		Telephone:  req.Telephone,
		Password:   req.Password,
		UserTypeID: req.UserTypeID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: user})
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	var req types.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}

	err = h.users.Update(r.Context(), models.UserUpdate{
		ID:        user.ID,
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
		Data:    map[string]string{"message": "user updated"},
	})
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := h.users.DeleteByEmail(r.Context(), email); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"message": "user deleted"},
	})
}
