package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/airsense/platform/internal/api/types"
	appErr "github.com/airsense/platform/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates a service error into the API envelope, taking the
// HTTP status from the error's code.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, appErr.HTTPStatus(err), types.APIResponse{Success: false, Error: types.FromAppError(err)})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{Success: false, Error: &types.APIError{Code: "invalid", Message: msg}})
}
