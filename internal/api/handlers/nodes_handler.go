package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/airsense/platform/internal/api/types"
	"github.com/airsense/platform/internal/api/validators"
	"github.com/airsense/platform/internal/services"
)

type NodesHandler struct {
	nodes services.NodeService
}

func NewNodesHandler(nodes services.NodeService) *NodesHandler {
	return &NodesHandler{nodes: nodes}
}

func (h *NodesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateNodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.nodes.Create(r.Context(), req.UUID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{
		Success: true,
		Data:    map[string]any{"message": "node created successfully", "id": id},
	})
}

// Get resolves a node id to its uuid. The service returns nil on absence;
// the HTTP surface turns that into 404.
func (h *NodesHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "id must be a number")
		return
	}

	node, err := h.nodes.GetByID(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	if node == nil {
		writeErrorStr(w, http.StatusNotFound, "node not found")
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    map[string]string{"uuid": node.UUID},
	})
}

func (h *NodesHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.nodes.ListWithLastDate(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rows})
}
