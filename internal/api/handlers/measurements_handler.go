package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/airsense/platform/internal/api/types"
	"github.com/airsense/platform/internal/api/validators"
	"github.com/airsense/platform/internal/services"
)

type MeasurementsHandler struct {
	measurements services.MeasurementService
}

func NewMeasurementsHandler(measurements services.MeasurementService) *MeasurementsHandler {
	return &MeasurementsHandler{measurements: measurements}
}

func (h *MeasurementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req types.CreateMeasurementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := validators.New().Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.measurements.Ingest(r.Context(), services.IngestInput{
		Value: *req.Value,
		LocX:  *req.LocX,
		LocY:  *req.LocY,
		GasID: req.GasID,
		UUID:  req.UUID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: m})
}

func (h *MeasurementsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.measurements.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rows})
}

func (h *MeasurementsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	m, err := h.measurements.Latest(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if m == nil {
		writeErrorStr(w, http.StatusNotFound, "no readings found")
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: m})
}

func (h *MeasurementsHandler) Heatmap(w http.ResponseWriter, r *http.Request) {
	rows, err := h.measurements.Heatmap(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rows})
}

// Daily serves a user's readings for one calendar day. date is YYYY-MM-DD.
func (h *MeasurementsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseUint(r.URL.Query().Get("userId"), 10, 32)
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "userId must be a number")
		return
	}
	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rows, err := h.measurements.DailyByUser(r.Context(), uint(userID), day)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rows})
}

func (h *MeasurementsHandler) Range(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		writeErrorStr(w, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return
	}

	rows, err := h.measurements.Range(r.Context(), from, to.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: rows})
}
