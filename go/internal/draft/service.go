package draft

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service exposes the draft engine over JSON HTTP. The caller's identity
// arrives in the X-User-ID header; authentication itself lives upstream.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the draft endpoints on mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/runs", s.handleStartRun)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)
	mux.HandleFunc("POST /api/runs/{id}/roll", s.handleRollTeam)
	mux.HandleFunc("POST /api/runs/{id}/slot", s.handleChooseSlot)
	mux.HandleFunc("DELETE /api/runs/{id}/slot", s.handleClearSlot)
	mux.HandleFunc("POST /api/runs/{id}/pick", s.handlePickAsset)
	mux.HandleFunc("GET /api/runs/{id}/eligible", s.handleListEligible)
}

type startRunRequest struct {
	Season int `json:"season"`
}

func (s *Service) handleStartRun(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return
	}
	var req startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	run, err := s.app.StartRun(r.Context(), userID, req.Season)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

func (s *Service) handleGetRun(w http.ResponseWriter, r *http.Request) {
	userID, runID, ok := s.callerAndRun(w, r)
	if !ok {
		return
	}
	progress, err := s.app.GetRunProgress(r.Context(), userID, runID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Service) handleRollTeam(w http.ResponseWriter, r *http.Request) {
	userID, runID, ok := s.callerAndRun(w, r)
	if !ok {
		return
	}
	rolled, err := s.app.RollTeam(r.Context(), userID, runID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rolled)
}

type chooseSlotRequest struct {
	Slot string `json:"slot"`
}

func (s *Service) handleChooseSlot(w http.ResponseWriter, r *http.Request) {
	userID, runID, ok := s.callerAndRun(w, r)
	if !ok {
		return
	}
	var req chooseSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.app.ChooseSlot(r.Context(), userID, runID, req.Slot); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleClearSlot(w http.ResponseWriter, r *http.Request) {
	userID, runID, ok := s.callerAndRun(w, r)
	if !ok {
		return
	}
	if err := s.app.ClearPendingSlot(r.Context(), userID, runID); err != nil {
		s.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handlePickAsset(w http.ResponseWriter, r *http.Request) {
	userID, runID, ok := s.callerAndRun(w, r)
	if !ok {
		return
	}
	var req PickAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.app.PickAsset(r.Context(), userID, runID, req.Asset()); err != nil {
		s.writeEngineError(w, err)
		return
	}
	progress, err := s.app.GetRunProgress(r.Context(), userID, runID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Service) handleListEligible(w http.ResponseWriter, r *http.Request) {
	userID, runID, ok := s.callerAndRun(w, r)
	if !ok {
		return
	}
	eligible, err := s.app.ListEligibleAssets(r.Context(), userID, runID)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eligible)
}

func (s *Service) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		writeError(w, http.StatusUnauthorized, ErrNotAuthenticated.Error())
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusUnauthorized, ErrNotAuthenticated.Error())
		return uuid.Nil, false
	}
	return userID, true
}

func (s *Service) callerAndRun(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := s.callerID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, ErrRunNotFound.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return userID, runID, true
}

// writeEngineError maps engine error kinds to HTTP status codes. State
// conflicts are 409, validation rejections 422, vocabulary errors 400.
func (s *Service) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRunNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidSlot):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrDuplicateRun),
		errors.Is(err, ErrInvalidPhase),
		errors.Is(err, ErrSlotAlreadyFilled),
		errors.Is(err, ErrTeamAlreadyUsed),
		errors.Is(err, ErrNoTeamsRemaining):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrAssetTeamMismatch),
		errors.Is(err, ErrAssetPositionMismatch):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Msg("draft operation failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
