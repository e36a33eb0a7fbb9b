package gateway

import (
	"net/http"

	"github.com/google/uuid"
)

// Service exposes the WebSocket endpoint for live run events.
type Service struct {
	cm *ConnectionManager
}

func NewService(cm *ConnectionManager) *Service {
	return &Service{cm: cm}
}

func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/runs/{id}", s.handleWatchRun)
}

func (s *Service) handleWatchRun(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	// Upgrade hijacks the connection; nothing to write on success.
	_ = s.cm.UpgradeConnection(w, r, userID, runID)
}
