package teams

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Service exposes the team catalog over JSON HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/teams", s.handleListTeams)
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.app.ListTeams(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list teams")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(teams); err != nil {
		log.Error().Err(err).Msg("failed to encode teams")
	}
}
