package teams

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
)

// TeamRepository defines what the teams app layer needs from the repository
type TeamRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
}

// App exposes the read-only team catalog. The engine never writes teams.
type App struct {
	repo TeamRepository
}

// NewApp creates a new teams App
func NewApp(repo TeamRepository) *App {
	return &App{
		repo: repo,
	}
}

// ListTeams returns the full team catalog in board order
func (a *App) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := a.repo.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam retrieves a team by ID
func (a *App) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := a.repo.GetTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}
