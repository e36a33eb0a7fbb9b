package rosters

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
)

// RosterRepository defines what the rosters app layer needs from the repository
type RosterRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetCoach(ctx context.Context, id uuid.UUID) (*models.Coach, error)
	ListPlayersByTeamPosition(ctx context.Context, teamID uuid.UUID, season int, position models.Position) ([]models.Player, error)
	GetCoachByTeam(ctx context.Context, teamID uuid.UUID) (*models.Coach, error)
}

// App exposes read-only player/coach reference lookups used by the engine for
// pick validation and by the eligible-asset read path.
type App struct {
	repo RosterRepository
}

// NewApp creates a new rosters App
func NewApp(repo RosterRepository) *App {
	return &App{
		repo: repo,
	}
}

// GetPlayer retrieves a player by ID
func (a *App) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return a.repo.GetPlayer(ctx, id)
}

// GetCoach retrieves a coach by ID
func (a *App) GetCoach(ctx context.Context, id uuid.UUID) (*models.Coach, error) {
	return a.repo.GetCoach(ctx, id)
}

// ListPlayersByTeamPosition lists a team's players at one position for a season
func (a *App) ListPlayersByTeamPosition(ctx context.Context, teamID uuid.UUID, season int, position models.Position) ([]models.Player, error) {
	players, err := a.repo.ListPlayersByTeamPosition(ctx, teamID, season, position)
	if err != nil {
		return nil, fmt.Errorf("failed to list players by team and position: %w", err)
	}
	return players, nil
}

// GetCoachByTeam retrieves the head coach of a team
func (a *App) GetCoachByTeam(ctx context.Context, teamID uuid.UUID) (*models.Coach, error) {
	return a.repo.GetCoachByTeam(ctx, teamID)
}
