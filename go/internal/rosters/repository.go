package rosters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db: db,
	}
}

const getPlayerQuery = `
SELECT id, full_name, position, team_id, season, created_at
FROM players
WHERE id = $1
`

func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	var p models.Player
	err := r.db.QueryRowContext(ctx, getPlayerQuery, id).
		Scan(&p.ID, &p.FullName, &p.Position, &p.TeamID, &p.Season, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

const getCoachQuery = `
SELECT id, full_name, team_id, created_at
FROM coaches
WHERE id = $1
`

func (r *Repository) GetCoach(ctx context.Context, id uuid.UUID) (*models.Coach, error) {
	var c models.Coach
	err := r.db.QueryRowContext(ctx, getCoachQuery, id).
		Scan(&c.ID, &c.FullName, &c.TeamID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}
	return &c, nil
}

const listPlayersByTeamPositionQuery = `
SELECT id, full_name, position, team_id, season, created_at
FROM players
WHERE team_id = $1 AND season = $2 AND position = $3
ORDER BY full_name
`

func (r *Repository) ListPlayersByTeamPosition(ctx context.Context, teamID uuid.UUID, season int, position models.Position) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx, listPlayersByTeamPositionQuery, teamID, season, position)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.FullName, &p.Position, &p.TeamID, &p.Season, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

const getCoachByTeamQuery = `
SELECT id, full_name, team_id, created_at
FROM coaches
WHERE team_id = $1
`

func (r *Repository) GetCoachByTeam(ctx context.Context, teamID uuid.UUID) (*models.Coach, error) {
	var c models.Coach
	err := r.db.QueryRowContext(ctx, getCoachByTeamQuery, teamID).
		Scan(&c.ID, &c.FullName, &c.TeamID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, fmt.Errorf("failed to get coach by team: %w", err)
	}
	return &c, nil
}
