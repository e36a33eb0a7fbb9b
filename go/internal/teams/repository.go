package teams

import (
	"context"
	"database/sql"
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

const listTeamsQuery = `
SELECT id, abbreviation, name, logo_url, created_at
FROM teams
ORDER BY abbreviation
`

func (r *Repository) ListTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, listTeamsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Abbreviation, &t.Name, &t.LogoURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

const getTeamQuery = `
SELECT id, abbreviation, name, logo_url, created_at
FROM teams
WHERE id = $1
`

func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	var t models.Team
	err := r.db.QueryRowContext(ctx, getTeamQuery, id).
		Scan(&t.ID, &t.Abbreviation, &t.Name, &t.LogoURL, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}
