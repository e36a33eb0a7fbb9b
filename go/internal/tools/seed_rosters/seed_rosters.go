package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/teamroll/go/internal/dbconfig"
)

// Player mirrors the JSON snapshot layout
type Player struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Position string    `json:"position"`
	TeamID   uuid.UUID `json:"team_id"`
	Season   int       `json:"season"`
}

// Coach mirrors the JSON snapshot layout
type Coach struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	TeamID   uuid.UUID `json:"team_id"`
}

func main() {
	ctx := context.Background()

	// 1) Load players.json
	pData, err := os.ReadFile("go/internal/assets/players.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read players.json: %v\n", err)
		os.Exit(1)
	}
	var players []Player
	if err := json.Unmarshal(pData, &players); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal players: %v\n", err)
		os.Exit(1)
	}

	// 2) Load coaches.json
	cData, err := os.ReadFile("go/internal/assets/coaches.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "read coaches.json: %v\n", err)
		os.Exit(1)
	}
	var coaches []Coach
	if err := json.Unmarshal(cData, &coaches); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal coaches: %v\n", err)
		os.Exit(1)
	}

	// 3) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 4) Seed players
	total, inserted, skipped, errs := len(players), 0, 0, 0
	for _, p := range players {
		tag, err := pool.Exec(ctx, `
            INSERT INTO players (id, full_name, position, team_id, season, created_at)
            VALUES ($1, $2, $3, $4, $5, NOW())
            ON CONFLICT (id) DO NOTHING
        `,
			p.ID, p.FullName, p.Position, p.TeamID, p.Season,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting player %s: %v\n", p.ID, err)
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Players seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)

	// 5) Seed coaches
	total, inserted, skipped, errs = len(coaches), 0, 0, 0
	for _, c := range coaches {
		tag, err := pool.Exec(ctx, `
            INSERT INTO coaches (id, full_name, team_id, created_at)
            VALUES ($1, $2, $3, NOW())
            ON CONFLICT (team_id) DO NOTHING
        `,
			c.ID, c.FullName, c.TeamID,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error inserting coach %s: %v\n", c.ID, err)
			errs++
			continue
		}
		if tag.RowsAffected() == 1 {
			inserted++
		} else {
			skipped++
		}
	}
	fmt.Printf(
		"Coaches seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		total, inserted, skipped, errs,
	)
}
