package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/teamroll/go/internal/models"
	"github.com/mcdev12/teamroll/go/internal/sqlutil"
)

// Queries is the transaction-scoped storage surface the engine operates on.
// Every method runs against the same transaction, so reads and writes within
// one operation observe a single consistent snapshot behind the run_states
// row lock.
type Queries interface {
	CreateRun(ctx context.Context, run models.Run) error
	CreateRunState(ctx context.Context, state models.RunState) error
	GetRunWithState(ctx context.Context, runID uuid.UUID) (*models.Run, *models.RunState, error)
	GetRunWithStateForUpdate(ctx context.Context, runID uuid.UUID) (*models.Run, *models.RunState, error)
	UpdateRunState(ctx context.Context, state models.RunState) error
	CompleteRun(ctx context.Context, runID uuid.UUID, completedAt time.Time) error
	ListEligibleTeams(ctx context.Context, runID uuid.UUID) ([]models.Team, error)
	HasPickForSlot(ctx context.Context, runID uuid.UUID, slot models.SlotName) (bool, error)
	HasPickForTeam(ctx context.Context, runID uuid.UUID, teamID uuid.UUID) (bool, error)
	InsertPick(ctx context.Context, pick models.Pick) error
	CountPicks(ctx context.Context, runID uuid.UUID) (int, error)
	ListPicks(ctx context.Context, runID uuid.UUID) ([]models.Pick, error)
	InsertOutboxEvent(ctx context.Context, runID uuid.UUID, eventType string, payload []byte) error
}

// TxRunner executes fn inside one serialized transaction. The SQL
// implementation opens a *sql.Tx; tests substitute an in-memory fake.
type TxRunner interface {
	InTx(ctx context.Context, fn func(q Queries) error) error
}

// SQLTxRunner runs engine transactions against Postgres.
type SQLTxRunner struct {
	db *sql.DB
}

func NewSQLTxRunner(db *sql.DB) *SQLTxRunner {
	return &SQLTxRunner{db: db}
}

func (r *SQLTxRunner) InTx(ctx context.Context, fn func(q Queries) error) error {
	return sqlutil.Run(ctx, r.db, NewTxQueries, func(q *TxQueries) error {
		return fn(q)
	})
}

// TxQueries implements Queries with hand-written SQL bound to one transaction.
type TxQueries struct {
	tx *sql.Tx
}

func NewTxQueries(tx *sql.Tx) *TxQueries {
	return &TxQueries{tx: tx}
}

var _ Queries = (*TxQueries)(nil)

const createRunQuery = `
INSERT INTO runs (id, user_id, season, status, created_at)
VALUES ($1, $2, $3, $4, $5)
`

func (q *TxQueries) CreateRun(ctx context.Context, run models.Run) error {
	_, err := q.tx.ExecContext(ctx, createRunQuery,
		run.ID, run.UserID, run.Season, run.Status, run.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "runs_user_id_season_key") {
			return ErrDuplicateRun
		}
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

const createRunStateQuery = `
INSERT INTO run_states (run_id, phase, current_team_id, pending_slot, updated_at)
VALUES ($1, $2, $3, $4, $5)
`

func (q *TxQueries) CreateRunState(ctx context.Context, state models.RunState) error {
	_, err := q.tx.ExecContext(ctx, createRunStateQuery,
		state.RunID, state.Phase,
		sqlutil.ToNullUUID(state.CurrentTeamID), slotToNullString(state.PendingSlot),
		state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create run state: %w", err)
	}
	return nil
}

const getRunWithStateQuery = `
SELECT r.id, r.user_id, r.season, r.status, r.created_at, r.completed_at,
       s.phase, s.current_team_id, s.pending_slot, s.updated_at
FROM runs r
JOIN run_states s ON s.run_id = r.id
WHERE r.id = $1
`

func (q *TxQueries) GetRunWithState(ctx context.Context, runID uuid.UUID) (*models.Run, *models.RunState, error) {
	return q.scanRunWithState(q.tx.QueryRowContext(ctx, getRunWithStateQuery, runID))
}

// GetRunWithStateForUpdate locks the run_states row for the duration of the
// transaction. This is the serialization point: a second operation against the
// same run blocks here until the first commits or aborts.
func (q *TxQueries) GetRunWithStateForUpdate(ctx context.Context, runID uuid.UUID) (*models.Run, *models.RunState, error) {
	return q.scanRunWithState(q.tx.QueryRowContext(ctx, getRunWithStateQuery+"FOR UPDATE OF s\n", runID))
}

func (q *TxQueries) scanRunWithState(row *sql.Row) (*models.Run, *models.RunState, error) {
	var (
		run         models.Run
		state       models.RunState
		completedAt sql.NullTime
		teamID      uuid.NullUUID
		pendingSlot sql.NullString
	)
	err := row.Scan(
		&run.ID, &run.UserID, &run.Season, &run.Status, &run.CreatedAt, &completedAt,
		&state.Phase, &teamID, &pendingSlot, &state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrRunNotFound
		}
		return nil, nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.CompletedAt = sqlutil.FromSqlTime(completedAt)
	state.RunID = run.ID
	state.CurrentTeamID = sqlutil.FromNullUUID(teamID)
	if s := sqlutil.FromSqlStringPtr(pendingSlot); s != nil {
		slot := models.SlotName(*s)
		state.PendingSlot = &slot
	}
	return &run, &state, nil
}

const updateRunStateQuery = `
UPDATE run_states
SET phase = $2, current_team_id = $3, pending_slot = $4, updated_at = $5
WHERE run_id = $1
`

func (q *TxQueries) UpdateRunState(ctx context.Context, state models.RunState) error {
	_, err := q.tx.ExecContext(ctx, updateRunStateQuery,
		state.RunID, state.Phase,
		sqlutil.ToNullUUID(state.CurrentTeamID), slotToNullString(state.PendingSlot),
		state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update run state: %w", err)
	}
	return nil
}

const completeRunQuery = `
UPDATE runs
SET status = $2, completed_at = $3
WHERE id = $1
`

func (q *TxQueries) CompleteRun(ctx context.Context, runID uuid.UUID, completedAt time.Time) error {
	_, err := q.tx.ExecContext(ctx, completeRunQuery, runID, models.RunStatusComplete, completedAt)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

const listEligibleTeamsQuery = `
SELECT t.id, t.abbreviation, t.name, t.logo_url, t.created_at
FROM teams t
WHERE t.id NOT IN (SELECT p.team_id FROM picks p WHERE p.run_id = $1)
ORDER BY t.abbreviation
`

// ListEligibleTeams returns every team not yet consumed by a pick in this run.
// Ordering is irrelevant to selection; the app samples uniformly.
func (q *TxQueries) ListEligibleTeams(ctx context.Context, runID uuid.UUID) ([]models.Team, error) {
	rows, err := q.tx.QueryContext(ctx, listEligibleTeamsQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Abbreviation, &t.Name, &t.LogoURL, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan eligible team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list eligible teams: %w", err)
	}
	return teams, nil
}

func (q *TxQueries) HasPickForSlot(ctx context.Context, runID uuid.UUID, slot models.SlotName) (bool, error) {
	var exists bool
	err := q.tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM picks WHERE run_id = $1 AND slot = $2)`,
		runID, slot).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slot pick: %w", err)
	}
	return exists, nil
}

func (q *TxQueries) HasPickForTeam(ctx context.Context, runID uuid.UUID, teamID uuid.UUID) (bool, error) {
	var exists bool
	err := q.tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM picks WHERE run_id = $1 AND team_id = $2)`,
		runID, teamID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team pick: %w", err)
	}
	return exists, nil
}

const insertPickQuery = `
INSERT INTO picks (id, run_id, slot, team_id, asset_type, player_id, coach_id, picked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (q *TxQueries) InsertPick(ctx context.Context, pick models.Pick) error {
	_, err := q.tx.ExecContext(ctx, insertPickQuery,
		pick.ID, pick.RunID, pick.Slot, pick.TeamID,
		pick.Asset.Type,
		sqlutil.ToNullUUID(pick.Asset.PlayerID),
		sqlutil.ToNullUUID(pick.Asset.CoachID),
		pick.PickedAt)
	if err != nil {
		// The constraints back up the in-transaction checks: a duplicate
		// insert hard-fails rather than overwriting.
		if isUniqueViolation(err, "picks_run_id_slot_key") {
			return ErrSlotAlreadyFilled
		}
		if isUniqueViolation(err, "picks_run_id_team_id_key") {
			return ErrTeamAlreadyUsed
		}
		return fmt.Errorf("failed to insert pick: %w", err)
	}
	return nil
}

func (q *TxQueries) CountPicks(ctx context.Context, runID uuid.UUID) (int, error) {
	var count int
	err := q.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM picks WHERE run_id = $1`, runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count picks: %w", err)
	}
	return count, nil
}

const listPicksQuery = `
SELECT id, run_id, slot, team_id, asset_type, player_id, coach_id, picked_at
FROM picks
WHERE run_id = $1
ORDER BY picked_at
`

func (q *TxQueries) ListPicks(ctx context.Context, runID uuid.UUID) ([]models.Pick, error) {
	rows, err := q.tx.QueryContext(ctx, listPicksQuery, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		var (
			p        models.Pick
			playerID uuid.NullUUID
			coachID  uuid.NullUUID
		)
		if err := rows.Scan(&p.ID, &p.RunID, &p.Slot, &p.TeamID,
			&p.Asset.Type, &playerID, &coachID, &p.PickedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pick: %w", err)
		}
		p.Asset.PlayerID = sqlutil.FromNullUUID(playerID)
		p.Asset.CoachID = sqlutil.FromNullUUID(coachID)
		picks = append(picks, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list picks: %w", err)
	}
	return picks, nil
}

const insertOutboxQuery = `
INSERT INTO run_outbox (id, run_id, event_type, payload, created_at)
VALUES ($1, $2, $3, $4, NOW())
`

// InsertOutboxEvent dual-writes a domain event in the operation's transaction;
// the relay publishes it after commit.
func (q *TxQueries) InsertOutboxEvent(ctx context.Context, runID uuid.UUID, eventType string, payload []byte) error {
	_, err := q.tx.ExecContext(ctx, insertOutboxQuery, uuid.New(), runID, eventType, payload)
	if err != nil {
		return fmt.Errorf("failed to insert %s outbox event: %w", eventType, err)
	}
	return nil
}

func slotToNullString(slot *models.SlotName) sql.NullString {
	if slot == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*slot), Valid: true}
}

func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) &&
		pqErr.Code == "23505" &&
		pqErr.Constraint == constraint
}
