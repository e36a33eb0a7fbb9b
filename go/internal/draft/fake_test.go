package draft

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/teamroll/go/internal/models"
	"github.com/mcdev12/teamroll/go/internal/rosters"
)

// fakeStore is an in-memory stand-in for the Postgres schema. The fake
// transaction runner mutates a clone and swaps it in on commit, so aborted
// operations leave the store untouched just like a rolled-back transaction.
type fakeStore struct {
	runs   map[uuid.UUID]models.Run
	states map[uuid.UUID]models.RunState
	picks  []models.Pick
	teams  []models.Team
	outbox []fakeOutboxEvent
}

type fakeOutboxEvent struct {
	RunID     uuid.UUID
	EventType string
	Payload   json.RawMessage
}

func newFakeStore(teams []models.Team) *fakeStore {
	return &fakeStore{
		runs:   make(map[uuid.UUID]models.Run),
		states: make(map[uuid.UUID]models.RunState),
		teams:  teams,
	}
}

func (s *fakeStore) clone() *fakeStore {
	cp := &fakeStore{
		runs:   make(map[uuid.UUID]models.Run, len(s.runs)),
		states: make(map[uuid.UUID]models.RunState, len(s.states)),
		picks:  append([]models.Pick(nil), s.picks...),
		teams:  s.teams,
		outbox: append([]fakeOutboxEvent(nil), s.outbox...),
	}
	for id, run := range s.runs {
		cp.runs[id] = copyRun(run)
	}
	for id, state := range s.states {
		cp.states[id] = copyState(state)
	}
	return cp
}

func copyRun(run models.Run) models.Run {
	if run.CompletedAt != nil {
		t := *run.CompletedAt
		run.CompletedAt = &t
	}
	return run
}

func copyState(state models.RunState) models.RunState {
	if state.CurrentTeamID != nil {
		id := *state.CurrentTeamID
		state.CurrentTeamID = &id
	}
	if state.PendingSlot != nil {
		slot := *state.PendingSlot
		state.PendingSlot = &slot
	}
	return state
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) InTx(ctx context.Context, fn func(q Queries) error) error {
	cp := r.store.clone()
	if err := fn(&fakeQueries{store: cp}); err != nil {
		return err
	}
	*r.store = *cp
	return nil
}

type fakeQueries struct {
	store *fakeStore
}

var _ Queries = (*fakeQueries)(nil)

func (q *fakeQueries) CreateRun(ctx context.Context, run models.Run) error {
	for _, existing := range q.store.runs {
		if existing.UserID == run.UserID && existing.Season == run.Season {
			return ErrDuplicateRun
		}
	}
	q.store.runs[run.ID] = copyRun(run)
	return nil
}

func (q *fakeQueries) CreateRunState(ctx context.Context, state models.RunState) error {
	q.store.states[state.RunID] = copyState(state)
	return nil
}

func (q *fakeQueries) GetRunWithState(ctx context.Context, runID uuid.UUID) (*models.Run, *models.RunState, error) {
	run, ok := q.store.runs[runID]
	if !ok {
		return nil, nil, ErrRunNotFound
	}
	state := q.store.states[runID]
	runCopy := copyRun(run)
	stateCopy := copyState(state)
	return &runCopy, &stateCopy, nil
}

func (q *fakeQueries) GetRunWithStateForUpdate(ctx context.Context, runID uuid.UUID) (*models.Run, *models.RunState, error) {
	return q.GetRunWithState(ctx, runID)
}

func (q *fakeQueries) UpdateRunState(ctx context.Context, state models.RunState) error {
	q.store.states[state.RunID] = copyState(state)
	return nil
}

func (q *fakeQueries) CompleteRun(ctx context.Context, runID uuid.UUID, completedAt time.Time) error {
	run := q.store.runs[runID]
	run.Status = models.RunStatusComplete
	run.CompletedAt = &completedAt
	q.store.runs[runID] = run
	return nil
}

func (q *fakeQueries) ListEligibleTeams(ctx context.Context, runID uuid.UUID) ([]models.Team, error) {
	used := make(map[uuid.UUID]bool)
	for _, p := range q.store.picks {
		if p.RunID == runID {
			used[p.TeamID] = true
		}
	}
	var eligible []models.Team
	for _, t := range q.store.teams {
		if !used[t.ID] {
			eligible = append(eligible, t)
		}
	}
	return eligible, nil
}

func (q *fakeQueries) HasPickForSlot(ctx context.Context, runID uuid.UUID, slot models.SlotName) (bool, error) {
	for _, p := range q.store.picks {
		if p.RunID == runID && p.Slot == slot {
			return true, nil
		}
	}
	return false, nil
}

func (q *fakeQueries) HasPickForTeam(ctx context.Context, runID uuid.UUID, teamID uuid.UUID) (bool, error) {
	for _, p := range q.store.picks {
		if p.RunID == runID && p.TeamID == teamID {
			return true, nil
		}
	}
	return false, nil
}

func (q *fakeQueries) InsertPick(ctx context.Context, pick models.Pick) error {
	for _, p := range q.store.picks {
		if p.RunID == pick.RunID && p.Slot == pick.Slot {
			return ErrSlotAlreadyFilled
		}
		if p.RunID == pick.RunID && p.TeamID == pick.TeamID {
			return ErrTeamAlreadyUsed
		}
	}
	q.store.picks = append(q.store.picks, pick)
	return nil
}

func (q *fakeQueries) CountPicks(ctx context.Context, runID uuid.UUID) (int, error) {
	count := 0
	for _, p := range q.store.picks {
		if p.RunID == runID {
			count++
		}
	}
	return count, nil
}

func (q *fakeQueries) ListPicks(ctx context.Context, runID uuid.UUID) ([]models.Pick, error) {
	var picks []models.Pick
	for _, p := range q.store.picks {
		if p.RunID == runID {
			picks = append(picks, p)
		}
	}
	return picks, nil
}

func (q *fakeQueries) InsertOutboxEvent(ctx context.Context, runID uuid.UUID, eventType string, payload []byte) error {
	q.store.outbox = append(q.store.outbox, fakeOutboxEvent{
		RunID:     runID,
		EventType: eventType,
		Payload:   append(json.RawMessage(nil), payload...),
	})
	return nil
}

// fakeRefs is an in-memory player/coach catalog.
type fakeRefs struct {
	players map[uuid.UUID]models.Player
	coaches map[uuid.UUID]models.Coach
}

var _ ReferenceData = (*fakeRefs)(nil)

func (r *fakeRefs) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, rosters.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *fakeRefs) GetCoach(ctx context.Context, id uuid.UUID) (*models.Coach, error) {
	c, ok := r.coaches[id]
	if !ok {
		return nil, rosters.ErrCoachNotFound
	}
	return &c, nil
}

func (r *fakeRefs) ListPlayersByTeamPosition(ctx context.Context, teamID uuid.UUID, season int, position models.Position) ([]models.Player, error) {
	var out []models.Player
	for _, p := range r.players {
		if p.TeamID == teamID && p.Season == season && p.Position == position {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRefs) GetCoachByTeam(ctx context.Context, teamID uuid.UUID) (*models.Coach, error) {
	for _, c := range r.coaches {
		if c.TeamID == teamID {
			coach := c
			return &coach, nil
		}
	}
	return nil, rosters.ErrCoachNotFound
}
