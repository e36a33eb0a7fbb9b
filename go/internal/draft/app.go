package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamroll/go/internal/draft/events"
	"github.com/mcdev12/teamroll/go/internal/models"
	"github.com/mcdev12/teamroll/go/internal/rosters"
	"github.com/rs/zerolog/log"
)

// ReferenceData defines the read-only player/coach lookups the engine needs
// for pick validation and the eligible-asset read path. The catalogs are
// immutable for the engine, so these reads happen outside the run transaction.
type ReferenceData interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	GetCoach(ctx context.Context, id uuid.UUID) (*models.Coach, error)
	ListPlayersByTeamPosition(ctx context.Context, teamID uuid.UUID, season int, position models.Position) ([]models.Player, error)
	GetCoachByTeam(ctx context.Context, teamID uuid.UUID) (*models.Coach, error)
}

// App implements the draft engine: four operations, each one serialized
// transaction that locks the run's state row, applies the phase transition,
// and commits or aborts as a whole.
type App struct {
	txr   TxRunner
	refs  ReferenceData
	clock clockwork.Clock

	// intn samples [0,n); swapped for a deterministic function in tests.
	intn func(n int) int
}

// NewApp creates a new draft engine App.
func NewApp(txr TxRunner, refs ReferenceData, clock clockwork.Clock) *App {
	return &App{
		txr:   txr,
		refs:  refs,
		clock: clock,
		intn:  rand.Intn,
	}
}

// StartRun creates a run plus its state cursor in phase NEED_ROLL. The
// (user, season) uniqueness constraint is the enforcement mechanism for
// duplicates, not a pre-check, so concurrent starts race safely.
func (a *App) StartRun(ctx context.Context, userID uuid.UUID, season int) (*models.Run, error) {
	now := a.clock.Now()
	run := models.Run{
		ID:        uuid.New(),
		UserID:    userID,
		Season:    season,
		Status:    models.RunStatusActive,
		CreatedAt: now,
	}

	err := a.txr.InTx(ctx, func(q Queries) error {
		if err := q.CreateRun(ctx, run); err != nil {
			return err
		}
		if err := q.CreateRunState(ctx, models.RunState{
			RunID:     run.ID,
			Phase:     models.PhaseNeedRoll,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
		return a.emitEvent(ctx, q, run.ID, events.EventRunStarted, events.RunStartedPayload{
			RunID:     run.ID.String(),
			Season:    season,
			StartedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("run_id", run.ID.String()).
		Str("user_id", userID.String()).
		Int("season", season).
		Msg("run started")
	return &run, nil
}

// RollTeam selects one team uniformly at random from the teams not yet
// consumed by a pick in this run, and advances the cursor to NEED_SLOT.
func (a *App) RollTeam(ctx context.Context, userID, runID uuid.UUID) (*RolledTeam, error) {
	now := a.clock.Now()
	var rolled *RolledTeam

	err := a.txr.InTx(ctx, func(q Queries) error {
		_, state, err := a.lockOwnedRun(ctx, q, userID, runID)
		if err != nil {
			return err
		}
		if state.Phase != models.PhaseNeedRoll {
			return ErrInvalidPhase
		}

		eligible, err := q.ListEligibleTeams(ctx, runID)
		if err != nil {
			return err
		}
		if len(eligible) == 0 {
			return ErrNoTeamsRemaining
		}
		team := eligible[a.intn(len(eligible))]

		if err := q.UpdateRunState(ctx, models.RunState{
			RunID:         runID,
			Phase:         models.PhaseNeedSlot,
			CurrentTeamID: &team.ID,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}

		rolled = &RolledTeam{
			TeamID:       team.ID.String(),
			Abbreviation: team.Abbreviation,
			Name:         team.Name,
			LogoURL:      team.LogoURL,
		}
		return a.emitEvent(ctx, q, runID, events.EventTeamRolled, events.TeamRolledPayload{
			RunID:        runID.String(),
			TeamID:       team.ID.String(),
			Abbreviation: team.Abbreviation,
			RolledAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("run_id", runID.String()).
		Str("team", rolled.Abbreviation).
		Msg("team rolled")
	return rolled, nil
}

// ChooseSlot reserves an empty slot for the current cycle and advances the
// cursor to NEED_ASSET.
func (a *App) ChooseSlot(ctx context.Context, userID, runID uuid.UUID, slotName string) error {
	slot, err := models.ParseSlot(slotName)
	if err != nil {
		return ErrInvalidSlot
	}
	now := a.clock.Now()

	err = a.txr.InTx(ctx, func(q Queries) error {
		_, state, err := a.lockOwnedRun(ctx, q, userID, runID)
		if err != nil {
			return err
		}
		if state.Phase != models.PhaseNeedSlot || state.CurrentTeamID == nil {
			return ErrInvalidPhase
		}

		filled, err := q.HasPickForSlot(ctx, runID, slot)
		if err != nil {
			return err
		}
		if filled {
			return ErrSlotAlreadyFilled
		}

		if err := q.UpdateRunState(ctx, models.RunState{
			RunID:         runID,
			Phase:         models.PhaseNeedAsset,
			CurrentTeamID: state.CurrentTeamID,
			PendingSlot:   &slot,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}
		return a.emitEvent(ctx, q, runID, events.EventSlotChosen, events.SlotChosenPayload{
			RunID:    runID.String(),
			Slot:     string(slot),
			ChosenAt: now,
		})
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", runID.String()).
		Str("slot", string(slot)).
		Msg("slot chosen")
	return nil
}

// ClearPendingSlot backs out of a slot choice, returning to NEED_SLOT with the
// same rolled team. Legal in NEED_SLOT (no-op on the slot) and NEED_ASSET.
func (a *App) ClearPendingSlot(ctx context.Context, userID, runID uuid.UUID) error {
	now := a.clock.Now()

	err := a.txr.InTx(ctx, func(q Queries) error {
		_, state, err := a.lockOwnedRun(ctx, q, userID, runID)
		if err != nil {
			return err
		}
		if state.Phase != models.PhaseNeedSlot && state.Phase != models.PhaseNeedAsset {
			return ErrInvalidPhase
		}
		if state.CurrentTeamID == nil {
			return ErrInvalidPhase
		}

		if err := q.UpdateRunState(ctx, models.RunState{
			RunID:         runID,
			Phase:         models.PhaseNeedSlot,
			CurrentTeamID: state.CurrentTeamID,
			UpdatedAt:     now,
		}); err != nil {
			return err
		}
		return a.emitEvent(ctx, q, runID, events.EventSlotCleared, events.SlotClearedPayload{
			RunID:     runID.String(),
			ClearedAt: now,
		})
	})
	if err != nil {
		return err
	}

	log.Info().Str("run_id", runID.String()).Msg("pending slot cleared")
	return nil
}

// PickAsset validates the asset against the pending slot, commits the pick,
// and either resets the cursor to NEED_ROLL or — on the final pick — seals
// the run.
func (a *App) PickAsset(ctx context.Context, userID, runID uuid.UUID, asset models.Asset) error {
	now := a.clock.Now()
	var completed bool

	err := a.txr.InTx(ctx, func(q Queries) error {
		run, state, err := a.lockOwnedRun(ctx, q, userID, runID)
		if err != nil {
			return err
		}
		if state.Phase != models.PhaseNeedAsset || state.CurrentTeamID == nil || state.PendingSlot == nil {
			return ErrInvalidPhase
		}
		slot := *state.PendingSlot
		teamID := *state.CurrentTeamID

		// Re-check slot vacancy and team freshness inside this transaction;
		// the storage constraints are the final backstop.
		if filled, err := q.HasPickForSlot(ctx, runID, slot); err != nil {
			return err
		} else if filled {
			return ErrSlotAlreadyFilled
		}
		if used, err := q.HasPickForTeam(ctx, runID, teamID); err != nil {
			return err
		} else if used {
			return ErrTeamAlreadyUsed
		}

		player, coach, err := a.resolveAsset(ctx, asset)
		if err != nil {
			return err
		}
		if err := ValidateAsset(slot, asset, teamID, run.Season, player, coach); err != nil {
			return err
		}

		if err := q.InsertPick(ctx, models.Pick{
			ID:       uuid.New(),
			RunID:    runID,
			Slot:     slot,
			TeamID:   teamID,
			Asset:    asset,
			PickedAt: now,
		}); err != nil {
			return err
		}

		count, err := q.CountPicks(ctx, runID)
		if err != nil {
			return err
		}

		if err := a.emitEvent(ctx, q, runID, events.EventPickMade, events.PickMadePayload{
			RunID:     runID.String(),
			Slot:      string(slot),
			TeamID:    teamID.String(),
			AssetType: string(asset.Type),
			RefID:     assetRefID(asset),
			PickCount: count,
			PickedAt:  now,
		}); err != nil {
			return err
		}

		if count >= models.RosterSize {
			completed = true
			if err := q.CompleteRun(ctx, runID, now); err != nil {
				return err
			}
			if err := q.UpdateRunState(ctx, models.RunState{
				RunID:     runID,
				Phase:     models.PhaseComplete,
				UpdatedAt: now,
			}); err != nil {
				return err
			}
			return a.emitEvent(ctx, q, runID, events.EventRunCompleted, events.RunCompletedPayload{
				RunID:       runID.String(),
				CompletedAt: now,
				TotalPicks:  count,
			})
		}

		return q.UpdateRunState(ctx, models.RunState{
			RunID:     runID,
			Phase:     models.PhaseNeedRoll,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("run_id", runID.String()).
		Bool("completed", completed).
		Msg("pick made")
	return nil
}

// GetRunProgress is the presentation read path: the run, its cursor, its
// picks, and the slots still free.
func (a *App) GetRunProgress(ctx context.Context, userID, runID uuid.UUID) (*RunProgress, error) {
	var progress *RunProgress
	err := a.txr.InTx(ctx, func(q Queries) error {
		run, state, err := q.GetRunWithState(ctx, runID)
		if err != nil {
			return err
		}
		if run.UserID != userID {
			return ErrRunNotFound
		}
		picks, err := q.ListPicks(ctx, runID)
		if err != nil {
			return err
		}

		filled := make(map[models.SlotName]bool, len(picks))
		for _, p := range picks {
			filled[p.Slot] = true
		}
		free := make([]models.SlotName, 0, models.RosterSize-len(picks))
		for _, s := range models.AllSlots {
			if !filled[s] {
				free = append(free, s)
			}
		}

		progress = &RunProgress{Run: run, State: state, Picks: picks, FreeSlots: free}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// ListEligibleAssets lists what may fill the pending slot: the current team's
// players at the required position, its head coach, or its defense.
func (a *App) ListEligibleAssets(ctx context.Context, userID, runID uuid.UUID) (*EligibleAssets, error) {
	var (
		run   *models.Run
		state *models.RunState
	)
	err := a.txr.InTx(ctx, func(q Queries) error {
		var err error
		run, state, err = q.GetRunWithState(ctx, runID)
		if err != nil {
			return err
		}
		if run.UserID != userID {
			return ErrRunNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if state.Phase != models.PhaseNeedAsset || state.CurrentTeamID == nil || state.PendingSlot == nil {
		return nil, ErrInvalidPhase
	}

	slot := *state.PendingSlot
	teamID := *state.CurrentTeamID
	out := &EligibleAssets{Slot: slot}

	switch slot {
	case models.SlotDST:
		out.Defense = true
	case models.SlotCoach:
		coach, err := a.refs.GetCoachByTeam(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to list eligible coach: %w", err)
		}
		out.Coach = coach
	default:
		position, _ := slot.RequiredPosition()
		players, err := a.refs.ListPlayersByTeamPosition(ctx, teamID, run.Season, position)
		if err != nil {
			return nil, fmt.Errorf("failed to list eligible players: %w", err)
		}
		out.Players = players
	}
	return out, nil
}

// lockOwnedRun locks the run's state row and verifies ownership. Ownership
// failures report ErrRunNotFound rather than leaking run existence.
func (a *App) lockOwnedRun(ctx context.Context, q Queries, userID, runID uuid.UUID) (*models.Run, *models.RunState, error) {
	run, state, err := q.GetRunWithStateForUpdate(ctx, runID)
	if err != nil {
		return nil, nil, err
	}
	if run.UserID != userID {
		return nil, nil, ErrRunNotFound
	}
	return run, state, nil
}

// resolveAsset fetches whichever reference the asset carries. A reference
// that does not exist validates as nil, which the validator reports as a team
// mismatch.
func (a *App) resolveAsset(ctx context.Context, asset models.Asset) (*models.Player, *models.Coach, error) {
	var (
		player *models.Player
		coach  *models.Coach
	)
	if asset.PlayerID != nil {
		p, err := a.refs.GetPlayer(ctx, *asset.PlayerID)
		if err != nil && !errors.Is(err, rosters.ErrPlayerNotFound) {
			return nil, nil, fmt.Errorf("failed to resolve player: %w", err)
		}
		player = p
	}
	if asset.CoachID != nil {
		c, err := a.refs.GetCoach(ctx, *asset.CoachID)
		if err != nil && !errors.Is(err, rosters.ErrCoachNotFound) {
			return nil, nil, fmt.Errorf("failed to resolve coach: %w", err)
		}
		coach = c
	}
	return player, coach, nil
}

func (a *App) emitEvent(ctx context.Context, q Queries, runID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return q.InsertOutboxEvent(ctx, runID, eventType, data)
}

func assetRefID(asset models.Asset) *string {
	switch {
	case asset.PlayerID != nil:
		s := asset.PlayerID.String()
		return &s
	case asset.CoachID != nil:
		s := asset.CoachID.String()
		return &s
	default:
		return nil
	}
}
