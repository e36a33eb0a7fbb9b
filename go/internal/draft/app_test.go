package draft

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamroll/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeason = 2025

type teamRoster struct {
	QB, RB1, RB2, WR1, WR2, TE uuid.UUID
	Coach                      uuid.UUID
}

type fixture struct {
	app     *App
	store   *fakeStore
	refs    *fakeRefs
	teams   []models.Team
	rosters map[uuid.UUID]teamRoster
}

func newFixture(t *testing.T, numTeams int) *fixture {
	t.Helper()

	refs := &fakeRefs{
		players: make(map[uuid.UUID]models.Player),
		coaches: make(map[uuid.UUID]models.Coach),
	}
	teams := make([]models.Team, 0, numTeams)
	rosterByTeam := make(map[uuid.UUID]teamRoster)

	for i := 0; i < numTeams; i++ {
		team := models.Team{
			ID:           uuid.New(),
			Abbreviation: fmt.Sprintf("T%02d", i),
			Name:         fmt.Sprintf("Team %02d", i),
		}
		teams = append(teams, team)

		var roster teamRoster
		addPlayer := func(position models.Position) uuid.UUID {
			p := models.Player{
				ID:       uuid.New(),
				FullName: fmt.Sprintf("%s %s", team.Abbreviation, position),
				Position: position,
				TeamID:   team.ID,
				Season:   testSeason,
			}
			refs.players[p.ID] = p
			return p.ID
		}
		roster.QB = addPlayer(models.PositionQB)
		roster.RB1 = addPlayer(models.PositionRB)
		roster.RB2 = addPlayer(models.PositionRB)
		roster.WR1 = addPlayer(models.PositionWR)
		roster.WR2 = addPlayer(models.PositionWR)
		roster.TE = addPlayer(models.PositionTE)

		coach := models.Coach{
			ID:       uuid.New(),
			FullName: fmt.Sprintf("%s HC", team.Abbreviation),
			TeamID:   team.ID,
		}
		refs.coaches[coach.ID] = coach
		roster.Coach = coach.ID
		rosterByTeam[team.ID] = roster
	}

	store := newFakeStore(teams)
	app := NewApp(&fakeTxRunner{store: store}, refs, clockwork.NewFakeClock())
	app.intn = func(n int) int { return 0 }

	return &fixture{
		app:     app,
		store:   store,
		refs:    refs,
		teams:   teams,
		rosters: rosterByTeam,
	}
}

// assetForSlot picks the roster entry that legally fills slot for teamID.
func (f *fixture) assetForSlot(teamID uuid.UUID, slot models.SlotName) models.Asset {
	roster := f.rosters[teamID]
	switch slot {
	case models.SlotQB:
		return models.PlayerAsset(roster.QB)
	case models.SlotRB1:
		return models.PlayerAsset(roster.RB1)
	case models.SlotRB2:
		return models.PlayerAsset(roster.RB2)
	case models.SlotWR1:
		return models.PlayerAsset(roster.WR1)
	case models.SlotWR2:
		return models.PlayerAsset(roster.WR2)
	case models.SlotTE:
		return models.PlayerAsset(roster.TE)
	case models.SlotCoach:
		return models.CoachAsset(roster.Coach)
	default:
		return models.DefenseAsset()
	}
}

// runCycle rolls, chooses slot, and picks a legal asset for it.
func (f *fixture) runCycle(t *testing.T, userID, runID uuid.UUID, slot models.SlotName) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	rolled, err := f.app.RollTeam(ctx, userID, runID)
	require.NoError(t, err)
	teamID, err := uuid.Parse(rolled.TeamID)
	require.NoError(t, err)

	require.NoError(t, f.app.ChooseSlot(ctx, userID, runID, string(slot)))
	require.NoError(t, f.app.PickAsset(ctx, userID, runID, f.assetForSlot(teamID, slot)))
	return teamID
}

func TestStartRun(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()

	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusActive, run.Status)

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseNeedRoll, progress.State.Phase)
	assert.Empty(t, progress.Picks)
	assert.Len(t, progress.FreeSlots, models.RosterSize)
}

func TestStartRunDuplicate(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()

	_, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	_, err = f.app.StartRun(ctx, userID, testSeason)
	assert.ErrorIs(t, err, ErrDuplicateRun)

	// A different season is a different run.
	_, err = f.app.StartRun(ctx, userID, testSeason+1)
	assert.NoError(t, err)

	// So is a different user.
	_, err = f.app.StartRun(ctx, uuid.New(), testSeason)
	assert.NoError(t, err)
}

func TestRollTeam(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	rolled, err := f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, f.teams[0].ID.String(), rolled.TeamID)

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseNeedSlot, progress.State.Phase)
	require.NotNil(t, progress.State.CurrentTeamID)
	assert.Equal(t, f.teams[0].ID, *progress.State.CurrentTeamID)

	// Rolling again without picking is out of order.
	_, err = f.app.RollTeam(ctx, userID, run.ID)
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestRollTeamExcludesUsedTeams(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	usedTeam := f.runCycle(t, userID, run.ID, models.SlotQB)
	assert.Equal(t, f.teams[0].ID, usedTeam)

	// intn still selects index 0, but the used team is gone from the pool.
	rolled, err := f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, f.teams[1].ID.String(), rolled.TeamID)
}

func TestRollTeamNoTeamsRemaining(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	f.runCycle(t, userID, run.ID, models.SlotQB)

	_, err = f.app.RollTeam(ctx, userID, run.ID)
	assert.ErrorIs(t, err, ErrNoTeamsRemaining)
}

func TestChooseSlot(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	// Choosing before rolling is out of order.
	err = f.app.ChooseSlot(ctx, userID, run.ID, "QB")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)

	err = f.app.ChooseSlot(ctx, userID, run.ID, "FLEX")
	assert.ErrorIs(t, err, ErrInvalidSlot)

	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "WR1"))

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseNeedAsset, progress.State.Phase)
	require.NotNil(t, progress.State.PendingSlot)
	assert.Equal(t, models.SlotWR1, *progress.State.PendingSlot)
}

func TestChooseSlotAlreadyFilled(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	f.runCycle(t, userID, run.ID, models.SlotQB)

	_, err = f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)

	err = f.app.ChooseSlot(ctx, userID, run.ID, "QB")
	assert.ErrorIs(t, err, ErrSlotAlreadyFilled)

	// The failed choice leaves the cursor where it was.
	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseNeedSlot, progress.State.Phase)
	assert.Nil(t, progress.State.PendingSlot)
}

func TestClearPendingSlot(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	// Clearing before a team is rolled is out of order.
	err = f.app.ClearPendingSlot(ctx, userID, run.ID)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	rolled, err := f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "TE"))

	require.NoError(t, f.app.ClearPendingSlot(ctx, userID, run.ID))

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseNeedSlot, progress.State.Phase)
	assert.Nil(t, progress.State.PendingSlot)
	require.NotNil(t, progress.State.CurrentTeamID)
	assert.Equal(t, rolled.TeamID, progress.State.CurrentTeamID.String())

	// A different slot can be chosen for the same rolled team.
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "WR2"))
}

func TestPickAssetCompletesRun(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	for i, slot := range models.AllSlots {
		teamID := f.runCycle(t, userID, run.ID, slot)
		assert.Equal(t, f.teams[i].ID, teamID)
	}

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusComplete, progress.Run.Status)
	assert.NotNil(t, progress.Run.CompletedAt)
	assert.Equal(t, models.PhaseComplete, progress.State.Phase)
	assert.Len(t, progress.Picks, models.RosterSize)
	assert.Empty(t, progress.FreeSlots)

	// The completed run accepts no further operations.
	_, err = f.app.RollTeam(ctx, userID, run.ID)
	assert.ErrorIs(t, err, ErrInvalidPhase)
	err = f.app.ChooseSlot(ctx, userID, run.ID, "QB")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	last := f.store.outbox[len(f.store.outbox)-1]
	assert.Equal(t, "RunCompleted", last.EventType)
}

func TestPickAssetPositionMismatchLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	rolled, err := f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	teamID, err := uuid.Parse(rolled.TeamID)
	require.NoError(t, err)
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "RB1"))

	// A wide receiver cannot fill a running back slot.
	err = f.app.PickAsset(ctx, userID, run.ID, models.PlayerAsset(f.rosters[teamID].WR1))
	assert.ErrorIs(t, err, ErrAssetPositionMismatch)

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseNeedAsset, progress.State.Phase)
	require.NotNil(t, progress.State.PendingSlot)
	assert.Equal(t, models.SlotRB1, *progress.State.PendingSlot)
	assert.Empty(t, progress.Picks)

	// The pending slot still accepts a legal asset afterwards.
	require.NoError(t, f.app.PickAsset(ctx, userID, run.ID, models.PlayerAsset(f.rosters[teamID].RB2)))
}

func TestPickAssetWrongTeam(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	_, err = f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "QB"))

	// Rolled team is teams[0]; this quarterback plays for teams[1].
	otherQB := f.rosters[f.teams[1].ID].QB
	err = f.app.PickAsset(ctx, userID, run.ID, models.PlayerAsset(otherQB))
	assert.ErrorIs(t, err, ErrAssetTeamMismatch)
}

func TestPickAssetUnresolvableReference(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	_, err = f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "COACH"))

	err = f.app.PickAsset(ctx, userID, run.ID, models.CoachAsset(uuid.New()))
	assert.ErrorIs(t, err, ErrAssetTeamMismatch)
}

func TestPickAssetOutOfPhase(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	err = f.app.PickAsset(ctx, userID, run.ID, models.DefenseAsset())
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestRunOwnership(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	run, err := f.app.StartRun(ctx, owner, testSeason)
	require.NoError(t, err)

	// Another user's probes look identical to a missing run.
	_, err = f.app.RollTeam(ctx, stranger, run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = f.app.GetRunProgress(ctx, stranger, run.ID)
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = f.app.GetRunProgress(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListEligibleAssets(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	// Not listable before a slot is pending.
	_, err = f.app.ListEligibleAssets(ctx, userID, run.ID)
	assert.ErrorIs(t, err, ErrInvalidPhase)

	rolled, err := f.app.RollTeam(ctx, userID, run.ID)
	require.NoError(t, err)
	teamID, err := uuid.Parse(rolled.TeamID)
	require.NoError(t, err)

	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "WR1"))
	eligible, err := f.app.ListEligibleAssets(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SlotWR1, eligible.Slot)
	assert.Len(t, eligible.Players, 2)
	for _, p := range eligible.Players {
		assert.Equal(t, models.PositionWR, p.Position)
		assert.Equal(t, teamID, p.TeamID)
	}

	require.NoError(t, f.app.ClearPendingSlot(ctx, userID, run.ID))
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "COACH"))
	eligible, err = f.app.ListEligibleAssets(ctx, userID, run.ID)
	require.NoError(t, err)
	require.NotNil(t, eligible.Coach)
	assert.Equal(t, teamID, eligible.Coach.TeamID)

	require.NoError(t, f.app.ClearPendingSlot(ctx, userID, run.ID))
	require.NoError(t, f.app.ChooseSlot(ctx, userID, run.ID, "DST"))
	eligible, err = f.app.ListEligibleAssets(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.True(t, eligible.Defense)
	assert.Empty(t, eligible.Players)
}

func TestGetRunProgressFreeSlots(t *testing.T) {
	f := newFixture(t, 10)
	ctx := context.Background()
	userID := uuid.New()
	run, err := f.app.StartRun(ctx, userID, testSeason)
	require.NoError(t, err)

	f.runCycle(t, userID, run.ID, models.SlotDST)
	f.runCycle(t, userID, run.ID, models.SlotQB)

	progress, err := f.app.GetRunProgress(ctx, userID, run.ID)
	require.NoError(t, err)
	assert.Len(t, progress.Picks, 2)
	assert.Len(t, progress.FreeSlots, models.RosterSize-2)
	assert.NotContains(t, progress.FreeSlots, models.SlotQB)
	assert.NotContains(t, progress.FreeSlots, models.SlotDST)
}
