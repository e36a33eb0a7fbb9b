package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    SlotName
		wantErr bool
	}{
		{name: "qb", input: "QB", want: SlotQB},
		{name: "rb1", input: "RB1", want: SlotRB1},
		{name: "rb2", input: "RB2", want: SlotRB2},
		{name: "wr1", input: "WR1", want: SlotWR1},
		{name: "wr2", input: "WR2", want: SlotWR2},
		{name: "te", input: "TE", want: SlotTE},
		{name: "dst", input: "DST", want: SlotDST},
		{name: "coach", input: "COACH", want: SlotCoach},
		{name: "bare rb is not a slot", input: "RB", wantErr: true},
		{name: "rb3 is out of vocabulary", input: "RB3", wantErr: true},
		{name: "lowercase rejected", input: "qb", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlot(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotRequiredPosition(t *testing.T) {
	tests := []struct {
		slot   SlotName
		want   Position
		wantOK bool
	}{
		{slot: SlotQB, want: PositionQB, wantOK: true},
		{slot: SlotRB1, want: PositionRB, wantOK: true},
		{slot: SlotRB2, want: PositionRB, wantOK: true},
		{slot: SlotWR1, want: PositionWR, wantOK: true},
		{slot: SlotWR2, want: PositionWR, wantOK: true},
		{slot: SlotTE, want: PositionTE, wantOK: true},
		{slot: SlotDST, wantOK: false},
		{slot: SlotCoach, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			got, ok := tt.slot.RequiredPosition()
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAllSlotsMatchesRosterSize(t *testing.T) {
	assert.Len(t, AllSlots, RosterSize)
}
