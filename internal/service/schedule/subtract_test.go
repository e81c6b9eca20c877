package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/scheduler-api/internal/model"
)

func working(day, start, end string) model.EffectiveSlot {
	return model.EffectiveSlot{
		Kind:      model.SlotKindOriginalWorking,
		Day:       mustDate(day),
		StartTime: mustClock(start),
		EndTime:   mustClock(end),
	}
}

func TestSubtractInterval_EmptyCutIsNoop(t *testing.T) {
	candidates := []model.EffectiveSlot{working(testDay, "09:00", "17:00")}

	got := subtractInterval(candidates, mustClock("12:00"), mustClock("12:00"))
	assert.Equal(t, candidates, got)
}

func TestSubtractInterval_ExactCoverRemoves(t *testing.T) {
	candidates := []model.EffectiveSlot{working(testDay, "09:00", "12:00")}

	got := subtractInterval(candidates, mustClock("09:00"), mustClock("12:00"))
	assert.Empty(t, got)
}

func TestSubtractInterval_TouchingBoundsIsDisjoint(t *testing.T) {
	candidates := []model.EffectiveSlot{working(testDay, "09:00", "12:00")}

	got := subtractInterval(candidates, mustClock("12:00"), mustClock("13:00"))
	require.Len(t, got, 1)
	assert.Equal(t, model.SlotKindOriginalWorking, got[0].Kind)

	got = subtractInterval(candidates, mustClock("08:00"), mustClock("09:00"))
	require.Len(t, got, 1)
	assert.Equal(t, model.SlotKindOriginalWorking, got[0].Kind)
}

func TestSubtractInterval_DerivedKindIsStable(t *testing.T) {
	candidates := []model.EffectiveSlot{working(testDay, "09:00", "17:00")}

	once := subtractInterval(candidates, mustClock("10:00"), mustClock("11:00"))
	twice := subtractInterval(once, mustClock("12:00"), mustClock("13:00"))

	require.Len(t, twice, 3)
	for _, s := range twice {
		assert.Equal(t, model.SlotKindDerivedWorking, s.Kind)
	}
}

func TestSubtractInterval_CutAcrossMultipleCandidates(t *testing.T) {
	candidates := []model.EffectiveSlot{
		working(testDay, "09:00", "11:00"),
		working(testDay, "10:30", "12:00"),
	}

	got := subtractInterval(candidates, mustClock("10:00"), mustClock("11:00"))
	require.Len(t, got, 2)
	assert.Equal(t, mustClock("09:00"), got[0].StartTime)
	assert.Equal(t, mustClock("10:00"), got[0].EndTime)
	assert.Equal(t, mustClock("11:00"), got[1].StartTime)
	assert.Equal(t, mustClock("12:00"), got[1].EndTime)
}
