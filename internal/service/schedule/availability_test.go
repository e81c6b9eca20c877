package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

func freeRanges(slots []model.EffectiveSlot) [][2]string {
	out := make([][2]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, [2]string{s.StartTime.String(), s.EndTime.String()})
	}
	return out
}

// Working 09:00-17:00 with a 12:00-13:00 block leaves the morning and the
// afternoon free.
func TestGetFreeSlots_BlockSplitsDay(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "17:00")
	f.addBlock(testDay, "12:00", "13:00")

	free, err := f.service.GetFreeSlots(context.Background(), f.providerID, mustDate(testDay))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"09:00", "12:00"}, {"13:00", "17:00"}}, freeRanges(free))
}

// An override day exposes exactly the override hours, not the template's.
func TestGetFreeSlots_OverrideDay(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "17:00")
	f.addOverride(testDay, "10:00", "14:00")

	free, err := f.service.GetFreeSlots(context.Background(), f.providerID, mustDate(testDay))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"10:00", "14:00"}}, freeRanges(free))
}

// A confirmed reservation carves its window out of the working slot.
func TestGetFreeSlots_ReservationSubtracted(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "12:00")
	f.addReservation(testDay, "10:00", 60, model.ReservationStatusConfirmed, model.PaymentStatusHeld)

	free, err := f.service.GetFreeSlots(context.Background(), f.providerID, mustDate(testDay))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"09:00", "10:00"}, {"11:00", "12:00"}}, freeRanges(free))

	windows := SplitByDuration(free[0], 30)
	require.Len(t, windows, 2)
	assert.Equal(t, mustClock("09:00"), windows[0].StartTime)
	assert.Equal(t, mustClock("09:30"), windows[0].EndTime)
	assert.Equal(t, mustClock("09:30"), windows[1].StartTime)
	assert.Equal(t, mustClock("10:00"), windows[1].EndTime)
}

// A reservation being refunded releases its time.
func TestGetFreeSlots_PendingRefundReleasesTime(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "12:00")
	f.addReservation(testDay, "10:00", 60, model.ReservationStatusConfirmed, model.PaymentStatusPendingRefund)

	free, err := f.service.GetFreeSlots(context.Background(), f.providerID, mustDate(testDay))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"09:00", "12:00"}}, freeRanges(free))
}

func TestGetFreeSlots_NeverOverlapsReservations(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "08:00", "18:00")
	f.addReservation(testDay, "09:00", 45, model.ReservationStatusPending, model.PaymentStatusHeld)
	f.addReservation(testDay, "11:30", 90, model.ReservationStatusConfirmed, model.PaymentStatusCaptured)
	f.addReservation(testDay, "16:00", 120, model.ReservationStatusCompleted, model.PaymentStatusCaptured)

	ctx := context.Background()
	free, err := f.service.GetFreeSlots(ctx, f.providerID, mustDate(testDay))
	require.NoError(t, err)

	reservations, err := f.projector.GetReservationSlots(ctx, f.providerID, mustDate(testWeek))
	require.NoError(t, err)
	require.NotEmpty(t, reservations)

	for _, fs := range free {
		for _, rs := range reservations {
			assert.False(t, fs.Overlaps(rs), "free %v-%v overlaps reservation %v-%v",
				fs.StartTime, fs.EndTime, rs.StartTime, rs.EndTime)
		}
	}
}

// Working 09:00-11:00 and 13:00-15:00, 60-minute service: four exact
// windows.
func TestGetBookableWindows_TwoStretches(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "15:00")
	f.addBlock(testDay, "11:00", "13:00")

	serviceID := uuid.New()
	windows, err := f.service.GetBookableWindows(
		context.Background(), f.providerID, serviceID, mustDate(testDay), 60)
	require.NoError(t, err)

	require.Len(t, windows, 4)
	assert.Equal(t, mustClock("09:00"), windows[0].StartTime)
	assert.Equal(t, mustClock("10:00"), windows[1].StartTime)
	assert.Equal(t, mustClock("13:00"), windows[2].StartTime)
	assert.Equal(t, mustClock("14:00"), windows[3].StartTime)
	for _, w := range windows {
		assert.Equal(t, mustClock("01:00"), w.EndTime-w.StartTime)
		assert.Equal(t, serviceID, w.ServiceID)
	}
}

func TestSplitByDuration_Properties(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		want     int
	}{
		{"exact fit", "09:00", "11:00", 60, 2},
		{"partial trailing window dropped", "09:00", "10:45", 30, 3},
		{"interval shorter than duration", "09:00", "09:20", 30, 0},
		{"single minute windows", "09:00", "09:05", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := working(testDay, tt.start, tt.end)
			windows := SplitByDuration(slot, tt.duration)

			assert.Len(t, windows, tt.want)
			for i, w := range windows {
				assert.Equal(t, timeutil.TimeOfDay(tt.duration), w.EndTime-w.StartTime)
				assert.LessOrEqual(t, w.EndTime, slot.EndTime, "window extends past interval end")
				if i > 0 {
					assert.Equal(t, windows[i-1].EndTime, w.StartTime, "windows must be consecutive")
				}
			}
		})
	}
}

func TestSplitByDuration_InvalidDuration(t *testing.T) {
	slot := working(testDay, "09:00", "17:00")
	assert.Nil(t, SplitByDuration(slot, 0))
	assert.Nil(t, SplitByDuration(slot, -15))
}

// Ordering property: a block and a reservation cutting the same working
// slot produce the expected combined free set regardless of the fact that
// blocks are applied first in the merge.
func TestFreeSlots_BlockAndReservationSameSlot(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "17:00")
	f.addBlock(testDay, "12:00", "13:00")
	f.addReservation(testDay, "10:00", 60, model.ReservationStatusConfirmed, model.PaymentStatusHeld)

	free, err := f.service.GetFreeSlots(context.Background(), f.providerID, mustDate(testDay))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{
		{"09:00", "10:00"},
		{"11:00", "12:00"},
		{"13:00", "17:00"},
	}, freeRanges(free))
}

func TestGetFinalSlots_LayersAreParallel(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "17:00")
	f.addReservation(testDay, "10:00", 60, model.ReservationStatusConfirmed, model.PaymentStatusHeld)

	final, err := f.service.GetFinalSlots(context.Background(), f.providerID, mustDate(testWeek))
	require.NoError(t, err)

	workings := slotsOfKind(final, model.SlotKindOriginalWorking)
	reservations := slotsOfKind(final, model.SlotKindReservation)
	require.Len(t, workings, 1)
	require.Len(t, reservations, 1)

	// The calendar shows capacity and bookings side by side; nothing is
	// subtracted at this layer.
	assert.Equal(t, mustClock("09:00"), workings[0].StartTime)
	assert.Equal(t, mustClock("17:00"), workings[0].EndTime)
	assert.Equal(t, "Client", reservations[0].Meta.ClientName)
	assert.Equal(t, model.ReservationStatusConfirmed, reservations[0].Meta.Status)
}

func TestGetMonthlyBookableWindows_FetchesEachWeekOnce(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "11:00")

	out, err := f.service.GetMonthlyBookableWindows(
		context.Background(), f.providerID, uuid.New(), 2025, time.March, 60)
	require.NoError(t, err)

	// March 2025 has four Wednesdays; days without windows are omitted.
	assert.Len(t, out, 4)
	for day, windows := range out {
		d := mustDate(day)
		assert.Equal(t, time.Wednesday, d.Weekday())
		assert.Len(t, windows, 2)
	}

	// March 2025 spans six ISO weeks; each hits storage exactly once even
	// though the month iterates 31 days. The loader consults templates
	// once per uncached week.
	assert.Equal(t, 6, f.templates.calls)
}

func TestGetMonthlyBookableWindows_SkipsFailingDay(t *testing.T) {
	f := newFixture()
	f.addTemplate(time.Wednesday, "09:00", "11:00")

	// Prime one week, then break storage: only the cached week survives.
	_, err := f.service.GetFinalSlots(context.Background(), f.providerID, mustDate(testWeek))
	require.NoError(t, err)
	f.templates.err = assert.AnError

	out, err := f.service.GetMonthlyBookableWindows(
		context.Background(), f.providerID, uuid.New(), 2025, time.March, 60)
	require.NoError(t, err, "monthly aggregation tolerates partial failure")

	assert.Len(t, out, 1)
	_, ok := out[testDay]
	assert.True(t, ok)
}
