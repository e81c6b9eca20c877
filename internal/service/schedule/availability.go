package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/pkg/metrics"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// Service computes availability: effective week views for calendars, free
// time for a day, and fixed-duration bookable windows for booking search.
type Service struct {
	loader    *WeeklyLoader
	projector *Projector
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewService(loader *WeeklyLoader, projector *Projector, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		loader:    loader,
		projector: projector,
		metrics:   m,
		logger:    logger,
	}
}

// GetFinalSlots is the calendar view: merged capacity slots concatenated
// with reservation slots as parallel layers. Bookings are not subtracted
// here; the calendar renders both.
func (s *Service) GetFinalSlots(ctx context.Context, providerID uuid.UUID, weekStart timeutil.Date) ([]model.EffectiveSlot, error) {
	defer s.observe("final_slots", time.Now())

	raw, err := s.loader.GetWeeklyRaw(ctx, providerID, weekStart)
	if err != nil {
		return nil, err
	}
	final := ComputeFinalSlots(raw)

	reservations, err := s.projector.GetReservationSlots(ctx, providerID, weekStart)
	if err != nil {
		return nil, err
	}
	return append(final, reservations...), nil
}

// GetFreeSlots derives the day's remaining free intervals: working-kind
// slots with every calendar-occupying reservation subtracted.
func (s *Service) GetFreeSlots(ctx context.Context, providerID uuid.UUID, day timeutil.Date) ([]model.EffectiveSlot, error) {
	defer s.observe("free_slots", time.Now())

	final, err := s.GetFinalSlots(ctx, providerID, timeutil.WeekStart(day))
	if err != nil {
		return nil, err
	}
	return freeSlotsForDay(final, day), nil
}

// freeSlotsForDay applies the reservation subtraction to one day of an
// already computed week. Reservations are folded sequentially so several
// bookings compound against already-trimmed slots, exactly like blocks do
// in the merge.
func freeSlotsForDay(final []model.EffectiveSlot, day timeutil.Date) []model.EffectiveSlot {
	var candidates []model.EffectiveSlot
	var reservations []model.EffectiveSlot
	for _, slot := range final {
		if slot.Day != day {
			continue
		}
		switch {
		case slot.Kind.IsWorking():
			candidates = append(candidates, slot)
		case slot.Kind == model.SlotKindReservation:
			reservations = append(reservations, slot)
		}
	}

	for _, res := range reservations {
		candidates = subtractInterval(candidates, res.StartTime, res.EndTime)
	}
	sortSlots(candidates)
	return candidates
}

// SplitByDuration chops a free interval into consecutive windows of exactly
// durationMin minutes, stepping from the interval start. A trailing remnant
// shorter than the duration is not emitted.
func SplitByDuration(slot model.EffectiveSlot, durationMin int) []model.BookableWindow {
	if durationMin <= 0 {
		return nil
	}
	step := timeutil.TimeOfDay(durationMin)

	var windows []model.BookableWindow
	for start := slot.StartTime; start+step <= slot.EndTime; start += step {
		windows = append(windows, model.BookableWindow{
			Day:       slot.Day,
			StartTime: start,
			EndTime:   start + step,
		})
	}
	return windows
}

// GetBookableWindows is the booking-search view for one day: free intervals
// sliced into service-duration windows.
func (s *Service) GetBookableWindows(ctx context.Context, providerID, serviceID uuid.UUID, day timeutil.Date, durationMin int) ([]model.BookableWindow, error) {
	defer s.observe("bookable_windows", time.Now())

	free, err := s.GetFreeSlots(ctx, providerID, day)
	if err != nil {
		return nil, err
	}

	var windows []model.BookableWindow
	for _, slot := range free {
		for _, w := range SplitByDuration(slot, durationMin) {
			w.ServiceID = serviceID
			windows = append(windows, w)
		}
	}
	if s.metrics != nil {
		s.metrics.BookableWindowsServed.Add(float64(len(windows)))
	}
	return windows, nil
}

// GetMonthlyBookableWindows aggregates bookable windows for every day of a
// month. Each week is fetched once through an in-flight memo even though a
// month spans several weeks. A single day's load failure is logged and that
// day omitted; the rest of the month is still returned.
func (s *Service) GetMonthlyBookableWindows(ctx context.Context, providerID, serviceID uuid.UUID, year int, month time.Month, durationMin int) (map[string][]model.BookableWindow, error) {
	defer s.observe("monthly_bookable_windows", time.Now())

	type weekResult struct {
		slots []model.EffectiveSlot
		err   error
	}
	weeks := make(map[timeutil.Date]weekResult)

	out := make(map[string][]model.BookableWindow)
	for _, day := range timeutil.MonthDates(year, month) {
		weekStart := timeutil.WeekStart(day)
		res, ok := weeks[weekStart]
		if !ok {
			slots, err := s.GetFinalSlots(ctx, providerID, weekStart)
			res = weekResult{slots: slots, err: err}
			weeks[weekStart] = res
		}
		if res.err != nil {
			s.logger.Warn().Err(res.err).
				Str("provider_id", providerID.String()).
				Str("day", day.String()).
				Msg("skipping day in monthly aggregation")
			if s.metrics != nil {
				s.metrics.MonthlyDaysSkipped.Inc()
			}
			continue
		}

		var windows []model.BookableWindow
		for _, slot := range freeSlotsForDay(res.slots, day) {
			for _, w := range SplitByDuration(slot, durationMin) {
				w.ServiceID = serviceID
				windows = append(windows, w)
			}
		}
		if len(windows) > 0 {
			out[day.String()] = windows
		}
	}
	return out, nil
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.AvailabilityLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
