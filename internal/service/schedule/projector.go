package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/internal/repository"
	apperrors "github.com/jwalitptl/scheduler-api/pkg/errors"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// Projector turns qualifying reservations into effective slots so the
// calendar can render bookings alongside capacity.
type Projector struct {
	reservations repository.ReservationRepository
	providers    repository.ProviderRepository
}

func NewProjector(reservations repository.ReservationRepository, providers repository.ProviderRepository) *Projector {
	return &Projector{
		reservations: reservations,
		providers:    providers,
	}
}

// GetReservationSlots maps each reservation in the week to exactly one
// RESERVATION slot spanning [start, start+duration). Reservations that are
// cancelled or being refunded do not occupy calendar time. No splitting or
// merging applies.
func (p *Projector) GetReservationSlots(ctx context.Context, providerID uuid.UUID, weekStart timeutil.Date) ([]model.EffectiveSlot, error) {
	weekStart = timeutil.WeekStart(weekStart)

	provider, err := p.providers.Get(ctx, providerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Upstream("failed to load provider", err)
	}
	loc, err := timeutil.LoadZone(provider.Timezone)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", providerID, err)
	}

	from := timeutil.InstantFromCivil(weekStart, 0, loc)
	to := timeutil.InstantFromCivil(weekStart.AddDays(7), 0, loc)

	reservations, err := p.reservations.ListForRange(ctx, providerID, from, to)
	if err != nil {
		return nil, apperrors.Upstream("failed to load reservations", err)
	}

	var out []model.EffectiveSlot
	for _, res := range reservations {
		if !res.OccupiesCalendar() {
			continue
		}
		out = append(out, projectReservation(res, loc))
	}
	return out, nil
}

func projectReservation(res *model.Reservation, loc *time.Location) model.EffectiveSlot {
	day, start := timeutil.CivilFromInstant(res.StartTime, loc)
	endInstant := res.StartTime.Add(time.Duration(res.DurationMin) * time.Minute)
	endDay, end := timeutil.CivilFromInstant(endInstant, loc)
	if endDay != day {
		end = timeutil.TimeOfDay(24 * 60)
	}

	return model.EffectiveSlot{
		Kind:      model.SlotKindReservation,
		Day:       day,
		StartTime: start,
		EndTime:   end,
		Meta: model.SlotMeta{
			SourceID:    res.ID,
			ClientName:  res.ClientName,
			ServiceID:   res.ServiceID,
			ServiceName: res.ServiceName,
			Price:       res.Price,
			Status:      res.Status,
		},
	}
}
