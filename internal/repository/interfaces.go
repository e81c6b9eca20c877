package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
)

// All repository interfaces in one file
type (
	// TemplateSlotRepository handles recurring weekly availability templates.
	TemplateSlotRepository interface {
		Create(ctx context.Context, slot *model.WorkingTemplateSlot) error
		Get(ctx context.Context, id uuid.UUID) (*model.WorkingTemplateSlot, error)
		Update(ctx context.Context, slot *model.WorkingTemplateSlot) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.WorkingTemplateSlot, error)
		ExistsForWeekday(ctx context.Context, providerID uuid.UUID, weekday time.Weekday, excludeID *uuid.UUID) (bool, error)
	}

	// OverrideSlotRepository handles one-off day replacements.
	OverrideSlotRepository interface {
		Create(ctx context.Context, slot *model.OverrideSlot) error
		Get(ctx context.Context, id uuid.UUID) (*model.OverrideSlot, error)
		Update(ctx context.Context, slot *model.OverrideSlot) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.OverrideSlot, error)
		ExistsForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) (bool, error)
	}

	// BlockedSlotRepository handles blackout carve-outs.
	BlockedSlotRepository interface {
		Create(ctx context.Context, slot *model.BlockedSlot) error
		Get(ctx context.Context, id uuid.UUID) (*model.BlockedSlot, error)
		Update(ctx context.Context, slot *model.BlockedSlot) error
		Delete(ctx context.Context, id uuid.UUID) error
		ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.BlockedSlot, error)
		ExistsOverlapping(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)
	}

	// ReservationRepository reads the booking subsystem's records. This
	// engine never writes reservations.
	ReservationRepository interface {
		ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.Reservation, error)
	}

	// ProviderRepository supplies the provider's fixed timezone.
	ProviderRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Provider, error)
	}
)
