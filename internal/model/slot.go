package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// WorkingTemplateSlot is the provider's recurring weekly availability,
// anchored to a weekday. At most one template exists per (provider, weekday).
type WorkingTemplateSlot struct {
	Base
	ProviderID uuid.UUID          `db:"provider_id" json:"provider_id"`
	Weekday    time.Weekday       `db:"weekday" json:"weekday"`
	StartTime  timeutil.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime    timeutil.TimeOfDay `db:"end_time" json:"end_time"`
	Note       string             `db:"note" json:"note,omitempty"`
}

// OverrideSlot replaces the recurring template for exactly one calendar day.
// At most one override exists per (provider, civil day).
type OverrideSlot struct {
	Base
	ProviderID uuid.UUID `db:"provider_id" json:"provider_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	Note       string    `db:"note" json:"note,omitempty"`
}

// BlockedSlot carves unavailable time out of whatever would otherwise apply.
// Blocks for one provider never overlap each other.
type BlockedSlot struct {
	Base
	ProviderID uuid.UUID `db:"provider_id" json:"provider_id"`
	StartTime  time.Time `db:"start_time" json:"start_time"`
	EndTime    time.Time `db:"end_time" json:"end_time"`
	Note       string    `db:"note" json:"note,omitempty"`
}

// Provider carries the single fixed IANA zone the engine computes in.
// Everything else about providers belongs to other services.
type Provider struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Timezone string    `db:"timezone" json:"timezone"`
}

type CreateTemplateSlotRequest struct {
	Weekday   string `json:"weekday" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Note      string `json:"note" validate:"max=500"`
}

type UpdateTemplateSlotRequest struct {
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Note      *string `json:"note" validate:"omitempty,max=500"`
}

type CreateDatedSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Note      string    `json:"note" validate:"max=500"`
}

type UpdateDatedSlotRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Note      *string    `json:"note" validate:"omitempty,max=500"`
}
