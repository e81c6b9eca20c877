package model

import (
	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// SlotKind is the closed set of effective slot variants. The merge and
// subtraction algorithms switch exhaustively over it.
type SlotKind string

const (
	SlotKindOriginalWorking SlotKind = "original_working"
	SlotKindOverride        SlotKind = "override"
	SlotKindBlocked         SlotKind = "blocked"
	SlotKindDerivedWorking  SlotKind = "derived_working"
	SlotKindDerivedOverride SlotKind = "derived_override"
	SlotKindReservation     SlotKind = "reservation"
)

// IsWorking reports whether the slot represents bookable capacity.
func (k SlotKind) IsWorking() bool {
	switch k {
	case SlotKindOriginalWorking, SlotKindOverride,
		SlotKindDerivedWorking, SlotKindDerivedOverride:
		return true
	}
	return false
}

// Derived maps a working kind to the kind its fragments carry after a cut.
// Derived kinds are stable under repeated cuts.
func (k SlotKind) Derived() SlotKind {
	switch k {
	case SlotKindOriginalWorking, SlotKindDerivedWorking:
		return SlotKindDerivedWorking
	case SlotKindOverride, SlotKindDerivedOverride:
		return SlotKindDerivedOverride
	default:
		return k
	}
}

// SlotMeta carries display data alongside an effective slot. For
// reservation slots it holds the booking's client-facing fields.
type SlotMeta struct {
	SourceID    uuid.UUID         `json:"source_id,omitempty"`
	Note        string            `json:"note,omitempty"`
	ClientName  string            `json:"client_name,omitempty"`
	ServiceID   uuid.UUID         `json:"service_id,omitempty"`
	ServiceName string            `json:"service_name,omitempty"`
	Price       int64             `json:"price,omitempty"`
	Status      ReservationStatus `json:"status,omitempty"`
}

// EffectiveSlot is the computed, day-specific representation of availability
// or booking. Never persisted; recomputed per query.
type EffectiveSlot struct {
	Kind      SlotKind           `json:"kind"`
	Day       timeutil.Date      `json:"day"`
	StartTime timeutil.TimeOfDay `json:"start_time"`
	EndTime   timeutil.TimeOfDay `json:"end_time"`
	Meta      SlotMeta           `json:"meta,omitempty"`
}

// Overlaps reports whether two slots on the same day share any time.
func (s EffectiveSlot) Overlaps(other EffectiveSlot) bool {
	return s.Day == other.Day && s.StartTime < other.EndTime && other.StartTime < s.EndTime
}

// RawSlot is one slot-definition occurrence materialized onto a concrete
// civil day. Instants are converted to the provider's wall clock exactly
// once, when the weekly set is assembled.
type RawSlot struct {
	ID        uuid.UUID          `json:"id"`
	Day       timeutil.Date      `json:"day"`
	StartTime timeutil.TimeOfDay `json:"start_time"`
	EndTime   timeutil.TimeOfDay `json:"end_time"`
	Note      string             `json:"note,omitempty"`
}

// RawWeeklySlotSet aggregates one week of slot definitions for a provider,
// with template occurrences already placed onto the week's calendar dates.
// Cached until invalidated or recomputed.
type RawWeeklySlotSet struct {
	ProviderID uuid.UUID     `json:"provider_id"`
	WeekStart  timeutil.Date `json:"week_start"`
	Timezone   string        `json:"timezone"`
	Workings   []RawSlot     `json:"workings"`
	Overrides  []RawSlot     `json:"overrides"`
	Blocks     []RawSlot     `json:"blocks"`
}

// BookableWindow is one fixed-duration window a client can book.
type BookableWindow struct {
	ServiceID uuid.UUID          `json:"service_id"`
	Day       timeutil.Date      `json:"day"`
	StartTime timeutil.TimeOfDay `json:"start_time"`
	EndTime   timeutil.TimeOfDay `json:"end_time"`
}
