package cache

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// WeekKey identifies one provider-week of cached raw slots. Keys are
// structured values, not concatenated strings, so invalidation never relies
// on key-pattern scans.
type WeekKey struct {
	ProviderID uuid.UUID
	WeekStart  timeutil.Date
}

func (k WeekKey) String() string {
	return fmt.Sprintf("slots:%s:%s", k.ProviderID, k.WeekStart)
}

// InvalidationScope selects how much of a provider's cached calendar a
// write invalidates.
type InvalidationScope string

const (
	// ScopeThisWeek drops the single week containing the mutated record.
	ScopeThisWeek InvalidationScope = "this_week"
	// ScopeAllWeeksForProvider drops every cached week; template changes
	// affect all future weeks.
	ScopeAllWeeksForProvider InvalidationScope = "all_weeks"
)

// Invalidation is an explicit request produced by slot-definition writes.
type Invalidation struct {
	Scope      InvalidationScope
	ProviderID uuid.UUID
	WeekStart  timeutil.Date // only consulted for ScopeThisWeek
}

// SlotCache is the weekly materialized view of raw slot definitions.
// Implementations are read-through peers of the system of record, never
// transactional with it.
type SlotCache interface {
	Get(ctx context.Context, key WeekKey) (*model.RawWeeklySlotSet, bool, error)
	Set(ctx context.Context, key WeekKey, set *model.RawWeeklySlotSet) error
	Invalidate(ctx context.Context, inv Invalidation) error
}
