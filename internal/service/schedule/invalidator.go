package schedule

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/scheduler-api/internal/cache"
	"github.com/jwalitptl/scheduler-api/pkg/metrics"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// Invalidator reacts to slot-definition writes. By the time it runs the
// write has committed, so failures here are logged and swallowed: a
// temporarily stale week is preferable to failing a successful write.
type Invalidator struct {
	cache   cache.SlotCache
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewInvalidator(slotCache cache.SlotCache, m *metrics.Metrics, logger zerolog.Logger) *Invalidator {
	return &Invalidator{
		cache:   slotCache,
		metrics: m,
		logger:  logger,
	}
}

// TemplateChanged invalidates every cached week for the provider; a
// recurring template affects all future weeks.
func (i *Invalidator) TemplateChanged(ctx context.Context, providerID uuid.UUID) {
	i.apply(ctx, cache.Invalidation{
		Scope:      cache.ScopeAllWeeksForProvider,
		ProviderID: providerID,
	})
}

// DatedSlotChanged invalidates only the week containing the mutated
// override or block.
func (i *Invalidator) DatedSlotChanged(ctx context.Context, providerID uuid.UUID, day timeutil.Date) {
	i.apply(ctx, cache.Invalidation{
		Scope:      cache.ScopeThisWeek,
		ProviderID: providerID,
		WeekStart:  timeutil.WeekStart(day),
	})
}

func (i *Invalidator) apply(ctx context.Context, inv cache.Invalidation) {
	if i.metrics != nil {
		i.metrics.SlotCacheInvalidations.WithLabelValues(string(inv.Scope)).Inc()
	}
	if err := i.cache.Invalidate(ctx, inv); err != nil {
		i.logger.Error().Err(err).
			Str("provider_id", inv.ProviderID.String()).
			Str("scope", string(inv.Scope)).
			Msg("slot cache invalidation failed")
		if i.metrics != nil {
			i.metrics.SlotCacheErrors.WithLabelValues("invalidate").Inc()
		}
	}
}
