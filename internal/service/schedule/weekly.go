package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/scheduler-api/internal/cache"
	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/internal/repository"
	apperrors "github.com/jwalitptl/scheduler-api/pkg/errors"
	"github.com/jwalitptl/scheduler-api/pkg/metrics"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// WeeklyLoader assembles one provider-week of raw slot definitions behind a
// read-through cache. Template occurrences are materialized onto the week's
// concrete dates and all instants are normalized to the provider's wall
// clock before anything is cached, so downstream algorithms never touch
// zones.
type WeeklyLoader struct {
	templates repository.TemplateSlotRepository
	overrides repository.OverrideSlotRepository
	blocks    repository.BlockedSlotRepository
	providers repository.ProviderRepository
	cache     cache.SlotCache
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

func NewWeeklyLoader(
	templates repository.TemplateSlotRepository,
	overrides repository.OverrideSlotRepository,
	blocks repository.BlockedSlotRepository,
	providers repository.ProviderRepository,
	slotCache cache.SlotCache,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *WeeklyLoader {
	return &WeeklyLoader{
		templates: templates,
		overrides: overrides,
		blocks:    blocks,
		providers: providers,
		cache:     slotCache,
		metrics:   m,
		logger:    logger,
	}
}

// GetWeeklyRaw returns the cached week when present, otherwise loads and
// materializes it from the system of record. A storage failure propagates;
// nothing partial is ever cached.
func (l *WeeklyLoader) GetWeeklyRaw(ctx context.Context, providerID uuid.UUID, weekStart timeutil.Date) (*model.RawWeeklySlotSet, error) {
	weekStart = timeutil.WeekStart(weekStart)
	key := cache.WeekKey{ProviderID: providerID, WeekStart: weekStart}

	set, found, err := l.cache.Get(ctx, key)
	if err != nil {
		// A broken cache degrades to a miss; the system of record decides.
		l.logger.Warn().Err(err).Str("key", key.String()).Msg("slot cache read failed")
		if l.metrics != nil {
			l.metrics.SlotCacheErrors.WithLabelValues("get").Inc()
		}
	}
	if found {
		if l.metrics != nil {
			l.metrics.SlotCacheHits.Inc()
		}
		return set, nil
	}
	if l.metrics != nil {
		l.metrics.SlotCacheMisses.Inc()
	}

	set, err = l.loadWeek(ctx, providerID, weekStart)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, set); err != nil {
		l.logger.Warn().Err(err).Str("key", key.String()).Msg("slot cache write failed")
		if l.metrics != nil {
			l.metrics.SlotCacheErrors.WithLabelValues("set").Inc()
		}
	}
	return set, nil
}

func (l *WeeklyLoader) loadWeek(ctx context.Context, providerID uuid.UUID, weekStart timeutil.Date) (*model.RawWeeklySlotSet, error) {
	provider, err := l.providers.Get(ctx, providerID)
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

	weekEnd := weekStart.AddDays(7)
	from := timeutil.InstantFromCivil(weekStart, 0, loc)
	to := timeutil.InstantFromCivil(weekEnd, 0, loc)

	templates, err := l.templates.ListForProvider(ctx, providerID)
	if err != nil {
		return nil, apperrors.Upstream("failed to load template slots", err)
	}
	overrides, err := l.overrides.ListForRange(ctx, providerID, from, to)
	if err != nil {
		return nil, apperrors.Upstream("failed to load override slots", err)
	}
	blocks, err := l.blocks.ListForRange(ctx, providerID, from, to)
	if err != nil {
		return nil, apperrors.Upstream("failed to load blocked slots", err)
	}

	set := &model.RawWeeklySlotSet{
		ProviderID: providerID,
		WeekStart:  weekStart,
		Timezone:   provider.Timezone,
	}

	// Templates are not date scoped; each occurrence lands on the week date
	// matching its weekday.
	for _, day := range timeutil.WeekDates(weekStart) {
		for _, tpl := range templates {
			if tpl.Weekday != day.Weekday() {
				continue
			}
			set.Workings = append(set.Workings, model.RawSlot{
				ID:        tpl.ID,
				Day:       day,
				StartTime: tpl.StartTime,
				EndTime:   tpl.EndTime,
				Note:      tpl.Note,
			})
		}
	}

	for _, o := range overrides {
		set.Overrides = append(set.Overrides, civilRawSlot(o.ID, o.StartTime, o.EndTime, o.Note, loc))
	}
	for _, b := range blocks {
		set.Blocks = append(set.Blocks, civilRawSlot(b.ID, b.StartTime, b.EndTime, b.Note, loc))
	}

	return set, nil
}

// civilRawSlot converts a stored instant pair to the provider's wall clock.
// Dated slots are day-level records; an end instant landing on a later day
// clamps to the end of the start's day.
func civilRawSlot(id uuid.UUID, start, end time.Time, note string, loc *time.Location) model.RawSlot {
	day, startTod := timeutil.CivilFromInstant(start, loc)
	endDay, endTod := timeutil.CivilFromInstant(end, loc)
	if endDay != day {
		endTod = timeutil.TimeOfDay(24 * 60)
	}
	return model.RawSlot{
		ID:        id,
		Day:       day,
		StartTime: startTod,
		EndTime:   endTod,
		Note:      note,
	}
}
