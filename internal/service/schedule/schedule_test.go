package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/scheduler-api/internal/cache/memory"
	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// Fakes over the repository interfaces; the engine under test only reads.

type fakeTemplateRepo struct {
	slots []*model.WorkingTemplateSlot
	err   error
	calls int
}

func (f *fakeTemplateRepo) Create(ctx context.Context, slot *model.WorkingTemplateSlot) error {
	f.slots = append(f.slots, slot)
	return nil
}
func (f *fakeTemplateRepo) Get(ctx context.Context, id uuid.UUID) (*model.WorkingTemplateSlot, error) {
	return nil, nil
}
func (f *fakeTemplateRepo) Update(ctx context.Context, slot *model.WorkingTemplateSlot) error {
	return nil
}
func (f *fakeTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeTemplateRepo) ListForProvider(ctx context.Context, providerID uuid.UUID) ([]*model.WorkingTemplateSlot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.slots, nil
}
func (f *fakeTemplateRepo) ExistsForWeekday(ctx context.Context, providerID uuid.UUID, weekday time.Weekday, excludeID *uuid.UUID) (bool, error) {
	return false, nil
}

type fakeOverrideRepo struct {
	slots []*model.OverrideSlot
	err   error
}

func (f *fakeOverrideRepo) Create(ctx context.Context, slot *model.OverrideSlot) error { return nil }
func (f *fakeOverrideRepo) Get(ctx context.Context, id uuid.UUID) (*model.OverrideSlot, error) {
	return nil, nil
}
func (f *fakeOverrideRepo) Update(ctx context.Context, slot *model.OverrideSlot) error { return nil }
func (f *fakeOverrideRepo) Delete(ctx context.Context, id uuid.UUID) error             { return nil }
func (f *fakeOverrideRepo) ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.OverrideSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.OverrideSlot
	for _, s := range f.slots {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeOverrideRepo) ExistsForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) (bool, error) {
	return false, nil
}

type fakeBlockedRepo struct {
	slots []*model.BlockedSlot
	err   error
}

func (f *fakeBlockedRepo) Create(ctx context.Context, slot *model.BlockedSlot) error { return nil }
func (f *fakeBlockedRepo) Get(ctx context.Context, id uuid.UUID) (*model.BlockedSlot, error) {
	return nil, nil
}
func (f *fakeBlockedRepo) Update(ctx context.Context, slot *model.BlockedSlot) error { return nil }
func (f *fakeBlockedRepo) Delete(ctx context.Context, id uuid.UUID) error            { return nil }
func (f *fakeBlockedRepo) ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.BlockedSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.BlockedSlot
	for _, s := range f.slots {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeBlockedRepo) ExistsOverlapping(ctx context.Context, providerID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	return false, nil
}

type fakeReservationRepo struct {
	reservations []*model.Reservation
	err          error
}

func (f *fakeReservationRepo) ListForRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*model.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Reservation
	for _, r := range f.reservations {
		if !r.StartTime.Before(from) && r.StartTime.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeProviderRepo struct {
	provider *model.Provider
	err      error
}

func (f *fakeProviderRepo) Get(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.provider, nil
}

// fixture wires a full engine over the fakes and the in-process cache.
type fixture struct {
	providerID   uuid.UUID
	templates    *fakeTemplateRepo
	overrides    *fakeOverrideRepo
	blocks       *fakeBlockedRepo
	reservations *fakeReservationRepo
	cache        *memory.Cache
	loader       *WeeklyLoader
	projector    *Projector
	service      *Service
	invalidator  *Invalidator
}

func newFixture() *fixture {
	providerID := uuid.New()
	providers := &fakeProviderRepo{provider: &model.Provider{ID: providerID, Timezone: "UTC"}}
	templates := &fakeTemplateRepo{}
	overrides := &fakeOverrideRepo{}
	blocks := &fakeBlockedRepo{}
	reservations := &fakeReservationRepo{}
	slotCache := memory.New(time.Hour)
	logger := zerolog.Nop()

	loader := NewWeeklyLoader(templates, overrides, blocks, providers, slotCache, nil, logger)
	projector := NewProjector(reservations, providers)

	return &fixture{
		providerID:   providerID,
		templates:    templates,
		overrides:    overrides,
		blocks:       blocks,
		reservations: reservations,
		cache:        slotCache,
		loader:       loader,
		projector:    projector,
		service:      NewService(loader, projector, nil, logger),
		invalidator:  NewInvalidator(slotCache, nil, logger),
	}
}

func mustDate(t string) timeutil.Date {
	d, err := timeutil.ParseDate(t)
	if err != nil {
		panic(err)
	}
	return d
}

func mustClock(t string) timeutil.TimeOfDay {
	tod, err := timeutil.ParseClock(t)
	if err != nil {
		panic(err)
	}
	return tod
}

// instant builds a UTC instant from a civil date and clock string; the
// fixture provider's zone is UTC so civil values map one to one.
func instant(day, clock string) time.Time {
	return timeutil.InstantFromCivil(mustDate(day), mustClock(clock), time.UTC)
}

func (f *fixture) addTemplate(weekday time.Weekday, start, end string) {
	f.templates.slots = append(f.templates.slots, &model.WorkingTemplateSlot{
		Base:       model.Base{ID: uuid.New()},
		ProviderID: f.providerID,
		Weekday:    weekday,
		StartTime:  mustClock(start),
		EndTime:    mustClock(end),
	})
}

func (f *fixture) addOverride(day, start, end string) {
	f.overrides.slots = append(f.overrides.slots, &model.OverrideSlot{
		Base:       model.Base{ID: uuid.New()},
		ProviderID: f.providerID,
		StartTime:  instant(day, start),
		EndTime:    instant(day, end),
	})
}

func (f *fixture) addBlock(day, start, end string) {
	f.blocks.slots = append(f.blocks.slots, &model.BlockedSlot{
		Base:       model.Base{ID: uuid.New()},
		ProviderID: f.providerID,
		StartTime:  instant(day, start),
		EndTime:    instant(day, end),
	})
}

func (f *fixture) addReservation(day, start string, durationMin int, status model.ReservationStatus, payment model.PaymentStatus) {
	f.reservations.reservations = append(f.reservations.reservations, &model.Reservation{
		ID:            uuid.New(),
		ProviderID:    f.providerID,
		ClientName:    "Client",
		ServiceID:     uuid.New(),
		ServiceName:   "Service",
		Price:         5000,
		DurationMin:   durationMin,
		StartTime:     instant(day, start),
		Status:        status,
		PaymentStatus: payment,
	})
}

func rawSet(weekStart string, workings, overrides, blocks []model.RawSlot) *model.RawWeeklySlotSet {
	return &model.RawWeeklySlotSet{
		ProviderID: uuid.New(),
		WeekStart:  mustDate(weekStart),
		Timezone:   "UTC",
		Workings:   workings,
		Overrides:  overrides,
		Blocks:     blocks,
	}
}

func raw(day, start, end string) model.RawSlot {
	return model.RawSlot{
		ID:        uuid.New(),
		Day:       mustDate(day),
		StartTime: mustClock(start),
		EndTime:   mustClock(end),
	}
}
