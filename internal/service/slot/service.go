package slot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/internal/repository"
	"github.com/jwalitptl/scheduler-api/internal/service/schedule"
	apperrors "github.com/jwalitptl/scheduler-api/pkg/errors"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// Service owns writes to the three slot-definition entities. Every write
// follows the same order: validate, check conflicts, persist, invalidate
// the affected cache weeks, return. Invalidation runs after the commit and
// never fails the write.
type Service struct {
	templates   repository.TemplateSlotRepository
	overrides   repository.OverrideSlotRepository
	blocks      repository.BlockedSlotRepository
	providers   repository.ProviderRepository
	invalidator *schedule.Invalidator
	validate    *validator.Validate
}

func NewService(
	templates repository.TemplateSlotRepository,
	overrides repository.OverrideSlotRepository,
	blocks repository.BlockedSlotRepository,
	providers repository.ProviderRepository,
	invalidator *schedule.Invalidator,
) *Service {
	return &Service{
		templates:   templates,
		overrides:   overrides,
		blocks:      blocks,
		providers:   providers,
		invalidator: invalidator,
		validate:    validator.New(),
	}
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// --- Working template slots ---

func (s *Service) CreateTemplateSlot(ctx context.Context, providerID uuid.UUID, req *model.CreateTemplateSlotRequest) (*model.WorkingTemplateSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid template slot", err)
	}
	weekday, err := parseWeekday(req.Weekday)
	if err != nil {
		return nil, apperrors.Validation("invalid weekday", err)
	}
	start, end, err := parseClockRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	exists, err := s.templates.ExistsForWeekday(ctx, providerID, weekday, nil)
	if err != nil {
		return nil, apperrors.Upstream("failed to check template weekday", err)
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf("template slot already exists for %s", weekday), nil)
	}

	slot := &model.WorkingTemplateSlot{
		ProviderID: providerID,
		Weekday:    weekday,
		StartTime:  start,
		EndTime:    end,
		Note:       req.Note,
	}
	if err := s.templates.Create(ctx, slot); err != nil {
		return nil, apperrors.Upstream("failed to create template slot", err)
	}

	s.invalidator.TemplateChanged(ctx, providerID)
	return slot, nil
}

func (s *Service) UpdateTemplateSlot(ctx context.Context, id uuid.UUID, req *model.UpdateTemplateSlotRequest) (*model.WorkingTemplateSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid template slot", err)
	}

	slot, err := s.templates.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		start, err := timeutil.ParseClock(*req.StartTime)
		if err != nil {
			return nil, apperrors.Validation("invalid start time", err)
		}
		slot.StartTime = start
	}
	if req.EndTime != nil {
		end, err := timeutil.ParseClock(*req.EndTime)
		if err != nil {
			return nil, apperrors.Validation("invalid end time", err)
		}
		slot.EndTime = end
	}
	if req.Note != nil {
		slot.Note = *req.Note
	}
	if slot.StartTime >= slot.EndTime {
		return nil, apperrors.Validation("start time must precede end time", nil)
	}

	if err := s.templates.Update(ctx, slot); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Upstream("failed to update template slot", err)
	}

	s.invalidator.TemplateChanged(ctx, slot.ProviderID)
	return slot, nil
}

func (s *Service) DeleteTemplateSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.templates.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return apperrors.Upstream("failed to delete template slot", err)
	}

	s.invalidator.TemplateChanged(ctx, slot.ProviderID)
	return nil
}

// --- Override slots ---

func (s *Service) CreateOverrideSlot(ctx context.Context, providerID uuid.UUID, req *model.CreateDatedSlotRequest) (*model.OverrideSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid override slot", err)
	}

	day, loc, err := s.civilDay(ctx, providerID, req.StartTime)
	if err != nil {
		return nil, err
	}

	dayFrom := timeutil.InstantFromCivil(day, 0, loc)
	dayTo := timeutil.InstantFromCivil(day.AddDays(1), 0, loc)
	exists, err := s.overrides.ExistsForRange(ctx, providerID, dayFrom, dayTo, nil)
	if err != nil {
		return nil, apperrors.Upstream("failed to check override day", err)
	}
	if exists {
		return nil, apperrors.Conflict(fmt.Sprintf("override slot already exists for %s", day), nil)
	}

	slot := &model.OverrideSlot{
		ProviderID: providerID,
		StartTime:  req.StartTime.UTC(),
		EndTime:    req.EndTime.UTC(),
		Note:       req.Note,
	}
	if err := s.overrides.Create(ctx, slot); err != nil {
		return nil, apperrors.Upstream("failed to create override slot", err)
	}

	s.invalidator.DatedSlotChanged(ctx, providerID, day)
	return slot, nil
}

func (s *Service) UpdateOverrideSlot(ctx context.Context, id uuid.UUID, req *model.UpdateDatedSlotRequest) (*model.OverrideSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid override slot", err)
	}

	slot, err := s.overrides.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldDay, loc, err := s.civilDay(ctx, slot.ProviderID, slot.StartTime)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		slot.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		slot.EndTime = req.EndTime.UTC()
	}
	if req.Note != nil {
		slot.Note = *req.Note
	}
	if !slot.StartTime.Before(slot.EndTime) {
		return nil, apperrors.Validation("start time must precede end time", nil)
	}

	newDay, _ := timeutil.CivilFromInstant(slot.StartTime, loc)
	if newDay != oldDay {
		dayFrom := timeutil.InstantFromCivil(newDay, 0, loc)
		dayTo := timeutil.InstantFromCivil(newDay.AddDays(1), 0, loc)
		exists, err := s.overrides.ExistsForRange(ctx, slot.ProviderID, dayFrom, dayTo, &id)
		if err != nil {
			return nil, apperrors.Upstream("failed to check override day", err)
		}
		if exists {
			return nil, apperrors.Conflict(fmt.Sprintf("override slot already exists for %s", newDay), nil)
		}
	}

	if err := s.overrides.Update(ctx, slot); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Upstream("failed to update override slot", err)
	}

	// A moved override dirties both the old and the new week.
	s.invalidator.DatedSlotChanged(ctx, slot.ProviderID, oldDay)
	if newDay != oldDay {
		s.invalidator.DatedSlotChanged(ctx, slot.ProviderID, newDay)
	}
	return slot, nil
}

func (s *Service) DeleteOverrideSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.overrides.Get(ctx, id)
	if err != nil {
		return err
	}
	day, _, err := s.civilDay(ctx, slot.ProviderID, slot.StartTime)
	if err != nil {
		return err
	}
	if err := s.overrides.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return apperrors.Upstream("failed to delete override slot", err)
	}

	s.invalidator.DatedSlotChanged(ctx, slot.ProviderID, day)
	return nil
}

// --- Blocked slots ---

func (s *Service) CreateBlockedSlot(ctx context.Context, providerID uuid.UUID, req *model.CreateDatedSlotRequest) (*model.BlockedSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid blocked slot", err)
	}

	day, _, err := s.civilDay(ctx, providerID, req.StartTime)
	if err != nil {
		return nil, err
	}

	overlaps, err := s.blocks.ExistsOverlapping(ctx, providerID, req.StartTime.UTC(), req.EndTime.UTC(), nil)
	if err != nil {
		return nil, apperrors.Upstream("failed to check overlapping blocks", err)
	}
	if overlaps {
		return nil, apperrors.Conflict("blocked slot overlaps an existing block", nil)
	}

	slot := &model.BlockedSlot{
		ProviderID: providerID,
		StartTime:  req.StartTime.UTC(),
		EndTime:    req.EndTime.UTC(),
		Note:       req.Note,
	}
	if err := s.blocks.Create(ctx, slot); err != nil {
		return nil, apperrors.Upstream("failed to create blocked slot", err)
	}

	s.invalidator.DatedSlotChanged(ctx, providerID, day)
	return slot, nil
}

func (s *Service) UpdateBlockedSlot(ctx context.Context, id uuid.UUID, req *model.UpdateDatedSlotRequest) (*model.BlockedSlot, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid blocked slot", err)
	}

	slot, err := s.blocks.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	oldDay, loc, err := s.civilDay(ctx, slot.ProviderID, slot.StartTime)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		slot.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		slot.EndTime = req.EndTime.UTC()
	}
	if req.Note != nil {
		slot.Note = *req.Note
	}
	if !slot.StartTime.Before(slot.EndTime) {
		return nil, apperrors.Validation("start time must precede end time", nil)
	}

	overlaps, err := s.blocks.ExistsOverlapping(ctx, slot.ProviderID, slot.StartTime, slot.EndTime, &id)
	if err != nil {
		return nil, apperrors.Upstream("failed to check overlapping blocks", err)
	}
	if overlaps {
		return nil, apperrors.Conflict("blocked slot overlaps an existing block", nil)
	}

	if err := s.blocks.Update(ctx, slot); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.Upstream("failed to update blocked slot", err)
	}

	newDay, _ := timeutil.CivilFromInstant(slot.StartTime, loc)
	s.invalidator.DatedSlotChanged(ctx, slot.ProviderID, oldDay)
	if newDay != oldDay {
		s.invalidator.DatedSlotChanged(ctx, slot.ProviderID, newDay)
	}
	return slot, nil
}

func (s *Service) DeleteBlockedSlot(ctx context.Context, id uuid.UUID) error {
	slot, err := s.blocks.Get(ctx, id)
	if err != nil {
		return err
	}
	day, _, err := s.civilDay(ctx, slot.ProviderID, slot.StartTime)
	if err != nil {
		return err
	}
	if err := s.blocks.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return err
		}
		return apperrors.Upstream("failed to delete blocked slot", err)
	}

	s.invalidator.DatedSlotChanged(ctx, slot.ProviderID, day)
	return nil
}

// --- helpers ---

func parseClockRange(startStr, endStr string) (timeutil.TimeOfDay, timeutil.TimeOfDay, error) {
	start, err := timeutil.ParseClock(startStr)
	if err != nil {
		return 0, 0, apperrors.Validation("invalid start time", err)
	}
	end, err := timeutil.ParseClock(endStr)
	if err != nil {
		return 0, 0, apperrors.Validation("invalid end time", err)
	}
	if start >= end {
		return 0, 0, apperrors.Validation("start time must precede end time", nil)
	}
	return start, end, nil
}

// civilDay resolves the provider's zone and the civil day an instant falls
// on in it.
func (s *Service) civilDay(ctx context.Context, providerID uuid.UUID, instant time.Time) (timeutil.Date, *time.Location, error) {
	provider, err := s.providers.Get(ctx, providerID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return timeutil.Date{}, nil, err
		}
		return timeutil.Date{}, nil, apperrors.Upstream("failed to load provider", err)
	}
	loc, err := timeutil.LoadZone(provider.Timezone)
	if err != nil {
		return timeutil.Date{}, nil, apperrors.Validation("invalid provider timezone", err)
	}
	day, _ := timeutil.CivilFromInstant(instant, loc)
	return day, loc, nil
}
