package schedule

import (
	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// ComputeFinalSlots merges one week's raw slot definitions into effective
// per-day slots. Pure and idempotent on a fixed input.
//
// Per day:
//  1. An override day discards every template occurrence; the override(s)
//     become the merge set, otherwise the template occurrences do.
//  2. Each block is folded into the merge set sequentially, so several
//     blocks compound against already-trimmed slots.
//  3. The blocks themselves are appended as BLOCKED entries; they stay
//     visible for audit even though their time is already carved out.
func ComputeFinalSlots(raw *model.RawWeeklySlotSet) []model.EffectiveSlot {
	if raw == nil {
		return nil
	}

	days := timeutil.WeekDates(raw.WeekStart)

	var out []model.EffectiveSlot
	for _, day := range days {
		overrides := rawForDay(raw.Overrides, day)
		blocks := rawForDay(raw.Blocks, day)
		workings := rawForDay(raw.Workings, day)

		var merged []model.EffectiveSlot
		if len(overrides) > 0 {
			merged = effectiveFromRaw(overrides, model.SlotKindOverride)
		} else {
			merged = effectiveFromRaw(workings, model.SlotKindOriginalWorking)
		}

		for _, block := range blocks {
			merged = subtractInterval(merged, block.StartTime, block.EndTime)
		}

		merged = append(merged, effectiveFromRaw(blocks, model.SlotKindBlocked)...)
		sortSlots(merged)
		out = append(out, merged...)
	}
	return out
}

func rawForDay(slots []model.RawSlot, day timeutil.Date) []model.RawSlot {
	var matched []model.RawSlot
	for _, s := range slots {
		if s.Day == day {
			matched = append(matched, s)
		}
	}
	return matched
}

func effectiveFromRaw(slots []model.RawSlot, kind model.SlotKind) []model.EffectiveSlot {
	out := make([]model.EffectiveSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, model.EffectiveSlot{
			Kind:      kind,
			Day:       s.Day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Meta: model.SlotMeta{
				SourceID: s.ID,
				Note:     s.Note,
			},
		})
	}
	return out
}
