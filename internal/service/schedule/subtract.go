package schedule

import (
	"sort"

	"github.com/jwalitptl/scheduler-api/internal/model"
	"github.com/jwalitptl/scheduler-api/pkg/timeutil"
)

// subtractInterval removes [cutStart, cutEnd) from every candidate slot and
// returns the surviving set. The five relations between a cut and a slot:
//
//	disjoint        -> slot unchanged
//	full cover      -> slot removed
//	overlaps start  -> slot start advances to cut end
//	overlaps end    -> slot end retreats to cut start
//	strictly inside -> slot splits into two derived fragments
//
// Fragments and truncated slots carry the derived variant of their original
// kind. Empty results (start >= end) are dropped. The function is pure; the
// caller folds it over a sequence of cuts so each cut sees the already
// updated set.
func subtractInterval(candidates []model.EffectiveSlot, cutStart, cutEnd timeutil.TimeOfDay) []model.EffectiveSlot {
	if cutStart >= cutEnd {
		return candidates
	}

	result := make([]model.EffectiveSlot, 0, len(candidates))
	for _, slot := range candidates {
		switch {
		// disjoint
		case cutEnd <= slot.StartTime || cutStart >= slot.EndTime:
			result = append(result, slot)

		// cut covers the whole slot
		case cutStart <= slot.StartTime && cutEnd >= slot.EndTime:
			// removed

		// cut overlaps only the start
		case cutStart <= slot.StartTime:
			trimmed := slot
			trimmed.Kind = slot.Kind.Derived()
			trimmed.StartTime = cutEnd
			if trimmed.StartTime < trimmed.EndTime {
				result = append(result, trimmed)
			}

		// cut overlaps only the end
		case cutEnd >= slot.EndTime:
			trimmed := slot
			trimmed.Kind = slot.Kind.Derived()
			trimmed.EndTime = cutStart
			if trimmed.StartTime < trimmed.EndTime {
				result = append(result, trimmed)
			}

		// cut strictly inside: two fragments
		default:
			left := slot
			left.Kind = slot.Kind.Derived()
			left.EndTime = cutStart

			right := slot
			right.Kind = slot.Kind.Derived()
			right.StartTime = cutEnd

			if left.StartTime < left.EndTime {
				result = append(result, left)
			}
			if right.StartTime < right.EndTime {
				result = append(result, right)
			}
		}
	}
	return result
}

func sortSlots(slots []model.EffectiveSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day.Before(slots[j].Day)
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}
