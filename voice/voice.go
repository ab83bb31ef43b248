package voice

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/beamline/interval"
	"github.com/jsphweid/beamline/model"
	"github.com/jsphweid/beamline/subgroup"
	"github.com/jsphweid/beamline/timesig"
	"github.com/jsphweid/beamline/util"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var (
	ErrNoIntervals     = errors.New("voice needs at least one interval")
	ErrExceedsMeasure  = errors.New("interval ends past the measure")
	ErrIndexOutOfRange = errors.New("index is not a valid sequence position")
	ErrInconsistent    = errors.New("interval is not assigned to any subgroup")
)

// Voice is one musical line inside a measure: a time-ordered interval
// sequence plus the derived partition of it into subgroups. The inverse
// index (interval id → subgroup slot) is kept in lockstep with subgroup
// membership; the same pass that moves a member updates its index entry.
type Voice struct {
	intervals []*interval.RhythmicInterval
	ts        *timesig.TimeSignature

	subGroups     []*subgroup.SubGroup
	subGroupIndex map[uuid.UUID]int

	stemOverride *model.StemDirection
}

// New builds a voice over a non-empty interval sequence. Every interval
// must end inside the measure.
func New(intervals []*interval.RhythmicInterval, ts *timesig.TimeSignature) (*Voice, error) {
	if len(intervals) == 0 {
		return nil, ErrNoIntervals
	}
	for _, iv := range intervals {
		if iv.EndUnit() > ts.TotalUnits() {
			return nil, fmt.Errorf("%w: %v ends at unit %v of %v",
				ErrExceedsMeasure, iv, iv.EndUnit(), ts.TotalUnits())
		}
	}
	v := &Voice{intervals: slices.Clone(intervals), ts: ts}
	if err := v.InitializeSubGroups(); err != nil {
		return nil, err
	}
	return v, nil
}

// InitializeSubGroups rebuilds the whole partition in a single pass. The
// sequence is already in time order, so each slot's members sit in one
// contiguous window of it and the cursor never backtracks. New calls this;
// it is also the recovery path after bulk edits.
func (v *Voice) InitializeSubGroups() error {
	v.subGroups = make([]*subgroup.SubGroup, 0, v.ts.NumberOfSubGroups())
	v.subGroupIndex = make(map[uuid.UUID]int, len(v.intervals))

	cursor := 0
	for slot := 0; slot < v.ts.NumberOfSubGroups(); slot++ {
		sg, err := subgroup.New(nil, v.ts.SubGroupStartUnit(slot), v.ts.SubGroupEndUnit(slot))
		if err != nil {
			return err
		}
		for cursor < len(v.intervals) && v.ts.SubgroupOf(v.intervals[cursor]) == slot {
			if err := sg.Add(v.intervals[cursor]); err != nil {
				return err
			}
			v.subGroupIndex[v.intervals[cursor].ID()] = slot
			cursor++
		}
		if err := sg.CalculatePaddingFactor(v.ts, v.minimumPadding(slot)); err != nil {
			return err
		}
		sg.CalculateConnectedIntervals()
		v.subGroups = append(v.subGroups, sg)
	}
	return nil
}

// minimumPadding is 0 for the measure's final slot (no trailing padding)
// and 1 otherwise.
func (v *Voice) minimumPadding(slot int) int {
	if slot == v.ts.NumberOfSubGroups()-1 {
		return 0
	}
	return 1
}

// RecalculateSubGroupsFrom brings the partition back in sync after the
// sequence was edited at or after index. Intervals from index on are moved
// to (or added to) the slot the time signature now puts them in, then every
// slot from the first touched one onward is swept for members that are no
// longer in the sequence before its padding and beam runs are recomputed.
func (v *Voice) RecalculateSubGroupsFrom(index int) error {
	return v.recalculateSubGroupsFrom(index, len(v.subGroups))
}

// sweepFrom is an upper bound on the first slot the reconciliation sweep
// starts at; Splice passes the slot of the interval that used to sit at
// the edit site so removed leading intervals are swept too.
func (v *Voice) recalculateSubGroupsFrom(index, sweepFrom int) error {
	if index < 0 || index >= len(v.intervals) {
		return fmt.Errorf("%w: %v with %v intervals", ErrIndexOutOfRange, index, len(v.intervals))
	}

	first := v.intervals[index]
	firstSlot, hadSlot := v.subGroupIndex[first.ID()]

	for _, iv := range v.intervals[index:] {
		slot := v.ts.SubgroupOf(iv)
		prev, assigned := v.subGroupIndex[iv.ID()]
		switch {
		case !assigned:
			if err := v.subGroups[slot].Add(iv); err != nil {
				return err
			}
		case prev != slot:
			if err := v.subGroups[prev].Remove(iv); err != nil {
				return err
			}
			if err := v.subGroups[slot].Add(iv); err != nil {
				return err
			}
		}
		v.subGroupIndex[iv.ID()] = slot
	}

	if !hadSlot {
		slot, ok := v.subGroupIndex[first.ID()]
		if !ok {
			// a caller handed us a stale index; state would stay broken
			// if this were ignored
			return fmt.Errorf("%w: %v", ErrInconsistent, first)
		}
		firstSlot = slot
	} else if slot := v.subGroupIndex[first.ID()]; slot < firstSlot {
		firstSlot = slot
	}
	if sweepFrom < firstSlot {
		firstSlot = sweepFrom
	}

	present := make(map[uuid.UUID]bool, len(v.intervals))
	for _, iv := range v.intervals {
		present[iv.ID()] = true
	}
	for slot := firstSlot; slot < len(v.subGroups); slot++ {
		sg := v.subGroups[slot]
		for _, iv := range sg.Intervals() {
			if !present[iv.ID()] {
				if err := sg.Remove(iv); err != nil {
					return err
				}
				delete(v.subGroupIndex, iv.ID())
			}
		}
		// membership for this slot is settled now
		if err := sg.CalculatePaddingFactor(v.ts, v.minimumPadding(slot)); err != nil {
			return err
		}
		sg.CalculateConnectedIntervals()
	}
	return nil
}

// Splice is the edit entrypoint: remove `remove` intervals at index, insert
// `add` in their place, and recalculate from there. The voice may not end
// up empty.
func (v *Voice) Splice(index, remove int, add ...*interval.RhythmicInterval) error {
	if index < 0 || index > len(v.intervals) || remove < 0 || index+remove > len(v.intervals) {
		return fmt.Errorf("%w: splice %v+%v with %v intervals", ErrIndexOutOfRange, index, remove, len(v.intervals))
	}
	if len(v.intervals)-remove+len(add) == 0 {
		return ErrNoIntervals
	}
	for _, iv := range add {
		if iv.EndUnit() > v.ts.TotalUnits() {
			return fmt.Errorf("%w: %v ends at unit %v of %v",
				ErrExceedsMeasure, iv, iv.EndUnit(), v.ts.TotalUnits())
		}
	}

	// where the sweep must start: the slot of the interval that used to
	// sit at the edit site, which may be earlier than anything the
	// replacement sequence touches
	sweepFrom := len(v.subGroups)
	if index < len(v.intervals) {
		if slot, ok := v.subGroupIndex[v.intervals[index].ID()]; ok {
			sweepFrom = slot
		}
	}

	tail := slices.Clone(v.intervals[index+remove:])
	v.intervals = append(v.intervals[:index:index], add...)
	v.intervals = append(v.intervals, tail...)

	from := util.Min(index, len(v.intervals)-1)
	return v.recalculateSubGroupsFrom(from, sweepFrom)
}

// AverageNoteHeight averages every note head in the voice; ok is false for
// a voice of rests.
func (v *Voice) AverageNoteHeight() (float64, bool) {
	var sum, count int
	for _, iv := range v.intervals {
		for height := range iv.NoteHeads() {
			sum += height
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

func (v *Voice) IsVoiceOfRests() bool {
	_, ok := v.AverageNoteHeight()
	return !ok
}

func (v *Voice) Intervals() []*interval.RhythmicInterval {
	return slices.Clone(v.intervals)
}

func (v *Voice) SubGroups() []*subgroup.SubGroup {
	return slices.Clone(v.subGroups)
}

func (v *Voice) SubGroupIndex() map[uuid.UUID]int {
	return maps.Clone(v.subGroupIndex)
}

func (v *Voice) SubGroupIndexOf(iv *interval.RhythmicInterval) (int, bool) {
	slot, ok := v.subGroupIndex[iv.ID()]
	return slot, ok
}

func (v *Voice) TimeSignature() *timesig.TimeSignature { return v.ts }

// SetStemDirectionOverride is for the owning measure, when its voices must
// agree on stem direction.
func (v *Voice) SetStemDirectionOverride(dir model.StemDirection) {
	v.stemOverride = &dir
}

func (v *Voice) ClearStemDirectionOverride() { v.stemOverride = nil }

func (v *Voice) StemDirectionOverride() (model.StemDirection, bool) {
	if v.stemOverride == nil {
		return model.StemUp, false
	}
	return *v.stemOverride, true
}

// StemDirection resolves the direction for one subgroup slot, honoring the
// measure-level override when set.
func (v *Voice) StemDirection(slot int) model.StemDirection {
	if v.stemOverride != nil {
		return *v.stemOverride
	}
	return v.subGroups[slot].StemDirection()
}
