package timesig

import (
	"errors"
	"fmt"

	"github.com/jsphweid/beamline/constants"
	"github.com/jsphweid/beamline/interval"
	"golang.org/x/exp/slices"
)

var (
	ErrBadSignature   = errors.New("unsupported time signature")
	ErrPastMeasureEnd = errors.New("end unit is past the end of the measure")
)

// TimeSignature fixes a measure's length in sixteenth units and divides it
// into beat-aligned subgroups. It answers the two classification queries
// the grouping code runs on: which subgroup a position falls in, and which
// subgroup an end position reaches into.
type TimeSignature struct {
	numerator        int
	denominator      int
	totalUnits       int
	subGroupEndUnits []int
}

func New(numerator, denominator int) (*TimeSignature, error) {
	if numerator < 1 {
		return nil, fmt.Errorf("%w: %v/%v", ErrBadSignature, numerator, denominator)
	}
	switch denominator {
	case 2, 4, 8, 16:
	default:
		return nil, fmt.Errorf("%w: %v/%v", ErrBadSignature, numerator, denominator)
	}

	unitsPerBeat := constants.UnitsPerWholeNote / denominator

	// compound meters (6/8, 9/8, 12/8) are felt in dotted-quarter beats
	beatsPerSubGroup := 1
	if denominator == 8 && numerator > 3 && numerator%3 == 0 {
		beatsPerSubGroup = 3
	}

	t := &TimeSignature{
		numerator:   numerator,
		denominator: denominator,
		totalUnits:  numerator * unitsPerBeat,
	}
	for end := unitsPerBeat * beatsPerSubGroup; end <= t.totalUnits; end += unitsPerBeat * beatsPerSubGroup {
		t.subGroupEndUnits = append(t.subGroupEndUnits, end)
	}
	return t, nil
}

func (t *TimeSignature) Numerator() int         { return t.numerator }
func (t *TimeSignature) Denominator() int       { return t.denominator }
func (t *TimeSignature) TotalUnits() int        { return t.totalUnits }
func (t *TimeSignature) NumberOfSubGroups() int { return len(t.subGroupEndUnits) }

func (t *TimeSignature) SubGroupEndUnits() []int {
	return slices.Clone(t.subGroupEndUnits)
}

// SubGroupStartUnit is 1 for slot 0, one past the previous slot's end
// otherwise.
func (t *TimeSignature) SubGroupStartUnit(slot int) int {
	if slot == 0 {
		return 1
	}
	return t.subGroupEndUnits[slot-1] + 1
}

func (t *TimeSignature) SubGroupEndUnit(slot int) int {
	return t.subGroupEndUnits[slot]
}

// SubgroupOf reports the slot whose span contains the interval's start.
func (t *TimeSignature) SubgroupOf(iv *interval.RhythmicInterval) int {
	return t.subgroupOfUnit(iv.StartUnit())
}

// LastSubgroupTouchedBy reports the last slot covered by something ending
// at endUnit.
func (t *TimeSignature) LastSubgroupTouchedBy(endUnit int) (int, error) {
	if endUnit > t.totalUnits {
		return 0, fmt.Errorf("%w: %v > %v", ErrPastMeasureEnd, endUnit, t.totalUnits)
	}
	return t.subgroupOfUnit(endUnit), nil
}

func (t *TimeSignature) subgroupOfUnit(unit int) int {
	for i, end := range t.subGroupEndUnits {
		if unit <= end {
			return i
		}
	}
	return len(t.subGroupEndUnits) - 1
}

func (t *TimeSignature) String() string {
	return fmt.Sprintf("%v/%v", t.numerator, t.denominator)
}
