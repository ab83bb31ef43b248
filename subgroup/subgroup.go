package subgroup

import (
	"errors"
	"fmt"

	"github.com/jsphweid/beamline/constants"
	"github.com/jsphweid/beamline/interval"
	"github.com/jsphweid/beamline/model"
	"github.com/jsphweid/beamline/timesig"
	"github.com/jsphweid/beamline/util"
	"golang.org/x/exp/slices"
)

var (
	ErrOutOfBounds = errors.New("interval starts outside the subgroup's span")
	ErrDuplicate   = errors.New("interval is already a member")
	ErrNotMember   = errors.New("interval is not a member")
)

// SubGroup owns one beat-aligned, contiguous slice of a voice's intervals
// and derives the spacing, stem and beaming state a renderer needs. The
// derived fields are refreshed by the owning voice after each mutating
// pass, not on every add/remove.
type SubGroup struct {
	intervals []*interval.RhythmicInterval
	startUnit int
	endUnit   int

	paddingFactor int
	lastInterval  *interval.RhythmicInterval
	connected     [][]*interval.RhythmicInterval
}

func New(intervals []*interval.RhythmicInterval, startUnit, endUnit int) (*SubGroup, error) {
	s := &SubGroup{startUnit: startUnit, endUnit: endUnit}
	for _, iv := range intervals {
		if err := s.Add(iv); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *SubGroup) StartUnit() int     { return s.startUnit }
func (s *SubGroup) EndUnit() int       { return s.endUnit }
func (s *SubGroup) PaddingFactor() int { return s.paddingFactor }

// LastInterval is the member with the greatest end unit, nil while empty.
func (s *SubGroup) LastInterval() *interval.RhythmicInterval { return s.lastInterval }

func (s *SubGroup) Intervals() []*interval.RhythmicInterval {
	return slices.Clone(s.intervals)
}

func (s *SubGroup) Size() int { return len(s.intervals) }

func (s *SubGroup) indexOf(iv *interval.RhythmicInterval) int {
	for i, member := range s.intervals {
		if member.Same(iv) {
			return i
		}
	}
	return -1
}

// Add inserts the interval at its place in time, so members stay ordered
// by end unit no matter the order they arrive in.
func (s *SubGroup) Add(iv *interval.RhythmicInterval) error {
	if iv.StartUnit() < s.startUnit || iv.StartUnit() > s.endUnit {
		return fmt.Errorf("%w: start %v not in [%v, %v]",
			ErrOutOfBounds, iv.StartUnit(), s.startUnit, s.endUnit)
	}
	if s.indexOf(iv) >= 0 {
		return fmt.Errorf("%w: %v", ErrDuplicate, iv)
	}
	at := 0
	for at < len(s.intervals) && s.intervals[at].EndUnit() <= iv.EndUnit() {
		at++
	}
	s.intervals = slices.Insert(s.intervals, at, iv)
	return nil
}

func (s *SubGroup) Remove(iv *interval.RhythmicInterval) error {
	i := s.indexOf(iv)
	if i < 0 {
		return fmt.Errorf("%w: %v", ErrNotMember, iv)
	}
	s.intervals = append(s.intervals[:i], s.intervals[i+1:]...)
	return nil
}

// IsLast reports whether the member interval is the subgroup's recorded
// last interval.
func (s *SubGroup) IsLast(iv *interval.RhythmicInterval) (bool, error) {
	if s.indexOf(iv) < 0 {
		return false, fmt.Errorf("%w: %v", ErrNotMember, iv)
	}
	return s.lastInterval != nil && s.lastInterval.Same(iv), nil
}

func (s *SubGroup) averageNoteHeight() (float64, bool) {
	var sum, count int
	for _, iv := range s.intervals {
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

// StemDirection picks the subgroup's own orientation: note heads sitting
// at or below the middle of the staff take an up stem. Rest-only and empty
// subgroups default to up. An owning measure may impose a direction across
// voices instead; that override lives on the voice.
func (s *SubGroup) StemDirection() model.StemDirection {
	avg, ok := s.averageNoteHeight()
	if !ok || avg <= constants.StemThresholdHeight {
		return model.StemUp
	}
	return model.StemDown
}

// CalculatePaddingFactor reserves one padding per subgroup boundary the
// slot's last interval stretches across, never less than minimum. The last
// interval is recorded on every branch.
func (s *SubGroup) CalculatePaddingFactor(ts *timesig.TimeSignature, minimum int) error {
	last := s.findLastInterval()
	s.lastInterval = last
	s.paddingFactor = minimum
	if last == nil {
		return nil
	}
	lastSlot, err := ts.LastSubgroupTouchedBy(last.EndUnit())
	if err != nil {
		return err
	}
	spread := lastSlot - ts.SubgroupOf(last)
	s.paddingFactor = util.Max(spread, minimum)
	return nil
}

func (s *SubGroup) findLastInterval() *interval.RhythmicInterval {
	var last *interval.RhythmicInterval
	for _, iv := range s.intervals {
		if last == nil || iv.EndUnit() > last.EndUnit() {
			last = iv
		}
	}
	return last
}

// ConnectedIntervals returns copies of the beam runs.
func (s *SubGroup) ConnectedIntervals() [][]*interval.RhythmicInterval {
	res := make([][]*interval.RhythmicInterval, 0, len(s.connected))
	for _, run := range s.connected {
		res = append(res, slices.Clone(run))
	}
	return res
}

// CalculateConnectedIntervals rebuilds the beam runs from scratch. Members
// are already in time order; rests cut a run, only eighths and sixteenths
// may open one, and the transition rules below decide whether a note joins
// the run in progress. Runs shorter than two notes are never emitted.
func (s *SubGroup) CalculateConnectedIntervals() {
	s.connected = nil

	var run []*interval.RhythmicInterval
	commit := func() {
		if len(run) >= 2 {
			s.connected = append(s.connected, run)
		}
		run = nil
	}

	for _, iv := range s.intervals {
		if iv.IsRest() {
			commit()
			continue
		}
		if len(run) == 0 {
			if basic := iv.Length().Basic; basic == model.Eighth || basic == model.Sixteenth {
				run = append(run, iv)
			}
			continue
		}
		if beamContinues(run[len(run)-1].Length(), iv.Length()) {
			run = append(run, iv)
		} else {
			// the rejected note does not seed the next run either
			commit()
		}
	}
	commit()
}

// beamContinues encodes which length may follow which under one beam.
func beamContinues(last, next model.Length) bool {
	switch {
	case last.Basic == model.Eighth && !last.Dotted:
		return !next.Dotted && (next.Basic == model.Eighth || next.Basic == model.Sixteenth)
	case last.Basic == model.Eighth && last.Dotted:
		return next.Basic == model.Sixteenth && !next.Dotted
	case last.Basic == model.Sixteenth && !last.Dotted:
		if next.Basic == model.Eighth {
			return true
		}
		return next.Basic == model.Sixteenth && !next.Dotted
	default:
		return false
	}
}
