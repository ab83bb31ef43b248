package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/beamline/interval"
	"github.com/jsphweid/beamline/model"
	"github.com/jsphweid/beamline/timesig"
	"github.com/jsphweid/beamline/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %w", err)
	}
	return res, nil
}

// degrees maps a pitch class onto its diatonic degree, sharps rounding
// down.
var degrees = [12]int{0, 0, 1, 1, 2, 3, 3, 4, 4, 5, 5, 6}

// NoteHeight maps a midi key onto treble staff steps: E4 (the bottom line)
// is 2, B4 (the middle line) is 6, F5 (the top line) is 10.
func NoteHeight(key uint8) int {
	octave := int(key)/12 - 1
	return (octave-4)*7 + degrees[int(key)%12]
}

type onset struct {
	unit int
	keys []uint8
}

func gatherOnsets(s *smf.SMF, ts *timesig.TimeSignature, ticksPerUnit int64) []onset {
	byUnit := make(map[int][]uint8)
	for _, track := range s.Tracks {
		var absTicks int64
		var sawNote bool
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			// velocity 0 note-ons are note-offs
			if event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				sawNote = true
				unit := int(absTicks/ticksPerUnit) + 1
				if unit > ts.TotalUnits() {
					continue
				}
				byUnit[unit] = append(byUnit[unit], key)
			}
		}
		// the first track carrying notes wins
		if sawNote {
			break
		}
	}

	units := util.GetKeys(byUnit)
	sort.Ints(units)
	var res []onset
	for _, unit := range units {
		res = append(res, onset{unit: unit, keys: byUnit[unit]})
	}
	return res
}

// ExtractIntervals quantizes the first note-carrying track of an SMF onto
// the sixteenth grid of the time signature. Notes starting on the same grid
// unit merge into one interval's note heads, gaps become rests, and
// anything past the first measure is dropped. Each onset sounds until the
// next one; spans with no playable single length are split, note first,
// rests after.
func ExtractIntervals(s *smf.SMF, ts *timesig.TimeSignature) ([]*interval.RhythmicInterval, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format: %v", s.TimeFormat)
	}
	ticksPerUnit := int64(mt.Ticks4th() / 4)
	if ticksPerUnit == 0 {
		return nil, fmt.Errorf("unsupported time format: %v", s.TimeFormat)
	}

	onsets := gatherOnsets(s, ts, ticksPerUnit)
	if len(onsets) == 0 {
		return nil, errors.New("no notes in the first measure")
	}

	var res []*interval.RhythmicInterval
	appendRests := func(start, span int) {
		for _, l := range model.LengthsForUnits(span) {
			res = append(res, interval.NewRest(l, start))
			start += l.Units()
		}
	}

	appendRests(1, onsets[0].unit-1)
	for i, on := range onsets {
		next := ts.TotalUnits() + 1
		if i+1 < len(onsets) {
			next = onsets[i+1].unit
		}
		heads := make(map[int]model.HeadStyle, len(on.keys))
		for _, key := range on.keys {
			heads[NoteHeight(key)] = model.HeadNormal
		}
		lengths := model.LengthsForUnits(next - on.unit)
		res = append(res, interval.NewNote(lengths[0], on.unit, heads))
		appendRests(on.unit+lengths[0].Units(), next-on.unit-lengths[0].Units())
	}
	return res, nil
}
