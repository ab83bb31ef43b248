package interval

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jsphweid/beamline/model"
	"golang.org/x/exp/maps"
)

// RhythmicInterval is one note or rest placed in a measure. Subgroup
// membership is tracked by id, so two intervals with the same length and
// pitches are still distinct members.
type RhythmicInterval struct {
	id        uuid.UUID
	length    model.Length
	rest      bool
	startUnit int
	noteHeads map[int]model.HeadStyle
}

// NewNote creates a note sounding the given note heads (staff height →
// head style), starting at startUnit (1-based within the measure).
func NewNote(length model.Length, startUnit int, noteHeads map[int]model.HeadStyle) *RhythmicInterval {
	heads := make(map[int]model.HeadStyle, len(noteHeads))
	for h, style := range noteHeads {
		heads[h] = style
	}
	return &RhythmicInterval{
		id:        uuid.New(),
		length:    length,
		startUnit: startUnit,
		noteHeads: heads,
	}
}

func NewRest(length model.Length, startUnit int) *RhythmicInterval {
	return &RhythmicInterval{
		id:        uuid.New(),
		length:    length,
		rest:      true,
		startUnit: startUnit,
		noteHeads: map[int]model.HeadStyle{},
	}
}

func (r *RhythmicInterval) ID() uuid.UUID        { return r.id }
func (r *RhythmicInterval) Length() model.Length { return r.length }
func (r *RhythmicInterval) IsRest() bool         { return r.rest }
func (r *RhythmicInterval) StartUnit() int       { return r.startUnit }

// EndUnit is the last unit the interval occupies.
func (r *RhythmicInterval) EndUnit() int {
	return r.startUnit + r.length.Units() - 1
}

func (r *RhythmicInterval) NoteHeads() map[int]model.HeadStyle {
	return maps.Clone(r.noteHeads)
}

// MoveTo and Resize keep the interval's identity, so an owning voice can
// relocate it between subgroups on recalculation.
func (r *RhythmicInterval) MoveTo(startUnit int) { r.startUnit = startUnit }

func (r *RhythmicInterval) Resize(length model.Length) { r.length = length }

// Same reports whether both handles name the same interval.
func (r *RhythmicInterval) Same(other *RhythmicInterval) bool {
	return other != nil && r.id == other.id
}

func (r *RhythmicInterval) String() string {
	kind := "note"
	if r.rest {
		kind = "rest"
	}
	return fmt.Sprintf("%v %v [%v-%v]", r.length, kind, r.startUnit, r.EndUnit())
}
