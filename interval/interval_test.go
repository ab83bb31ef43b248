package interval

import (
	"testing"

	"github.com/jsphweid/beamline/model"
	"github.com/stretchr/testify/assert"
)

func TestEndUnitDerivesFromLength(t *testing.T) {
	assert := assert.New(t)

	quarter := NewRest(model.Length{Basic: model.Quarter}, 5)
	assert.Equal(8, quarter.EndUnit())

	dotted := NewRest(model.Length{Basic: model.Eighth, Dotted: true}, 1)
	assert.Equal(3, dotted.EndUnit())
}

func TestIdentityIsNotStructural(t *testing.T) {
	heads := map[int]model.HeadStyle{4: model.HeadNormal}
	a := NewNote(model.Length{Basic: model.Eighth}, 1, heads)
	b := NewNote(model.Length{Basic: model.Eighth}, 1, heads)

	assert := assert.New(t)
	assert.True(a.Same(a))
	assert.False(a.Same(b))
	assert.False(a.Same(nil))
}

func TestNoteHeadsAreCopied(t *testing.T) {
	heads := map[int]model.HeadStyle{4: model.HeadNormal}
	note := NewNote(model.Length{Basic: model.Quarter}, 1, heads)

	heads[9] = model.HeadCross
	note.NoteHeads()[11] = model.HeadCross

	assert.Equal(t, map[int]model.HeadStyle{4: model.HeadNormal}, note.NoteHeads())
}

func TestMutationKeepsIdentity(t *testing.T) {
	note := NewRest(model.Length{Basic: model.Quarter}, 1)
	id := note.ID()

	note.MoveTo(5)
	note.Resize(model.Length{Basic: model.Half})

	assert := assert.New(t)
	assert.Equal(id, note.ID())
	assert.Equal(5, note.StartUnit())
	assert.Equal(12, note.EndUnit())
}
