package midi

import (
	"testing"

	"github.com/jsphweid/beamline/timesig"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestNoteHeightOnTrebleStaff(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0, NoteHeight(60))  // C4, below the staff
	assert.Equal(2, NoteHeight(64))  // E4, bottom line
	assert.Equal(6, NoteHeight(71))  // B4, middle line
	assert.Equal(7, NoteHeight(72))  // C5
	assert.Equal(10, NoteHeight(77)) // F5, top line
}

func TestSharpsShareTheirNaturalHeight(t *testing.T) {
	assert.Equal(t, NoteHeight(60), NoteHeight(61)) // C4 and C#4
	assert.Equal(t, NoteHeight(65), NoteHeight(66)) // F4 and F#4
}

func TestExtractIntervalsRejectsSubSixteenthResolution(t *testing.T) {
	var s smf.SMF
	s.TimeFormat = smf.MetricTicks(2)
	ts, err := timesig.New(4, 4)

	assert := assert.New(t)
	assert.Nil(err)

	_, err = ExtractIntervals(&s, ts)
	assert.NotNil(err)
}
