package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitsOnSixteenthGrid(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(16, Length{Basic: Whole}.Units())
	assert.Equal(4, Length{Basic: Quarter}.Units())
	assert.Equal(2, Length{Basic: Eighth}.Units())
	assert.Equal(3, Length{Basic: Eighth, Dotted: true}.Units())
	assert.Equal(12, Length{Basic: Half, Dotted: true}.Units())
	assert.Equal(1, Length{Basic: Sixteenth}.Units())
}

func TestLengthsForUnitsIsGreedy(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]Length{{Whole, false}}, LengthsForUnits(16))
	assert.Equal([]Length{{Quarter, true}}, LengthsForUnits(6))
	assert.Equal([]Length{{Quarter, false}, {Sixteenth, false}}, LengthsForUnits(5))
	assert.Equal([]Length{{Half, true}, {Eighth, false}}, LengthsForUnits(14))
	assert.Nil(LengthsForUnits(0))
}

func TestParseBasicLength(t *testing.T) {
	assert := assert.New(t)

	basic, err := ParseBasicLength("eighth")
	assert.Nil(err)
	assert.Equal(Eighth, basic)

	_, err = ParseBasicLength("breve")
	assert.ErrorIs(err, ErrUnknownLength)
}
