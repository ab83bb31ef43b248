package timesig

import (
	"testing"

	"github.com/jsphweid/beamline/interval"
	"github.com/jsphweid/beamline/model"
	"github.com/stretchr/testify/assert"
)

func TestFourFourBoundaries(t *testing.T) {
	ts, err := New(4, 4)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(16, ts.TotalUnits())
	assert.Equal(4, ts.NumberOfSubGroups())
	assert.Equal([]int{4, 8, 12, 16}, ts.SubGroupEndUnits())
	assert.Equal(1, ts.SubGroupStartUnit(0))
	assert.Equal(9, ts.SubGroupStartUnit(2))
}

func TestThreeFourBoundaries(t *testing.T) {
	ts, err := New(3, 4)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(12, ts.TotalUnits())
	assert.Equal([]int{4, 8, 12}, ts.SubGroupEndUnits())
}

func TestCompoundMetersGroupThreeEighthsPerBeat(t *testing.T) {
	assert := assert.New(t)

	sixEight, err := New(6, 8)
	assert.Nil(err)
	assert.Equal([]int{6, 12}, sixEight.SubGroupEndUnits())

	nineEight, err := New(9, 8)
	assert.Nil(err)
	assert.Equal([]int{6, 12, 18}, nineEight.SubGroupEndUnits())

	// 3/8 stays simple
	threeEight, err := New(3, 8)
	assert.Nil(err)
	assert.Equal([]int{2, 4, 6}, threeEight.SubGroupEndUnits())
}

func TestCutTimeBoundaries(t *testing.T) {
	ts, err := New(2, 2)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(16, ts.TotalUnits())
	assert.Equal([]int{8, 16}, ts.SubGroupEndUnits())
}

func TestRejectsUnsupportedSignatures(t *testing.T) {
	assert := assert.New(t)

	_, err := New(0, 4)
	assert.ErrorIs(err, ErrBadSignature)

	_, err = New(4, 3)
	assert.ErrorIs(err, ErrBadSignature)
}

func TestSubgroupOfUsesStartUnit(t *testing.T) {
	ts, _ := New(4, 4)

	assert := assert.New(t)

	quarter := model.Length{Basic: model.Quarter}
	assert.Equal(0, ts.SubgroupOf(interval.NewRest(quarter, 1)))
	assert.Equal(0, ts.SubgroupOf(interval.NewRest(quarter, 4)))
	assert.Equal(1, ts.SubgroupOf(interval.NewRest(quarter, 5)))
	assert.Equal(3, ts.SubgroupOf(interval.NewRest(quarter, 13)))

	// a half note starting on beat 1 still sits in slot 0
	assert.Equal(0, ts.SubgroupOf(interval.NewRest(model.Length{Basic: model.Half}, 1)))
}

func TestLastSubgroupTouchedBy(t *testing.T) {
	ts, _ := New(4, 4)

	assert := assert.New(t)

	slot, err := ts.LastSubgroupTouchedBy(4)
	assert.Nil(err)
	assert.Equal(0, slot)

	slot, err = ts.LastSubgroupTouchedBy(8)
	assert.Nil(err)
	assert.Equal(1, slot)

	slot, err = ts.LastSubgroupTouchedBy(16)
	assert.Nil(err)
	assert.Equal(3, slot)

	_, err = ts.LastSubgroupTouchedBy(17)
	assert.ErrorIs(err, ErrPastMeasureEnd)
}
