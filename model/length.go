package model

import (
	"errors"
	"fmt"
)

// BasicLength is a note duration without dotting. The unit grid is
// sixteenths, so a whole note spans 16 units and dotted sixteenths are not
// representable.
type BasicLength uint8

const (
	Whole BasicLength = iota
	Half
	Quarter
	Eighth
	Sixteenth
)

func (b BasicLength) Units() int {
	switch b {
	case Whole:
		return 16
	case Half:
		return 8
	case Quarter:
		return 4
	case Eighth:
		return 2
	default:
		return 1
	}
}

func (b BasicLength) String() string {
	switch b {
	case Whole:
		return "whole"
	case Half:
		return "half"
	case Quarter:
		return "quarter"
	case Eighth:
		return "eighth"
	default:
		return "sixteenth"
	}
}

var ErrUnknownLength = errors.New("unknown length name")

func ParseBasicLength(s string) (BasicLength, error) {
	switch s {
	case "whole":
		return Whole, nil
	case "half":
		return Half, nil
	case "quarter":
		return Quarter, nil
	case "eighth":
		return Eighth, nil
	case "sixteenth":
		return Sixteenth, nil
	}
	return Whole, fmt.Errorf("%w: %v", ErrUnknownLength, s)
}

// Length is a basic duration with an optional dot.
type Length struct {
	Basic  BasicLength
	Dotted bool
}

func (l Length) Units() int {
	units := l.Basic.Units()
	if l.Dotted {
		units += units / 2
	}
	return units
}

func (l Length) String() string {
	if l.Dotted {
		return l.Basic.String() + "."
	}
	return l.Basic.String()
}

// lengthTable is ordered longest first for greedy decomposition.
var lengthTable = []Length{
	{Whole, false},
	{Half, true},
	{Half, false},
	{Quarter, true},
	{Quarter, false},
	{Eighth, true},
	{Eighth, false},
	{Sixteenth, false},
}

// LengthsForUnits decomposes a span of units into playable lengths,
// longest first.
func LengthsForUnits(units int) []Length {
	var res []Length
	for units > 0 {
		for _, l := range lengthTable {
			if l.Units() <= units {
				res = append(res, l)
				units -= l.Units()
				break
			}
		}
	}
	return res
}
