package model

// StemDirection is the vertical orientation of a note stem.
type StemDirection uint8

const (
	StemUp StemDirection = iota
	StemDown
)

func (d StemDirection) String() string {
	if d == StemDown {
		return "down"
	}
	return "up"
}

// HeadStyle is how a note head is drawn at a given staff height.
type HeadStyle uint8

const (
	HeadNormal HeadStyle = iota
	HeadCross
)
