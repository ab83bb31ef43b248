package model

type IntervalInput struct {
	Length    string `json:"length"`
	Dotted    bool   `json:"dotted"`
	Rest      bool   `json:"rest"`
	NoteHeads []int  `json:"note_heads"`
}

// GroupRequestBody describes one voice of a measure. Intervals are laid out
// back to back from the start of the measure.
type GroupRequestBody struct {
	Numerator   int             `json:"numerator"`
	Denominator int             `json:"denominator"`
	Intervals   []IntervalInput `json:"intervals"`
}

type IntervalResult struct {
	StartUnit int    `json:"start_unit"`
	EndUnit   int    `json:"end_unit"`
	Rest      bool   `json:"rest"`
	Length    string `json:"length"`
	Dotted    bool   `json:"dotted"`
	NoteHeads []int  `json:"note_heads"`
}

type SubGroupResult struct {
	StartUnit     int              `json:"start_unit"`
	EndUnit       int              `json:"end_unit"`
	PaddingFactor int              `json:"padding_factor"`
	StemDirection string           `json:"stem_direction"`
	Intervals     []IntervalResult `json:"intervals"`

	// Beams lists each connected run as positions into Intervals.
	Beams [][]int `json:"beams"`
}

type GroupResponse struct {
	SubGroups    []SubGroupResult `json:"sub_groups"`
	VoiceOfRests bool             `json:"voice_of_rests"`
}

type ScoreMetadata struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Year    uint   `json:"year"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
