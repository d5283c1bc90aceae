package model

// NoRank marks a note that no interval correction has touched yet.
const NoRank = -1

// Note is one currently sounding note. Original is the MIDI note number
// that triggered it and never changes; Working accumulates the just
// corrections of the current pass. Rank is the highest consonance rank
// applied to the note so far (NoRank before any correction).
type Note struct {
	Original int
	Working  float64
	Rank     int
	Velocity int
}

func NewNote(pitch, velocity int) *Note {
	return &Note{
		Original: pitch,
		Working:  float64(pitch),
		Rank:     NoRank,
		Velocity: velocity,
	}
}

// Offset is the correction the last pass produced, before intensity
// scaling.
func (n *Note) Offset() float64 {
	return n.Working - float64(n.Original)
}

type NoteState struct {
	Pitch    int     `json:"pitch"`
	Velocity int     `json:"velocity"`
	Working  float64 `json:"working"`
	Bend     float64 `json:"bend"`
}

// Snapshot is a read-only view of the engine between events.
type Snapshot struct {
	Limit     int         `json:"limit"`
	MeanMode  bool        `json:"mean_mode"`
	Intensity float64     `json:"intensity"`
	Notes     []NoteState `json:"notes"`
}
