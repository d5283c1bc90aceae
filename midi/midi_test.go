package midi_test

import (
	"testing"

	"github.com/jsphweid/adaptune/midi"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func makeSMF(t *testing.T, tracks ...smf.Track) *smf.SMF {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(960)
	for _, tr := range tracks {
		if err := s.Add(tr); err != nil {
			t.Fatal(err)
		}
	}
	return s
}

func TestFlattenNotesOrdersByTime(t *testing.T) {
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOn(0, 64, 90))
	tr.Add(480, gomidi.NoteOff(0, 60))
	tr.Close(0)

	events := midi.FlattenNotes(makeSMF(t, tr))

	assert := assert.New(t)
	assert.Len(events, 3)
	assert.Equal(uint8(60), events[0].Pitch)
	assert.False(events[0].IsNoteOff)
	assert.Equal(uint8(64), events[1].Pitch)
	assert.Equal(uint8(90), events[1].Velocity)
	assert.Equal(uint8(60), events[2].Pitch)
	assert.True(events[2].IsNoteOff)
	assert.True(events[0].Offset <= events[1].Offset)
	assert.True(events[1].Offset <= events[2].Offset)
}

// A note-off that lands on the same tick as a note-on sorts first so a
// repeated pitch releases before it re-triggers.
func TestFlattenNotesOffBeforeOnAtSameTick(t *testing.T) {
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(120))
	tr.Add(0, gomidi.NoteOn(0, 60, 100))
	tr.Add(480, gomidi.NoteOn(0, 60, 100))
	tr.Add(0, gomidi.NoteOff(0, 60))
	tr.Close(0)

	events := midi.FlattenNotes(makeSMF(t, tr))

	assert := assert.New(t)
	assert.Len(events, 3)
	assert.Equal(events[1].Offset, events[2].Offset)
	assert.True(events[1].IsNoteOff)
	assert.False(events[2].IsNoteOff)
}

func TestFlattenNotesMergesTracks(t *testing.T) {
	var low smf.Track
	low.Add(0, smf.MetaTempo(120))
	low.Add(960, gomidi.NoteOn(0, 36, 100))
	low.Close(0)

	var high smf.Track
	high.Add(0, gomidi.NoteOn(1, 72, 100))
	high.Close(0)

	events := midi.FlattenNotes(makeSMF(t, low, high))

	assert := assert.New(t)
	assert.Len(events, 2)
	assert.Equal(uint8(72), events[0].Pitch)
	assert.Equal(uint8(36), events[1].Pitch)
}

func TestReadFileMissing(t *testing.T) {
	_, err := midi.ReadFile("does-not-exist.mid")
	assert.Error(t, err)
}
