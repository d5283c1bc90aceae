package engine

import (
	"strings"
	"testing"

	"github.com/jsphweid/adaptune/emit"
	"github.com/jsphweid/adaptune/model"
	"github.com/jsphweid/adaptune/tuning"
	"github.com/stretchr/testify/assert"
)

func newTestEngine() (*Engine, *emit.Recorder) {
	rec := &emit.Recorder{}
	return New(rec), rec
}

func workings(snap model.Snapshot) []float64 {
	var res []float64
	for _, n := range snap.Notes {
		res = append(res, n.Working)
	}
	return res
}

func TestSingleNoteStaysPut(t *testing.T) {
	eng, _ := newTestEngine()
	eng.NoteEvent(60, 100)

	snap := eng.Snapshot()
	assert := assert.New(t)
	assert.Len(snap.Notes, 1)
	assert.Equal(60.0, snap.Notes[0].Working)
	assert.Equal(0.0, snap.Notes[0].Bend)
}

func TestMajorThirdMeanOff(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SetMeanMode(false)
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)

	snap := eng.Snapshot()
	assert := assert.New(t)
	assert.Len(snap.Notes, 2)
	assert.InDelta(0, snap.Notes[0].Bend, 1e-9)
	assert.InDelta(-0.1369, snap.Notes[1].Bend, 0.001)
}

// Mean-centering is the default: the third's correction is spread across
// both notes instead of anchoring the root.
func TestMajorThirdMeanOnByDefault(t *testing.T) {
	eng, _ := newTestEngine()
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)

	snap := eng.Snapshot()
	assert := assert.New(t)
	assert.True(snap.MeanMode)
	assert.InDelta(0.06845, snap.Notes[0].Bend, 0.0005)
	assert.InDelta(-0.06845, snap.Notes[1].Bend, 0.0005)
}

// The pairwise pass revisits notes: in a C major triad the fifth outranks
// the third, so E is re-anchored against the already-settled G.
func TestTriadRevisitsLowerRankedNotes(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SetMeanMode(false)
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)
	eng.NoteEvent(67, 100)

	snap := eng.Snapshot()
	assert := assert.New(t)
	assert.InDelta(0, snap.Notes[0].Bend, 1e-9)
	assert.InDelta(-0.1368, snap.Notes[1].Bend, 0.001)
	assert.InDelta(0.0196, snap.Notes[2].Bend, 0.001)
}

func TestCompoundIntervalReexpansion(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SetMeanMode(false)
	eng.NoteEvent(48, 100)
	eng.NoteEvent(64, 100) // major third plus an octave

	snap := eng.Snapshot()
	assert := assert.New(t)
	assert.InDelta(0, snap.Notes[0].Bend, 1e-9)
	assert.InDelta(-0.1369, snap.Notes[1].Bend, 0.001)
}

func TestMeanCenteringSumInvariant(t *testing.T) {
	eng, _ := newTestEngine()
	for _, pitch := range []int{60, 64, 67, 70} {
		eng.NoteEvent(pitch, 100)
	}

	snap := eng.Snapshot()
	var origSum, workSum float64
	for _, n := range snap.Notes {
		origSum += float64(n.Pitch)
		workSum += n.Working
	}
	assert.InDelta(t, origSum, workSum, 1e-9)
}

func TestIntensityRescalesWithoutRetune(t *testing.T) {
	eng, rec := newTestEngine()
	eng.SetMeanMode(false)
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)
	before := workings(eng.Snapshot())

	rec.Drain()
	eng.SetIntensity(0.5)

	snap := eng.Snapshot()
	assert := assert.New(t)
	assert.Equal(before, workings(snap))
	assert.InDelta(-0.06845, snap.Notes[1].Bend, 0.0005)

	// pitch block only: no thru controls, one block, one done
	lines := rec.Drain()
	for _, line := range lines {
		assert.False(strings.HasPrefix(line, "noteControl"))
	}
	assert.Equal("done", lines[len(lines)-1])
}

func TestRetunePassIsIdempotent(t *testing.T) {
	eng, _ := newTestEngine()
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)
	eng.NoteEvent(67, 100)

	first := workings(eng.Snapshot())
	assert.NoError(t, eng.SetLimit(eng.Limit()))
	second := workings(eng.Snapshot())

	assert := assert.New(t)
	assert.Len(second, len(first))
	for i := range first {
		assert.InDelta(first[i], second[i], 1e-9)
	}
}

func TestInvalidLimitKeepsTable(t *testing.T) {
	eng, rec := newTestEngine()
	eng.NoteEvent(60, 100)
	rec.Drain()

	err := eng.SetLimit(9)

	assert := assert.New(t)
	assert.Error(err)
	var invalid tuning.InvalidLimitError
	assert.ErrorAs(err, &invalid)
	assert.Equal(5, eng.Limit())
	assert.Empty(rec.Drain())
}

func TestLimitChangeRetunesHeldChord(t *testing.T) {
	eng, _ := newTestEngine()
	eng.SetMeanMode(false)
	eng.NoteEvent(60, 100)
	eng.NoteEvent(70, 100) // minor seventh

	assert := assert.New(t)
	// 5-limit: 9/5 is 17.6 cents sharp of equal temperament
	assert.InDelta(0.176, eng.Snapshot().Notes[1].Bend, 0.001)

	// 7-limit: 7/4 is 31.2 cents flat, no new note event needed
	assert.NoError(eng.SetLimit(7))
	assert.InDelta(-0.3117, eng.Snapshot().Notes[1].Bend, 0.001)
}

func TestVelocityZeroReleases(t *testing.T) {
	eng, _ := newTestEngine()
	eng.NoteEvent(60, 100)
	eng.NoteEvent(60, 0)

	assert.Equal(t, 0, eng.HeldNotes())
}

// Duplicate note-ons stack and release one at a time; see noteset.
func TestDuplicateNoteOns(t *testing.T) {
	eng, _ := newTestEngine()
	eng.NoteEvent(60, 100)
	eng.NoteEvent(60, 100)

	assert := assert.New(t)
	assert.Equal(2, eng.HeldNotes())
	eng.NoteEvent(60, 0)
	assert.Equal(1, eng.HeldNotes())
}

func TestUnheldNoteOffStillEmitsThru(t *testing.T) {
	eng, rec := newTestEngine()
	eng.NoteEvent(60, 100)
	rec.Drain()

	eng.NoteEvent(99, 0)

	assert := assert.New(t)
	assert.Equal(1, eng.HeldNotes())
	lines := rec.Drain()
	assert.Equal("noteControl 99 0", lines[0])
	assert.Equal("done", lines[len(lines)-1])
}

func TestAllNotesOff(t *testing.T) {
	eng, rec := newTestEngine()
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)
	eng.NoteEvent(67, 100)
	rec.Drain()

	eng.AllNotesOff()

	assert := assert.New(t)
	assert.Equal(0, eng.HeldNotes())
	lines := rec.Drain()
	assert.Equal("noteControl 60 0", lines[0])
	assert.Equal("noteControl 64 0", lines[1])
	assert.Equal("noteControl 67 0", lines[2])
	assert.Equal("justPitches", lines[3])
	assert.Equal("equalPitches", lines[4])
	assert.Equal("offsetOctave 0 0 0 0 0 0 0 0 0 0 0 0", lines[5])
	assert.Equal("offsetList", lines[6])
	assert.Equal("done", lines[7])
}

func TestOneDonePerEvent(t *testing.T) {
	eng, rec := newTestEngine()
	eng.NoteEvent(60, 100)
	eng.NoteEvent(64, 100)
	eng.SetIntensity(0.5)
	eng.SetMeanMode(false)
	eng.NoteEvent(60, 0)
	eng.AllNotesOff()

	var dones int
	for _, line := range rec.Drain() {
		if line == "done" {
			dones++
		}
	}
	assert.Equal(t, 6, dones)
}

func TestConfigureEmitsNothing(t *testing.T) {
	eng, rec := newTestEngine()

	assert := assert.New(t)
	assert.NoError(eng.Configure(7, 0.5, false))
	assert.Empty(rec.Drain())
	assert.Equal(7, eng.Limit())
	assert.Equal(0.5, eng.Intensity())
	assert.False(eng.MeanMode())

	assert.Error(eng.Configure(4, 1, true))
	assert.Equal(7, eng.Limit())
}

func TestParseMeanMode(t *testing.T) {
	assert := assert.New(t)
	for _, v := range []string{"true", "1", "t", "TRUE"} {
		on, err := ParseMeanMode(v)
		assert.NoError(err)
		assert.True(on)
	}
	for _, v := range []string{"false", "0", "f", "FALSE"} {
		on, err := ParseMeanMode(v)
		assert.NoError(err)
		assert.False(on)
	}
	_, err := ParseMeanMode("maybe")
	var invalid InvalidMeanModeError
	assert.ErrorAs(err, &invalid)
	assert.Equal("maybe", invalid.Value)
}
