// Package engine drives the adaptive retuning: it owns the active note
// set and the tuning configuration, runs one full pass per inbound event,
// and pushes the resulting messages through an emit.Emitter.
package engine

import (
	"github.com/jsphweid/adaptune/emit"
	"github.com/jsphweid/adaptune/model"
	"github.com/jsphweid/adaptune/noteset"
	"github.com/jsphweid/adaptune/tuning"
	"github.com/jsphweid/adaptune/util"
)

const (
	DefaultLimit     = 5
	DefaultIntensity = 1.0
)

// Engine is the single context object for all retuning state. It is not
// safe for concurrent use: hosts with more than one goroutine must
// serialize every call.
type Engine struct {
	table     tuning.Table
	limit     int
	intensity float64
	meanMode  bool
	notes     noteset.Set
	out       emit.Emitter
}

// New returns an engine with the defaults: 5-limit table, intensity 1,
// mean-centering on.
func New(out emit.Emitter) *Engine {
	table, _ := tuning.Select(DefaultLimit)
	return &Engine{
		table:     table,
		limit:     DefaultLimit,
		intensity: DefaultIntensity,
		meanMode:  true,
		out:       out,
	}
}

// Configure sets up the engine before the event stream starts. Unlike the
// Set* operations it emits nothing.
func (e *Engine) Configure(limit int, intensity float64, meanMode bool) error {
	table, err := tuning.Select(limit)
	if err != nil {
		return err
	}
	e.table = table
	e.limit = limit
	e.intensity = intensity
	e.meanMode = meanMode
	return nil
}

// NoteEvent handles one inbound note message: velocity > 0 starts a note,
// anything else releases one. The thru control goes out before any tuning
// so the instrument triggers on the original pitch immediately.
func (e *Engine) NoteEvent(pitch, velocity int) {
	if velocity > 0 {
		e.out.NoteControl(pitch, velocity)
		e.notes.NoteOn(pitch, velocity)
	} else {
		// Thru is emitted even when no held note matches the pitch.
		e.out.NoteControl(pitch, 0)
		e.notes.NoteOff(pitch)
	}
	e.retune()
	e.emitPitches()
}

// SetLimit switches the interval table and re-tunes the held chord under
// it. An unknown limit returns tuning.InvalidLimitError and leaves the
// prior table active; nothing is emitted.
func (e *Engine) SetLimit(limit int) error {
	table, err := tuning.Select(limit)
	if err != nil {
		return err
	}
	e.table = table
	e.limit = limit
	e.retune()
	e.emitPitches()
	return nil
}

func (e *Engine) SetMeanMode(on bool) {
	e.meanMode = on
	e.retune()
	e.emitPitches()
}

// SetIntensity rescales the output only: working pitches stay as the last
// pass left them and no pass runs. Intensity is deliberately unclamped.
func (e *Engine) SetIntensity(v float64) {
	e.intensity = v
	e.emitPitches()
}

// AllNotesOff releases every held note, emitting one thru control per
// note in current set order, then clears the set.
func (e *Engine) AllNotesOff() {
	for _, n := range e.notes.All() {
		e.out.NoteControl(n.Original, 0)
	}
	e.notes.Clear()
	e.emitPitches()
}

func (e *Engine) Limit() int { return e.limit }

func (e *Engine) Intensity() float64 { return e.intensity }

func (e *Engine) MeanMode() bool { return e.meanMode }

func (e *Engine) HeldNotes() int { return e.notes.Len() }

func (e *Engine) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Limit:     e.limit,
		MeanMode:  e.meanMode,
		Intensity: e.intensity,
		Notes:     []model.NoteState{},
	}
	for _, n := range e.notes.All() {
		snap.Notes = append(snap.Notes, model.NoteState{
			Pitch:    n.Original,
			Velocity: n.Velocity,
			Working:  n.Working,
			Bend:     n.Offset() * e.intensity,
		})
	}
	return snap
}

// retune recomputes the whole chord from scratch: reset, stable sort by
// original pitch, pairwise adjustment over all O(n²) pairs, optional
// mean-centering. The double loop order (outer low index, inner high
// index) is load-bearing: later pairs re-adjust notes touched by earlier
// ones, so it must never be reordered or parallelized.
func (e *Engine) retune() {
	notes := e.notes.All()
	for _, n := range notes {
		n.Working = float64(n.Original)
		n.Rank = model.NoRank
	}
	if len(notes) < 2 {
		return
	}

	e.notes.SortByOriginal()
	notes = e.notes.All()

	for i := 0; i < len(notes)-1; i++ {
		for j := i + 1; j < len(notes); j++ {
			low, high := notes[i], notes[j]
			interval := high.Original - low.Original
			entry := e.table[interval%12]

			// Adjust only when this interval outranks at least one of
			// the two notes' best correction so far.
			if entry.Rank <= low.Rank && entry.Rank <= high.Rank {
				continue
			}

			// Re-expand the within-octave deviation to the actual
			// (possibly multi-octave) interval.
			just := entry.Just - float64(interval%12) + float64(interval)

			// Move whichever note is less settled, anchored to its
			// partner's current working pitch. Ties move the high note.
			if high.Rank > low.Rank {
				low.Working = high.Working - just
			} else {
				high.Working = low.Working + just
			}
			if entry.Rank > low.Rank {
				low.Rank = entry.Rank
			}
			if entry.Rank > high.Rank {
				high.Rank = entry.Rank
			}
		}
	}

	if e.meanMode {
		e.meanCenter(notes)
	}
}

// meanCenter shifts every working pitch so the chord's average matches
// the average of the original equal-tempered pitches, spreading the
// correction across both ends of each interval.
func (e *Engine) meanCenter(notes []*model.Note) {
	diffs := make([]float64, 0, len(notes))
	for _, n := range notes {
		diffs = append(diffs, float64(n.Original)-n.Working)
	}
	mean := util.Sum(diffs) / float64(len(diffs))
	for _, n := range notes {
		n.Working += mean
	}
}

// emitPitches sends the full pitch block for every held note, in current
// set order, then the done sentinel. All notes are re-emitted on every
// event because mean-centering can move every bend at once.
func (e *Engine) emitPitches() {
	notes := e.notes.All()

	just := make([]float64, 0, len(notes))
	equal := make([]int, 0, len(notes))
	offsets := make([]float64, 0, len(notes))
	var octave [12]float64

	for _, n := range notes {
		bend := n.Offset() * e.intensity
		e.out.NoteMessage(n.Original, bend)

		just = append(just, float64(n.Original)+bend)
		equal = append(equal, n.Original)
		offsets = append(offsets, n.Offset())
		octave[((n.Original%12)+12)%12] = n.Offset()
	}

	e.out.JustPitches(just)
	e.out.EqualPitches(equal)
	e.out.OffsetOctave(octave)
	e.out.OffsetList(offsets)
	e.out.Done()
}
