// Package emit renders the engine's outbound messages. The wire format is
// a line protocol: one message kind per line, positional arguments,
// terminated by a bare "done" once per event.
package emit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Emitter receives every outbound message of one event, in order: the
// thru control first, then one noteMessage per held note, the diagnostic
// lists, and finally Done.
type Emitter interface {
	NoteControl(pitch, velocity int)
	NoteMessage(pitch int, bend float64)
	JustPitches(pitches []float64)
	EqualPitches(pitches []int)
	OffsetOctave(offsets [12]float64)
	OffsetList(offsets []float64)
	Done()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Line renders one protocol line.
func Line(kind string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, kind)
	for _, a := range args {
		switch v := a.(type) {
		case float64:
			parts = append(parts, formatFloat(v))
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}
	return strings.Join(parts, " ")
}

func floatArgs(vals []float64) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}

func intArgs(vals []int) []any {
	args := make([]any, len(vals))
	for i, v := range vals {
		args[i] = v
	}
	return args
}

// Writer emits protocol lines to an io.Writer, one per call.
type Writer struct {
	w io.Writer
}

var _ Emitter = (*Writer)(nil)

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (e *Writer) line(kind string, args ...any) {
	fmt.Fprintln(e.w, Line(kind, args...))
}

func (e *Writer) NoteControl(pitch, velocity int) {
	e.line("noteControl", pitch, velocity)
}

func (e *Writer) NoteMessage(pitch int, bend float64) {
	e.line("noteMessage", pitch, bend)
}

func (e *Writer) JustPitches(pitches []float64) {
	e.line("justPitches", floatArgs(pitches)...)
}

func (e *Writer) EqualPitches(pitches []int) {
	e.line("equalPitches", intArgs(pitches)...)
}

func (e *Writer) OffsetOctave(offsets [12]float64) {
	e.line("offsetOctave", floatArgs(offsets[:])...)
}

func (e *Writer) OffsetList(offsets []float64) {
	e.line("offsetList", floatArgs(offsets)...)
}

func (e *Writer) Done() {
	e.line("done")
}

// Recorder collects rendered lines for hosts that hand emission blocks
// over wholesale: the HTTP API returns them per request, tests assert on
// them.
type Recorder struct {
	Lines []string
}

var _ Emitter = (*Recorder)(nil)

func (r *Recorder) add(kind string, args ...any) {
	r.Lines = append(r.Lines, Line(kind, args...))
}

func (r *Recorder) NoteControl(pitch, velocity int) {
	r.add("noteControl", pitch, velocity)
}

func (r *Recorder) NoteMessage(pitch int, bend float64) {
	r.add("noteMessage", pitch, bend)
}

func (r *Recorder) JustPitches(pitches []float64) {
	r.add("justPitches", floatArgs(pitches)...)
}

func (r *Recorder) EqualPitches(pitches []int) {
	r.add("equalPitches", intArgs(pitches)...)
}

func (r *Recorder) OffsetOctave(offsets [12]float64) {
	r.add("offsetOctave", floatArgs(offsets[:])...)
}

func (r *Recorder) OffsetList(offsets []float64) {
	r.add("offsetList", floatArgs(offsets)...)
}

func (r *Recorder) Done() {
	r.add("done")
}

// Drain returns the collected lines and resets the recorder.
func (r *Recorder) Drain() []string {
	lines := r.Lines
	r.Lines = nil
	return lines
}
