package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"
)

// NoteEvent is a note on/off flattened out of an SMF file.
type NoteEvent struct {
	Offset    int64 // microseconds from the start of the file
	Pitch     uint8
	Velocity  uint8
	IsNoteOff bool
}

func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file: %w", err)
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file: %w", err)
	}

	return res, nil
}

// FlattenNotes merges every track's note on/off messages into one
// time-ordered stream. Simultaneous events order note-off first so a
// repeated pitch releases before it re-triggers.
func FlattenNotes(s *smf.SMF) []NoteEvent {
	var events []NoteEvent

	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			absTime := s.TimeAt(absTicks)
			var channel uint8
			var key uint8
			var velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, NoteEvent{
					Offset:   absTime,
					Pitch:    key,
					Velocity: velocity,
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, NoteEvent{
					Offset:    absTime,
					Pitch:     key,
					IsNoteOff: true,
				})
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Offset != events[j].Offset {
			return events[i].Offset < events[j].Offset
		}
		return events[i].IsNoteOff && !events[j].IsNoteOff
	})
	return events
}
