// Package noteset tracks the currently sounding notes.
package noteset

import (
	"sort"

	"github.com/jsphweid/adaptune/model"
)

// Set is the mutable collection of held notes. Order only matters as the
// iteration order of the pairwise retuning pass; SortByOriginal pins it
// down before each pass.
type Set struct {
	notes []*model.Note
}

// NoteOn appends a fresh note. There is deliberately no dedup: a second
// note-on for a held pitch stacks a duplicate entry, and each note-off
// releases exactly one of them.
func (s *Set) NoteOn(pitch, velocity int) *model.Note {
	n := model.NewNote(pitch, velocity)
	s.notes = append(s.notes, n)
	return n
}

// NoteOff removes the first note (in current order) whose original pitch
// matches. Returns false when no note matched; that is not an error.
func (s *Set) NoteOff(pitch int) bool {
	for i, n := range s.notes {
		if n.Original == pitch {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Set) Clear() {
	s.notes = s.notes[:0]
}

func (s *Set) Len() int {
	return len(s.notes)
}

// All returns the underlying notes in current order. Callers mutate the
// notes in place during a pass.
func (s *Set) All() []*model.Note {
	return s.notes
}

// SortByOriginal orders ascending by original pitch. Stable, so duplicate
// pitches keep their arrival order.
func (s *Set) SortByOriginal() {
	sort.SliceStable(s.notes, func(i, j int) bool {
		return s.notes[i].Original < s.notes[j].Original
	})
}
