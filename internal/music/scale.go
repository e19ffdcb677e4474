package music

import "slices"

// Scale is a selection of notes in an octave, built by walking a
// half-step pattern from a starting note.
type Scale struct {
	semitones    int
	noteNames    []string
	notes        []string
	octaveDeltas []int
}

// NewScale builds a scale from a half-step pattern and a starting index
// into the octave. The number of semitones in the underlying octave is
// the sum of the pattern, e.g. [2 2 1 2 2 2 1] spans 12. A nil or empty
// pattern yields the 12-semitone chromatic scale.
func NewScale(halfStepsPattern []int, startingIndex int) *Scale {
	if len(halfStepsPattern) == 0 {
		return NewChromaticScale(12, startingIndex)
	}
	semitones := 0
	for _, step := range halfStepsPattern {
		semitones += step
	}
	return buildScaleLadder(halfStepsPattern, startingIndex, semitones)
}

// NewChromaticScale builds the scale that includes every note of an
// octave with the given number of semitones.
func NewChromaticScale(numberOfSemitones, startingIndex int) *Scale {
	if numberOfSemitones < 1 {
		numberOfSemitones = 1
	}
	pattern := make([]int, numberOfSemitones)
	for i := range pattern {
		pattern[i] = 1
	}
	return buildScaleLadder(pattern, startingIndex, numberOfSemitones)
}

func buildScaleLadder(pattern []int, startingIndex, semitones int) *Scale {
	s := &Scale{
		semitones: semitones,
		noteNames: genericNoteNames(semitones),
	}
	i := ((startingIndex % semitones) + semitones) % semitones
	octave := 0
	s.notes = []string{s.noteNames[i]}
	s.octaveDeltas = []int{octave}
	for _, step := range pattern {
		i += step
		if i >= semitones {
			octave++
			i -= semitones
		}
		s.notes = append(s.notes, s.noteNames[i])
		s.octaveDeltas = append(s.octaveDeltas, octave)
	}
	return s
}

// NumberOfSemitones returns the number of notes in the underlying octave.
func (s *Scale) NumberOfSemitones() int { return s.semitones }

// NoteNames returns the generic note names of the underlying octave.
func (s *Scale) NoteNames() []string { return slices.Clone(s.noteNames) }

// Notes returns the notes in the scale. A non-nil pitchFormat replaces
// the generic names; it must provide one name per semitone.
func (s *Scale) Notes(pitchFormat []string) ([]string, error) {
	if pitchFormat == nil {
		return slices.Clone(s.notes), nil
	}
	if len(pitchFormat) != s.semitones {
		return nil, newInvalidNoteNames("pitch format does not match number of semitones")
	}
	notes := make([]string, len(s.notes))
	for i, note := range s.notes {
		notes[i] = pitchFormat[slices.Index(s.noteNames, note)]
	}
	return notes, nil
}

// NotesAndOctaveDeltas returns the notes in the scale together with the
// octave offset of each note relative to the starting note. Notes that
// wrap past the top of the octave carry a delta of 1.
func (s *Scale) NotesAndOctaveDeltas(pitchFormat []string) ([]string, []int, error) {
	notes, err := s.Notes(pitchFormat)
	if err != nil {
		return nil, nil, err
	}
	return notes, slices.Clone(s.octaveDeltas), nil
}
