package music

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Accidental glyphs accepted in pitch input and produced by DisplayPitch.
const (
	Sharp       = "♯"     // musical sharp sign
	Flat        = "♭"     // musical flat sign
	Natural     = "♮"     // musical natural sign
	DoubleSharp = "\U0001d12a" // musical double sharp sign
	DoubleFlat  = "\U0001d12b" // musical double flat sign
)

var accidentalReplacer = strings.NewReplacer(
	Sharp, "#",
	DoubleSharp, "x",
	Flat, "b",
	DoubleFlat, "bb",
	Natural, "",
)

// NormalizePitch rewrites a pitch name into the internal notation:
// lowercase letter names with #, b, x, and bb accidentals. Unicode
// accidental glyphs are accepted in any normalization form.
func NormalizePitch(pitch string) string {
	pitch = norm.NFC.String(pitch)
	return accidentalReplacer.Replace(strings.ToLower(pitch))
}

// DisplayPitch converts an internal pitch name into its display form,
// e.g. "cb" becomes "C♭".
func DisplayPitch(pitch string) string {
	if pitch == "" {
		return ""
	}
	out := strings.ToUpper(pitch[:1])
	switch {
	case len(pitch) > 2 && strings.HasSuffix(pitch, "bb"):
		out += DoubleFlat
	case strings.HasSuffix(pitch, "#"):
		out += Sharp
	case strings.HasSuffix(pitch, "x"):
		out += DoubleSharp
	case len(pitch) > 1 && strings.HasSuffix(pitch, "b"):
		out += Flat
	}
	return out
}

// StripAccidental splits an internal pitch name into its bare name and
// the semitone offset implied by any trailing accidental.
func StripAccidental(pitch string) (string, int) {
	if len(pitch) > 2 && strings.HasSuffix(pitch, "bb") {
		return pitch[:len(pitch)-2], -2
	}
	if len(pitch) > 1 {
		switch pitch[len(pitch)-1] {
		case '#':
			return pitch[:len(pitch)-1], 1
		case 'x':
			return pitch[:len(pitch)-1], 2
		case 'b':
			return pitch[:len(pitch)-1], -1
		}
	}
	return pitch, 0
}

// genericNoteNames returns the n0, n1, ... names for an octave of n notes.
func genericNoteNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("n%d", i)
	}
	return names
}
