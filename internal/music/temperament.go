package music

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// C0 is the default base frequency in Hertz: C in octave 0.
const C0 = 16.353

// Interval names select the ratios used to generate the notes of an
// octave. Most temperaments use the default twelve-semitone ladder;
// the meantone temperaments define their own interval orderings.
var defaultIntervals = []string{
	"perfect 1", "minor 2", "major 2", "minor 3", "major 3", "perfect 4",
	"diminished 5", "perfect 5", "minor 6", "major 6", "minor 7", "major 7",
	"perfect 8",
}

var twelveToneEqualRatios = map[string]float64{
	"perfect 1":    1,
	"minor 2":      math.Pow(2, 1.0/12),
	"augmented 1":  math.Pow(2, 1.0/12),
	"major 2":      math.Pow(2, 2.0/12),
	"augmented 2":  math.Pow(2, 3.0/12),
	"minor 3":      math.Pow(2, 3.0/12),
	"major 3":      math.Pow(2, 4.0/12),
	"augmented 3":  math.Pow(2, 5.0/12),
	"diminished 4": math.Pow(2, 4.0/12),
	"perfect 4":    math.Pow(2, 5.0/12),
	"augmented 4":  math.Pow(2, 6.0/12),
	"diminished 5": math.Pow(2, 6.0/12),
	"perfect 5":    math.Pow(2, 7.0/12),
	"augmented 5":  math.Pow(2, 8.0/12),
	"minor 6":      math.Pow(2, 8.0/12),
	"major 6":      math.Pow(2, 9.0/12),
	"augmented 6":  math.Pow(2, 10.0/12),
	"minor 7":      math.Pow(2, 10.0/12),
	"major 7":      math.Pow(2, 11.0/12),
	"augmented 7":  2,
	"diminished 8": math.Pow(2, 11.0/12),
	"perfect 8":    2,
}

var justIntonationRatios = map[string]float64{
	"perfect 1":    1,
	"minor 2":      16.0 / 15,
	"augmented 1":  16.0 / 15,
	"major 2":      9.0 / 8,
	"augmented 2":  6.0 / 5,
	"minor 3":      6.0 / 5,
	"major 3":      5.0 / 4,
	"augmented 3":  4.0 / 3,
	"diminished 4": 5.0 / 4,
	"perfect 4":    4.0 / 3,
	"augmented 4":  7.0 / 5,
	"diminished 5": 7.0 / 5,
	"perfect 5":    3.0 / 2,
	"augmented 5":  8.0 / 5,
	"minor 6":      8.0 / 5,
	"major 6":      5.0 / 3,
	"augmented 6":  16.0 / 9,
	"minor 7":      16.0 / 9,
	"major 7":      15.0 / 8,
	"augmented 7":  2,
	"diminished 8": 15.0 / 8,
	"perfect 8":    2,
}

var pythagoreanRatios = map[string]float64{
	"perfect 1":    1,
	"minor 2":      256.0 / 243,
	"augmented 1":  256.0 / 243,
	"major 2":      9.0 / 8,
	"augmented 2":  32.0 / 27,
	"minor 3":      32.0 / 27,
	"major 3":      81.0 / 64,
	"augmented 3":  4.0 / 3,
	"diminished 4": 81.0 / 64,
	"perfect 4":    4.0 / 3,
	"augmented 4":  729.0 / 512,
	"diminished 5": 729.0 / 512,
	"perfect 5":    3.0 / 2,
	"augmented 5":  128.0 / 81,
	"minor 6":      128.0 / 81,
	"major 6":      27.0 / 16,
	"augmented 6":  16.0 / 9,
	"minor 7":      16.0 / 9,
	"major 7":      243.0 / 128,
	"augmented 7":  2,
	"diminished 8": 243.0 / 128,
	"perfect 8":    2,
}

var thirdCommaMeantoneRatios = map[string]float64{
	"perfect 1":    1,
	"minor 2":      1.075693,
	"augmented 1":  1.037156,
	"major 2":      1.115656,
	"augmented 2":  1.157109,
	"minor 3":      1.200103,
	"major 3":      1.244694,
	"augmented 3":  1.290943,
	"diminished 4": 1.290943,
	"perfect 4":    1.338902,
	"augmented 4":  1.38865,
	"diminished 5": 1.440247,
	"perfect 5":    1.493762,
	"augmented 5":  1.549255,
	"minor 6":      1.60682,
	"major 6":      1.666524,
	"augmented 6":  1.728445,
	"minor 7":      1.792668,
	"major 7":      1.859266,
	"augmented 7":  1.92835,
	"diminished 8": 1.92835,
	"perfect 8":    2,
}

var thirdCommaMeantoneIntervals = []string{
	"perfect 1", "augmented 1", "minor 2", "major 2", "augmented 2",
	"minor 3", "major 3", "diminished 4", "perfect 4", "augmented 4",
	"diminished 5", "perfect 5", "augmented 5", "minor 6", "major 6",
	"augmented 6", "minor 7", "major 7", "diminished 8", "perfect 8",
}

var quarterCommaMeantoneRatios = map[string]float64{
	"perfect 1":    1,
	"minor 2":      16.0 / 15,
	"augmented 1":  25.0 / 24,
	"major 2":      9.0 / 8,
	"augmented 2":  75.0 / 64,
	"minor 3":      6.0 / 5,
	"major 3":      5.0 / 4,
	"diminished 4": 32.0 / 25,
	"augmented 3":  125.0 / 96,
	"perfect 4":    4.0 / 3,
	"augmented 4":  25.0 / 18,
	"diminished 5": 36.0 / 25,
	"perfect 5":    3.0 / 2,
	"augmented 5":  25.0 / 16,
	"minor 6":      8.0 / 5,
	"major 6":      5.0 / 3,
	"augmented 6":  125.0 / 72,
	"minor 7":      9.0 / 5,
	"major 7":      15.0 / 8,
	"diminished 8": 48.0 / 25,
	"augmented 7":  125.0 / 64,
	"perfect 8":    2,
}

var quarterCommaMeantoneIntervals = []string{
	"perfect 1", "augmented 1", "minor 2", "major 2", "augmented 2",
	"minor 3", "major 3", "diminished 4", "augmented 3", "perfect 4",
	"augmented 4", "diminished 5", "perfect 5", "augmented 5", "minor 6",
	"major 6", "augmented 6", "minor 7", "major 7", "diminished 8",
	"augmented 7", "perfect 8",
}

// Temperament is a tuning system: it defines the notes (semitones) in
// an octave and their frequencies across a span of octaves. Modern
// Western instruments mostly use equal temperament, based on the
// twelfth root of two; the traditional temperaments are based on
// frequency ratios.
type Temperament struct {
	name          string
	baseFrequency float64
	octaves       int
	octaveLength  int
	freqs         []float64
	noteNames     []string
}

// TemperamentOption adjusts temperament generation parameters.
type TemperamentOption func(*Temperament)

// WithBaseFrequency seeds note generation from the given frequency in
// Hertz instead of C0.
func WithBaseFrequency(hz float64) TemperamentOption {
	return func(t *Temperament) { t.baseFrequency = hz }
}

// WithOctaves sets how many octaves of notes to generate.
func WithOctaves(n int) TemperamentOption {
	return func(t *Temperament) {
		if n < 1 {
			n = 1
		}
		t.octaves = n
	}
}

// NewTemperament generates one of the predefined temperaments: "equal",
// "just intonation", "pythagorean", "third comma meantone", or
// "quarter comma meantone".
func NewTemperament(name string, opts ...TemperamentOption) (*Temperament, error) {
	t := &Temperament{
		name:          strings.ToLower(name),
		baseFrequency: C0,
		octaves:       8,
	}
	for _, opt := range opts {
		opt(t)
	}

	var intervals []string
	var ratios map[string]float64
	switch t.name {
	case "equal":
		intervals, ratios = defaultIntervals, twelveToneEqualRatios
	case "just intonation":
		intervals, ratios = defaultIntervals, justIntonationRatios
	case "pythagorean":
		intervals, ratios = defaultIntervals, pythagoreanRatios
	case "third comma meantone":
		intervals, ratios = thirdCommaMeantoneIntervals, thirdCommaMeantoneRatios
	case "quarter comma meantone":
		intervals, ratios = quarterCommaMeantoneIntervals, quarterCommaMeantoneRatios
	default:
		return nil, newUnknownTemperament(name)
	}

	// The interval lists close with "perfect 8", which restates the
	// octave base rather than adding a note.
	t.build(len(intervals)-1, intervals, ratios)
	return t, nil
}

// NewEqualTemperament divides the octave into the given number of equal
// steps. Twelve steps is the common Western tuning, but any count works.
func NewEqualTemperament(steps int, opts ...TemperamentOption) *Temperament {
	if steps < 1 {
		steps = 1
	}
	t := &Temperament{
		name:          fmt.Sprintf("equal_%d", steps),
		baseFrequency: C0,
		octaves:       8,
	}
	for _, opt := range opts {
		opt(t)
	}

	root := math.Pow(2, 1/float64(steps))
	t.octaveLength = steps
	t.freqs = []float64{t.baseFrequency}
	for oct := 0; oct < t.octaves; oct++ {
		for i := 1; i < steps; i++ {
			t.freqs = append(t.freqs, t.freqs[len(t.freqs)-1]*root)
		}
	}
	t.noteNames = genericNoteNames(t.octaveLength)
	return t
}

// NewCustomTemperament generates a temperament from arbitrary interval
// rules. Each ratio maps the named interval to a multiple of the octave
// base frequency; the ratios should land between 1 and 2.
func NewCustomTemperament(name string, intervals []string, ratios map[string]float64, opts ...TemperamentOption) (*Temperament, error) {
	t := &Temperament{
		name:          name,
		baseFrequency: C0,
		octaves:       8,
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(intervals) == 0 {
		return nil, newInvalidInterval("")
	}
	for _, interval := range intervals[1:] {
		if _, ok := ratios[interval]; !ok {
			return nil, newInvalidInterval(interval)
		}
	}
	t.build(len(intervals), intervals, ratios)
	return t, nil
}

// build anchors each octave on the last generated note and applies the
// interval ratios in order, skipping the unison at index 0.
func (t *Temperament) build(octaveLength int, intervals []string, ratios map[string]float64) {
	t.octaveLength = octaveLength
	t.freqs = []float64{t.baseFrequency}
	for oct := 0; oct < t.octaves; oct++ {
		c := t.freqs[len(t.freqs)-1]
		for i := 1; i < t.octaveLength; i++ {
			t.freqs = append(t.freqs, c*ratios[intervals[i]])
		}
	}
	t.noteNames = genericNoteNames(t.octaveLength)
}

// Name returns the temperament name.
func (t *Temperament) Name() string { return t.name }

// BaseFrequency returns the frequency in Hertz that seeds note generation.
func (t *Temperament) BaseFrequency() float64 { return t.baseFrequency }

// Octaves returns the number of generated octaves.
func (t *Temperament) Octaves() int { return t.octaves }

// SemitonesPerOctave returns the number of notes defined per octave.
func (t *Temperament) SemitonesPerOctave() int { return t.octaveLength }

// Freqs returns all generated frequencies in Hertz.
func (t *Temperament) Freqs() []float64 { return slices.Clone(t.freqs) }

// NoteNames returns the generic note names assigned to one octave.
func (t *Temperament) NoteNames() []string { return slices.Clone(t.noteNames) }

// NoteName returns the generic note name for a modal index, wrapping
// indexes outside the octave.
func (t *Temperament) NoteName(modalIndex int) string {
	n := len(t.noteNames)
	return t.noteNames[((modalIndex%n)+n)%n]
}

// ModalIndex resolves a generic note name to its index within the octave.
func (t *Temperament) ModalIndex(name string) (int, error) {
	i := slices.Index(t.noteNames, NormalizePitch(name))
	if i < 0 {
		return 0, newNoteNotFound(name)
	}
	return i, nil
}

// FreqByIndex returns the frequency at an index into the full frequency
// list, clamped to the generated range.
func (t *Temperament) FreqByIndex(pitchIndex int) float64 {
	if len(t.freqs) == 0 {
		return 0
	}
	if pitchIndex < 0 {
		pitchIndex = 0
	}
	if pitchIndex > len(t.freqs)-1 {
		pitchIndex = len(t.freqs) - 1
	}
	return t.freqs[pitchIndex]
}

// FreqByModalIndexAndOctave returns the frequency of the note at a
// modal index within the given octave, clamped to the generated range.
func (t *Temperament) FreqByModalIndexAndOctave(modalIndex, octave int) float64 {
	return t.FreqByIndex(octave*t.octaveLength + modalIndex)
}

// FreqByGenericNoteName returns the frequency of a named note within
// the given octave.
func (t *Temperament) FreqByGenericNoteName(name string, octave int) (float64, error) {
	i, err := t.ModalIndex(name)
	if err != nil {
		return 0, err
	}
	return t.FreqByIndex(octave*t.octaveLength + i), nil
}

// String lists the generated frequencies.
func (t *Temperament) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s temperament:\n", t.name)
	for _, f := range t.freqs {
		fmt.Fprintf(&b, "\n%0.2f", f+0.005)
	}
	return b.String()
}
