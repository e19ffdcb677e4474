package music

import (
	"fmt"
	"slices"
	"strings"
)

// Predefined modes, defined by the number of semitones between the
// notes of the scale.
var musicalModes = map[string][]int{
	// 12 notes in an octave
	"chromatic": {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	// 8 notes in an octave
	"algerian":   {2, 1, 2, 1, 1, 1, 3, 1},
	"diminished": {2, 1, 2, 1, 2, 1, 2, 1},
	"spanish":    {1, 2, 1, 1, 1, 2, 2, 2},
	"octatonic":  {1, 2, 1, 2, 1, 2, 1, 2},
	"bebop":      {1, 1, 1, 2, 2, 1, 2, 2},
	// 7 notes in an octave
	"major":          {2, 2, 1, 2, 2, 2, 1},
	"harmonic major": {2, 2, 1, 2, 1, 3, 1},
	"minor":          {2, 1, 2, 2, 1, 2, 2},
	"natural minor":  {2, 1, 2, 2, 1, 2, 2},
	"harmonic minor": {2, 1, 2, 2, 1, 3, 1},
	"melodic minor":  {2, 1, 2, 2, 2, 2, 1},
	// "Church" modes
	"ionian":         {2, 2, 1, 2, 2, 2, 1},
	"dorian":         {2, 1, 2, 2, 2, 1, 2},
	"phrygian":       {1, 2, 2, 2, 1, 2, 2},
	"lydian":         {2, 2, 2, 1, 2, 2, 1},
	"mixolydian":     {2, 2, 1, 2, 2, 1, 2},
	"aeolian":        {2, 1, 2, 2, 1, 2, 2},
	"locrian":        {1, 2, 2, 1, 2, 2, 2},
	"jazz minor":     {2, 1, 2, 2, 2, 2, 1},
	"arabic":         {2, 2, 1, 1, 2, 2, 2},
	"byzantine":      {1, 3, 1, 2, 1, 3, 1},
	"enigmatic":      {1, 3, 2, 2, 2, 1, 1},
	"ethiopian":      {2, 1, 2, 2, 1, 2, 2},
	"geez":           {2, 1, 2, 2, 1, 2, 2},
	"hindu":          {2, 2, 1, 2, 1, 2, 2},
	"hungarian":      {2, 1, 3, 1, 1, 3, 1},
	"maqam":          {1, 3, 1, 2, 1, 3, 1},
	"romanian minor": {2, 1, 3, 1, 2, 1, 2},
	"spanish gypsy":  {1, 3, 1, 2, 1, 2, 2},
	// 6 notes in an octave
	"minor blues": {3, 2, 1, 1, 3, 2},
	"major blues": {2, 1, 1, 3, 2, 2},
	"whole tone":  {2, 2, 2, 2, 2, 2},
	// 5 notes in an octave
	"major pentatonic": {2, 2, 3, 2, 3},
	"minor pentatonic": {3, 2, 2, 3, 2},
	"chinese":          {4, 2, 1, 4, 1},
	"egyptian":         {2, 3, 2, 3, 2},
	"hirajoshi":        {1, 4, 1, 4, 2},
	"in":               {1, 4, 2, 1, 4},
	"minyo":            {3, 2, 2, 3, 2},
	"fibonacci":        {1, 1, 2, 3, 5},
}

// These maqam mode names imply a specific key.
var maqamKeyOverrides = map[string]string{
	"hijaz kar":       "c",
	"hijaz kar maqam": "c",
	"shahnaz":         "d",
	"maqam mustar":    "eb",
	"maqam jiharkah":  "f",
	"shadd araban":    "g",
	"suzidil":         "a",
	"ajam":            "bb",
	"ajam maqam":      "bb",
}

// Letter notation only applies to temperaments with 12 semitones.
const pitchLetters = "cdefgab"

var (
	scalarModeNumberNames = []string{"1", "2", "3", "4", "5", "6", "7"}
	solfegeNames          = []string{"do", "re", "me", "fa", "sol", "la", "ti"}
	eastIndianNames       = []string{"sa", "re", "ga", "ma", "pa", "dha", "ni"}

	notesSharp = []string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"}
	notesFlat  = []string{"c", "db", "d", "eb", "e", "f", "gb", "g", "ab", "a", "bb", "b"}
)

// modeMapping names the major/minor key signature a mode-and-key pair
// shares its accidentals with.
type modeMapping struct {
	mode string
	key  string
}

var modeMapperSimple = map[string]string{
	"ionian":         "major",
	"aeolian":        "minor",
	"natural minor":  "minor",
	"harmonic minor": "minor",
	"major":          "major",
	"minor":          "minor",
}

var modeMapperByKey = map[string]map[string]modeMapping{
	"dorian": {
		"c": {"major", "bb"}, "d": {"major", "c"}, "e": {"major", "d"},
		"f": {"minor", "c"}, "g": {"major", "f"}, "a": {"major", "g"},
		"b": {"major", "a"}, "c#": {"major", "b"}, "d#": {"major", "c#"},
		"f#": {"major", "e"}, "g#": {"major", "f#"}, "a#": {"major", "ab"},
		"db": {"minor", "ab"}, "eb": {"minor", "bb"}, "gb": {"minor", "c#"},
		"ab": {"minor", "eb"}, "bb": {"minor", "f"},
	},
	"phrygian": {
		"c": {"major", "ab"}, "d": {"major", "bb"}, "e": {"major", "c"},
		"f": {"major", "db"}, "g": {"minor", "c"}, "a": {"major", "f"},
		"b": {"major", "g"}, "c#": {"major", "a"}, "d#": {"major", "b"},
		"f#": {"major", "d"}, "g#": {"major", "e"}, "a#": {"major", "f#"},
		"db": {"major", "a"}, "eb": {"minor", "ab"}, "gb": {"major", "d"},
		"ab": {"major", "e"}, "bb": {"minor", "eb"},
	},
	"lydian": {
		"c": {"major", "g"}, "d": {"major", "a"}, "e": {"major", "b"},
		"f": {"major", "c"}, "g": {"major", "d"}, "a": {"major", "e"},
		"b": {"major", "f#"}, "c#": {"major", "ab"}, "d#": {"major", "bb"},
		"f#": {"major", "c#"}, "g#": {"minor", "c"}, "a#": {"major", "bb"},
		"db": {"minor", "c"}, "eb": {"minor", "g"}, "gb": {"minor", "bb"},
		"ab": {"minor", "c"}, "bb": {"minor", "d"},
	},
	"mixolydian": {
		"c": {"major", "f"}, "d": {"major", "g"}, "e": {"major", "a"},
		"f": {"major", "bb"}, "g": {"major", "c"}, "a": {"major", "d"},
		"b": {"major", "e"}, "c#": {"major", "f#"}, "d#": {"major", "ab"},
		"f#": {"major", "b"}, "g#": {"major", "f"}, "a#": {"minor", "c"},
		"db": {"minor", "eb"}, "eb": {"minor", "f"}, "gb": {"minor", "ab"},
		"ab": {"minor", "bb"}, "bb": {"minor", "c"},
	},
	"locrian": {
		"c": {"major", "db"}, "d": {"minor", "c"}, "e": {"major", "f"},
		"f": {"major", "gb"}, "g": {"major", "ab"}, "a": {"major", "bb"},
		"b": {"major", "c"}, "c#": {"major", "d"}, "d#": {"minor", "c#"},
		"f#": {"major", "g"}, "g#": {"major", "a"}, "a#": {"major", "b"},
		"db": {"major", "d"}, "eb": {"minor", "db"}, "gb": {"major", "f#"},
		"ab": {"minor", "gb"}, "bb": {"minor", "ab"},
	},
}

// Key signatures that are spelled with sharps; everything else defaults
// to flats.
var preferSharps = map[string]bool{
	"g major": true, "e minor": true, "d major": true, "b minor": true,
	"e major": true, "c# minor": true, "db minor": true, "b major": true,
	"g# minor": true, "a major": true, "f# minor": true, "gb minor": true,
	"c# major": true, "a# minor": true, "f# major": true, "d minor": true,
}

// The equivalences and conversions are only valid for equal temperament.
var equivalentFlats = map[string]string{
	"c#": "db", "d#": "eb", "f#": "gb", "g#": "ab", "a#": "bb",
}

var equivalentSharps = map[string]string{
	"db": "c#", "eb": "d#", "gb": "f#", "ab": "g#", "bb": "a#",
}

var equivalents = map[string][]string{
	"ax": {"b", "cb"}, "a#": {"bb"}, "a": {"bbb", "gx"}, "ab": {"g#"},
	"abb": {"g", "fx"}, "bx": {"c#"}, "b#": {"c", "dbb"}, "b": {"b", "cb", "ax"},
	"bb": {"a#"}, "bbb": {"a", "gx"}, "cx": {"d"}, "c#": {"db"},
	"c": {"c", "dbb", "b#"}, "cb": {"b"}, "cbb": {"bb", "a#"}, "dx": {"e", "fb"},
	"d#": {"eb", "fbb"}, "d": {"ebb", "cx"}, "db": {"c#", "bx"}, "dbb": {"c", "b#"},
	"ex": {"f#", "gb"}, "e#": {"f", "gbb"}, "e": {"e", "fb", "dx"},
	"eb": {"d#", "fbb"}, "ebb": {"d", "cx"}, "fx": {"g", "abb"},
	"f#": {"gb", "ex"}, "f": {"f", "e#", "gbb"}, "fb": {"e", "dx"},
	"fbb": {"eb", "d#"}, "gx": {"a", "bbb"}, "g#": {"ab"}, "g": {"abb", "fx"},
	"gb": {"f#", "ex"}, "gbb": {"f", "e#"},
}

var convertDown = map[string]string{
	"abb": "g", "ab": "g#", "a": "gx", "bb": "a#", "bbb": "a", "b": "ax",
	"c": "b#", "cb": "b", "c#": "bx", "d": "cx", "dbb": "c", "db": "c#",
	"e": "dx", "ebb": "d", "eb": "d#", "fb": "e", "f": "e#", "f#": "ex",
	"g": "fx", "gb": "f#", "gbb": "f",
}

var convertUp = map[string]string{
	"a#": "bb", "a": "bbb", "ab": "g#", "bb": "a#", "bbb": "a", "b#": "c",
	"b": "cb", "c#": "db", "c": "dbb", "db": "c#", "d#": "eb", "d": "ebb",
	"eb": "d#", "e#": "f", "e": "fb", "f#": "gb", "f": "gbb", "g#": "ab",
	"g": "abb", "gb": "f#",
}

// KeySignature is a key and mode pair projected onto a temperament. It
// fixes which notes are in the scale and how pitch names are spelled.
//
// Letter notation, solfege, and mode numbers are only available for
// temperaments with 12 semitones; other temperaments use the generic
// n0, n1, ... names throughout.
type KeySignature struct {
	key       string
	mode      string
	semitones int
	halfSteps []int

	// scale includes the first note of the next octave as its final
	// entry; accessors trim it.
	scale []string

	noteNames         []string
	solfege           []string
	eastIndianSolfege []string
	modeNumbers       []string
	customNames       []string
}

// NewKeySignature builds a key signature for a 12-semitone temperament
// from a key letter and a named mode.
func NewKeySignature(key, mode string) (*KeySignature, error) {
	ks := &KeySignature{
		semitones: 12,
		noteNames: genericNoteNames(12),
	}

	mode = strings.ToLower(mode)
	if k, ok := maqamKeyOverrides[mode]; ok {
		key = k
		mode = "maqam"
	}
	steps, ok := musicalModes[mode]
	if !ok {
		return nil, newUnknownMode(mode)
	}
	ks.mode = mode
	ks.halfSteps = slices.Clone(steps)

	resolved, err := resolveKey(key, ks.noteNames)
	if err != nil {
		return nil, err
	}
	ks.key = resolved

	ks.buildScale()
	ks.solfege = ks.modeMapList(solfegeNames)
	ks.eastIndianSolfege = ks.modeMapList(eastIndianNames)
	ks.modeNumbers = ks.modeMapList(scalarModeNumberNames)
	return ks, nil
}

// NewKeySignatureFromHalfSteps builds a key signature from an explicit
// half-step pattern, for temperaments of any size. A nil pattern yields
// the chromatic mode. The pattern is padded or trimmed at its final
// step so that it spans exactly one octave.
func NewKeySignatureFromHalfSteps(key string, halfSteps []int, numberOfSemitones int) (*KeySignature, error) {
	if numberOfSemitones < 1 {
		return nil, newInvalidMode("temperament must define at least one semitone")
	}
	ks := &KeySignature{
		semitones: numberOfSemitones,
		mode:      "custom",
		noteNames: genericNoteNames(numberOfSemitones),
	}

	steps, err := normalizeHalfSteps(halfSteps, numberOfSemitones)
	if err != nil {
		return nil, err
	}
	ks.halfSteps = steps

	if numberOfSemitones == 12 {
		resolved, err := resolveKey(key, ks.noteNames)
		if err != nil {
			return nil, err
		}
		ks.key = resolved
		ks.buildScale()
		ks.solfege = ks.modeMapList(solfegeNames)
		ks.eastIndianSolfege = ks.modeMapList(eastIndianNames)
		ks.modeNumbers = ks.modeMapList(scalarModeNumberNames)
		return ks, nil
	}

	// Generic notation: any key outside n0..n<k> falls back to n0.
	key = NormalizePitch(key)
	if !slices.Contains(ks.noteNames, key) {
		key = "n0"
	}
	ks.key = key
	ks.buildScale()
	return ks, nil
}

// resolveKey maps user key input to a letter name, accepting letter
// names, the virtual keys cb/fb/e#/b#, double accidentals with an
// equal-temperament equivalent, and generic note names.
func resolveKey(key string, noteNames []string) (string, error) {
	key = NormalizePitch(key)
	if slices.Contains(notesSharp, key) || slices.Contains(notesFlat, key) {
		return key, nil
	}
	switch key {
	case "cb", "fb", "e#", "b#":
		return key, nil
	}
	if strings.Contains(key, "x") || strings.Contains(key, "bb") {
		if eq, ok := equivalents[key]; ok {
			return eq[0], nil
		}
	}
	if i := slices.Index(noteNames, key); i >= 0 {
		return notesSharp[i], nil
	}
	return "", newUnknownKey(key)
}

func normalizeHalfSteps(steps []int, semitones int) ([]int, error) {
	if len(steps) == 0 {
		out := make([]int, semitones)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}
	out := slices.Clone(steps)
	if len(out) > semitones {
		out = out[:semitones]
	}
	sum := 0
	for _, s := range out {
		if s < 1 {
			return nil, newInvalidMode(fmt.Sprintf("half step %d must be positive", s))
		}
		sum += s
	}
	if sum < semitones {
		out[len(out)-1] += semitones - sum
	}
	if sum > semitones {
		out[len(out)-1] -= sum - semitones
		if out[len(out)-1] < 1 {
			out = out[:len(out)-1]
		}
	}
	return out, nil
}

// prefersSharps reports whether this key and mode are spelled with
// sharps. Modes map to the major or minor signature they share
// accidentals with; the default is flats.
func (ks *KeySignature) prefersSharps() bool {
	if m, ok := modeMapperSimple[ks.mode]; ok {
		return preferSharps[ks.key+" "+m]
	}
	if byKey, ok := modeMapperByKey[ks.mode]; ok {
		if m, ok := byKey[ks.key]; ok {
			return preferSharps[m.key+" "+m.mode]
		}
	}
	return false
}

// buildScale walks the half-step pattern from the key. For scales of up
// to eight notes the letter spelling is then repaired: no skipped
// letters in eight-note scales, and no repeated letter names.
func (ks *KeySignature) buildScale() {
	if ks.semitones != 12 {
		i := slices.Index(ks.noteNames, ks.key)
		if i < 0 {
			i = 0
		}
		scale := []string{ks.key}
		for _, step := range ks.halfSteps {
			i += step
			scale = append(scale, ks.noteNames[i%ks.semitones])
		}
		scale[len(scale)-1] = scale[0]
		ks.scale = scale
		return
	}

	var source []string
	i := 0
	if ks.prefersSharps() {
		source = notesSharp
		if j := slices.Index(source, ks.key); j >= 0 {
			i = j
		} else if eq, ok := equivalentSharps[ks.key]; ok {
			i = slices.Index(source, eq)
		}
	} else {
		source = notesFlat
		if j := slices.Index(source, ks.key); j >= 0 {
			i = j
		} else if eq, ok := equivalentFlats[ks.key]; ok {
			i = slices.Index(source, eq)
		}
	}

	// Virtual keys have no entry of their own in either notation.
	switch ks.key {
	case "e#":
		i = slices.Index(source, "f")
	case "b#":
		i = slices.Index(source, "c")
	case "cb":
		i = slices.Index(source, "b")
	case "fb":
		i = slices.Index(source, "e")
	}

	scale := []string{ks.key}
	for _, step := range ks.halfSteps {
		i += step
		scale = append(scale, source[i%12])
	}

	if len(scale) < 9 {
		if !ks.prefersSharps() && strings.Contains(ks.key, "#") {
			convertScaleToSharps(scale)
		}

		// Eight-note scales must not skip letters.
		if len(scale) == 8 {
			for j := 0; j < len(scale)-1; j++ {
				i1 := strings.IndexByte(pitchLetters, scale[j][0])
				i2 := strings.IndexByte(pitchLetters, scale[j+1][0])
				if i2 < i1 {
					i2 += 7
				}
				if i2-i1 > 1 {
					if down, ok := convertDown[scale[j+1]]; ok {
						scale[j+1] = down
					}
				}
			}
		}

		// And no letter may repeat.
		for j := 0; j < len(scale)-1; j++ {
			if scale[j][0] != scale[j+1][0] {
				continue
			}
			if j == 0 {
				if up, ok := convertUp[scale[j+1]]; ok {
					scale[j+1] = up
				}
				continue
			}
			current := scale[j]
			if down, ok := convertDown[scale[j]]; ok {
				current = down
			}
			// Respelling the current note must not collide with the
			// previous letter; otherwise respell the next note instead.
			if current[0] != scale[j-1][0] {
				scale[j] = current
			} else if up, ok := convertUp[scale[j+1]]; ok {
				scale[j+1] = up
			}
		}
	} else if strings.Contains(ks.key, "#") {
		convertScaleToSharps(scale)
	}

	scale[len(scale)-1] = scale[0]
	ks.scale = scale
}

func convertScaleToSharps(scale []string) {
	for i := range scale {
		if strings.Contains(scale[i], "b") {
			if eq, ok := equivalentSharps[scale[i]]; ok {
				scale[i] = eq
			}
		}
	}
}

// modeMapList maps the scale onto a list of seven names (solfege,
// mode numbers) keyed by letter. Scales longer than seven notes repeat
// letters, so accidentals carry over onto the mapped names.
func (ks *KeySignature) modeMapList(source []string) []string {
	out := make([]string, 0, len(ks.scale))
	offset := strings.IndexByte(pitchLetters, ks.scale[0][0])
	for i := range ks.scale {
		j := strings.IndexByte(pitchLetters, ks.scale[i][0]) - offset
		if j < 0 {
			j += len(source)
		}
		if ks.ModeLength() < 8 {
			out = append(out, source[j])
		} else {
			switch _, a := StripAccidental(ks.scale[i]); a {
			case 0:
				out = append(out, source[j])
			case 1:
				out = append(out, source[j]+"#")
			case -1:
				out = append(out, source[j]+"b")
			case 2:
				out = append(out, source[j]+"x")
			case -2:
				out = append(out, source[j]+"bb")
			}
		}
	}
	out[len(out)-1] = out[0]
	return out
}

// Key returns the resolved key.
func (ks *KeySignature) Key() string { return ks.key }

// Mode returns the mode name, or "custom" for explicit half-step patterns.
func (ks *KeySignature) Mode() string { return ks.mode }

// Scale returns the notes in the scale, excluding the repeated octave note.
func (ks *KeySignature) Scale() []string {
	return slices.Clone(ks.scale[:len(ks.scale)-1])
}

// ModeLength returns the number of scalar notes in the scale.
func (ks *KeySignature) ModeLength() int { return len(ks.scale) - 1 }

// NumberOfSemitones returns the semitone count of the underlying temperament.
func (ks *KeySignature) NumberOfSemitones() int { return ks.semitones }

// HalfSteps returns the half-step pattern that defines the mode.
func (ks *KeySignature) HalfSteps() []int { return slices.Clone(ks.halfSteps) }

// Solfege returns the fixed-solfege names assigned to the scale.
func (ks *KeySignature) Solfege() []string { return slices.Clone(ks.solfege) }

// EastIndianSolfege returns the East Indian solfege names assigned to
// the scale.
func (ks *KeySignature) EastIndianSolfege() []string {
	return slices.Clone(ks.eastIndianSolfege)
}

// ScalarModeNumbers returns the mode numbers assigned to the scale.
func (ks *KeySignature) ScalarModeNumbers() []string {
	return slices.Clone(ks.modeNumbers)
}

// CustomNoteNames returns the user-defined note names, if any.
func (ks *KeySignature) CustomNoteNames() []string {
	return slices.Clone(ks.customNames)
}

// SetCustomNoteNames assigns a user-defined name to every note in the
// mode. Names should not end in b or x, which collide with the flat and
// double-sharp accidentals.
func (ks *KeySignature) SetCustomNoteNames(names []string) error {
	if len(names) != ks.ModeLength() {
		return newInvalidNoteNames(fmt.Sprintf(
			"need %d names, got %d", ks.ModeLength(), len(names)))
	}
	ks.customNames = slices.Clone(names)
	return nil
}

// nameConverter resolves a name from a source list (solfege, mode
// numbers, custom names) to a generic note name, honoring accidentals.
func (ks *KeySignature) nameConverter(pitch string, source []string) (string, bool) {
	if i := slices.Index(source, pitch); i >= 0 {
		name, err := ks.ConvertToGenericNoteName(ks.scale[i])
		if err != nil {
			return "", false
		}
		return name, true
	}
	stripped, delta := StripAccidental(pitch)
	if i := slices.Index(source, stripped); i >= 0 {
		name, err := ks.ConvertToGenericNoteName(ks.scale[i])
		if err != nil {
			return "", false
		}
		j := slices.Index(ks.noteNames, name) + delta
		if j < 0 {
			j += ks.semitones
		}
		if j > ks.semitones-1 {
			j -= ks.semitones
		}
		return ks.noteNames[j], true
	}
	return "", false
}

// ConvertToGenericNoteName resolves any supported pitch notation --
// letter names, solfege, East Indian solfege, mode numbers, or custom
// names -- to the temperament's generic note name.
func (ks *KeySignature) ConvertToGenericNoteName(pitch string) (string, error) {
	pitch = NormalizePitch(pitch)
	if slices.Contains(ks.noteNames, pitch) {
		return pitch, nil
	}
	if ks.semitones != 12 {
		return "", newNoteNotFound(pitch)
	}

	if strings.Contains(pitch, "#") {
		if i := slices.Index(notesSharp, pitch); i >= 0 {
			return ks.noteNames[i], nil
		}
	}
	if i := slices.Index(notesFlat, pitch); i >= 0 {
		return ks.noteNames[i], nil
	}

	if name, ok := ks.nameConverter(pitch, ks.solfege); ok {
		return name, nil
	}
	if len(ks.customNames) > 0 {
		if name, ok := ks.nameConverter(pitch, ks.customNames); ok {
			return name, nil
		}
	}
	if name, ok := ks.nameConverter(pitch, ks.modeNumbers); ok {
		return name, nil
	}
	if name, ok := ks.nameConverter(pitch, ks.eastIndianSolfege); ok {
		return name, nil
	}
	return "", newNoteNotFound(pitch)
}

// GenericNoteNameToLetterName converts a generic note name to a letter
// name, spelled with sharps or flats as requested.
func (ks *KeySignature) GenericNoteNameToLetterName(name string, preferSharpSpelling bool) (string, error) {
	name = NormalizePitch(name)
	if slices.Contains(notesSharp, name) || slices.Contains(notesFlat, name) {
		return name, nil
	}
	if ks.semitones != 12 {
		return "", newNoteNotFound(name)
	}
	if i := slices.Index(ks.noteNames, name); i >= 0 {
		if preferSharpSpelling {
			return notesSharp[i], nil
		}
		return notesFlat[i], nil
	}
	return "", newNoteNotFound(name)
}

// convertFromNoteName maps a generic note name onto a target name list
// via the closest scale note, reapplying any semitone distance as an
// accidental.
func (ks *KeySignature) convertFromNoteName(name string, target []string) (string, error) {
	name = NormalizePitch(name)
	if slices.Contains(target, name) {
		return name, nil
	}
	if ks.semitones != 12 {
		return "", newNoteNotFound(name)
	}
	i := slices.Index(ks.noteNames, name)
	if i < 0 {
		return "", newNoteNotFound(name)
	}

	letter := notesSharp[i]
	_, idx, distance, err := ks.ClosestNote(letter)
	if err != nil {
		return "", err
	}
	if distance == 0 {
		return target[idx], nil
	}
	stripped, delta := StripAccidental(target[idx])
	delta += distance
	switch delta {
	case 0:
		return stripped, nil
	case 1:
		return stripped + "#", nil
	case -1:
		return stripped + "b", nil
	case 2:
		return stripped + "x", nil
	case -2:
		return stripped + "bb", nil
	}
	return "", newInvalidAccidental(delta, stripped)
}

// GenericNoteNameToSolfege converts a generic note name to solfege.
func (ks *KeySignature) GenericNoteNameToSolfege(name string) (string, error) {
	return ks.convertFromNoteName(name, ks.solfege)
}

// GenericNoteNameToEastIndianSolfege converts a generic note name to
// East Indian solfege.
func (ks *KeySignature) GenericNoteNameToEastIndianSolfege(name string) (string, error) {
	return ks.convertFromNoteName(name, ks.eastIndianSolfege)
}

// GenericNoteNameToScalarModeNumber converts a generic note name to a
// scalar mode number.
func (ks *KeySignature) GenericNoteNameToScalarModeNumber(name string) (string, error) {
	return ks.convertFromNoteName(name, ks.modeNumbers)
}

// GenericNoteNameToCustomNoteName converts a generic note name to a
// user-defined note name.
func (ks *KeySignature) GenericNoteNameToCustomNoteName(name string) (string, error) {
	return ks.convertFromNoteName(name, ks.customNames)
}

// ModalPitchToLetter indexes the scale by a modal number and reports
// the relative octave change implied by wrapping.
func (ks *KeySignature) ModalPitchToLetter(modalIndex int) (string, int) {
	modeLength := ks.ModeLength()
	deltaOctave := modalIndex / modeLength
	if modalIndex < 0 {
		deltaOctave--
		for modalIndex < 0 {
			modalIndex += modeLength
		}
	}
	for modalIndex > modeLength-1 {
		modalIndex -= modeLength
	}
	return ks.scale[modalIndex], deltaOctave
}

// NoteInScale reports whether the target pitch is in the scale.
func (ks *KeySignature) NoteInScale(target string) bool {
	_, _, distance, err := ks.ClosestNote(target)
	return err == nil && distance == 0
}

func (ks *KeySignature) mapToSemitoneRange(i, deltaOctave int) (int, int) {
	for i < 0 {
		i += ks.semitones
		deltaOctave--
	}
	for i > ks.semitones-1 {
		i -= ks.semitones
		deltaOctave++
	}
	return i, deltaOctave
}

// SemitoneTransform moves a pitch by a number of half steps in the
// temperament and reports the relative octave change.
func (ks *KeySignature) SemitoneTransform(startingPitch string, numberOfHalfSteps int) (string, int, error) {
	startingPitch = NormalizePitch(startingPitch)
	deltaOctave := 0

	if ks.semitones == 12 {
		if i := slices.Index(notesSharp, startingPitch); i >= 0 {
			i, deltaOctave = ks.mapToSemitoneRange(i+numberOfHalfSteps, deltaOctave)
			return notesSharp[i], deltaOctave, nil
		}
		if i := slices.Index(notesFlat, startingPitch); i >= 0 {
			i, deltaOctave = ks.mapToSemitoneRange(i+numberOfHalfSteps, deltaOctave)
			return notesFlat[i], deltaOctave, nil
		}
	}

	stripped, delta := StripAccidental(startingPitch)
	name := stripped
	if !slices.Contains(ks.noteNames, name) {
		if ks.semitones != 12 {
			return startingPitch, 0, newNoteNotFound(startingPitch)
		}
		converted, err := ks.ConvertToGenericNoteName(stripped)
		if err != nil {
			return startingPitch, 0, err
		}
		name = converted
	}
	i := slices.Index(ks.noteNames, name) + numberOfHalfSteps
	i, deltaOctave = ks.mapToSemitoneRange(i+delta, deltaOctave)
	return ks.noteNames[i], deltaOctave, nil
}

// ScalarTransform moves a pitch by a number of scalar steps -- steps in
// the scale rather than half steps -- and reports the relative octave
// change. A starting pitch outside the scale keeps its semitone offset
// from the nearest scale note.
func (ks *KeySignature) ScalarTransform(startingPitch string, numberOfScalarSteps int) (string, int, error) {
	startingPitch = NormalizePitch(startingPitch)
	generic := strings.HasPrefix(startingPitch, "n") && ks.semitones == 12

	_, closestIndex, distance, err := ks.ClosestNote(startingPitch)
	if err != nil {
		return startingPitch, 0, err
	}

	newIndex := closestIndex + numberOfScalarSteps
	modeLength := ks.ModeLength()
	deltaOctave := newIndex / modeLength

	normalizedIndex := newIndex
	for normalizedIndex < 0 {
		normalizedIndex += modeLength
	}
	for normalizedIndex > modeLength-1 {
		normalizedIndex -= modeLength
	}
	newNote := ks.scale[normalizedIndex]

	// Crossing below the key note crosses the octave boundary.
	if newIndex < 0 {
		deltaOctave--
	}

	if distance == 0 {
		if generic {
			converted, err := ks.ConvertToGenericNoteName(newNote)
			if err != nil {
				return startingPitch, 0, err
			}
			newNote = converted
		}
		return newNote, deltaOctave, nil
	}

	if ks.semitones != 12 {
		i := slices.Index(ks.noteNames, newNote) + distance
		i, deltaOctave = ks.mapToSemitoneRange(i, deltaOctave)
		return ks.noteNames[i], deltaOctave, nil
	}

	i := chromaticIndex(newNote)
	if i < 0 {
		return startingPitch, 0, newNoteNotFound(newNote)
	}
	i, deltaOctave = ks.mapToSemitoneRange(i+distance, deltaOctave)
	result := notesFlat[i]
	if strings.Contains(startingPitch, "#") {
		result = notesSharp[i]
	}
	if generic {
		converted, err := ks.ConvertToGenericNoteName(result)
		if err != nil {
			return startingPitch, 0, err
		}
		result = converted
	}
	return result, deltaOctave, nil
}

// chromaticIndex locates a letter name in the chromatic ladder, falling
// back on enharmonic equivalents.
func chromaticIndex(note string) int {
	if i := slices.Index(notesSharp, note); i >= 0 {
		return i
	}
	if i := slices.Index(notesFlat, note); i >= 0 {
		return i
	}
	for _, eq := range equivalents[note] {
		if i := slices.Index(notesSharp, eq); i >= 0 {
			return i
		}
		if i := slices.Index(notesFlat, eq); i >= 0 {
			return i
		}
	}
	return -1
}

// ClosestNote finds the scale note nearest to the target pitch. It
// returns the closest pitch, its scalar index, and the distance in
// semitones from the scale note to the target (positive when the target
// is above the scale note). A target midway between two scale notes
// resolves to the lower one.
func (ks *KeySignature) ClosestNote(target string) (string, int, int, error) {
	target = NormalizePitch(target)
	if ks.semitones != 12 {
		return ks.closestGenericNote(target)
	}

	// Generic note names are resolved through letter notation and
	// converted back on the way out.
	convertBack := false
	if strings.HasPrefix(target, "n") {
		stripped, delta := StripAccidental(target)
		i := slices.Index(ks.noteNames, stripped)
		if i < 0 {
			return target, 0, 0, newNoteNotFound(target)
		}
		i, _ = ks.mapToSemitoneRange(i+delta, 0)
		letter, err := ks.GenericNoteNameToLetterName(ks.noteNames[i], strings.Contains(target, "#"))
		if err != nil {
			return target, 0, 0, err
		}
		target = letter
		convertBack = true
	}

	finish := func(note string, idx, distance int) (string, int, int, error) {
		if convertBack {
			converted, err := ks.ConvertToGenericNoteName(note)
			if err != nil {
				return note, idx, distance, err
			}
			note = converted
		}
		return note, idx, distance, nil
	}

	for i := 0; i < ks.ModeLength(); i++ {
		if target == ks.scale[i] {
			return finish(target, i, 0)
		}
	}
	for i := 0; i < ks.ModeLength(); i++ {
		for _, eq := range equivalents[target] {
			if eq == ks.scale[i] {
				return finish(ks.scale[i], i, 0)
			}
		}
	}

	i2 := chromaticIndex(target)
	if i2 < 0 {
		return target, 0, 0, newNoteNotFound(target)
	}

	closest := ks.scale[0]
	closestIdx := 0
	closestDistance := ks.semitones
	for i := 0; i < ks.ModeLength(); i++ {
		i1 := chromaticIndex(ks.scale[i])
		if i1 < 0 {
			return target, 0, 0, newNoteNotFound(ks.scale[i])
		}
		if abs(i2-i1) < abs(closestDistance) {
			closest = ks.scale[i]
			closestIdx = i
			closestDistance = i2 - i1
		}
		if abs(i2+ks.semitones-i1) < abs(closestDistance) {
			closest = ks.scale[i]
			closestIdx = i
			closestDistance = i2 + ks.semitones - i1
		}
	}
	return finish(closest, closestIdx, closestDistance)
}

// closestGenericNote handles temperaments that use generic notation:
// scan outward from the target for the nearest note in the scale.
func (ks *KeySignature) closestGenericNote(target string) (string, int, int, error) {
	stripped, delta := StripAccidental(target)
	ti := slices.Index(ks.noteNames, stripped)
	if ti < 0 {
		return target, 0, 0, newNoteNotFound(target)
	}
	ti, _ = ks.mapToSemitoneRange(ti+delta, 0)
	target = ks.noteNames[ti]

	for i := 0; i < ks.ModeLength(); i++ {
		if target == ks.scale[i] {
			return target, i, 0, nil
		}
	}

	upDistance := ks.semitones
	upNote := ""
	for n := 1; ti+n < ks.semitones; n++ {
		if slices.Contains(ks.scale, ks.noteNames[ti+n]) {
			upNote = ks.noteNames[ti+n]
			upDistance = n
			break
		}
	}
	for n := 1; ti-n >= 0; n++ {
		if slices.Contains(ks.scale, ks.noteNames[ti-n]) {
			if n < upDistance {
				down := ks.noteNames[ti-n]
				return down, slices.Index(ks.scale, down), -n, nil
			}
			break
		}
	}
	if upNote != "" {
		return upNote, slices.Index(ks.scale, upNote), upDistance, nil
	}
	return target, 0, 0, newNoteNotFound(target)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// String returns the key, mode, half steps, and scale.
func (ks *KeySignature) String() string {
	steps := make([]string, len(ks.halfSteps))
	for i, s := range ks.halfSteps {
		steps[i] = fmt.Sprintf("%d", s)
	}
	key := strings.ToUpper(ks.key[:1]) + ks.key[1:]
	return fmt.Sprintf("%s %s [%s] [%s]",
		key, strings.ToUpper(ks.mode),
		strings.Join(steps, " "), strings.Join(ks.scale, " "))
}
