package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKeySignature(t *testing.T, key, mode string) *KeySignature {
	t.Helper()
	ks, err := NewKeySignature(key, mode)
	require.NoError(t, err)
	return ks
}

func TestMajorScale(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	assert.Equal(t, []string{"c", "d", "e", "f", "g", "a", "b"}, ks.Scale())
	assert.Equal(t, 7, ks.ModeLength())
	assert.Equal(t, 12, ks.NumberOfSemitones())
	assert.Equal(t, "C MAJOR [2 2 1 2 2 2 1] [c d e f g a b c]", ks.String())
}

func TestSharpKeysSpellWithSharps(t *testing.T) {
	assert.Contains(t, mustKeySignature(t, "g", "major").Scale(), "f#")
	assert.Contains(t, mustKeySignature(t, "e", "minor").Scale(), "f#")
	assert.NotContains(t, mustKeySignature(t, "f", "major").Scale(), "a#")
	assert.Contains(t, mustKeySignature(t, "f", "major").Scale(), "bb")
}

func TestClosestNote(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	tests := []struct {
		target   string
		want     string
		distance int
		inScale  bool
	}{
		{"c", "c", 0, true},
		{"f#", "f", 1, false},
		{"g#", "g", 1, false},
		{"cb", "b", 0, true},
		{"db", "c", 1, false},
	}
	for _, tc := range tests {
		note, _, distance, err := ks.ClosestNote(tc.target)
		require.NoError(t, err, "target %q", tc.target)
		assert.Equal(t, tc.want, note, "target %q", tc.target)
		assert.Equal(t, tc.distance, distance, "target %q", tc.target)
		assert.Equal(t, tc.inScale, ks.NoteInScale(tc.target), "target %q", tc.target)
	}
}

func TestClosestNoteGenericInput(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	note, idx, distance, err := ks.ClosestNote("n6")
	require.NoError(t, err)
	assert.Equal(t, "n5", note)
	assert.Equal(t, 3, idx)
	assert.Equal(t, 1, distance)
}

func TestTransforms(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	note, deltaOctave, err := ks.ScalarTransform("c", 2)
	require.NoError(t, err)
	assert.Equal(t, "e", note)
	assert.Equal(t, 0, deltaOctave)

	note, _, err = ks.ScalarTransform("c#", 2)
	require.NoError(t, err)
	assert.Equal(t, "f", note)

	note, _, err = ks.SemitoneTransform("c", 2)
	require.NoError(t, err)
	assert.Equal(t, "d", note)

	note, _, err = ks.SemitoneTransform("c#", 2)
	require.NoError(t, err)
	assert.Equal(t, "d#", note)

	note, deltaOctave, err = ks.SemitoneTransform("b", 1)
	require.NoError(t, err)
	assert.Equal(t, "c", note)
	assert.Equal(t, 1, deltaOctave)

	note, _, err = ks.SemitoneTransform("n7", 2)
	require.NoError(t, err)
	assert.Equal(t, "n9", note)
}

func TestChromaticTransforms(t *testing.T) {
	ks := mustKeySignature(t, "c", "chromatic")

	note, _, err := ks.ScalarTransform("c", 2)
	require.NoError(t, err)
	assert.Equal(t, "d", note)

	note, _, err = ks.ScalarTransform("c#", 2)
	require.NoError(t, err)
	assert.Equal(t, "eb", note)

	note, _, err = ks.SemitoneTransform("c#", 2)
	require.NoError(t, err)
	assert.Equal(t, "d#", note)
}

func TestCustomHalfStepScale(t *testing.T) {
	ks, err := NewKeySignatureFromHalfSteps("n0", []int{2, 2, 1, 2, 2, 2, 7, 1}, 19)
	require.NoError(t, err)

	scale := ks.Scale()
	assert.Len(t, scale, 8)
	assert.Equal(t, "n18", scale[7])

	note, idx, distance, err := ks.ClosestNote("n12")
	require.NoError(t, err)
	assert.Equal(t, "n11", note)
	assert.Equal(t, 6, idx)
	assert.Equal(t, -1, distance)

	note, _, err = ks.ScalarTransform("n5", 2)
	require.NoError(t, err)
	assert.Equal(t, "n9", note)
}

func TestHalfStepNormalization(t *testing.T) {
	// A short pattern is padded at the final step to span the octave.
	ks, err := NewKeySignatureFromHalfSteps("n0", []int{2, 2}, 12)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 10}, ks.HalfSteps())

	_, err = NewKeySignatureFromHalfSteps("n0", []int{2, 0, 2}, 12)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidMode, PitchErrorCodeOf(err))
}

func TestSolfegeMappings(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	assert.Equal(t, []string{"do", "re", "me", "fa", "sol", "la", "ti", "do"}, ks.Solfege())
	assert.Equal(t, "re", ks.EastIndianSolfege()[1])
	assert.Equal(t, "1", ks.ScalarModeNumbers()[0])

	name, err := ks.ConvertToGenericNoteName("sol")
	require.NoError(t, err)
	assert.Equal(t, "n7", name)

	solfege, err := ks.GenericNoteNameToSolfege("n7")
	require.NoError(t, err)
	assert.Equal(t, "sol", solfege)

	indian, err := ks.GenericNoteNameToEastIndianSolfege("n7")
	require.NoError(t, err)
	assert.Equal(t, "pa", indian)

	number, err := ks.GenericNoteNameToScalarModeNumber("n4")
	require.NoError(t, err)
	assert.Equal(t, "3", number)
}

func TestLetterNameConversions(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	name, err := ks.ConvertToGenericNoteName("a")
	require.NoError(t, err)
	assert.Equal(t, "n9", name)

	letter, err := ks.GenericNoteNameToLetterName("n9", true)
	require.NoError(t, err)
	assert.Equal(t, "a", letter)

	letter, err = ks.GenericNoteNameToLetterName("n6", false)
	require.NoError(t, err)
	assert.Equal(t, "gb", letter)

	_, err = ks.ConvertToGenericNoteName("q")
	require.Error(t, err)
	assert.True(t, IsNoteNotFound(err))
}

func TestCustomNoteNames(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	err := ks.SetCustomNoteNames([]string{"one", "two", "three"})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidNoteNames, PitchErrorCodeOf(err))

	names := []string{"one", "two", "three", "four", "five", "six", "seven"}
	require.NoError(t, ks.SetCustomNoteNames(names))
	assert.Equal(t, names, ks.CustomNoteNames())

	generic, err := ks.ConvertToGenericNoteName("five")
	require.NoError(t, err)
	assert.Equal(t, "n7", generic)

	custom, err := ks.GenericNoteNameToCustomNoteName("n7")
	require.NoError(t, err)
	assert.Equal(t, "five", custom)
}

func TestModalPitchToLetter(t *testing.T) {
	ks := mustKeySignature(t, "c", "major")

	note, deltaOctave := ks.ModalPitchToLetter(7)
	assert.Equal(t, "c", note)
	assert.Equal(t, 1, deltaOctave)

	note, deltaOctave = ks.ModalPitchToLetter(-1)
	assert.Equal(t, "b", note)
	assert.Equal(t, -1, deltaOctave)
}

func TestMaqamKeyOverride(t *testing.T) {
	ks := mustKeySignature(t, "g", "hijaz kar")
	assert.Equal(t, "c", ks.Key())
	assert.Equal(t, "maqam", ks.Mode())
}

func TestKeySignatureErrors(t *testing.T) {
	_, err := NewKeySignature("c", "zorp")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnknownMode, PitchErrorCodeOf(err))

	_, err = NewKeySignature("z", "major")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnknownKey, PitchErrorCodeOf(err))
}
