package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualTemperament(t *testing.T) {
	tmp, err := NewTemperament("equal")
	require.NoError(t, err)

	assert.Equal(t, "equal", tmp.Name())
	assert.InDelta(t, C0, tmp.BaseFrequency(), 1e-9)
	assert.Equal(t, 8, tmp.Octaves())
	assert.Equal(t, 12, tmp.SemitonesPerOctave())
	assert.Len(t, tmp.NoteNames(), 12)

	// A1 in equal temperament seeded from C0.
	assert.InDelta(t, 55.0, tmp.FreqByIndex(21), 0.01)
}

func TestRatioTemperaments(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantFreq  float64
		noteCount int
	}{
		{"pythagorean", 21, 55.19, 12},
		{"just intonation", 21, 54.51, 12},
		{"quarter comma meantone", 36, 55.45, 21},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmp, err := NewTemperament(tc.name)
			require.NoError(t, err)
			assert.Len(t, tmp.NoteNames(), tc.noteCount)
			assert.InDelta(t, tc.wantFreq, tmp.FreqByIndex(tc.index), 0.01)
		})
	}
}

func TestUnknownTemperament(t *testing.T) {
	_, err := NewTemperament("bogus")
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnknownTemperament, PitchErrorCodeOf(err))
}

func TestEqualTemperamentSteps(t *testing.T) {
	tmp := NewEqualTemperament(24)
	assert.Len(t, tmp.NoteNames(), 24)
	assert.InDelta(t, 55.0, tmp.FreqByIndex(42), 0.01)

	// Step counts below one are clamped.
	assert.Equal(t, 1, NewEqualTemperament(0).SemitonesPerOctave())
}

func TestCustomTemperament(t *testing.T) {
	tmp, err := NewCustomTemperament("octaves",
		[]string{"perfect 1", "perfect 8"},
		map[string]float64{"perfect 1": 1, "perfect 8": 2})
	require.NoError(t, err)

	assert.Equal(t, 2, tmp.SemitonesPerOctave())
	assert.InDelta(t, 2*C0, tmp.FreqByIndex(1), 1e-6)
	assert.InDelta(t, 8*C0, tmp.FreqByIndex(3), 1e-6)

	_, err = NewCustomTemperament("broken",
		[]string{"perfect 1", "perfect 5"},
		map[string]float64{"perfect 1": 1})
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidInterval, PitchErrorCodeOf(err))
}

func TestFreqByIndexClamps(t *testing.T) {
	tmp, err := NewTemperament("equal")
	require.NoError(t, err)

	freqs := tmp.Freqs()
	assert.InDelta(t, freqs[0], tmp.FreqByIndex(-5), 1e-9)
	assert.InDelta(t, freqs[len(freqs)-1], tmp.FreqByIndex(len(freqs)+10), 1e-9)
}

func TestFreqByGenericNoteName(t *testing.T) {
	tmp, err := NewTemperament("equal")
	require.NoError(t, err)

	// n9 in octave 4 is concert A.
	f, err := tmp.FreqByGenericNoteName("n9", 4)
	require.NoError(t, err)
	assert.InDelta(t, 440.0, f, 0.5)

	_, err = tmp.FreqByGenericNoteName("n42", 4)
	require.Error(t, err)
	assert.True(t, IsNoteNotFound(err))
}

func TestModalIndexAndNoteName(t *testing.T) {
	tmp, err := NewTemperament("equal")
	require.NoError(t, err)

	i, err := tmp.ModalIndex("n7")
	require.NoError(t, err)
	assert.Equal(t, 7, i)

	assert.Equal(t, "n7", tmp.NoteName(7))
	assert.Equal(t, "n7", tmp.NoteName(19))
	assert.Equal(t, "n11", tmp.NoteName(-1))
}

func TestTemperamentOptions(t *testing.T) {
	tmp, err := NewTemperament("equal", WithBaseFrequency(2*C0), WithOctaves(2))
	require.NoError(t, err)

	assert.Equal(t, 2, tmp.Octaves())
	assert.InDelta(t, 2*C0, tmp.BaseFrequency(), 1e-9)
	assert.InDelta(t, 110.0, tmp.FreqByIndex(21), 0.01)
}
