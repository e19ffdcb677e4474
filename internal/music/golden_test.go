package music

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// TestScaleTableGolden snapshots the scale spellings for a spread of keys
// and modes.
//
// To regenerate after an intentional change:
//
//	go test ./internal/music -update
func TestScaleTableGolden(t *testing.T) {
	combos := []struct {
		key  string
		mode string
	}{
		{"c", "major"},
		{"g", "major"},
		{"f", "major"},
		{"bb", "major"},
		{"a", "minor"},
		{"e", "minor"},
		{"d", "dorian"},
	}

	var b strings.Builder
	for _, c := range combos {
		ks, err := NewKeySignature(c.key, c.mode)
		require.NoError(t, err)
		b.WriteString(ks.String())
		b.WriteString("\n")
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "scale-table", []byte(b.String()))
}
