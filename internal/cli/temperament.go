package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stave/internal/music"
)

// TemperamentOptions holds flags for the temperament command.
type TemperamentOptions struct {
	Name          string
	Steps         int
	BaseFrequency float64
	Octaves       int
}

type temperamentResult struct {
	Name          string    `json:"name"`
	Semitones     int       `json:"semitones_per_octave"`
	BaseFrequency float64   `json:"base_frequency"`
	Octaves       int       `json:"octaves"`
	NoteNames     []string  `json:"note_names"`
	Frequencies   []float64 `json:"frequencies"`
}

func (r temperamentResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Temperament: %s\n", r.Name)
	fmt.Fprintf(&b, "Semitones:   %d per octave\n", r.Semitones)
	fmt.Fprintf(&b, "Base:        %.3f Hz over %d octaves\n", r.BaseFrequency, r.Octaves)
	for i, f := range r.Frequencies {
		octave := i / r.Semitones
		name := r.NoteNames[i%r.Semitones]
		fmt.Fprintf(&b, "  %4s/%d  %10.3f Hz\n", name, octave, f)
	}
	return strings.TrimRight(b.String(), "\n")
}

// NewTemperamentCommand creates the temperament command.
func NewTemperamentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TemperamentOptions{}

	cmd := &cobra.Command{
		Use:   "temperament",
		Short: "Show the frequency table for a tuning system",
		Long:  "Generate a temperament and print its note names and frequency ladder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return runTemperament(opts, formatter)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "equal", "temperament name (equal, just intonation, pythagorean, ...)")
	cmd.Flags().IntVar(&opts.Steps, "steps", 0, "build an equal temperament with this many steps per octave")
	cmd.Flags().Float64Var(&opts.BaseFrequency, "base-frequency", 0, "frequency of the lowest note in Hz")
	cmd.Flags().IntVar(&opts.Octaves, "octaves", 0, "number of octaves to generate")

	return cmd
}

func runTemperament(opts *TemperamentOptions, formatter *OutputFormatter) error {
	var tOpts []music.TemperamentOption
	if opts.BaseFrequency > 0 {
		tOpts = append(tOpts, music.WithBaseFrequency(opts.BaseFrequency))
	}
	if opts.Octaves > 0 {
		tOpts = append(tOpts, music.WithOctaves(opts.Octaves))
	}

	var t *music.Temperament
	if opts.Steps > 0 {
		formatter.VerboseLog("Building equal temperament with %d steps", opts.Steps)
		t = music.NewEqualTemperament(opts.Steps, tOpts...)
	} else {
		formatter.VerboseLog("Building temperament %q", opts.Name)
		var err error
		t, err = music.NewTemperament(opts.Name, tOpts...)
		if err != nil {
			formatter.Error(pitchErrorCode(err), err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid temperament", err)
		}
	}

	result := temperamentResult{
		Name:          t.Name(),
		Semitones:     t.SemitonesPerOctave(),
		BaseFrequency: t.BaseFrequency(),
		Octaves:       t.Octaves(),
		NoteNames:     t.NoteNames(),
		Frequencies:   t.Freqs(),
	}

	if err := formatter.Success(result); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}
