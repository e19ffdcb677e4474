package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stave/internal/music"
)

// PitchOptions holds flags for the pitch command.
type PitchOptions struct {
	Key         string
	Mode        string
	Temperament string
	Note        string
	Octave      int
	Semitones   int
	Scalar      int
}

type pitchResult struct {
	GenericName   string  `json:"generic_name"`
	LetterName    string  `json:"letter_name,omitempty"`
	Octave        int     `json:"octave"`
	SemitoneIndex int     `json:"semitone_index"`
	Frequency     float64 `json:"frequency"`
}

func (r pitchResult) String() string {
	var b strings.Builder
	if r.LetterName != "" {
		fmt.Fprintf(&b, "Pitch:     %s/%d (%s)\n", music.DisplayPitch(r.LetterName), r.Octave, r.GenericName)
	} else {
		fmt.Fprintf(&b, "Pitch:     %s/%d\n", r.GenericName, r.Octave)
	}
	fmt.Fprintf(&b, "Index:     %d\n", r.SemitoneIndex)
	fmt.Fprintf(&b, "Frequency: %.3f Hz", r.Frequency)
	return b.String()
}

// NewPitchCommand creates the pitch command.
func NewPitchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PitchOptions{}

	cmd := &cobra.Command{
		Use:   "pitch",
		Short: "Resolve a pitch and apply transpositions",
		Long:  "Place a note in a key signature and temperament, apply semitone or scalar transpositions, and print the resulting pitch and frequency.",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Set up logging
			logLevel := slog.LevelInfo
			if rootOpts.Verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)

			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return runPitch(opts, formatter)
		},
	}

	cmd.Flags().StringVar(&opts.Key, "key", "c", "tonic of the key signature")
	cmd.Flags().StringVar(&opts.Mode, "mode", "major", "mode of the key signature")
	cmd.Flags().StringVar(&opts.Temperament, "temperament", "equal", "tuning system to resolve frequencies in")
	cmd.Flags().StringVar(&opts.Note, "note", "c", "starting note (letter name, solfege, or generic name)")
	cmd.Flags().IntVar(&opts.Octave, "octave", 4, "starting octave")
	cmd.Flags().IntVar(&opts.Semitones, "semitones", 0, "semitone transposition to apply")
	cmd.Flags().IntVar(&opts.Scalar, "scalar", 0, "scalar transposition to apply")

	return cmd
}

func runPitch(opts *PitchOptions, formatter *OutputFormatter) error {
	t, err := music.NewTemperament(opts.Temperament)
	if err != nil {
		formatter.Error(pitchErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid temperament", err)
	}

	var ks *music.KeySignature
	if t.SemitonesPerOctave() == 12 {
		ks, err = music.NewKeySignature(opts.Key, opts.Mode)
	} else {
		ks, err = music.NewKeySignatureFromHalfSteps(opts.Key, nil, t.SemitonesPerOctave())
	}
	if err != nil {
		formatter.Error(pitchErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid key signature", err)
	}

	modalIndex, err := resolveModalIndex(ks, t, opts.Note)
	if err != nil {
		formatter.Error(pitchErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "cannot resolve note", err)
	}

	slog.Debug("resolved starting pitch",
		"note", opts.Note,
		"modal_index", modalIndex,
		"key", ks.Key(),
		"mode", ks.Mode())

	pitch, err := music.NewCurrentPitch(ks, t, modalIndex, opts.Octave)
	if err != nil {
		formatter.Error(pitchErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitFailure, "cannot place pitch", err)
	}

	if opts.Semitones != 0 {
		if err := pitch.SemitoneTransposition(opts.Semitones); err != nil {
			formatter.Error(pitchErrorCode(err), err.Error(), nil)
			return WrapExitError(ExitFailure, "semitone transposition failed", err)
		}
		slog.Debug("applied semitone transposition", "half_steps", opts.Semitones)
	}
	if opts.Scalar != 0 {
		if err := pitch.ScalarTransposition(opts.Scalar); err != nil {
			formatter.Error(pitchErrorCode(err), err.Error(), nil)
			return WrapExitError(ExitFailure, "scalar transposition failed", err)
		}
		slog.Debug("applied scalar transposition", "scalar_steps", opts.Scalar)
	}

	result := pitchResult{
		GenericName:   pitch.GenericName(),
		Octave:        pitch.Octave(),
		SemitoneIndex: pitch.SemitoneIndex(),
		Frequency:     pitch.Freq(),
	}
	if t.SemitonesPerOctave() == 12 {
		if letter, lerr := ks.GenericNoteNameToLetterName(pitch.GenericName(), true); lerr == nil {
			result.LetterName = letter
		}
	}

	if err := formatter.Success(result); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}

// resolveModalIndex turns any accepted note spelling into a modal index
// within the temperament. Bare integers are taken as modal indices directly.
func resolveModalIndex(ks *music.KeySignature, t *music.Temperament, note string) (int, error) {
	if n, err := strconv.Atoi(note); err == nil {
		return n, nil
	}
	generic, err := ks.ConvertToGenericNoteName(note)
	if err != nil {
		return 0, err
	}
	return t.ModalIndex(generic)
}
