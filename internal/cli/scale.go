package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/stave/internal/music"
)

// ScaleOptions holds flags for the scale command.
type ScaleOptions struct {
	Key  string
	Mode string
}

type scaleResult struct {
	Key       string   `json:"key"`
	Mode      string   `json:"mode"`
	Scale     []string `json:"scale"`
	Solfege   []string `json:"solfege"`
	HalfSteps []int    `json:"half_steps"`
}

func (r scaleResult) String() string {
	out := "Key:       " + music.DisplayPitch(r.Key) + "\n"
	out += "Mode:      " + r.Mode + "\n"
	out += "Scale:    "
	for _, n := range r.Scale {
		out += " " + music.DisplayPitch(n)
	}
	out += "\nSolfege:  "
	for _, s := range r.Solfege {
		out += " " + s
	}
	return out
}

// NewScaleCommand creates the scale command.
func NewScaleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScaleOptions{}

	cmd := &cobra.Command{
		Use:   "scale",
		Short: "Show the scale for a key signature",
		Long:  "Build a key signature and print its scale, solfege names, and half-step pattern.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
			}
			return runScale(opts, formatter)
		},
	}

	cmd.Flags().StringVar(&opts.Key, "key", "c", "tonic of the scale (e.g. c, g, bb, f#)")
	cmd.Flags().StringVar(&opts.Mode, "mode", "major", "mode of the scale (e.g. major, minor, dorian)")

	return cmd
}

func runScale(opts *ScaleOptions, formatter *OutputFormatter) error {
	formatter.VerboseLog("Building key signature %s %s", opts.Key, opts.Mode)

	ks, err := music.NewKeySignature(opts.Key, opts.Mode)
	if err != nil {
		formatter.Error(pitchErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid key signature", err)
	}

	result := scaleResult{
		Key:       ks.Key(),
		Mode:      ks.Mode(),
		Scale:     ks.Scale(),
		Solfege:   ks.Solfege(),
		HalfSteps: ks.HalfSteps(),
	}

	if err := formatter.Success(result); err != nil {
		return WrapExitError(ExitFailure, "failed to write output", err)
	}
	return nil
}
