package cmd

import (
	"os"

	"github.com/jsphweid/adaptune/emit"
	"github.com/jsphweid/adaptune/engine"
	"github.com/jsphweid/adaptune/midi"
	"github.com/spf13/cobra"
)

var (
	renderLimit     int
	renderIntensity float64
	renderMean      bool
)

func init() {
	renderCmd.Flags().IntVar(&renderLimit, "limit", engine.DefaultLimit, "tuning limit (5, 7, 11 or 13)")
	renderCmd.Flags().Float64Var(&renderIntensity, "intensity", engine.DefaultIntensity, "bend scale factor")
	renderCmd.Flags().BoolVar(&renderMean, "mean", true, "mean-center each chord")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <file.mid>",
	Short: "Runs a MIDI file through the retuner",
	Long: `Runs a MIDI file through the retuner and writes the emitted message
lines to stdout, one event block at a time.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cobra.CheckErr(render(args[0]))
	},
}

func render(path string) error {
	s, err := midi.ReadFile(path)
	if err != nil {
		return err
	}

	eng := engine.New(emit.NewWriter(os.Stdout))
	if err := eng.Configure(renderLimit, renderIntensity, renderMean); err != nil {
		return err
	}

	for _, evt := range midi.FlattenNotes(s) {
		if evt.IsNoteOff {
			eng.NoteEvent(int(evt.Pitch), 0)
		} else {
			eng.NoteEvent(int(evt.Pitch), int(evt.Velocity))
		}
	}
	eng.AllNotesOff()
	return nil
}
