package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adaptune",
	Short: "Adaptive just intonation retuner for MIDI",
	Long: `adaptune listens to MIDI note events and bends each held note so the
chord it belongs to lands on justly-tuned intervals, while the original
note numbers pass through untouched for triggering.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
