package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gamut",
	Short: "Scales, keys and MIDI analysis",
	Long: `Gamut works with musical scales: listing and identifying them, spelling
their degrees from a root note and analyzing the keys of MIDI files.`,
}

func main() {
	cobra.CheckErr(rootCmd.Execute())
}
