package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tonelab/gamut/keysig"
	"github.com/tonelab/gamut/midiscan"
)

var analyzeKey string

func init() {
	analyzeCmd.Flags().StringVar(&analyzeKey, "key", "", "count foreign notes against this key instead of the guessed one, e.g. \"Bb major\"")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Analyze the key of a MIDI file",
	Long: `Analyze a standard MIDI file: report its declared key signatures, guess its
key from how long each pitch class sounds and count the notes outside the
key's scale.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := midiscan.ReadFile(args[0])
		if err != nil {
			return err
		}
		events := midiscan.Events(s)
		fmt.Printf("%d notes\n", len(events))
		for _, change := range midiscan.KeySignatures(s) {
			fmt.Printf("declared key: %v (track %d)\n", change.Key, change.Track)
		}
		if len(events) == 0 {
			return nil
		}
		guessed, r := midiscan.GuessKey(midiscan.ProfileOf(events))
		fmt.Printf("guessed key: %v (correlation %.2f)\n", guessed, r)
		key := guessed
		if analyzeKey != "" {
			if key, err = keysig.Parse(analyzeKey); err != nil {
				return err
			}
		}
		scale, err := key.Scale()
		if err != nil {
			return err
		}
		foreign := midiscan.Foreign(events, scale)
		fmt.Printf("%d of %d notes outside %v\n", len(foreign), len(events), scale)
		return nil
	},
}
