package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tonelab/gamut"
	"github.com/tonelab/gamut/catalog"
)

var scalesRoot string

func init() {
	scalesCmd.Flags().StringVar(&scalesRoot, "root", "", "spell each scale from this root note, e.g. C4")
	rootCmd.AddCommand(scalesCmd)
}

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List the built in scale templates",
	Long:  `List the built in scale templates, optionally spelled out from a root note.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var root *gamut.Note
		if scalesRoot != "" {
			n, err := gamut.ParseNote(scalesRoot)
			if err != nil {
				return err
			}
			root = &n
		}
		for _, tmpl := range catalog.Templates() {
			fmt.Printf("%v %v\n", tmpl.Name, tmpl.Intervals)
			if len(tmpl.Aliases) > 0 {
				fmt.Printf("  aliases: %v\n", strings.Join(tmpl.Aliases, ", "))
			}
			if root == nil {
				continue
			}
			s, err := tmpl.Scale(root)
			if err != nil {
				return err
			}
			names := make([]string, s.Size())
			for d := 0; d < s.Size(); d++ {
				names[d] = s.Degree(d).Fundamental().String()
			}
			fmt.Printf("  %v\n", strings.Join(names, " "))
		}
		return nil
	},
}
