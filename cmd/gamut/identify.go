package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tonelab/gamut"
	"github.com/tonelab/gamut/catalog"
)

var identifyNotes string

func init() {
	identifyCmd.Flags().StringVar(&identifyNotes, "notes", "", "identify from note names instead, e.g. \"C4 D4 E4 F4 G4 A4 B4 C5\"")
	rootCmd.AddCommand(identifyCmd)
}

var identifyCmd = &cobra.Command{
	Use:   "identify [cents...]",
	Short: "Identify a scale from its intervals or notes",
	Long: `Identify a scale against the built in templates. The scale is given either
as its intervals in cents or as a sequence of note names with --notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		intervals, err := identifyIntervals(args)
		if err != nil {
			return err
		}
		s, err := gamut.NewTemplate(intervals)
		if err != nil {
			return err
		}
		properties := []string{fmt.Sprintf("%d intervals spanning %d semitones", s.NumIntervals(), s.Length())}
		if s.IsAscending() {
			properties = append(properties, "ascending")
		}
		if s.IsDescending() {
			properties = append(properties, "descending")
		}
		if s.IsDiatonic() {
			properties = append(properties, "diatonic")
		}
		if s.IsChromatic() {
			properties = append(properties, "chromatic")
		}
		fmt.Println(strings.Join(properties, ", "))
		matches := catalog.Identify(s)
		if len(matches) == 0 {
			fmt.Println("no matching template")
			return nil
		}
		for _, m := range matches {
			line := m.Template.Name
			if m.Rotation != 0 {
				line += fmt.Sprintf(", rotation %d", m.Rotation)
			}
			if m.Mode != "" {
				line += fmt.Sprintf(" (%v)", m.Mode)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func identifyIntervals(args []string) ([]gamut.Interval, error) {
	if identifyNotes != "" {
		fields := strings.Fields(identifyNotes)
		if len(fields) < 2 {
			return nil, errors.New("at least two notes are needed")
		}
		var intervals []gamut.Interval
		prev, err := gamut.ParseNote(fields[0])
		if err != nil {
			return nil, err
		}
		for _, field := range fields[1:] {
			next, err := gamut.ParseNote(field)
			if err != nil {
				return nil, err
			}
			intervals = append(intervals, gamut.FromSemitones(next.Semitone()-prev.Semitone()))
			prev = next
		}
		return intervals, nil
	}
	if len(args) == 0 {
		return nil, errors.New("give the intervals in cents or the notes with --notes")
	}
	var intervals []gamut.Interval
	for _, arg := range args {
		cents, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid interval %q: %v", arg, err)
		}
		intervals = append(intervals, gamut.Interval{Cents: cents})
	}
	return intervals, nil
}
