package keysig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tonelab/gamut"
	"github.com/tonelab/gamut/catalog"
)

type (
	// Mode tells whether a key signature is read as a major or as a minor
	// key. The two share the accidentals; C major and A minor are both
	// KeySig{Accidentals: 0}.
	Mode int

	// KeySig is a position on the circle of fifths: the number of sharps in
	// the signature, counted negative for flats, plus the mode it is read
	// in. The zero value is C major.
	KeySig struct {
		Accidentals int
		Mode        Mode
	}
)

const (
	Major Mode = iota
	Minor
)

// The roots for -7..7 accidentals. The spelling follows the signature: the
// key with one flat is spelled F, never E#.
var (
	majorRoots = [15]string{"Cb", "Gb", "Db", "Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#"}
	minorRoots = [15]string{"Ab", "Eb", "Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#", "A#"}
)

// New returns the key signature with the given number of accidentals,
// negative for flats. More than seven of either does not name a key.
func New(accidentals int, mode Mode) (KeySig, error) {
	if accidentals < -7 || accidentals > 7 {
		return KeySig{}, fmt.Errorf("a key signature has at most 7 sharps or flats, got %d", accidentals)
	}
	if mode != Major && mode != Minor {
		return KeySig{}, fmt.Errorf("unknown mode %d", int(mode))
	}
	return KeySig{Accidentals: accidentals, Mode: mode}, nil
}

// FromMIDI converts a key signature meta event's fields, a count of
// accidentals plus flags, into a KeySig.
func FromMIDI(num uint8, isMajor bool, isFlat bool) KeySig {
	k := int(num)
	if isFlat {
		k = -k
	}
	mode := Major
	if !isMajor {
		mode = Minor
	}
	return KeySig{Accidentals: k, Mode: mode}
}

// MIDI returns the key signature in the form a MIDI key signature meta event
// carries it: the number of accidentals and whether they are flats.
func (k KeySig) MIDI() (num uint8, isMajor bool, isFlat bool) {
	num = uint8(k.Accidentals)
	if k.Accidentals < 0 {
		num = uint8(-k.Accidentals)
		isFlat = true
	}
	isMajor = k.Mode == Major
	return
}

// Parse reads a key signature either as a root and mode ("Bb major", "f#
// minor") or as an accidental count ("2b", "3#", "0"). The bare count form
// is read as a major key.
func Parse(s string) (KeySig, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return parseNotation(fields[0])
	case 2:
		mode, err := parseMode(fields[1])
		if err != nil {
			return KeySig{}, err
		}
		note, err := gamut.ParseNote(fields[0])
		if err != nil {
			return KeySig{}, fmt.Errorf("invalid key %q: %v", s, err)
		}
		for i, name := range roots(mode) {
			if name == note.String() {
				return KeySig{Accidentals: i - 7, Mode: mode}, nil
			}
		}
		return KeySig{}, fmt.Errorf("no key signature for %v %v", &note, mode)
	}
	return KeySig{}, fmt.Errorf("invalid key signature %q", s)
}

func parseNotation(s string) (KeySig, error) {
	if s == "0" {
		return KeySig{}, nil
	}
	count, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || count < 1 {
		return KeySig{}, fmt.Errorf("invalid key signature %q", s)
	}
	switch s[len(s)-1] {
	case '#':
		return New(count, Major)
	case 'b':
		return New(-count, Major)
	}
	return KeySig{}, fmt.Errorf("invalid key signature %q", s)
}

func parseMode(s string) (Mode, error) {
	switch {
	case strings.EqualFold(s, "major"):
		return Major, nil
	case strings.EqualFold(s, "minor"):
		return Minor, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func roots(mode Mode) [15]string {
	if mode == Minor {
		return minorRoots
	}
	return majorRoots
}

// Root returns the key's tonic, spelled as the signature spells it, or nil
// when the accidental count is out of range. The note carries no octave.
func (k KeySig) Root() *gamut.Note {
	i := k.Accidentals + 7
	if i < 0 || i >= 15 {
		return nil
	}
	note, err := gamut.ParseNote(roots(k.Mode)[i])
	if err != nil {
		return nil
	}
	return &note
}

// Relative returns the key sharing the accidentals in the other mode: the
// relative minor of C major is A minor and vice versa.
func (k KeySig) Relative() KeySig {
	mode := Major
	if k.Mode == Major {
		mode = Minor
	}
	return KeySig{Accidentals: k.Accidentals, Mode: mode}
}

// Scale returns the major or natural minor scale of the key, rooted at the
// key's tonic and labeled with the key's name.
func (k KeySig) Scale() (*gamut.Scale, error) {
	name := "major"
	if k.Mode == Minor {
		name = "natural minor"
	}
	tmpl, ok := catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("no %v template in the catalog", name)
	}
	root := k.Root()
	if root == nil {
		return nil, fmt.Errorf("no key with %d accidentals", k.Accidentals)
	}
	s, err := tmpl.Scale(root)
	if err != nil {
		return nil, err
	}
	s.Label = k.String()
	return s, nil
}

// Notation returns the accidental count form of the signature: "3#", "2b"
// or "0".
func (k KeySig) Notation() string {
	switch {
	case k.Accidentals > 0:
		return fmt.Sprintf("%d#", k.Accidentals)
	case k.Accidentals < 0:
		return fmt.Sprintf("%db", -k.Accidentals)
	}
	return "0"
}

func (m Mode) String() string {
	if m == Minor {
		return "minor"
	}
	return "major"
}

func (k KeySig) String() string {
	root := k.Root()
	if root == nil {
		return fmt.Sprintf("invalid key signature (%d)", k.Accidentals)
	}
	return fmt.Sprintf("%v %v", root, k.Mode)
}
