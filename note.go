package gamut

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	// Pitch is one of the seven letters C D E F G A B.
	Pitch int

	// Note is a concrete or octaveless note: a pitch letter, an accidental
	// (nil is read as natural), an optional octave number and a fractional
	// adjustment in cents, the remainder left over when pitch material is
	// rounded to whole semitones. Octaveless notes behave as octave 0 in
	// absolute arithmetic.
	Note struct {
		Pitch      Pitch
		Accidental *Accidental
		Octave     OptionalInt
		Adjustment float64
	}
)

const (
	C Pitch = iota
	D
	E
	F
	G
	A
	B
)

const semitonesPerOctave = 12

// pitchSemitones maps a pitch letter to its semitone offset from C.
var pitchSemitones = [7]int{0, 2, 4, 5, 7, 9, 11}

var pitchNames = [7]string{"C", "D", "E", "F", "G", "A", "B"}

// Sharpwise spelling of the twelve pitch classes, used whenever a note has to
// be materialized from a bare semitone position.
var (
	classPitches     = [12]Pitch{C, C, D, D, E, F, F, G, G, A, A, B}
	classAccidentals = [12]*Accidental{Natural, Sharp, Natural, Sharp, Natural, Natural, Sharp, Natural, Sharp, Natural, Sharp, Natural}
)

// Semitones returns the letter's semitone offset from C within one octave,
// e.g. 9 for A.
func (p Pitch) Semitones() int {
	return pitchSemitones[p]
}

func (p Pitch) String() string {
	if p < C || p > B {
		return fmt.Sprintf("Pitch(%d)", int(p))
	}
	return pitchNames[p]
}

// NoteFromSemitones returns the note at an absolute semitone position, in
// sharpwise spelling: position 49 comes back as C#4, never Db4. Middle C
// (C4) sits at position 48.
func NoteFromSemitones(semitones int) Note {
	class := mod(semitones, semitonesPerOctave)
	return Note{
		Pitch:      classPitches[class],
		Accidental: classAccidentals[class],
		Octave:     NewOptionalIntOf(floorDiv(semitones, semitonesPerOctave)),
	}
}

// NoteFromMIDI returns the note for a MIDI key number; key 60 is C4.
func NoteFromMIDI(key uint8) Note {
	return NoteFromSemitones(int(key) - semitonesPerOctave)
}

// ParseNote parses a textual note such as "C", "F#3", "Ebb" or "A4". The
// pitch letter may be followed by an accidental symbol (bb, b, #, x or ##,
// nb, n#) and an optional octave number.
func ParseNote(s string) (Note, error) {
	if s == "" {
		return Note{}, errors.New("empty note")
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	if letter < 'A' || letter > 'G' {
		return Note{}, fmt.Errorf("invalid pitch letter %q", s[:1])
	}
	note := Note{Accidental: Natural, Octave: NewEmptyOptionalInt()}
	for i, name := range pitchNames {
		if name[0] == letter {
			note.Pitch = Pitch(i)
		}
	}
	rest := s[1:]
	for _, c := range [...]struct {
		symbol string
		acc    *Accidental
	}{
		{"bb", DoubleFlat}, {"##", DoubleSharp}, {"nb", NaturalFlat}, {"n#", NaturalSharp},
		{"x", DoubleSharp}, {"b", Flat}, {"#", Sharp},
	} {
		if strings.HasPrefix(rest, c.symbol) {
			note.Accidental = c.acc
			rest = rest[len(c.symbol):]
			break
		}
	}
	if rest != "" {
		octave, err := strconv.Atoi(rest)
		if err != nil {
			return Note{}, fmt.Errorf("invalid octave %q: %v", rest, err)
		}
		note.Octave = NewOptionalIntOf(octave)
	}
	return note, nil
}

// Semitone returns the note's absolute semitone position: twelve per octave
// plus the letter offset plus the accidental. C4 is 48; an octaveless note
// counts as octave 0.
func (n Note) Semitone() int {
	octave, _ := n.Octave.Unpack()
	return octave*semitonesPerOctave + pitchSemitones[n.Pitch] + accidentalOrNatural(n.Accidental).Semitones()
}

// PitchClass returns the note's semitone residue 0..11 independent of octave,
// so enharmonic spellings share a class: C#, Db and Bx are all class 1.
func (n Note) PitchClass() int {
	return mod(pitchSemitones[n.Pitch]+accidentalOrNatural(n.Accidental).Semitones(), semitonesPerOctave)
}

// MIDI returns the MIDI key number of the note; middle C (C4) is key 60.
func (n Note) MIDI() int {
	return n.Semitone() + semitonesPerOctave
}

// Equal reports whether the notes agree in spelling, octave and adjustment.
// C#4 and Db4 are not Equal; a nil note equals nothing.
func (n Note) Equal(o *Note) bool {
	if o == nil {
		return false
	}
	return n.Pitch == o.Pitch &&
		accidentalOrNatural(n.Accidental).Equal(accidentalOrNatural(o.Accidental)) &&
		n.Octave == o.Octave &&
		n.Adjustment == o.Adjustment
}

// EqualIgnoreOctave is Equal without the octave comparison, so C#2 and C#6
// are equal but C# and Db are still not.
func (n Note) EqualIgnoreOctave(o *Note) bool {
	if o == nil {
		return false
	}
	return n.Pitch == o.Pitch &&
		accidentalOrNatural(n.Accidental).Equal(accidentalOrNatural(o.Accidental)) &&
		n.Adjustment == o.Adjustment
}

// SamePitch reports whether the notes sound at the same absolute position,
// octave included: B#3 and C4 are the same pitch. Spelling and adjustment
// are ignored.
func (n Note) SamePitch(o *Note) bool {
	if o == nil {
		return false
	}
	return n.Semitone() == o.Semitone()
}

// SamePitchClass reports whether the notes sound at the same position within
// an octave: A2, A5 and Bbb3 all share a pitch class.
func (n Note) SamePitchClass(o *Note) bool {
	if o == nil {
		return false
	}
	return n.PitchClass() == o.PitchClass()
}

func (n Note) String() string {
	s := pitchNames[n.Pitch] + accidentalOrNatural(n.Accidental).symbol
	if octave, ok := n.Octave.Unpack(); ok {
		s += strconv.Itoa(octave)
	}
	return s
}

func accidentalOrNatural(a *Accidental) *Accidental {
	if a == nil {
		return Natural
	}
	return a
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
