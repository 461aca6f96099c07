package gamut

type (
	// Accidental shifts a pitch letter by a number of cents and carries the
	// symbol used to notate the shift. The canonical accidentals are shared
	// instances and may be compared by pointer; custom accidentals are
	// compared by value.
	Accidental struct {
		cents     int
		symbol    string
		canonical bool
	}
)

// The canonical accidentals. NaturalFlat and NaturalSharp sit at the same
// offsets as Flat and Sharp but notate a courtesy natural before the symbol,
// so they are distinct instances with distinct symbols.
var (
	DoubleFlat   = &Accidental{cents: -200, symbol: "bb", canonical: true}
	Flat         = &Accidental{cents: -100, symbol: "b", canonical: true}
	Natural      = &Accidental{cents: 0, symbol: "", canonical: true}
	Sharp        = &Accidental{cents: 100, symbol: "#", canonical: true}
	DoubleSharp  = &Accidental{cents: 200, symbol: "x", canonical: true}
	NaturalFlat  = &Accidental{cents: -100, symbol: "nb", canonical: true}
	NaturalSharp = &Accidental{cents: 100, symbol: "n#", canonical: true}
)

var accidentalsBySemitone = [5]*Accidental{DoubleFlat, Flat, Natural, Sharp, DoubleSharp}

// AccidentalFromSemitones returns the canonical accidental for a semitone
// offset between -2 and 2 inclusive, or nil outside that range. Repeated
// calls return the identical instance.
func AccidentalFromSemitones(semitones int) *Accidental {
	if semitones < -2 || semitones > 2 {
		return nil
	}
	return accidentalsBySemitone[semitones+2]
}

// NewAccidental returns a custom accidental with the given cents offset and
// symbol. Custom accidentals are never canonical, even at canonical offsets.
func NewAccidental(cents int, symbol string) *Accidental {
	return &Accidental{cents: cents, symbol: symbol}
}

func (a *Accidental) Cents() int { return a.cents }

func (a *Accidental) Symbol() string { return a.symbol }

// Semitones returns the offset rounded to whole semitones, halves away from
// zero.
func (a *Accidental) Semitones() int {
	return roundToSemitones(a.cents)
}

// Equal reports whether the accidentals have the same offset and symbol, so
// Flat and NaturalFlat are not equal even though their cents agree.
func (a *Accidental) Equal(o *Accidental) bool {
	if a == nil || o == nil {
		return a == o
	}
	return a.cents == o.cents && a.symbol == o.symbol
}

// Clone returns the accidental itself when it is one of the canonical shared
// instances, and a new value-equal copy otherwise.
func (a *Accidental) Clone() *Accidental {
	if a.canonical {
		return a
	}
	c := *a
	return &c
}

func (a *Accidental) String() string {
	return a.symbol
}
