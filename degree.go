package gamut

type (
	// Degree is one addressable element of a scale: a degree index bound to
	// the concrete note materialized for it. Degrees are handed out by
	// Scale.Degree and keep a reference to their owning scale.
	Degree struct {
		scale *Scale
		index int
		note  Note
	}
)

// Scale returns the scale the degree belongs to.
func (d *Degree) Scale() *Scale {
	return d.scale
}

// Index returns the degree's position within its scale, 0 for the root.
func (d *Degree) Index() int {
	return d.index
}

// Fundamental returns the concrete note of the degree.
func (d *Degree) Fundamental() Note {
	return d.note
}

// IsLocal reports whether the degree resolves its note by itself; always
// true for degrees materialized from a scale.
func (d *Degree) IsLocal() bool {
	return true
}

// Contains reports whether the degree's note is exactly the given octave,
// pitch, accidental and adjustment. The comparison is spelled: a degree
// holding A#4 does not contain Bb4.
func (d *Degree) Contains(octave int, pitch Pitch, accidental *Accidental, adjustment float64) bool {
	return d.note.Octave.Equals(octave) &&
		d.note.Pitch == pitch &&
		accidentalOrNatural(d.note.Accidental).Equal(accidentalOrNatural(accidental)) &&
		d.note.Adjustment == adjustment
}

// ContainsPitch reports whether the degree's note has the given pitch and
// accidental, in any octave. With no adjustments the degree's adjustment
// must be zero; with several, any listed value may match.
func (d *Degree) ContainsPitch(pitch Pitch, accidental *Accidental, adjustments ...float64) bool {
	if d.note.Pitch != pitch || !accidentalOrNatural(d.note.Accidental).Equal(accidentalOrNatural(accidental)) {
		return false
	}
	if len(adjustments) == 0 {
		return d.note.Adjustment == 0
	}
	return d.adjustmentIn(adjustments)
}

// ContainsNote reports whether the degree's note matches the given note in
// spelling, octaves compared only when both notes carry one. With no
// adjustments the candidate's own adjustment is the one matched, so unlike
// ContainsPitch the default is not zero; with several, any listed value may
// match.
func (d *Degree) ContainsNote(note *Note, adjustments ...float64) bool {
	if note == nil {
		return false
	}
	if d.note.Pitch != note.Pitch || !accidentalOrNatural(d.note.Accidental).Equal(accidentalOrNatural(note.Accidental)) {
		return false
	}
	if octave, ok := note.Octave.Unpack(); ok && !d.note.Octave.Empty() && !d.note.Octave.Equals(octave) {
		return false
	}
	if len(adjustments) == 0 {
		return d.note.Adjustment == note.Adjustment
	}
	return d.adjustmentIn(adjustments)
}

func (d *Degree) adjustmentIn(adjustments []float64) bool {
	for _, a := range adjustments {
		if d.note.Adjustment == a {
			return true
		}
	}
	return false
}
