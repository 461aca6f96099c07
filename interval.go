package gamut

import (
	"fmt"
	"math"
)

type (
	// Interval is the signed distance between two adjacent scale degrees, in
	// cents; 100 cents is one equal-tempered semitone, so an ascending whole
	// step is 200 cents and a descending whole step is -200 cents.
	Interval struct {
		Cents int
	}
)

// Common intervals in their ascending form; descending variants are the
// negations of these.
var (
	Unison        = Interval{Cents: 0}
	MinorSecond   = Interval{Cents: 100}
	MajorSecond   = Interval{Cents: 200}
	MinorThird    = Interval{Cents: 300}
	MajorThird    = Interval{Cents: 400}
	PerfectFourth = Interval{Cents: 500}
	Tritone       = Interval{Cents: 600}
	PerfectFifth  = Interval{Cents: 700}
	MinorSixth    = Interval{Cents: 800}
	MajorSixth    = Interval{Cents: 900}
	MinorSeventh  = Interval{Cents: 1000}
	MajorSeventh  = Interval{Cents: 1100}
	Octave        = Interval{Cents: 1200}
)

const centsPerSemitone = 100

// FromSemitones returns the interval spanning the given number of semitones,
// negative for descending intervals.
func FromSemitones(semitones int) Interval {
	return Interval{Cents: semitones * centsPerSemitone}
}

// Semitones returns the interval rounded to whole semitones. Halves round
// away from zero, so 150 cents is 2 semitones and -150 cents is -2 semitones;
// the sign of the result always matches the sign of the cents.
func (i Interval) Semitones() int {
	return roundToSemitones(i.Cents)
}

// Compare returns the signed difference in cents between i and o. Comparing
// against a nil interval returns math.MaxInt, so nil never compares equal and
// sorts below every interval.
func (i Interval) Compare(o *Interval) int {
	if o == nil {
		return math.MaxInt
	}
	return i.Cents - o.Cents
}

// EqualIgnoreDirection reports whether the two intervals span the same
// distance regardless of direction, e.g. ascending and descending minor
// seconds are both half steps.
func (i Interval) EqualIgnoreDirection(o Interval) bool {
	return abs(i.Cents) == abs(o.Cents)
}

func (i Interval) String() string {
	return fmt.Sprintf("%dc", i.Cents)
}

func roundToSemitones(cents int) int {
	if cents < 0 {
		return -((-cents + centsPerSemitone/2) / centsPerSemitone)
	}
	return (cents + centsPerSemitone/2) / centsPerSemitone
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
