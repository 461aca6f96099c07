package gamut

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

type (
	// Scale is an ordered sequence of intervals with an optional root note.
	// The interval sequence is fixed at construction; the root may be
	// replaced at any time with SetRoot. A scale without a root is a
	// template: it still classifies and matches patterns, but cannot
	// materialize concrete notes, so every degree lookup comes back empty.
	// Scales are safe for concurrent use.
	Scale struct {
		// Label is a free-form display name for the scale, e.g. "A minor".
		// It has no effect on any comparison.
		Label string

		intervals []Interval

		// mu serializes degree construction and root replacement; reading an
		// already materialized degree does not take it.
		mu    sync.Mutex
		state atomic.Pointer[scaleState]
	}

	// scaleState is one generation of root plus degree slots. SetRoot swaps
	// in a whole new generation, so a reader sees either the previous
	// fully consistent generation or the new empty one, never a mixture.
	scaleState struct {
		root    *Note
		degrees []atomic.Pointer[Degree]
	}
)

// NewScale returns a scale built from the given intervals, rooted at root. A
// nil root makes a template. The interval sequence must be non-empty and is
// copied, never aliased.
func NewScale(root *Note, intervals []Interval) (*Scale, error) {
	if len(intervals) == 0 {
		return nil, errors.New("a scale needs at least one interval")
	}
	s := &Scale{intervals: make([]Interval, len(intervals))}
	copy(s.intervals, intervals)
	s.swapState(root)
	return s, nil
}

// NewTemplate returns a rootless scale: just the interval pattern.
func NewTemplate(intervals []Interval) (*Scale, error) {
	return NewScale(nil, intervals)
}

// SetRoot replaces the root and drops every cached degree in one swap. A
// concurrent reader observes either the previous root's degrees or none at
// all, never a partially cleared cache. A nil root turns the scale back into
// a template.
func (s *Scale) SetRoot(root *Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapState(root)
}

func (s *Scale) swapState(root *Note) {
	if root != nil {
		r := *root
		root = &r
	}
	s.state.Store(&scaleState{
		root:    root,
		degrees: make([]atomic.Pointer[Degree], len(s.intervals)+1),
	})
}

// Root returns a copy of the root note, or nil for a template.
func (s *Scale) Root() *Note {
	st := s.state.Load()
	if st == nil || st.root == nil {
		return nil
	}
	r := *st.root
	return &r
}

// Intervals returns a copy of the interval sequence.
func (s *Scale) Intervals() []Interval {
	intervals := make([]Interval, len(s.intervals))
	copy(intervals, s.intervals)
	return intervals
}

// NumIntervals returns the number of intervals in the scale.
func (s *Scale) NumIntervals() int {
	return len(s.intervals)
}

// Size returns the number of degrees in the scale: one more than the number
// of intervals, as both endpoints of the sequence are degrees.
func (s *Scale) Size() int {
	return len(s.intervals) + 1
}

// Cents returns the total span of the scale in cents: the difference between
// the highest and the lowest point of the running interval sum, the start
// counting as 0. The scale does not have to be monotonic, so this is not
// simply the absolute value of the total.
func (s *Scale) Cents() int {
	sum, minSum, maxSum := 0, 0, 0
	for _, iv := range s.intervals {
		sum += iv.Cents
		if sum < minSum {
			minSum = sum
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum - minSum
}

// Length returns the span of the scale in whole semitones, rounding every
// interval before summing. Rounding first means Length may drift slightly
// from Cents()/100; the two remain separate measures.
func (s *Scale) Length() int {
	sum, minSum, maxSum := 0, 0, 0
	for _, iv := range s.intervals {
		sum += iv.Semitones()
		if sum < minSum {
			minSum = sum
		}
		if sum > maxSum {
			maxSum = sum
		}
	}
	return maxSum - minSum
}

// IsAscending reports whether no interval descends and the sequence ends
// higher than it started.
func (s *Scale) IsAscending() bool {
	sum := 0
	for _, iv := range s.intervals {
		if iv.Cents < 0 {
			return false
		}
		sum += iv.Cents
	}
	return sum > 0
}

// IsDescending reports whether no interval ascends and the sequence ends
// lower than it started.
func (s *Scale) IsDescending() bool {
	sum := 0
	for _, iv := range s.intervals {
		if iv.Cents > 0 {
			return false
		}
		sum += iv.Cents
	}
	return sum < 0
}

// IsChromatic reports whether the scale is a twelve-tone scale: exactly
// twelve intervals, the first a half step in either direction, and all
// twelve identical in cents.
func (s *Scale) IsChromatic() bool {
	if len(s.intervals) != semitonesPerOctave {
		return false
	}
	if !s.intervals[0].EqualIgnoreDirection(MinorSecond) {
		return false
	}
	for _, iv := range s.intervals[1:] {
		if iv.Cents != s.intervals[0].Cents {
			return false
		}
	}
	return true
}

// IsDiatonic reports whether the scale follows the diatonic pattern: every
// interval in the direction of the first, exactly two half steps, and two or
// three whole steps inside each of the two gaps that the half steps cut the
// cycle into. A scale whose Length is exactly 7 is rejected before the
// detailed check runs.
func (s *Scale) IsDiatonic() bool {
	if s.Length() == 7 {
		return false
	}
	first, second := -1, -1
	for i, iv := range s.intervals {
		if signum(iv.Cents) != signum(s.intervals[0].Cents) {
			return false
		}
		if !iv.EqualIgnoreDirection(MinorSecond) {
			continue
		}
		switch {
		case first < 0:
			first = i
		case second < 0:
			second = i
		default:
			return false
		}
	}
	if second < 0 {
		return false
	}
	inner := s.majorSecondsBetween(first, second)
	outer := s.majorSecondsBetween(second, first+len(s.intervals))
	return (inner == 2 || inner == 3) && (outer == 2 || outer == 3)
}

// majorSecondsBetween counts the whole steps strictly between interval
// indices from and to, walking forward and wrapping around the sequence.
func (s *Scale) majorSecondsBetween(from, to int) int {
	count := 0
	for i := from + 1; i < to; i++ {
		if s.intervals[mod(i, len(s.intervals))].EqualIgnoreDirection(MajorSecond) {
			count++
		}
	}
	return count
}

// HasEqualIntervals reports whether both scales have the same intervals in
// the same order, comparing cents exactly.
func (s *Scale) HasEqualIntervals(o *Scale) bool {
	if o == nil || len(s.intervals) != len(o.intervals) {
		return false
	}
	for i, iv := range s.intervals {
		if iv.Cents != o.intervals[i].Cents {
			return false
		}
	}
	return true
}

// HasEqualIntervalSequenceAt reports whether the other scale's intervals
// read out, in order, the same as this scale's when this scale is entered at
// interval index start and wrapped cyclically.
func (s *Scale) HasEqualIntervalSequenceAt(o *Scale, start int) bool {
	if o == nil {
		return false
	}
	if len(s.intervals) == 0 {
		return len(o.intervals) == 0
	}
	for j, iv := range o.intervals {
		if s.intervals[mod(start+j, len(s.intervals))].Cents != iv.Cents {
			return false
		}
	}
	return true
}

// HasEqualIntervalSequence reports whether the other scale is some rotation
// of this one, i.e. the two are modes of the same cyclic pattern.
func (s *Scale) HasEqualIntervalSequence(o *Scale) bool {
	if o == nil {
		return false
	}
	for start := range s.intervals {
		if s.HasEqualIntervalSequenceAt(o, start) {
			return true
		}
	}
	return false
}

// HasEqualNoteSequence walks this scale's concrete notes and, wherever a
// note shares a pitch class with the other scale's root, matches the
// rotation entered at that degree against the other scale. It detects
// relative scales: A minor has an equal note sequence with C major, as the
// minor pattern starts on the major scale's sixth degree. Both scales must
// be rooted.
func (s *Scale) HasEqualNoteSequence(o *Scale) bool {
	if o == nil {
		return false
	}
	oroot := o.Root()
	if oroot == nil {
		return false
	}
	for d := 0; d < s.Size(); d++ {
		degree := s.Degree(d)
		if degree == nil {
			return false
		}
		note := degree.Fundamental()
		if !note.SamePitchClass(oroot) {
			continue
		}
		if s.HasEqualIntervalSequenceAt(o, d) {
			return true
		}
	}
	return false
}

// EqualsIgnorePitch reports whether the scales have equal intervals and
// roots at the same absolute position regardless of spelling: a pattern
// rooted at C#4 equals the same pattern rooted at Db4, but not at Db5. The
// root comparison is skipped when either scale is a template.
func (s *Scale) EqualsIgnorePitch(o *Scale) bool {
	if o == nil {
		return false
	}
	root, oroot := s.Root(), o.Root()
	if root != nil && oroot != nil && !root.SamePitch(oroot) {
		return false
	}
	return s.HasEqualIntervals(o)
}

// EqualsIgnorePitchAndOctave is EqualsIgnorePitch with the roots compared by
// pitch class only, so the same pattern rooted at Db2 and at C#6 is equal.
func (s *Scale) EqualsIgnorePitchAndOctave(o *Scale) bool {
	if o == nil {
		return false
	}
	root, oroot := s.Root(), o.Root()
	if root != nil && oroot != nil && !root.SamePitchClass(oroot) {
		return false
	}
	return s.HasEqualIntervals(o)
}

// Test reports whether this scale is contained within the other: this
// scale's intervals appear consecutively in the other's cycle, anchored at
// this scale's root when it has one. A rootless scale matches on the
// pattern alone.
func (s *Scale) Test(o *Scale) bool {
	if o == nil || len(o.intervals) == 0 || len(s.intervals) > len(o.intervals) {
		return false
	}
	root := s.Root()
	if root == nil {
		return s.HasEqualIntervalSequence(o)
	}
	i := o.IndexOfNote(root)
	if i == o.Size() {
		return false
	}
	return o.HasEqualIntervalSequenceAt(s, i)
}

// IndexOf returns the first degree whose note matches the given octave,
// pitch, accidental and adjustment exactly. Not found, and every lookup on a
// template, returns Size(), never a negative value.
func (s *Scale) IndexOf(octave int, pitch Pitch, accidental *Accidental, adjustment float64) int {
	for d := 0; d < s.Size(); d++ {
		degree := s.Degree(d)
		if degree == nil {
			break
		}
		if degree.Contains(octave, pitch, accidental, adjustment) {
			return d
		}
	}
	return s.Size()
}

// IndexOfPitch is IndexOf with the octave left unconstrained. With no
// adjustments the degree's adjustment must be zero; with several, any one of
// them may match.
func (s *Scale) IndexOfPitch(pitch Pitch, accidental *Accidental, adjustments ...float64) int {
	for d := 0; d < s.Size(); d++ {
		degree := s.Degree(d)
		if degree == nil {
			break
		}
		if degree.ContainsPitch(pitch, accidental, adjustments...) {
			return d
		}
	}
	return s.Size()
}

// IndexOfNote returns the first degree containing the given note. With no
// adjustments the note's own adjustment is matched; with several, any one of
// them may match.
func (s *Scale) IndexOfNote(note *Note, adjustments ...float64) int {
	for d := 0; d < s.Size(); d++ {
		degree := s.Degree(d)
		if degree == nil {
			break
		}
		if degree.ContainsNote(note, adjustments...) {
			return d
		}
	}
	return s.Size()
}

// Degree returns the degree at index d, materializing and caching it on
// first access. Out of range indices and every access on a template return
// nil. Concurrent callers asking for the same degree converge on a single
// instance; reading an already materialized degree takes no lock.
func (s *Scale) Degree(d int) *Degree {
	st := s.state.Load()
	if st == nil || st.root == nil || d < 0 || d >= len(st.degrees) {
		return nil
	}
	if degree := st.degrees[d].Load(); degree != nil {
		return degree
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// the root may have been swapped while waiting for the lock
	st = s.state.Load()
	if st.root == nil {
		return nil
	}
	if degree := st.degrees[d].Load(); degree != nil {
		return degree
	}
	degree := s.materialize(st.root, d)
	st.degrees[d].Store(degree)
	return degree
}

// materialize builds the concrete note for degree d: the running interval
// sum applied to the root, rounded to a semitone position, with the rounding
// remainder kept as the note's adjustment. Offsets that are whole octaves
// keep the root's spelling; everything else is spelled sharpwise.
func (s *Scale) materialize(root *Note, d int) *Degree {
	offset := 0
	for _, iv := range s.intervals[:d] {
		offset += iv.Cents
	}
	steps := roundToSemitones(offset)
	const centsPerOctave = semitonesPerOctave * centsPerSemitone
	var note Note
	if offset%centsPerOctave == 0 {
		note = *root
		if octave, ok := root.Octave.Unpack(); ok {
			note.Octave = NewOptionalIntOf(octave + offset/centsPerOctave)
		}
	} else {
		note = NoteFromSemitones(root.Semitone() + steps)
		if root.Octave.Empty() {
			note.Octave = NewEmptyOptionalInt()
		}
	}
	note.Adjustment = root.Adjustment + float64(offset-steps*centsPerSemitone)
	return &Degree{scale: s, index: d, note: note}
}

func (s *Scale) String() string {
	if s.Label != "" {
		return s.Label
	}
	if root := s.Root(); root != nil {
		return fmt.Sprintf("%v %v", root, s.intervals)
	}
	return fmt.Sprintf("%v", s.intervals)
}

func signum(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
