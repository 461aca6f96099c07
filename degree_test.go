package gamut_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/tonelab/gamut"
)

func degreeStrings(s *gamut.Scale) []string {
	ret := make([]string, s.Size())
	for d := 0; d < s.Size(); d++ {
		ret[d] = s.Degree(d).Fundamental().String()
	}
	return ret
}

func TestDegreeMaterialization(t *testing.T) {
	var tests = []struct {
		root string
		want []string
	}{
		{"C4", []string{"C4", "D4", "E4", "F4", "G4", "A4", "B4", "C5"}},
		{"Bb3", []string{"Bb3", "C4", "D4", "D#4", "F4", "G4", "A4", "Bb4"}},
		{"Ebb4", []string{"Ebb4", "E4", "F#4", "G4", "A4", "B4", "C#5", "Ebb5"}},
		{"C", []string{"C", "D", "E", "F", "G", "A", "B", "C"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("TestDegreeMaterialization %s", tt.root), func(t *testing.T) {
			got := degreeStrings(mustScale(t, tt.root, majorCents...))
			for d, want := range tt.want {
				if got[d] != want {
					t.Errorf("degree %d = %s, expected %s", d, got[d], want)
				}
			}
		})
	}
}

func TestDegreeAccessors(t *testing.T) {
	s := mustScale(t, "C4", majorCents...)
	d := s.Degree(3)
	if d == nil {
		t.Fatalf("Degree(3) should not be nil")
	}
	if d.Index() != 3 {
		t.Errorf("Index() = %d, expected 3", d.Index())
	}
	if d.Scale() != s {
		t.Errorf("Scale() should return the owning scale")
	}
	if !d.IsLocal() {
		t.Errorf("IsLocal() should be true")
	}
	if got := d.Fundamental().String(); got != "F4" {
		t.Errorf("Fundamental() = %s, expected F4", got)
	}
}

func TestDegreeOutOfRange(t *testing.T) {
	s := mustScale(t, "C4", majorCents...)
	if s.Degree(-1) != nil {
		t.Errorf("Degree(-1) should be nil")
	}
	if s.Degree(8) != nil {
		t.Errorf("Degree(8) should be nil, the last degree is 7")
	}
	if mustScale(t, "", majorCents...).Degree(0) != nil {
		t.Errorf("a template cannot materialize degrees")
	}
}

func TestDegreeAdjustments(t *testing.T) {
	s := mustScale(t, "C4", 50, 150)
	d1 := s.Degree(1)
	if got := d1.Fundamental().String(); got != "C#4" {
		t.Errorf("a 50 cent offset rounds up to C#4, got %s", got)
	}
	if got := d1.Fundamental().Adjustment; got != -50 {
		t.Errorf("the rounding remainder should be kept, expected -50, got %v", got)
	}
	d2 := s.Degree(2)
	if got := d2.Fundamental().String(); got != "D4" {
		t.Errorf("200 cents above C4 is D4, got %s", got)
	}
	if got := d2.Fundamental().Adjustment; got != 0 {
		t.Errorf("a whole semitone offset needs no adjustment, got %v", got)
	}
	if d1.ContainsPitch(gamut.C, gamut.Sharp) {
		t.Errorf("without adjustments only an unadjusted degree matches")
	}
	if !d1.ContainsPitch(gamut.C, gamut.Sharp, -50) {
		t.Errorf("the degree's adjustment is among the given ones")
	}
	adjusted := *note(t, "C#4")
	adjusted.Adjustment = -50
	if !d1.ContainsNote(&adjusted) {
		t.Errorf("without adjustments the note's own adjustment is matched")
	}
	if d1.ContainsNote(note(t, "C#4")) {
		t.Errorf("an unadjusted C#4 does not match the adjusted degree")
	}
	root := note(t, "C4")
	root.Adjustment = 10
	s.SetRoot(root)
	if got := s.Degree(1).Fundamental().Adjustment; got != -40 {
		t.Errorf("the root's adjustment should carry over, expected -40, got %v", got)
	}
}

func TestDegreeContains(t *testing.T) {
	s := mustScale(t, "C4", majorCents...)
	g4 := s.Degree(4)
	if !g4.Contains(4, gamut.G, nil, 0) {
		t.Errorf("degree 4 of C4 major is G4")
	}
	if !g4.Contains(4, gamut.G, gamut.Natural, 0) {
		t.Errorf("a nil accidental and an explicit natural are the same")
	}
	if g4.Contains(5, gamut.G, nil, 0) {
		t.Errorf("the octave must match")
	}
	if g4.Contains(4, gamut.G, gamut.Sharp, 0) {
		t.Errorf("the accidental must match")
	}
	if g4.Contains(4, gamut.G, nil, 1) {
		t.Errorf("the adjustment must match")
	}
	c5 := s.Degree(7)
	if !c5.ContainsPitch(gamut.C, nil) {
		t.Errorf("ContainsPitch ignores the octave")
	}
	if !g4.ContainsNote(note(t, "G")) {
		t.Errorf("the octave is only compared when both notes have one")
	}
	if g4.ContainsNote(note(t, "G5")) {
		t.Errorf("mismatched octaves do not match")
	}
	if g4.ContainsNote(note(t, "Fx4")) {
		t.Errorf("Fx4 sounds like G4 but is spelled differently")
	}
	if g4.ContainsNote(nil) {
		t.Errorf("no degree contains nil")
	}
}

func TestDegreeConcurrentMaterialization(t *testing.T) {
	s := mustScale(t, "C4", majorCents...)
	const readers = 32
	degrees := make(chan *gamut.Degree, readers)
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			degrees <- s.Degree(3)
		}()
	}
	wg.Wait()
	close(degrees)
	first := <-degrees
	if first == nil {
		t.Fatalf("Degree(3) should not be nil")
	}
	for d := range degrees {
		if d != first {
			t.Errorf("concurrent callers should converge on a single instance")
		}
	}
}

func TestSetRootInvalidates(t *testing.T) {
	s := mustScale(t, "C4", majorCents...)
	old := s.Degree(2)
	if got := old.Fundamental().String(); got != "E4" {
		t.Fatalf("degree 2 of C4 major should be E4, got %s", got)
	}
	s.SetRoot(note(t, "D4"))
	fresh := s.Degree(2)
	if fresh == old {
		t.Errorf("changing the root should drop cached degrees")
	}
	if got := fresh.Fundamental().String(); got != "F#4" {
		t.Errorf("degree 2 of D4 major should be F#4, got %s", got)
	}
	if got := old.Fundamental().String(); got != "E4" {
		t.Errorf("an already handed out degree should not change, got %s", got)
	}
	s.SetRoot(nil)
	if s.Degree(2) != nil {
		t.Errorf("clearing the root should turn the scale back into a template")
	}
	if s.Root() != nil {
		t.Errorf("Root() should be nil after clearing")
	}
	s.SetRoot(note(t, "C4"))
	if got := s.Degree(0).Fundamental().String(); got != "C4" {
		t.Errorf("setting a root on a template should work, got %s", got)
	}
}

func TestSetRootConcurrent(t *testing.T) {
	s := mustScale(t, "C4", majorCents...)
	roots := []*gamut.Note{note(t, "C4"), note(t, "D4")}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.SetRoot(roots[(i+j)%2])
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d := s.Degree(1)
				if d == nil {
					t.Errorf("the scale always has a root, so Degree(1) should never be nil")
					return
				}
				if got := d.Fundamental().String(); got != "D4" && got != "E4" {
					t.Errorf("degree 1 should be D4 or E4, got %s", got)
				}
			}
		}()
	}
	wg.Wait()
}
