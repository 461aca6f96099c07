package midiscan

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/tonelab/gamut"
	"github.com/tonelab/gamut/keysig"
	"gitlab.com/gomidi/midi/v2/smf"
)

type (
	// NoteEvent is one sounded note in a MIDI file: a note on paired with
	// the note off that silenced it. Times are in microseconds from the
	// start of the file.
	NoteEvent struct {
		Track    int
		Channel  uint8
		Key      uint8
		Velocity uint8
		Start    int64
		End      int64
	}

	// KeyChange is a key signature meta event and when it takes effect.
	KeyChange struct {
		Track int
		At    int64
		Key   keysig.KeySig
	}

	// Profile is the time each pitch class sounds over a piece, in
	// microseconds, class 0 being C. Comparisons are scale invariant, so
	// the profile never needs normalizing.
	Profile [12]float64
)

// The Krumhansl & Kessler probe tone ratings for a major and a minor key
// rooted at class 0.
var (
	majorProfile = Profile{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = Profile{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

// ReadFile reads a standard MIDI file.
func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %v: %v", path, err)
	}
	s, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("could not parse %v: %v", path, err)
	}
	return s, nil
}

// Events pairs the note ons in the file with their note offs and returns the
// sounded notes ordered by start time. A note still sounding at the end of
// its track is dropped. Same key notes on the same channel close in the
// order they opened.
func Events(s *smf.SMF) []NoteEvent {
	var ret []NoteEvent
	for t, track := range s.Tracks {
		var absTicks int64
		open := make(map[[2]uint8][]NoteEvent)
		for _, event := range track {
			absTicks += int64(event.Delta)
			var ch, key, vel uint8
			switch {
			case event.Message.GetNoteStart(&ch, &key, &vel):
				k := [2]uint8{ch, key}
				open[k] = append(open[k], NoteEvent{
					Track:    t,
					Channel:  ch,
					Key:      key,
					Velocity: vel,
					Start:    s.TimeAt(absTicks),
				})
			case event.Message.GetNoteEnd(&ch, &key):
				k := [2]uint8{ch, key}
				if pending := open[k]; len(pending) > 0 {
					note := pending[0]
					open[k] = pending[1:]
					note.End = s.TimeAt(absTicks)
					ret = append(ret, note)
				}
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Start != ret[j].Start {
			return ret[i].Start < ret[j].Start
		}
		return ret[i].Key < ret[j].Key
	})
	return ret
}

// KeySignatures returns the key signature meta events of the file in order.
func KeySignatures(s *smf.SMF) []KeyChange {
	var ret []KeyChange
	for t, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var key uint8
			var isMajor bool
			var num uint8
			var isFlat bool
			if event.Message.GetMetaKeySig(&key, &num, &isMajor, &isFlat) {
				ret = append(ret, KeyChange{
					Track: t,
					At:    s.TimeAt(absTicks),
					Key:   keysig.FromMIDI(num, isMajor, isFlat),
				})
			}
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].At < ret[j].At })
	return ret
}

// ProfileOf sums up how long each pitch class sounds over the given events.
func ProfileOf(events []NoteEvent) Profile {
	var p Profile
	for _, e := range events {
		if d := e.End - e.Start; d > 0 {
			p[int(e.Key)%12] += float64(d)
		}
	}
	return p
}

// Transposed returns the profile moved up by the given number of classes.
func (p Profile) Transposed(by int) Profile {
	var ret Profile
	for i, v := range p {
		ret[mod(i+by, 12)] = v
	}
	return ret
}

// Correlation returns the Pearson correlation of two profiles, or 0 when
// either profile is flat.
func Correlation(a, b Profile) float64 {
	var meanA, meanB float64
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= 12
	meanB /= 12
	var cov, varA, varB float64
	for i := range a {
		da, db := a[i]-meanA, b[i]-meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}
	if varA == 0 || varB == 0 {
		return 0
	}
	return cov / math.Sqrt(varA*varB)
}

// GuessKey correlates the profile against the probe tone profiles of all 24
// keys and returns the best matching key with its correlation.
func GuessKey(p Profile) (keysig.KeySig, float64) {
	best := math.Inf(-1)
	var bestKey keysig.KeySig
	for class := 0; class < 12; class++ {
		if r := Correlation(p, majorProfile.Transposed(class)); r > best {
			best = r
			bestKey = keyFor(class, keysig.Major)
		}
		if r := Correlation(p, minorProfile.Transposed(class)); r > best {
			best = r
			bestKey = keyFor(class, keysig.Minor)
		}
	}
	return bestKey, best
}

// keyFor maps a tonic pitch class to the key signature whose tonic sounds at
// that class, settling the enharmonic classes on the spelling with fewer
// accidentals.
func keyFor(class int, mode keysig.Mode) keysig.KeySig {
	if mode == keysig.Minor {
		class = mod(class-9, 12)
	}
	k := mod(7*class, 12)
	if k > 6 {
		k -= 12
	}
	return keysig.KeySig{Accidentals: k, Mode: mode}
}

// Foreign returns the events sounding outside the scale, comparing by pitch
// class. A template owns no pitch classes, so against one every event is
// foreign.
func Foreign(events []NoteEvent, s *gamut.Scale) []NoteEvent {
	var owned [12]bool
	if s != nil {
		for d := 0; d < s.Size(); d++ {
			degree := s.Degree(d)
			if degree == nil {
				break
			}
			owned[degree.Fundamental().PitchClass()] = true
		}
	}
	var ret []NoteEvent
	for _, e := range events {
		if !owned[int(e.Key)%12] {
			ret = append(ret, e)
		}
	}
	return ret
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
