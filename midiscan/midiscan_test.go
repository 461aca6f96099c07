package midiscan_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/tonelab/gamut"
	"github.com/tonelab/gamut/keysig"
	"github.com/tonelab/gamut/midiscan"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// testFileBytes builds a one track file in G major: a key signature and the
// eight notes of the G major scale, a quarter note each at 120 BPM.
func testFileBytes(t *testing.T) []byte {
	t.Helper()
	var file smf.SMF
	file.TimeFormat = smf.MetricTicks(960)
	var track smf.Track
	track = append(track, smf.Event{Delta: 0, Message: smf.MetaTempo(120)})
	track = append(track, smf.Event{Delta: 0, Message: smf.MetaKey(7, true, 1, false)})
	for _, key := range []uint8{67, 69, 71, 72, 74, 76, 78, 79} {
		track = append(track, smf.Event{Delta: 0, Message: smf.Message(midi.NoteOn(0, key, 100))})
		track = append(track, smf.Event{Delta: 960, Message: smf.Message(midi.NoteOff(0, key))})
	}
	track.Close(0)
	file.Tracks = append(file.Tracks, track)
	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return buf.Bytes()
}

func testFile(t *testing.T) *smf.SMF {
	t.Helper()
	s, err := smf.ReadFrom(bytes.NewReader(testFileBytes(t)))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	return s
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mid")
	if err := os.WriteFile(path, testFileBytes(t), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	s, err := midiscan.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(s.Tracks) != 1 {
		t.Errorf("the file should have one track, got %d", len(s.Tracks))
	}
	if _, err := midiscan.ReadFile(filepath.Join(t.TempDir(), "missing.mid")); err == nil {
		t.Errorf("ReadFile should fail on a missing file")
	}
	garbage := filepath.Join(t.TempDir(), "garbage.mid")
	if err := os.WriteFile(garbage, []byte("not a midi file"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := midiscan.ReadFile(garbage); err == nil {
		t.Errorf("ReadFile should fail on garbage contents")
	}
}

func TestEvents(t *testing.T) {
	events := midiscan.Events(testFile(t))
	if len(events) != 8 {
		t.Fatalf("the file has 8 notes, got %d", len(events))
	}
	want := midiscan.NoteEvent{Track: 0, Channel: 0, Key: 67, Velocity: 100, Start: 0, End: 500000}
	if events[0] != want {
		t.Errorf("events[0] = %+v, expected %+v", events[0], want)
	}
	last := events[7]
	if last.Key != 79 || last.Start != 3500000 || last.End != 4000000 {
		t.Errorf("events[7] = %+v, expected key 79 from 3500000 to 4000000", last)
	}
	for i := 1; i < len(events); i++ {
		if events[i].Start < events[i-1].Start {
			t.Errorf("events should be ordered by start time")
		}
	}
}

func TestKeySignatures(t *testing.T) {
	changes := midiscan.KeySignatures(testFile(t))
	if len(changes) != 1 {
		t.Fatalf("the file has one key signature, got %d", len(changes))
	}
	if got := changes[0].Key.String(); got != "G major" {
		t.Errorf("Key = %s, expected G major", got)
	}
	if changes[0].At != 0 || changes[0].Track != 0 {
		t.Errorf("the key signature should be at the start of track 0, got %+v", changes[0])
	}
}

func TestProfileOf(t *testing.T) {
	p := midiscan.ProfileOf(midiscan.Events(testFile(t)))
	if p[7] != 1000000 {
		t.Errorf("G sounds for two quarter notes, got %v", p[7])
	}
	if p[9] != 500000 || p[0] != 500000 {
		t.Errorf("A and C sound for one quarter note each, got %v and %v", p[9], p[0])
	}
	if p[1] != 0 || p[8] != 0 {
		t.Errorf("C# and G# never sound, got %v and %v", p[1], p[8])
	}
}

func TestTransposed(t *testing.T) {
	p := midiscan.ProfileOf(midiscan.Events(testFile(t)))
	if p.Transposed(12) != p {
		t.Errorf("transposing by an octave should change nothing")
	}
	if got := p.Transposed(5)[0]; got != p[7] {
		t.Errorf("Transposed(5)[0] = %v, expected %v", got, p[7])
	}
}

func TestCorrelation(t *testing.T) {
	p := midiscan.ProfileOf(midiscan.Events(testFile(t)))
	if r := midiscan.Correlation(p, p); r < 0.999 {
		t.Errorf("a profile should correlate fully with itself, got %v", r)
	}
	if r := midiscan.Correlation(p, midiscan.Profile{}); r != 0 {
		t.Errorf("a flat profile should correlate with nothing, got %v", r)
	}
}

func TestGuessKey(t *testing.T) {
	key, r := midiscan.GuessKey(midiscan.ProfileOf(midiscan.Events(testFile(t))))
	if got := key.String(); got != "G major" {
		t.Errorf("GuessKey = %s, expected G major", got)
	}
	if r < 0.8 {
		t.Errorf("the correlation should be strong, got %v", r)
	}
	if _, r := midiscan.GuessKey(midiscan.Profile{}); r != 0 {
		t.Errorf("a flat profile should guess nothing with confidence, got %v", r)
	}
}

func TestForeign(t *testing.T) {
	k, err := keysig.Parse("G major")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	scale, err := k.Scale()
	if err != nil {
		t.Fatalf("Scale failed: %v", err)
	}
	events := []midiscan.NoteEvent{{Key: 68}, {Key: 67}, {Key: 64}}
	foreign := midiscan.Foreign(events, scale)
	if len(foreign) != 1 || foreign[0].Key != 68 {
		t.Errorf("only G#/Ab is foreign to G major, got %v", foreign)
	}
	template, err := gamut.NewTemplate([]gamut.Interval{{Cents: 200}})
	if err != nil {
		t.Fatalf("NewTemplate failed: %v", err)
	}
	if got := midiscan.Foreign(events, template); len(got) != 3 {
		t.Errorf("every event is foreign to a template, got %v", got)
	}
	if got := midiscan.Foreign(events, nil); len(got) != 3 {
		t.Errorf("every event is foreign to no scale at all, got %v", got)
	}
}
