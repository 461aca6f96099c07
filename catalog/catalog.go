package catalog

import (
	"embed"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tonelab/gamut"
	"gopkg.in/yaml.v2"
)

//go:embed presets/*
var presetFS embed.FS

type (
	// Template is a named interval pattern. The name is not part of the file
	// contents: it comes from the file's name, with underscores read as
	// spaces. Aliases are alternative names for lookups and Modes names the
	// rotations of the pattern, first rotation first.
	Template struct {
		Name      string   `yaml:"-" json:"-"`
		Aliases   []string `yaml:",flow,omitempty"`
		Intervals []int    `yaml:",flow"`
		Modes     []string `yaml:",flow,omitempty"`
	}

	// Match is one way a scale lines up with a template: the scale reads out
	// the template's pattern entered at interval index Rotation. Mode is the
	// name of that rotation, when the template names it.
	Match struct {
		Template Template
		Rotation int
		Mode     string
	}

	templateList []Template
)

var templates templateList

func init() {
	fs.WalkDir(presetFS, "presets", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		data, err := presetFS.ReadFile(path)
		if err != nil {
			return nil
		}
		var t Template
		if yaml.UnmarshalStrict(data, &t) == nil {
			t.Name = nameFromPath(path)
			templates = append(templates, t)
		}
		return nil
	})
	sort.Sort(templates)
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	noExt := base[:len(base)-len(filepath.Ext(base))]
	return strings.ReplaceAll(noExt, "_", " ")
}

// Names returns the names of all built in templates in alphabetical order.
func Names() []string {
	ret := make([]string, len(templates))
	for i, t := range templates {
		ret[i] = t.Name
	}
	return ret
}

// Templates returns a copy of all built in templates in alphabetical order.
func Templates() []Template {
	ret := make(templateList, len(templates))
	copy(ret, templates)
	return ret
}

// Get returns the built in template with the given name or alias, ignoring
// case.
func Get(name string) (Template, bool) {
	for _, t := range templates {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
		for _, alias := range t.Aliases {
			if strings.EqualFold(alias, name) {
				return t, true
			}
		}
	}
	return Template{}, false
}

// Scale turns the template into a scale rooted at the given note; a nil root
// makes a rootless template scale.
func (t Template) Scale(root *gamut.Note) (*gamut.Scale, error) {
	intervals := make([]gamut.Interval, len(t.Intervals))
	for i, c := range t.Intervals {
		intervals[i] = gamut.Interval{Cents: c}
	}
	return gamut.NewScale(root, intervals)
}

// Mode returns the name of the given rotation of the template, or an empty
// string when the template does not name it.
func (t Template) Mode(rotation int) string {
	if rotation >= 0 && rotation < len(t.Modes) {
		return t.Modes[rotation]
	}
	return ""
}

// Identify matches the scale's interval sequence against every built in
// template of the same length and all of its rotations. Each matching
// template contributes one Match for its lowest matching rotation; a dorian
// scale thus matches the major template once, at rotation 1. The scale's
// root, if any, plays no part.
func Identify(s *gamut.Scale) []Match {
	if s == nil {
		return nil
	}
	var ret []Match
	for _, t := range templates {
		if len(t.Intervals) != s.NumIntervals() {
			continue
		}
		pattern, err := t.Scale(nil)
		if err != nil {
			continue
		}
		for start := 0; start < len(t.Intervals); start++ {
			if pattern.HasEqualIntervalSequenceAt(s, start) {
				ret = append(ret, Match{Template: t, Rotation: start, Mode: t.Mode(start)})
				break
			}
		}
	}
	return ret
}

func (t templateList) Len() int           { return len(t) }
func (t templateList) Less(i, j int) bool { return t[i].Name < t[j].Name }
func (t templateList) Swap(i, j int)      { t[i], t[j] = t[j], t[i] }
