package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Parse reads a template from .yml or .json contents. The name stays empty,
// as it lives in the file's name, not its contents.
func Parse(data []byte) (Template, error) {
	var t Template
	if errJSON := json.Unmarshal(data, &t); errJSON != nil {
		if errYaml := yaml.Unmarshal(data, &t); errYaml != nil {
			return Template{}, fmt.Errorf("the template could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	if len(t.Intervals) == 0 {
		return Template{}, fmt.Errorf("the template has no intervals")
	}
	return t, nil
}

// ReadFile reads a template from a .yml or .json file and names it after the
// file, underscores read as spaces.
func ReadFile(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("could not read file %v: %v", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return Template{}, err
	}
	t.Name = nameFromPath(path)
	return t, nil
}

// WriteFile saves the template, as .json when the path carries that
// extension and as yaml otherwise. The name is not written; it is carried by
// the file's name.
func WriteFile(path string, t Template) error {
	var contents []byte
	var err error
	if filepath.Ext(path) == ".json" {
		contents, err = json.Marshal(t)
	} else {
		contents, err = yaml.Marshal(t)
	}
	if err != nil {
		return fmt.Errorf("could not marshal the template: %v", err)
	}
	return os.WriteFile(path, contents, 0644)
}
