package threadpool

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the file-configurable subset of the pool configuration, e.g.
//
//	name: image-resize
//	workers: 8
type Settings struct {
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Workers uint   `yaml:"workers,omitempty" json:"workers,omitempty"`
}

// LoadSettings decodes YAML settings from r. Unknown keys are rejected.
// An empty document yields zero Settings.
func LoadSettings(r io.Reader) (Settings, error) {
	var s Settings
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// LoadSettingsFile reads settings from the YAML file at path.
func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()
	return LoadSettings(f)
}
