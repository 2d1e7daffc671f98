package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kpress-lab/collector/internal/sources"
	"gopkg.in/yaml.v3"
)

// Duration accepts Go duration strings ("1500ms", "2s") in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// SourceTuning adjusts one source's pacing and quota without touching its
// selectors. Nil fields leave the registered value in place.
type SourceTuning struct {
	MaxPerCategory *int      `yaml:"max_per_category"`
	DelayMin       *Duration `yaml:"delay_min"`
	DelayMax       *Duration `yaml:"delay_max"`
	CategoryDelay  *Duration `yaml:"category_delay"`
	Disabled       bool      `yaml:"disabled"`
}

// Overrides is the schema of the optional YAML override file.
type Overrides struct {
	OutputDir   string                   `yaml:"output_dir"`
	DownloadDir string                   `yaml:"download_dir"`
	Sources     map[string]*SourceTuning `yaml:"sources"`
}

// LoadOverrides parses a YAML override file.
func LoadOverrides(path string) (*Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &ov, nil
}

// Apply copies the non-nil tuning values onto a source before a run.
func (t *SourceTuning) Apply(src *sources.Source) {
	if t == nil || src == nil {
		return
	}
	if t.MaxPerCategory != nil {
		src.MaxPerCategory = *t.MaxPerCategory
	}
	if t.DelayMin != nil {
		src.DelayMin = time.Duration(*t.DelayMin)
	}
	if t.DelayMax != nil {
		src.DelayMax = time.Duration(*t.DelayMax)
	}
	if t.CategoryDelay != nil {
		src.CategoryDelay = time.Duration(*t.CategoryDelay)
	}
}
