// Package corpus loads the anomaly scenario collection the generator runs
// over. The corpus is explicit input: callers pass the loaded records down
// the render/write/validate chain, so the same pipeline runs against any
// scenario source.
package corpus

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kxstack/anomaly-trainset/internal/models"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

// File is the YAML root of a corpus document.
type File struct {
	Scenarios []models.AnomalyRecord `yaml:"scenarios"`
}

// Load reads a corpus from the given YAML file. An empty path selects the
// embedded default scenario pack.
func Load(path string) ([]models.AnomalyRecord, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	records, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", path, err)
	}
	return records, nil
}

// Default returns the embedded scenario pack.
func Default() ([]models.AnomalyRecord, error) {
	records, err := parse(defaultScenarios)
	if err != nil {
		return nil, fmt.Errorf("embedded corpus: %w", err)
	}
	return records, nil
}

func parse(data []byte) ([]models.AnomalyRecord, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("corpus contains no scenarios")
	}
	return file.Scenarios, nil
}
