package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var defaultScenarios []byte

type scenarioFile struct {
	Repeats   int        `yaml:"repeats"`
	Scenarios []scenario `yaml:"scenarios"`
}

type scenario struct {
	Name       string  `yaml:"name"`
	Width      int     `yaml:"width"`      // nodes per layer
	Layers     int     `yaml:"layers"`     // including the source layer
	Sources    int     `yaml:"sources"`    // inputs per node
	Static     float64 `yaml:"static"`     // fraction of nodes with a fixed dependency set
	Read       float64 `yaml:"read"`       // fraction of leaves read per iteration
	Iterations int     `yaml:"iterations"` // writes per run
}

// loadScenarios reads path, or the embedded defaults when path is empty.
func loadScenarios(path string) (*scenarioFile, error) {
	data := defaultScenarios
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading scenarios: %w", err)
		}
	}
	return parseScenarios(data)
}

func parseScenarios(data []byte) (*scenarioFile, error) {
	f := &scenarioFile{Repeats: 5}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing scenarios: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *scenarioFile) validate() error {
	var result *multierror.Error
	if f.Repeats <= 0 {
		result = multierror.Append(result, fmt.Errorf("repeats must be positive, got %d", f.Repeats))
	}
	if len(f.Scenarios) == 0 {
		result = multierror.Append(result, fmt.Errorf("no scenarios"))
	}

	names := map[string]bool{}
	for i, s := range f.Scenarios {
		if s.Name == "" {
			result = multierror.Append(result, fmt.Errorf("scenario %d: missing name", i))
		} else if names[s.Name] {
			result = multierror.Append(result, fmt.Errorf("scenario %d: duplicate name %q", i, s.Name))
		}
		names[s.Name] = true

		if err := s.validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("scenario %q: %w", s.Name, err))
		}
	}
	return result.ErrorOrNil()
}

func (s scenario) validate() error {
	var result *multierror.Error
	if s.Width <= 0 {
		result = multierror.Append(result, fmt.Errorf("width must be positive"))
	}
	if s.Layers < 2 {
		result = multierror.Append(result, fmt.Errorf("layers must be at least 2"))
	}
	if s.Sources <= 0 || s.Sources > s.Width {
		result = multierror.Append(result, fmt.Errorf("sources must be within [1, width]"))
	}
	if s.Static < 0 || s.Static > 1 {
		result = multierror.Append(result, fmt.Errorf("static must be within [0, 1]"))
	}
	if s.Static < 1 && s.Sources < 2 {
		result = multierror.Append(result, fmt.Errorf("dynamic nodes need at least 2 sources"))
	}
	if s.Read <= 0 || s.Read > 1 {
		result = multierror.Append(result, fmt.Errorf("read must be within (0, 1]"))
	}
	if s.Iterations <= 0 {
		result = multierror.Append(result, fmt.Errorf("iterations must be positive"))
	}
	return result.ErrorOrNil()
}

func (s scenario) title() string {
	title := fmt.Sprintf("%dx%d %d sources", s.Width, s.Layers, s.Sources)
	if s.Static < 1 {
		title += " dynamic"
	}
	if s.Read < 1 {
		title += fmt.Sprintf(" read %0.2f%%", 100*s.Read)
	}
	return title
}
