package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/dc-sim/dc-sim/sim"
)

// LoadScenario reads a scenario YAML from disk. Validation and defaulting
// happen inside the simulator, not here.
func LoadScenario(path string) (*sim.ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var cfg sim.ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	return &cfg, nil
}
