package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// hostDefaults holds engine-level settings that are not patch content:
// channel counts, sample rate, block size, and abstraction search
// paths. A host deployment can pin these in a YAML sidecar instead of
// repeating pflag arguments on every invocation; flags always win over
// the file when both are given.
type hostDefaults struct {
	InChannels  int      `yaml:"in_channels"`
	OutChannels int      `yaml:"out_channels"`
	SampleRate  float64  `yaml:"sample_rate"`
	BlockSize   int      `yaml:"block_size"`
	SearchPaths []string `yaml:"search_paths"`
}

func loadHostDefaults(path string) (hostDefaults, error) {
	var d hostDefaults
	data, err := os.ReadFile(path)
	if err != nil {
		return d, err
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, err
	}
	return d, nil
}
