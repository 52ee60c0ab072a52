// Package pipelineconfig loads the YAML file describing which solver stages
// the batch command (cmd/batch) chains together, and the batch runner's
// worker pool settings.
package pipelineconfig

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// StageConfig names one solver stage and its specialized options, prior to
// being loaded into a solver.SpecialisedConfig.
type StageConfig struct {
	Name    string            `yaml:"name"`
	Options map[string]string `yaml:"options"`
}

// PipelineConfig is the ordered list of stages and the overall time budget.
type PipelineConfig struct {
	TimeLimitInMilliseconds int64         `yaml:"time_limit_in_milliseconds"`
	Stages                  []StageConfig `yaml:"stages"`
}

// BatchConfig controls the concurrent batch runner.
type BatchConfig struct {
	Workers      int    `yaml:"workers"`
	InstanceGlob string `yaml:"instance_glob"`
}

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Batch    BatchConfig    `yaml:"batch"`
}

// Load reads, parses, defaults, and validates a pipeline config file.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = runtime.NumCPU()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the config without defaulting or validating; useful
// for inspecting a partially-written file.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("pipelineconfig: config is nil")
	}
	if len(c.Pipeline.Stages) == 0 {
		return errors.New("pipelineconfig: pipeline.stages must name at least one stage")
	}
	for i, s := range c.Pipeline.Stages {
		if s.Name == "" {
			return fmt.Errorf("pipelineconfig: stage %d: name is required", i)
		}
	}
	return nil
}

// MergeStage overlays non-empty fields of override onto base, the same
// selective-overlay pattern used when a CLI flag overrides one stage's
// option without needing to restate the whole block.
func MergeStage(base, override StageConfig) StageConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if len(override.Options) > 0 {
		merged := make(map[string]string, len(out.Options)+len(override.Options))
		for k, v := range out.Options {
			merged[k] = v
		}
		for k, v := range override.Options {
			merged[k] = v
		}
		out.Options = merged
	}
	return out
}
