// Package models defines data structures for records, labels and job configuration.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWorkers   = 4
	DefaultChunkSize = 10000
	DefaultTopK      = 100
)

// JobConfig holds runtime configuration for a word count job.
// Tunables may come from a YAML file and are overridden by CLI flags;
// the three paths always come from positional arguments.
type JobConfig struct {
	InputPath    string `yaml:"-"`
	OutputDir    string `yaml:"-"`
	StopwordPath string `yaml:"-"`

	Workers     int    `yaml:"workers"`
	ChunkSize   int    `yaml:"chunk_size"`
	TopK        int    `yaml:"top_k"`
	StripMarkup bool   `yaml:"strip_markup"`
	DBPath      string `yaml:"db"`
}

// LoadJobConfig reads a YAML job configuration file.
func LoadJobConfig(path string) (*JobConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg JobConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate fills in defaults and rejects configurations a job cannot run with.
func (c *JobConfig) Validate() error {
	if c.InputPath == "" || c.OutputDir == "" || c.StopwordPath == "" {
		return errors.New("input, output directory and stopword file are required")
	}
	if c.Workers < 0 || c.ChunkSize < 0 || c.TopK < 0 {
		return fmt.Errorf("workers, chunk size and top-k must not be negative (got %d, %d, %d)", c.Workers, c.ChunkSize, c.TopK)
	}

	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	if c.TopK == 0 {
		c.TopK = DefaultTopK
	}
	return nil
}
