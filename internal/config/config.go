// Package config loads and writes antman's TOML configuration file,
// the Go-native replacement for the original's hand-rolled JSON
// config_t/writeConfig/loadConfig trio.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	progName = "antman"

	// DefaultKSize is the k-mer length used when a config omits it.
	DefaultKSize = 7
	// DefaultSketchSize is the default Bloom filter width in bits.
	DefaultSketchSize = 128
	// DefaultBloomFPRate is the default false-positive rate fed to
	// sketch.EstimateParameters.
	DefaultBloomFPRate = 0.001
	// DefaultBloomMaxElements is the default expected-k-mer count fed
	// to sketch.EstimateParameters.
	DefaultBloomMaxElements = 100000
)

// Config is antman's persisted runtime configuration: the information
// needed to find the watch directory, the index directory, the running
// daemon's PID, and the sketch parameters new sequences are built with.
type Config struct {
	WatchDir         string  `toml:"watch_directory"`
	WorkingDir       string  `toml:"working_directory"`
	PIDFile          string  `toml:"pid_file"`
	LogFile          string  `toml:"log_file"`
	KSize            int     `toml:"k_size"`
	SketchSize       int     `toml:"sketch_size"`
	BloomFPRate      float64 `toml:"bloom_fp_rate"`
	BloomMaxElements int     `toml:"bloom_max_elements"`
}

// New returns a Config populated with antman's defaults, mirroring the
// original's initConfig.
func New(watchDir, workingDir string) *Config {
	return &Config{
		WatchDir:         watchDir,
		WorkingDir:       workingDir,
		PIDFile:          progName + ".pid",
		LogFile:          progName + ".log",
		KSize:            DefaultKSize,
		SketchSize:       DefaultSketchSize,
		BloomFPRate:      DefaultBloomFPRate,
		BloomMaxElements: DefaultBloomMaxElements,
	}
}

// Write encodes c as TOML to path, mirroring the original's writeConfig.
func Write(path string, c *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// Load decodes a Config from path, mirroring the original's loadConfig.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if c.KSize <= 0 {
		return nil, fmt.Errorf("config: %s: k_size must be greater than zero", path)
	}
	if c.SketchSize <= 0 {
		return nil, fmt.Errorf("config: %s: sketch_size must be greater than zero", path)
	}
	return &c, nil
}
