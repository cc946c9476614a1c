package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	FileName      = "duphighlight.toml"
	DefaultOutput = "/tmp/dup-report.html"
)

type Config struct {
	Output string   `toml:"output"`
	Format string   `toml:"format"`
	Ignore []string `toml:"ignore"`
	Scan   Scan     `toml:"scan"`
}

type Scan struct {
	IncludeHidden bool     `toml:"include_hidden"`
	Extensions    []string `toml:"extensions"`
	MinGroups     int      `toml:"min_groups"`
}

func defaultConfig() *Config {
	return &Config{
		Output: DefaultOutput,
		Format: "html",
		Ignore: []string{},
		Scan:   Scan{IncludeHidden: false, Extensions: []string{}, MinGroups: 1},
	}
}

// ReadConfig reads duphighlight.toml from dir.
// Defaults are returned when the file does not exist, and alongside the error when it cannot be parsed.
func ReadConfig(dir string) (*Config, error) {
	fileName := filepath.Join(dir, FileName)
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	file, err := os.ReadFile(fileName)
	if err != nil {
		return defaultConfig(), err
	}
	config := defaultConfig()
	err = toml.Unmarshal(file, config)
	if err != nil {
		return defaultConfig(), err
	}
	if config.Output == "" {
		config.Output = DefaultOutput
	}
	if config.Format == "" {
		config.Format = "html"
	}
	if config.Scan.MinGroups < 1 {
		config.Scan.MinGroups = 1
	}
	return config, nil
}
