// Package config loads application settings by layering defaults, an
// optional YAML file, and PHARMSIM_-prefixed environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultDataDir    = ".pharmsim"
	DefaultPoints     = 50
	DefaultPlotWidth  = 80
	DefaultPlotHeight = 15
)

// Config holds runtime settings.
type Config struct {
	DataDir    string `koanf:"data_dir"`
	Points     int    `koanf:"points"`
	PlotWidth  int    `koanf:"plot_width"`
	PlotHeight int    `koanf:"plot_height"`
	DrugFile   string `koanf:"drug_file"`
	Verbose    bool   `koanf:"verbose"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:    DefaultDataDir,
		Points:     DefaultPoints,
		PlotWidth:  DefaultPlotWidth,
		PlotHeight: DefaultPlotHeight,
	}
}

// Load builds a Config. Order of precedence (low -> high):
//  1. defaults
//  2. YAML file at path, or at PHARMSIM_CONFIG when path is empty
//  3. environment variables (prefix PHARMSIM_)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv("PHARMSIM_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), koanfyaml.Parser()); err != nil {
			return nil, err
		}
	}

	// PHARMSIM_DATA_DIR -> data_dir, PHARMSIM_PLOT_WIDTH -> plot_width, ...
	envProvider := env.Provider("PHARMSIM_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "pharmsim_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		return nil, errors.New("config: data_dir must not be empty")
	}
	if cfg.Points < 2 {
		return nil, errors.New("config: points must be >= 2")
	}
	if cfg.PlotWidth < 10 || cfg.PlotHeight < 4 {
		return nil, errors.New("config: plot dimensions too small")
	}
	return &cfg, nil
}
