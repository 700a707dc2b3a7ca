package main

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// config holds the conversion settings.
type config struct {
	OutDir     string   `yaml:"out_dir"     env:"WIKT_OUT_DIR"     env-default:"output"`
	Languages  []string `yaml:"languages"   env:"WIKT_LANGUAGES"   env-separator:","`
	Workers    int      `yaml:"workers"     env:"WIKT_WORKERS"     env-default:"8"`
	ReportFreq int64    `yaml:"report_freq" env:"WIKT_REPORT_FREQ" env-default:"10000"`
	Overwrite  bool     `yaml:"overwrite"   env:"WIKT_OVERWRITE"`
}

// loadConfig reads settings from a YAML file and the environment.
// Priority: ENV > YAML > defaults (via env-default tags).
func loadConfig(path string) (*config, error) {
	var cfg config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	}
	if c.ReportFreq < 1 {
		return fmt.Errorf("config: report_freq must be positive, got %d", c.ReportFreq)
	}
	return nil
}
