package config

import (
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/shiplog/internal/engine"
	"github.com/maxbolgarin/shiplog/internal/notifier"
	"github.com/maxbolgarin/shiplog/internal/provider"
	"github.com/maxbolgarin/shiplog/internal/render"
	"github.com/maxbolgarin/shiplog/internal/server"
	"github.com/maxbolgarin/shiplog/internal/summary"
	"github.com/maxbolgarin/shiplog/internal/tracker"
)

// Config represents the main application configuration
type Config struct {
	Provider  provider.Config `yaml:"provider"`
	Tracker   tracker.Config  `yaml:"tracker"`
	Changelog engine.Config   `yaml:"changelog"`
	Notifier  notifier.Config `yaml:"notifier"`
	Summary   summary.Config  `yaml:"summary"`
	Render    render.Config   `yaml:"render"`
	Server    server.Config   `yaml:"server"`
}

// Load reads the configuration from the YAML file at path, environment
// variables override file values. Without a path only the environment
// is read.
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, errm.Wrap(err, "failed to read config from environment")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, errm.Wrap(err, "failed to read config file")
	}

	return cfg, nil
}
