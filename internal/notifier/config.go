package notifier

import (
	"github.com/maxbolgarin/errm"
)

// Config represents chat notifier configuration
type Config struct {
	Token   string `yaml:"token" env:"NOTIFIER_TOKEN"`
	Channel string `yaml:"channel" env:"NOTIFIER_CHANNEL"`
	Enabled bool   `yaml:"enabled" env:"NOTIFIER_ENABLED"`
}

func (c *Config) PrepareAndValidate() error {
	if !c.Enabled {
		return nil
	}
	if c.Token == "" {
		return errm.New("notifier token is required when enabled")
	}
	if c.Channel == "" {
		return errm.New("notifier channel is required when enabled")
	}
	return nil
}
