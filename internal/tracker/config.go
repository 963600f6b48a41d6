package tracker

import (
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
)

const (
	defaultRequestsPerSecond = 5
	defaultPoolSize          = 8
)

// Config represents issue tracker configuration
type Config struct {
	BaseURL    string `yaml:"base_url" env:"TRACKER_BASE_URL"`
	Email      string `yaml:"email" env:"TRACKER_EMAIL"`
	APIToken   string `yaml:"api_token" env:"TRACKER_API_TOKEN"`
	ProjectKey string `yaml:"project_key" env:"TRACKER_PROJECT_KEY"`

	// RequestsPerSecond bounds the request rate against the tracker API,
	// PoolSize bounds how many fetches run at once.
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"TRACKER_REQUESTS_PER_SECOND"`
	PoolSize          int     `yaml:"pool_size" env:"TRACKER_POOL_SIZE"`
}

func (c *Config) PrepareAndValidate() error {
	if c.BaseURL == "" {
		return errm.New("tracker base_url is required")
	}
	if c.APIToken == "" {
		return errm.New("tracker api_token is required")
	}

	c.RequestsPerSecond = lang.Check(c.RequestsPerSecond, defaultRequestsPerSecond)
	c.PoolSize = lang.Check(c.PoolSize, defaultPoolSize)

	return nil
}
