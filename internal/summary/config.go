package summary

import (
	"github.com/maxbolgarin/lang"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = 0.3
	defaultMaxTokens   = 1000
)

// Config represents highlights summarizer configuration. The summarizer
// is disabled without an API key.
type Config struct {
	APIKey      string  `yaml:"api_key" env:"SUMMARY_API_KEY"`
	Model       string  `yaml:"model" env:"SUMMARY_MODEL"`
	ProxyURL    string  `yaml:"proxy_url" env:"SUMMARY_PROXY_URL"`
	Temperature float32 `yaml:"temperature" env:"SUMMARY_TEMPERATURE"`
	MaxTokens   int     `yaml:"max_tokens" env:"SUMMARY_MAX_TOKENS"`
}

// Enabled reports whether the summarizer is configured.
func (c *Config) Enabled() bool {
	return c.APIKey != ""
}

func (c *Config) PrepareAndValidate() error {
	c.Model = lang.Check(c.Model, defaultModel)
	c.Temperature = lang.Check(c.Temperature, defaultTemperature)
	c.MaxTokens = lang.Check(c.MaxTokens, defaultMaxTokens)
	return nil
}
