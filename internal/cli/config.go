package cli

import "github.com/caarlos0/env/v11"

// Config holds CLI configuration, populated from the environment and
// overridable by flags.
type Config struct {
	// RedisURL is the backing store connection string. Leaving it unset is
	// not a startup error; every repository operation will report the
	// missing configuration instead.
	RedisURL string `env:"BATTLEKEEP_REDIS_URL"`
	Output   string `env:"BATTLEKEEP_OUTPUT" envDefault:"text"`
	Verbose  bool   `env:"BATTLEKEEP_VERBOSE"`
}

// DefaultConfig returns a Config with values from the environment
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
