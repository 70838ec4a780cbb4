// internal/config/config.go
package config

import "github.com/caarlos0/env/v11"

// Config is the process configuration, sourced from the environment.
// cmd/server loads a local .env via godotenv/autoload before parsing.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// RoundSeconds overrides the 5-second round timer, mainly for
	// local playtesting.
	RoundSeconds int `env:"ROUND_SECONDS" envDefault:"5"`

	// RedisAddr enables publishing finished-game results when set.
	// Empty leaves the publisher off entirely.
	RedisAddr    string `env:"REDIS_ADDR"`
	RedisDB      int    `env:"REDIS_DB" envDefault:"0"`
	ResultsQueue string `env:"RESULTS_QUEUE_NAME" envDefault:"wordchain_results"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
