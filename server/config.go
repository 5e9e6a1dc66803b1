package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	DataFile        string        `envconfig:"DATA_FILE" default:"portfolio.jsonl"`
	Currency        string        `envconfig:"CURRENCY" default:"USD"`
	QuoteProvider   string        `envconfig:"QUOTE_PROVIDER" default:"yahoo"`
	QuoteTTL        time.Duration `envconfig:"QUOTE_TTL" default:"5m"`
	FetchTimeout    time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"5m"`
	StreamInterval  time.Duration `envconfig:"STREAM_INTERVAL" default:"5s"`
}

// GetConfig processes the environment into a Config.
func GetConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("ivt", &config); err != nil {
		return nil, fmt.Errorf("error processing env config: %w", err)
	}
	return &config, nil
}
