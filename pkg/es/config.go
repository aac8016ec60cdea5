package es

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Addresses          []string
	Username           string
	Password           string
	APIKey             string
	InsecureSkipVerify bool
}

func (c Config) Validate() error {
	if len(c.Addresses) == 0 {
		return fmt.Errorf("elasticsearch configuration is incomplete: addresses are missing")
	}
	for _, addr := range c.Addresses {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("elasticsearch configuration is incomplete: empty address in %v", c.Addresses)
		}
	}
	return nil
}

// LoadEnv reads the connection settings from ES_* environment variables.
func LoadEnv() (*Config, error) {
	var addresses []string
	for _, addr := range strings.Split(os.Getenv("ES_ADDRESSES"), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			addresses = append(addresses, addr)
		}
	}

	cfg := &Config{
		Addresses:          addresses,
		Username:           os.Getenv("ES_USERNAME"),
		Password:           os.Getenv("ES_PASSWORD"),
		APIKey:             os.Getenv("ES_API_KEY"),
		InsecureSkipVerify: os.Getenv("ES_INSECURE") == "true",
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Addresses)
		return nil, err
	}

	return cfg, nil
}
