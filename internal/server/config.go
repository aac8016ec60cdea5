package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

const defaultPort = "9090"

type Config struct {
	// Port of the status server. "off" disables it.
	Port string
}

func (c *Config) Enabled() bool {
	return c.Port != "off"
}

func LoadConfig() (*Config, error) {
	port := os.Getenv("STATUS_PORT")
	if port == "" {
		port = defaultPort
	}

	cfg := &Config{Port: port}
	if !cfg.Enabled() {
		return cfg, nil
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	return cfg, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
