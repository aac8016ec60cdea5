// Package es is the connection handle shared by every fill and pour that
// targets the same Elasticsearch cluster.
package es

import (
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
)

// Client is immutable once built and safe for concurrent use by any number
// of stages.
type Client struct {
	addresses []string
	typed     *elasticsearch.TypedClient
}

var (
	_ Searcher = (*Client)(nil)
	_ Bulker   = (*Client)(nil)
)

func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
		// failed requests surface to the caller as they are
		DisableRetry: true,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}
	if config.APIKey != "" {
		cfg.APIKey = config.APIKey
	}
	if config.InsecureSkipVerify {
		cfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	typed, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch typed client: %w", err)
	}

	addresses := make([]string, len(config.Addresses))
	copy(addresses, config.Addresses)

	return &Client{
		addresses: addresses,
		typed:     typed,
	}, nil
}

func (c *Client) Addresses() []string {
	out := make([]string, len(c.addresses))
	copy(out, c.addresses)
	return out
}
