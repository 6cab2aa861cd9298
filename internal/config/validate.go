package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535] (got %d)", c.Server.Port)
	}

	if err := c.PokeAPI.validate(); err != nil {
		return fmt.Errorf("pokeapi: %w", err)
	}

	if err := c.Pagination.validate(); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (p *PokeAPIConfig) validate() error {
	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL (got %q)", p.BaseURL)
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")

	if p.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", p.RequestTimeout)
	}
	if p.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be >= 0 (got %v)", p.RetryDelay)
	}
	return nil
}

func (p *PaginationConfig) validate() error {
	if p.Step <= 0 {
		return fmt.Errorf("step must be > 0 (got %d)", p.Step)
	}
	if p.FirstStep < 0 {
		return fmt.Errorf("first_step must be >= 0 (got %d)", p.FirstStep)
	}
	if p.ViewportWidth < 0 {
		return fmt.Errorf("viewport_width must be >= 0 (got %d)", p.ViewportWidth)
	}
	return nil
}
