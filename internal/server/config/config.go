// Package config handles configuration for the site server: listen
// addresses, rate limiting and the cache watcher, layered over the CMS
// settings shared with the CLI.
package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"golang.org/x/time/rate"

	cmsconfig "github.com/dmitrijs2005/clinicsite/internal/client/config"
	"github.com/dmitrijs2005/clinicsite/internal/common"
)

// Config holds runtime settings for the site server.
//
// Fields:
//   - HTTPAddr: bind address for the public JSON API.
//   - GRPCAddr: bind address for the gRPC health service.
//   - RateLimit / RateBurst: per-client token bucket; a RateLimit of zero disables limiting.
//   - HealthCheckInterval: how often the watcher warms the team cache.
//   - CMS: credential and CMS settings, see the client config package.
type Config struct {
	HTTPAddr            string
	GRPCAddr            string
	RateLimit           float64
	RateBurst           int
	HealthCheckInterval time.Duration

	CMS *cmsconfig.Config
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.RateLimit = 10
	c.RateBurst = 20
	c.HealthCheckInterval = time.Minute
}

// Limit returns RateLimit as a rate.Limit.
func (c *Config) Limit() rate.Limit {
	return rate.Limit(c.RateLimit)
}

// Validate reports every unusable server value at once. The CMS part is
// validated by its own loader.
func (c *Config) Validate() error {
	var errs []error
	for name, addr := range map[string]string{"http": c.HTTPAddr, "grpc": c.GRPCAddr} {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, fmt.Errorf("%s address %q: %w", name, addr, err))
		}
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("rate limit must not be negative, got %v", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("rate burst must be positive, got %d", c.RateBurst))
	}
	if c.HealthCheckInterval <= 0 {
		errs = append(errs, fmt.Errorf("health check interval must be positive, got %s", c.HealthCheckInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON file and finally command-line
// flags. The CMS settings are loaded the same way.
func LoadConfig() (*Config, error) {
	cms, err := cmsconfig.LoadConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{CMS: cms}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
