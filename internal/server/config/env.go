package config

import (
	"fmt"
	"os"
	"strconv"

	cmsconfig "github.com/dmitrijs2005/clinicsite/internal/client/config"
)

// parseEnv overlays cfg with environment variables. The dotenv file, if
// any, has already been loaded by the CMS config loader.
func parseEnv(cfg *Config) error {
	cfg.HTTPAddr = cmsconfig.GetEnv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.GRPCAddr = cmsconfig.GetEnv("GRPC_ADDR", cfg.GRPCAddr)

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = f
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_BURST: %w", err)
		}
		cfg.RateBurst = n
	}

	var err error
	cfg.HealthCheckInterval, err = cmsconfig.GetEnvDuration("HEALTH_CHECK_INTERVAL", cfg.HealthCheckInterval)
	return err
}
