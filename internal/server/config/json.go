package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicsite/internal/flagx"
	"github.com/dmitrijs2005/clinicsite/internal/timex"
)

// JsonConfig is the server part of the JSON config file. The same file may
// carry the CMS keys; they are read by the CMS loader and ignored here.
type JsonConfig struct {
	HTTPAddr            *string         `json:"http_addr"`
	GRPCAddr            *string         `json:"grpc_addr"`
	RateLimit           *float64        `json:"rate_limit"`
	RateBurst           *int            `json:"rate_burst"`
	HealthCheckInterval *timex.Duration `json:"health_check_interval"`
}

// parseJson overlays cfg with the JSON file named by -c / -config, if any.
func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.HTTPAddr != nil {
		cfg.HTTPAddr = *jc.HTTPAddr
	}
	if jc.GRPCAddr != nil {
		cfg.GRPCAddr = *jc.GRPCAddr
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
	if jc.HealthCheckInterval != nil {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
	return nil
}
