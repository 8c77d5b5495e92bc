package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicsite/internal/dbx"
	"github.com/dmitrijs2005/clinicsite/internal/flagx"
	"github.com/dmitrijs2005/clinicsite/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only overrides
// what it names.
type JsonConfig struct {
	CMSBaseURL      *string         `json:"cms_base_url"`
	Email           *string         `json:"cms_email"`
	Password        *string         `json:"cms_password"`
	Collection      *string         `json:"cms_collection"`
	CacheTTL        *timex.Duration `json:"cms_cache_ttl"`
	RequestTimeout  *timex.Duration `json:"cms_request_timeout"`
	ProxyURL        *string         `json:"cms_all_proxy"`
	StoreDriver     *string         `json:"store_driver"`
	StoreDSN        *string         `json:"store_dsn"`
	StorePassphrase *string         `json:"store_passphrase"`
	SessionBackend  *string         `json:"session_backend"`
	RedisAddr       *string         `json:"redis_addr"`
	RedisPassword   *string         `json:"redis_password"`
	SessionTTL      *timex.Duration `json:"session_ttl"`
	LogLevel        *string         `json:"log_level"`
	LogFormat       *string         `json:"log_format"`
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

	jc.apply(cfg)
	return nil
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.CMSBaseURL, jc.CMSBaseURL)
	setString(&cfg.Email, jc.Email)
	setString(&cfg.Password, jc.Password)
	setString(&cfg.Collection, jc.Collection)
	setString(&cfg.ProxyURL, jc.ProxyURL)
	setString(&cfg.StoreDSN, jc.StoreDSN)
	setString(&cfg.StorePassphrase, jc.StorePassphrase)
	setString(&cfg.SessionBackend, jc.SessionBackend)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.StoreDriver != nil {
		cfg.StoreDriver = dbx.Dialect(*jc.StoreDriver)
	}
	if jc.CacheTTL != nil {
		cfg.CacheTTL = jc.CacheTTL.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
