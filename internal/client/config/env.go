package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/clinicsite/internal/dbx"
	"github.com/dmitrijs2005/clinicsite/internal/flagx"
)

// parseEnv overlays cfg with environment variables. A dotenv file named by
// -env is loaded first; variables already set in the process win over it.
func parseEnv(cfg *Config) error {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg.CMSBaseURL = GetEnv("CMS_BASE_URL", cfg.CMSBaseURL)
	cfg.Email = GetEnv("CMS_EMAIL", cfg.Email)
	cfg.Password = GetEnv("CMS_PASSWORD", cfg.Password)
	cfg.Collection = GetEnv("CMS_COLLECTION", cfg.Collection)
	cfg.ProxyURL = GetEnv("CMS_ALL_PROXY", cfg.ProxyURL)
	cfg.StoreDriver = dbx.Dialect(GetEnv("STORE_DRIVER", string(cfg.StoreDriver)))
	cfg.StoreDSN = GetEnv("STORE_DSN", cfg.StoreDSN)
	cfg.StorePassphrase = GetEnv("STORE_PASSPHRASE", cfg.StorePassphrase)
	cfg.SessionBackend = GetEnv("SESSION_BACKEND", cfg.SessionBackend)
	cfg.RedisAddr = GetEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = GetEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.LogLevel = GetEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = GetEnv("LOG_FORMAT", cfg.LogFormat)

	var err error
	if cfg.CacheTTL, err = GetEnvDuration("CMS_CACHE_TTL", cfg.CacheTTL); err != nil {
		return err
	}
	if cfg.RequestTimeout, err = GetEnvDuration("CMS_REQUEST_TIMEOUT", cfg.RequestTimeout); err != nil {
		return err
	}
	if cfg.SessionTTL, err = GetEnvDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return err
	}
	return nil
}

// GetEnv returns the value of key, or def when it is unset or empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// GetEnvDuration parses key as a time.Duration ("30s", "5m").
func GetEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
