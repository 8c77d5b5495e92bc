package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/clinicsite/internal/common"
	"github.com/dmitrijs2005/clinicsite/internal/dbx"
)

const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config holds the CMS and credential-storage settings.
//
// RequestTimeout of zero leaves outbound requests bounded only by the
// caller's context.
type Config struct {
	CMSBaseURL     string
	Email          string
	Password       string
	Collection     string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	ProxyURL       string

	StoreDriver     dbx.Dialect
	StoreDSN        string
	StorePassphrase string

	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	SessionTTL     time.Duration

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.CMSBaseURL = "http://127.0.0.1:8055"
	c.Collection = "carrossel_funcionarios"
	c.CacheTTL = 5 * time.Minute
	c.StoreDriver = dbx.DialectSQLite
	c.StoreDSN = "data/clinicsite.db"
	c.SessionBackend = SessionMemory
	c.RedisAddr = "127.0.0.1:6379"
	c.SessionTTL = 12 * time.Hour
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports every unusable value at once.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.CMSBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("cms base url %q must be absolute", c.CMSBaseURL))
	}
	if c.Email == "" || c.Password == "" {
		errs = append(errs, errors.New("fallback identity (CMS_EMAIL, CMS_PASSWORD) is required"))
	}
	if c.Collection == "" {
		errs = append(errs, errors.New("collection must not be empty"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL))
	}
	if c.StoreDriver != dbx.DialectSQLite && c.StoreDriver != dbx.DialectPostgres {
		errs = append(errs, fmt.Errorf("unsupported store driver %q", c.StoreDriver))
	}
	if c.SessionBackend != SessionMemory && c.SessionBackend != SessionRedis {
		errs = append(errs, fmt.Errorf("unsupported session backend %q", c.SessionBackend))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// LoadConfig builds a Config from defaults, environment, JSON and flags,
// then validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
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
