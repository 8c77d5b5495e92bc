// Package core builds the long-lived service graph shared by the CLI and the
// site server: CMS client, credential storage tiers, AuthService and
// TeamService. It is constructed once per process.
package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/clinicsite/internal/client/client"
	"github.com/dmitrijs2005/clinicsite/internal/client/config"
	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/client/repositories/kv"
	"github.com/dmitrijs2005/clinicsite/internal/client/services"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
	"github.com/dmitrijs2005/clinicsite/internal/netx"
)

// RedisKeyPrefix namespaces the session tier in a shared Redis.
const RedisKeyPrefix = "clinicsite:"

type Core struct {
	Auth services.AuthService
	Team services.TeamService

	closers []func() error
}

// New wires the services from cfg. reg may be nil to disable metrics.
func New(ctx context.Context, cfg *config.Config, log logging.Logger, reg prometheus.Registerer) (_ *Core, err error) {
	c := &Core{}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	hc, err := netx.NewHTTPClient(netx.Options{
		Timeout:  cfg.RequestTimeout,
		ProxyURL: cfg.ProxyURL,
		ProxyLog: logging.StdLogger(log.With("module", "proxy"), slog.LevelInfo),
	})
	if err != nil {
		return nil, fmt.Errorf("http client: %w", err)
	}
	cms := client.NewHTTPClient(cfg.CMSBaseURL, hc, log)
	c.closers = append(c.closers, cms.Close)

	durable, err := c.durableStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	session, err := c.sessionStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tiers := kv.NewTiered(log,
		kv.Tier{Name: "session", Store: session},
		kv.Tier{Name: "durable", Store: durable},
	)

	var opts []services.Option
	if reg != nil {
		opts = append(opts, services.WithMetrics(services.NewMetrics(reg)))
	}

	fallback := models.Credentials{Email: cfg.Email, Password: cfg.Password}
	c.Auth = services.NewAuthService(cms, tiers, fallback, log, opts...)
	c.Team = services.NewTeamService(cms, c.Auth, cfg.Collection, cfg.CacheTTL, log, opts...)
	return c, nil
}

func (c *Core) durableStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	db, err := client.InitDatabase(ctx, cfg.StoreDriver, cfg.StoreDSN)
	if err != nil {
		return nil, fmt.Errorf("durable store: %w", err)
	}
	c.closers = append(c.closers, db.Close)

	var store kv.Store = kv.NewSQLStore(db, cfg.StoreDriver)
	if cfg.StorePassphrase != "" {
		enc, err := kv.NewEncrypted(ctx, store, []byte(cfg.StorePassphrase))
		if err != nil {
			return nil, fmt.Errorf("durable store: %w", err)
		}
		store = enc
	}
	return store, nil
}

func (c *Core) sessionStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	if cfg.SessionBackend != config.SessionRedis {
		return kv.NewMemoryStore(), nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	c.closers = append(c.closers, rdb.Close)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}
	return kv.NewRedisStore(rdb, RedisKeyPrefix, cfg.SessionTTL), nil
}

// Close releases every resource opened by New, last opened first.
func (c *Core) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
