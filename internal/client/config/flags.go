package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/clinicsite/internal/flagx"
)

// FlagNames are the command-line flags owned by this package.
var FlagNames = []string{"-u", "-e", "-p", "-k", "-t", "-d", "-s", "-r"}

// parseFlags overlays cfg with command-line flags. os.Args is filtered to
// FlagNames first so flags owned by other components do not collide.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], FlagNames)

	fs := flag.NewFlagSet("cms", flag.ContinueOnError)

	fs.StringVar(&cfg.CMSBaseURL, "u", cfg.CMSBaseURL, "CMS base URL")
	fs.StringVar(&cfg.Email, "e", cfg.Email, "fallback identity email")
	fs.StringVar(&cfg.Password, "p", cfg.Password, "fallback identity password")
	fs.StringVar(&cfg.Collection, "k", cfg.Collection, "team collection name")
	ttl := fs.Int("t", int(cfg.CacheTTL.Seconds()), "team cache TTL (in seconds)")
	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "durable store DSN")
	fs.StringVar(&cfg.SessionBackend, "s", cfg.SessionBackend, "session store backend (memory or redis)")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.CacheTTL = time.Duration(*ttl) * time.Second
		}
	})
	return nil
}
