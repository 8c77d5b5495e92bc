package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/clinicsite/internal/flagx"
)

// FlagNames are the command-line flags owned by the server. They do not
// overlap with the CMS flags.
var FlagNames = []string{"-a", "-g", "-l", "-b", "-i"}

// parseFlags overlays cfg with command-line flags.
//
//	-a string    HTTP bind address (e.g. ":8080")
//	-g string    gRPC bind address (e.g. ":50051")
//	-l float     requests per second allowed per client, 0 disables
//	-b int       rate limiter burst
//	-i duration  team cache warm-up interval (e.g. "30s")
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], FlagNames)

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "HTTP address and port")
	fs.StringVar(&cfg.GRPCAddr, "g", cfg.GRPCAddr, "gRPC address and port")
	fs.Float64Var(&cfg.RateLimit, "l", cfg.RateLimit, "requests per second per client")
	fs.IntVar(&cfg.RateBurst, "b", cfg.RateBurst, "rate limiter burst")
	fs.DurationVar(&cfg.HealthCheckInterval, "i", cfg.HealthCheckInterval, "team cache warm-up interval")

	return fs.Parse(args)
}
