package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/clinicsite/internal/client/cli"
	"github.com/dmitrijs2005/clinicsite/internal/client/config"
	"github.com/dmitrijs2005/clinicsite/internal/client/core"
	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// stdout belongs to the REPL.
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	c, err := core.New(ctx, cfg, logger, nil)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("%v", err)
		}
	}()

	app := cli.NewApp(c.Auth, c.Team, logger, os.Stdin, os.Stdout)
	app.Root(ctx)

}
