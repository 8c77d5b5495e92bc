package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/clinicsite/internal/logging"
	"github.com/dmitrijs2005/clinicsite/internal/server"
	"github.com/dmitrijs2005/clinicsite/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stdout, cfg.CMS.LogLevel, cfg.CMS.LogFormat)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
