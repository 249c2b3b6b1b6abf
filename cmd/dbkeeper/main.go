package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/dbkeeper/internal/cli"
	"github.com/dmitrijs2005/dbkeeper/internal/config"
	"github.com/dmitrijs2005/dbkeeper/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("%v", err)
	}

	os.Exit(cli.Main(ctx, cfg, logger, os.Stdin, os.Stdout))
}
