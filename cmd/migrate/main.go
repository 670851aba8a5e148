// Command migrate applies the embedded schema migrations and exits. It is
// the operational entrypoint for provisioning or upgrading the database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/starwars-blog/internal/config"
	"github.com/deppfellow/starwars-blog/internal/database"
	"github.com/deppfellow/starwars-blog/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, loggerService, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() {
		if loggerService != nil {
			loggerService.Shutdown(10 * time.Second)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
