package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/saeidalz13/battleship-ai/api"
	"github.com/saeidalz13/battleship-ai/db"
	"github.com/saeidalz13/battleship-ai/db/sqlc"
	"github.com/saeidalz13/battleship-ai/internal/config"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalln(err)
	}

	if cfg.Stage == config.StageProd {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetLevel(log.DebugLevel)
	}

	opts := []api.Option{api.WithPort(cfg.Port), api.WithStage(cfg.Stage)}
	if cfg.DatabaseUrl != "" {
		migrationSource := cfg.MigrationSource
		if migrationSource == "" {
			migrationSource = db.DefaultMigrationSource
		}
		psql := db.MustConnectToDb(cfg.DatabaseUrl, migrationSource)
		defer psql.Close()

		opts = append(opts, api.WithAnalytics(sqlc.NewDbManager(sqlc.New(psql)).Analytics))
	} else {
		log.Warnln("DATABASE_URL not set; analytics disabled")
	}

	var gameOpts []mb.GameManagerOption
	if cfg.AiSeed != nil {
		log.WithField("seed", *cfg.AiSeed).Infoln("deterministic games")
		gameOpts = append(gameOpts, mb.WithSeed(*cfg.AiSeed))
	}

	sessionManager := mc.NewBattleshipSessionManager(mc.WithCleanupInterval(cfg.SessionCleanupInterval))
	gameManager := mb.NewBattleshipGameManager(gameOpts...)
	server := api.NewServer(sessionManager, gameManager, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessionManager.CleanupPeriodically(ctx.Done())

	if err := server.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalln(err)
	}
	log.Infoln("server stopped")
}
