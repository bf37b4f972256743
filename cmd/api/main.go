package main

import (
	"context"
	"log"

	"arknights-backend/internal/bootstrap"
	"arknights-backend/internal/shared/config"
	"arknights-backend/internal/shared/server"
	"arknights-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if app.DB != nil {
		if err := db.RunMigrations(ctx, app.DB); err != nil {
			log.Fatalf("migrations error: %v", err)
		}
	}
	if cfg.WatchData {
		go app.WatchData(ctx)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
