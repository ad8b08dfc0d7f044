package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pocketledger/pocketledger/internal/config"
	"github.com/pocketledger/pocketledger/internal/database"
	"github.com/pocketledger/pocketledger/internal/database/repository"
	"github.com/pocketledger/pocketledger/internal/server"
	"github.com/pocketledger/pocketledger/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := repository.NewStore(db)
	ledger := service.NewLedger(store)
	if err := ledger.Load(ctx); err != nil {
		log.Fatalf("load ledger: %v", err)
	}

	h := server.New(ledger)

	log.Printf("listening on %s", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, h.Routes()); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
