package main

import (
	"fmt"
	"log"
	"os"

	"go-attend/internal/api"
	"go-attend/internal/config"
	"go-attend/internal/engine"
	redisdb "go-attend/internal/redis"
	"go-attend/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Timezone error: %v\n", err)
		os.Exit(1)
	}

	// Tiers in preference order: remote, file, memory. The memory tier is
	// always configured, so the gateway can never come up empty.
	remote := store.NewRemoteStore(cfg.Postgres.DSN)
	file := store.NewFileStore(cfg.Storage.UsersFile, cfg.Storage.EventsFile)
	mem := store.NewMemoryStore()
	gw := store.NewGateway(remote, file, mem)

	eng := engine.New(gw, loc)
	rdb := redisdb.NewClient(cfg)
	log.Printf("[Main] attendance engine ready (timezone: %s)", loc)

	r := api.SetupRouter(cfg, eng, rdb)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
