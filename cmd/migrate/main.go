package main

import (
	"fmt"
	"os"

	"go-attend/internal/config"
	"go-attend/internal/store"
)

// Copies the file tier's users and attendance events into the remote tier.
// Run once after pointing the config at a postgres backend; repeat runs
// skip records that already made it across.
func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	file := store.NewFileStore(cfg.Storage.UsersFile, cfg.Storage.EventsFile)
	if !file.Configured() {
		fmt.Fprintln(os.Stderr, "File tier not configured; nothing to migrate")
		os.Exit(1)
	}
	remote := store.NewRemoteStore(cfg.Postgres.DSN)
	if !remote.Configured() {
		fmt.Fprintln(os.Stderr, "Remote tier not configured; set postgres.dsn in config.json")
		os.Exit(1)
	}

	res, err := store.Migrate(file, remote)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Migrated %d users (%d already present), %d events (%d already present)\n",
		res.UsersCopied, res.UsersSkipped, res.EventsCopied, res.EventsSkipped)
}
