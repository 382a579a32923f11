package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"wallet-settlement/config"
	pgStorage "wallet-settlement/internal/adapter/storage/postgres"
	"wallet-settlement/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()
	args := flag.Args()

	if len(args) < 1 {
		fmt.Println("Error: migration command is required")
		fmt.Println("Usage: migrate [-config file] <command>")
		fmt.Printf("Commands: %s\n", strings.Join(pgStorage.MigrationCommands, ", "))
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := pgStorage.RunMigrations(ctx, cfg.Database.DSN(), args[0], log); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	log.Info().Str("command", args[0]).Msg("Migration finished")
}
