package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/stemsi/rekamsehat-backend/internal/config"
	"github.com/stemsi/rekamsehat-backend/internal/database"
	"github.com/stemsi/rekamsehat-backend/internal/logger"
	"github.com/stemsi/rekamsehat-backend/internal/repository"
)

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Overall time limit")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	// Load config
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	fs, err := database.NewFirestoreClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Firestore")
	}
	defer fs.Close()

	command := args[0]
	switch command {
	case "status":
		n, err := repository.MigrateLegacyFoto(ctx, fs, false)
		if err != nil {
			log.Fatal().Err(err).Msg("Status failed")
		}
		fmt.Printf("data_spesifik documents with a legacy string foto: %d\n", n)
	case "up":
		n, err := repository.MigrateLegacyFoto(ctx, fs, true)
		if err != nil {
			log.Fatal().Err(err).Msg("Up failed")
		}
		fmt.Printf("Rewrote foto on %d data_spesifik documents\n", n)
	default:
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands:")
	fmt.Println("  status  count data_spesifik documents whose foto is a bare URL")
	fmt.Println("  up      rewrite those foto values as {url, public_id}")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
