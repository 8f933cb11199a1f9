package main

import (
	"context"
	"flag"
	"os"

	"github.com/dafibh/pennywise/pennywise-backend/internal/cli"
	"github.com/dafibh/pennywise/pennywise-backend/internal/config"
	"github.com/dafibh/pennywise/pennywise-backend/internal/repository"
	"github.com/dafibh/pennywise/pennywise-backend/internal/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	memory := flag.Bool("memory", false, "keep data in memory only, ignoring STORAGE_BACKEND")
	importDir := flag.String("import-dir", ".", "directory listed when importing files")
	verbose := flag.Bool("v", false, "log service activity to stderr")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	store := repository.NewMemoryStore()
	if !*memory {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		store, err = repository.Open(context.Background(), cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open storage backend")
		}
	}
	defer store.Close()

	budgetService := service.NewBudgetService(store.Budgets, store.Transactions)
	savingsService := service.NewSavingsService(store.Goals)

	app := cli.New(os.Stdin, os.Stdout, cli.Services{
		Transactions: service.NewTransactionService(store.Transactions, store.Budgets),
		Budgets:      budgetService,
		Savings:      savingsService,
		Analytics:    service.NewAnalyticsService(store.Transactions, budgetService, savingsService),
	})
	app.SetImportDir(*importDir)

	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("Failed to read input")
		store.Close()
		os.Exit(1)
	}
}
