package main

import (
	"bank-ledger/internal/bank"
	"bank-ledger/internal/cli"
	"bank-ledger/internal/config"
	"bank-ledger/internal/infrastructure/logging"
	"bank-ledger/internal/infrastructure/monitoring"
	"bank-ledger/internal/infrastructure/storage/jsonfile"
	"bank-ledger/internal/middleware"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, logger, err := initializeApp(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	ctx := context.Background()
	ledger, err := initializeBank(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", "path", cfg.Ledger.DataFile, "error", err)
		return 1
	}

	runErr := cli.New(ledger, stdin, stdout, logger).Run(ctx)
	handleShutdown(cfg, logger)

	if runErr != nil {
		logger.Error("Session ended with error", "error", runErr)
		return 1
	}
	return 0
}

func initializeApp(args []string, stderr io.Writer) (*config.Config, *slog.Logger, error) {
	flags := pflag.NewFlagSet("bank-ledger", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	config.RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}

	configPath, _ := flags.GetString("config")
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.NewLogger(cfg.Logger, stderr)
	logger.Info("Application starting...", "data_file", cfg.Ledger.DataFile, "config_path", configPath)
	return cfg, logger, nil
}

func initializeBank(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*bank.Bank, error) {
	store := jsonfile.NewStore(cfg.Ledger.DataFile, logger)
	return bank.Open(ctx, store,
		bank.WithLogger(logger),
		bank.WithAuthPolicy(middleware.PolicyFromConfig(cfg.Auth)),
	)
}

func handleShutdown(cfg *config.Config, logger *slog.Logger) {
	if cfg.Metrics.Textfile != "" {
		if err := monitoring.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error("Failed to write metrics textfile", "path", cfg.Metrics.Textfile, "error", err)
		} else {
			logger.Info("Metrics written", "path", cfg.Metrics.Textfile)
		}
	}
	logger.Info("Application shutdown process complete.")
}
