package main

import (
	"context"
	"credit-engine/internal/config"
	"credit-engine/internal/infrastructure/database/postgres"
	"credit-engine/internal/infrastructure/logging"
	"credit-engine/internal/ingest"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
)

type options struct {
	customersFile string
	loansFile     string
	reset         bool
	configPath    string
}

func parseOptions(args []string, defaults config.IngestConfig) (options, error) {
	fs := pflag.NewFlagSet("loaddata", pflag.ContinueOnError)
	opts := options{}
	fs.StringVar(&opts.customersFile, "customers", defaults.CustomersFile, "customer CSV file")
	fs.StringVar(&opts.loansFile, "loans", defaults.LoansFile, "loan CSV file")
	fs.BoolVar(&opts.reset, "reset", false, "drop and recreate the schema before loading")
	fs.StringVar(&opts.configPath, "config", ".", "directory containing config.yml")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.customersFile == "" || opts.loansFile == "" {
		return options{}, fmt.Errorf("both --customers and --loans must be set")
	}
	return opts, nil
}

// configDir returns the --config value without failing on the other flags,
// so the config file can supply their defaults.
func configDir(args []string) string {
	fs := pflag.NewFlagSet("loaddata-config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	dir := fs.String("config", ".", "")
	_ = fs.Parse(args)
	return *dir
}

func main() {
	cfg, err := config.LoadConfig(configDir(os.Args[1:]))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.Logger)

	opts, err := parseOptions(os.Args[1:], cfg.Ingest)
	if err != nil {
		logger.Error("Invalid arguments", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger); err != nil {
		logger.Error("Data load finished with errors", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, opts options, logger *slog.Logger) error {
	if opts.reset {
		logger.Warn("Resetting database schema before load")
		if err := postgres.RunMigrationsDown(cfg.Database.URL); err != nil {
			return err
		}
	}
	if opts.reset || cfg.Database.MigrationsEnabled {
		if err := postgres.RunMigrations(cfg.Database.URL, logger); err != nil {
			return err
		}
	}

	pool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	loader := ingest.NewLoader(
		postgres.NewCustomerRepository(pool, logger),
		postgres.NewLoanRepository(pool, logger),
		logger,
	)

	report, err := loader.LoadFiles(ctx, opts.customersFile, opts.loansFile)
	logger.Info("Data load complete",
		slog.Int("customers_inserted", report.Customers.Inserted),
		slog.Int("customers_skipped", report.Customers.Skipped),
		slog.Int("loans_inserted", report.Loans.Inserted),
		slog.Int("loans_skipped", report.Loans.Skipped),
	)
	return err
}
