package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/receipt-scanner/internal/domain/categorize"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/pipeline"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/receipt"
	"github.com/FACorreiaa/receipt-scanner/internal/domain/tables"
	"github.com/FACorreiaa/receipt-scanner/pkg/config"
	"github.com/FACorreiaa/receipt-scanner/pkg/metrics"
)

// app holds the shared dependencies built once before any subcommand runs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	set     tables.Set
	pipe    *pipeline.Pipeline
	matcher *categorize.Matcher
	metrics *metrics.Metrics
}

func newRootCmd() *cobra.Command {
	a := &app{}

	var (
		tablesPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:           "receipt-scan",
		Short:         "Parse German supermarket receipts into structured records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(tablesPath, verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&tablesPath, "tables", "", "YAML file overriding the built-in vendor/keyword/category tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newProcessCmd(a),
		newWatchCmd(a),
		newCategoriesCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func (a *app) init(tablesPath string, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	if tablesPath == "" {
		tablesPath = cfg.Tables.Path
	}
	a.set = tables.Defaults()
	if tablesPath != "" {
		if a.set, err = tables.LoadFile(tablesPath); err != nil {
			return err
		}
		a.logger.Debug("loaded table overrides", slog.String("path", tablesPath))
	}

	a.metrics = metrics.New()
	a.matcher = categorize.NewMatcher(a.set)
	a.pipe = pipeline.New(a.set,
		pipeline.WithLogger(a.logger),
		pipeline.WithMetrics(a.metrics),
	)
	return nil
}

// openRepository connects to Postgres, runs pending migrations, and returns
// the receipt repository.
func (a *app) openRepository(ctx context.Context) (*receipt.Repository, func(), error) {
	dsn := a.cfg.Database.DSN()

	migrationDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := receipt.Migrate(migrationDB); err != nil {
		_ = migrationDB.Close()
		return nil, nil, err
	}
	if err := migrationDB.Close(); err != nil {
		return nil, nil, fmt.Errorf("close migration connection: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return receipt.NewRepository(pool), pool.Close, nil
}
