// portald provisions the portal database, loads the reference data and
// runs the document expiration sweeper. The HTTP layer is a separate
// deployment that talks to the same store through the access layer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nimoenergia/portal-backend/internal/auth"
	"github.com/nimoenergia/portal-backend/internal/config"
	"github.com/nimoenergia/portal-backend/internal/db"
	"github.com/nimoenergia/portal-backend/internal/document"
	"github.com/nimoenergia/portal-backend/internal/notify"
	"github.com/nimoenergia/portal-backend/internal/schema"
	"github.com/nimoenergia/portal-backend/internal/seed"
	"github.com/nimoenergia/portal-backend/pkg/logger"
)

func main() {
	var (
		envFile       = flag.String("env-file", "", "path to a .env file (optional)")
		sweepInterval = flag.Duration("sweep-interval", 0, "expiration sweep interval (overrides SWEEP_INTERVAL)")
		once          = flag.Bool("once", false, "provision, seed, sweep once and exit")
	)
	flag.Parse()

	if err := run(*envFile, *sweepInterval, *once); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(envFile string, sweepInterval time.Duration, once bool) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Environment)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	provider, err := db.NewProvider(cfg.Database, log)
	if err != nil {
		return err
	}
	defer provider.Close()

	adapter, err := db.AdapterFor(cfg.Database.Dialect)
	if err != nil {
		return err
	}
	exec := db.NewExecutor(provider, adapter, cfg.Database.ConnectTimeout, log)
	log.Info("access layer ready", zap.String("dialect", cfg.Database.Dialect))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Schema and seed failures abort startup: a partially created schema
	// is not a state the portal can serve from.
	if err := schema.NewProvisioner(exec, log).EnsureSchema(ctx); err != nil {
		return err
	}
	if err := seed.NewLoader(exec, auth.NewBcryptHasher(), log).LoadDefaults(ctx); err != nil {
		return err
	}

	docs := document.NewService(exec, nil, log)
	sweeper := notify.NewSweeper(exec, docs, nil, log)

	if once {
		return sweeper.SweepOnce(ctx)
	}
	interval := cfg.SweepInterval
	if sweepInterval > 0 {
		interval = sweepInterval
	}
	log.Info("sweeper started", zap.Duration("interval", interval))
	sweeper.Run(ctx, interval)
	log.Info("shutting down")
	return nil
}
