package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/upsearch/upsearch/internal/linkcheck"
	"github.com/upsearch/upsearch/internal/store"
	"go.uber.org/zap"
)

func main() {
	sitesDir := flag.String("sites", "data/sites", "directory for site documents")
	delay := flag.Duration("delay", 500*time.Millisecond, "pause between probes")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// The checker never submits, so the cooldown window is irrelevant here.
	sites, err := store.NewFileSiteStore(*sitesDir, 0, logger)
	if err != nil {
		logger.Fatal("failed to open site store", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := linkcheck.NewRunner(sites, linkcheck.NewProber(), *delay, logger)

	summary, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("check aborted", zap.Error(err))
	}

	logger.Info("check completed",
		zap.Int("total", summary.Total),
		zap.Int("checked", summary.Checked),
		zap.Int("removed", summary.Removed),
		zap.Int("remaining", summary.Total-summary.Removed),
	)
}
