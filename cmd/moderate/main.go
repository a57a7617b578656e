package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/jaevor/go-nanoid"
	"github.com/upsearch/upsearch/internal/moderation"
	"github.com/upsearch/upsearch/internal/store"
	"go.uber.org/zap"
)

func main() {
	sitesDir := flag.String("sites", "data/sites", "directory for site documents")
	reportsDir := flag.String("reports", "data/reports", "directory for report documents")
	cooldown := flag.Duration("cooldown", 5*time.Minute, "submission cooldown window")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	sites, err := store.NewFileSiteStore(*sitesDir, *cooldown, logger)
	if err != nil {
		logger.Fatal("failed to open site store", zap.Error(err))
	}

	generateID, err := nanoid.Standard(16)
	if err != nil {
		logger.Fatal("failed to create id generator", zap.Error(err))
	}

	reports, err := store.NewFileReportStore(*reportsDir, generateID, logger)
	if err != nil {
		logger.Fatal("failed to open report store", zap.Error(err))
	}

	audit := store.NewAuditLog(*reportsDir + "/management.log")

	workflow := moderation.New(sites, reports, audit, os.Stdin, os.Stdout, logger)
	if err := workflow.Run(context.Background()); err != nil {
		logger.Fatal("moderation loop failed", zap.Error(err))
	}
}
