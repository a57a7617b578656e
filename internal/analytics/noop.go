package analytics

import (
	"context"

	"go.uber.org/zap"
)

// NoopStore is used when no Postgres connection is configured; it only logs
// the events it receives.
type NoopStore struct {
	logger *zap.Logger
}

// NewNoopStore creates a logging no-op analytics store.
func NewNoopStore(logger *zap.Logger) *NoopStore {
	return &NoopStore{logger: logger}
}

func (n *NoopStore) SaveSiteSubmitted(_ context.Context, event *SiteSubmittedEvent) error {
	n.logger.Info("site submitted event received",
		zap.String("siteId", event.SiteID),
		zap.String("url", event.URL),
		zap.String("category", event.Category),
	)

	return nil
}

func (n *NoopStore) SaveReportFiled(_ context.Context, event *ReportFiledEvent) error {
	n.logger.Info("report filed event received",
		zap.String("reportId", event.ReportID),
		zap.String("url", event.URL),
		zap.String("reason", event.Reason),
	)

	return nil
}
