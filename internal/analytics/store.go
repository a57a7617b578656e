package analytics

import "context"

// Store persists directory events for later analysis.
type Store interface {
	SaveSiteSubmitted(ctx context.Context, event *SiteSubmittedEvent) error
	SaveReportFiled(ctx context.Context, event *ReportFiledEvent) error
}
