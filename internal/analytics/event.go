package analytics

import "time"

// Topics for directory events. The API publishes after every successful
// store write; the consumer fans events out to the analytics store and the
// webhook notifier.
const (
	TopicSiteSubmitted = "site.submitted"
	TopicReportFiled   = "report.filed"
)

// SiteSubmittedEvent is emitted when a site is accepted into the index.
type SiteSubmittedEvent struct {
	SiteID      string    `json:"siteId"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	SubmittedAt time.Time `json:"submittedAt"`
	ClientIP    string    `json:"clientIp"`
}

// ReportFiledEvent is emitted when an abuse report is filed.
type ReportFiledEvent struct {
	ReportID   string    `json:"reportId"`
	URL        string    `json:"url"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details,omitempty"`
	ReportedAt time.Time `json:"reportedAt"`
	ClientIP   string    `json:"clientIp"`
}
