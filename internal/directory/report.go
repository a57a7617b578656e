package directory

import (
	"fmt"
	"strings"
	"time"
)

// ReportStatus is the lifecycle state of an abuse report. The transition is
// one-way: pending reports become processed exactly once.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusProcessed ReportStatus = "processed"
)

// ReportAction is the moderator decision recorded when a report is processed.
type ReportAction string

const (
	// ActionApproved means the report was upheld and the site removed.
	ActionApproved ReportAction = "approved"
	// ActionRejected means the report was dismissed and the site kept.
	ActionRejected ReportAction = "rejected"
)

const maxDetailsLen = 1000

// ReportReasons is the fixed set of reasons accepted on report submission.
var ReportReasons = []string{
	"Spam",
	"Malware",
	"Phishing",
	"Adult Content",
	"Hate Speech",
	"Copyright",
	"Broken Link",
	"Misleading",
	"Other",
}

// Report represents an abuse report filed against a URL. The URL is free-text
// user input and may not correspond to any indexed site.
type Report struct {
	ID          string       `json:"id"`
	URL         string       `json:"url"`
	Reason      string       `json:"reason"`
	Details     string       `json:"details,omitempty"`
	ReportedAt  time.Time    `json:"reported_at"`
	ReportedBy  string       `json:"reported_by_ip"`
	Status      ReportStatus `json:"status,omitempty"`
	ActionTaken ReportAction `json:"action_taken,omitempty"`
	ProcessedAt *time.Time   `json:"processed_at,omitempty"`
}

// IsPending reports whether the report still awaits review. An absent status
// field means pending.
func (r *Report) IsPending() bool {
	return r.Status == "" || r.Status == ReportStatusPending
}

// ReportSubmission is the request-scoped input for filing a report.
type ReportSubmission struct {
	URL     string
	Reason  string
	Details string
}

// Validate checks the report submission against the intake rules.
func (s *ReportSubmission) Validate() error {
	if !isAbsoluteURL(s.URL) {
		return fmt.Errorf("%w: url must be a valid absolute URL", ErrValidation)
	}

	if !validReason(s.Reason) {
		return fmt.Errorf("%w: reason must be one of the listed reasons", ErrValidation)
	}

	if len(strings.TrimSpace(s.Details)) > maxDetailsLen {
		return fmt.Errorf("%w: details must be under %d characters", ErrValidation, maxDetailsLen)
	}

	return nil
}

func validReason(reason string) bool {
	for _, r := range ReportReasons {
		if reason == r {
			return true
		}
	}

	return false
}
