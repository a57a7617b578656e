package directory

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// SiteID is the content-derived identity of an indexed site.
type SiteID string

// SiteStatus is the lifecycle state of a site record. Only "pending" is
// currently issued; index membership alone gates visibility.
type SiteStatus string

const SiteStatusPending SiteStatus = "pending"

const (
	maxTitleLen       = 100
	maxDescriptionLen = 500
)

// Categories is the fixed set of site categories accepted on submission.
var Categories = []string{
	"Technology",
	"Business",
	"Education",
	"Entertainment",
	"News",
	"Health",
	"Sports",
	"Travel",
	"Food",
	"Art",
	"Other",
}

// Site represents an indexed website record.
type Site struct {
	ID          SiteID     `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Screenshot  string     `json:"screenshot"`
	SubmittedAt time.Time  `json:"submitted_at"`
	SubmittedBy string     `json:"submitted_by_ip"`
	Status      SiteStatus `json:"status"`
}

// SiteSubmission is the request-scoped input for indexing a new site.
type SiteSubmission struct {
	URL         string
	Title       string
	Description string
	Category    string
	Screenshot  string
}

// Validate checks the submission against the index rules. It also blanks an
// unparseable screenshot URL instead of rejecting the whole submission.
func (s *SiteSubmission) Validate() error {
	if !isAbsoluteURL(s.URL) {
		return fmt.Errorf("%w: url must be a valid absolute URL", ErrValidation)
	}

	if title := strings.TrimSpace(s.Title); title == "" || len(title) > maxTitleLen {
		return fmt.Errorf("%w: title is required and must be under %d characters", ErrValidation, maxTitleLen)
	}

	if desc := strings.TrimSpace(s.Description); desc == "" || len(desc) > maxDescriptionLen {
		return fmt.Errorf("%w: description is required and must be under %d characters", ErrValidation, maxDescriptionLen)
	}

	if !validCategory(s.Category) {
		return fmt.Errorf("%w: category must be one of the listed categories", ErrValidation)
	}

	if s.Screenshot != "" && !isAbsoluteURL(s.Screenshot) {
		s.Screenshot = ""
	}

	return nil
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if category == c {
			return true
		}
	}

	return false
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return u.Scheme != "" && u.Host != ""
}
