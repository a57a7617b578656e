package directory

import (
	"context"
	"errors"
)

// SiteRepository defines the interface for the site index store.
type SiteRepository interface {
	// Submit validates the candidate, enforces the per-address cooldown and
	// the one-record-per-URL invariant, and persists the record. The checks
	// run in that order so a rate-limited submitter does not learn whether
	// the URL is already indexed.
	Submit(ctx context.Context, candidate SiteSubmission, submitterAddr string) (*Site, error)

	// Exists reports whether a record with IdentityOf(url) is stored.
	Exists(ctx context.Context, url string) (bool, error)

	// GetByID returns the site with the given identity, or ErrNotFound.
	GetByID(ctx context.Context, id SiteID) (*Site, error)

	// Remove deletes the record for the URL if present and reports whether a
	// deletion occurred. Removing an absent URL is not an error.
	Remove(ctx context.Context, url string) (bool, error)

	// All returns every decodable site record. Corrupt records and internal
	// cooldown markers are skipped silently.
	All(ctx context.Context) ([]Site, error)
}

// ReportRepository defines the interface for the abuse report store.
type ReportRepository interface {
	// Submit assigns a unique id and persists the report as pending.
	// Multiple reports for the same URL are allowed.
	Submit(ctx context.Context, candidate ReportSubmission, reporterAddr string) (*Report, error)

	// Get returns the report with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Report, error)

	// ListByStatus returns reports in the given status. Pending reports are
	// ordered oldest first; processed reports carry no ordering guarantee.
	ListByStatus(ctx context.Context, status ReportStatus) ([]Report, error)

	// MarkProcessed transitions a pending report to processed with the given
	// action. Returns ErrNotFound for unknown ids and ErrAlreadyProcessed
	// when the report was processed before.
	MarkProcessed(ctx context.Context, id string, action ReportAction) (*Report, error)

	// DeleteProcessed permanently removes all processed reports and returns
	// how many were deleted.
	DeleteProcessed(ctx context.Context) (int, error)
}

// FindSiteByURL locates the indexed site a report refers to. It tries the
// direct identity lookup first and falls back to a linear scan on exact URL
// equality, because report URLs are free text and may not hash to the
// identity of the originally submitted URL.
func FindSiteByURL(ctx context.Context, sites SiteRepository, rawURL string) (*Site, error) {
	site, err := sites.GetByID(ctx, IdentityOf(rawURL))
	if err == nil {
		return site, nil
	}

	if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrDecode) {
		return nil, err
	}

	all, err := sites.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range all {
		if all[i].URL == rawURL {
			return &all[i], nil
		}
	}

	return nil, ErrNotFound
}
