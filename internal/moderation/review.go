package moderation

import (
	"context"
	"errors"

	"github.com/upsearch/upsearch/internal/directory"
	"go.uber.org/zap"
)

// auditActionSiteRemoved tags audit entries written when a report approval
// removes a site from the index.
const auditActionSiteRemoved = "site_removed"

func (w *Workflow) reviewPending(ctx context.Context) State {
	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading pending reports: %v", err)

		return StateMainMenu
	}

	if len(pending) == 0 {
		w.printf("No pending reports to review!")

		return StateMainMenu
	}

	w.printf("Reviewing %d pending reports...", len(pending))
	w.printf("")

	for i, report := range pending {
		w.printf("Report %d of %d", i+1, len(pending))
		w.showReportDetails(ctx, &report)

		w.printf("Actions:")
		w.printf("  r) Remove site from index")
		w.printf("  k) Keep site (reject report)")
		w.printf("  s) Skip this report")
		w.printf("  q) Quit to main menu")

		switch w.prompt("Choose action [r/k/s/q]: ") {
		case "r", "remove":
			w.removeReportedSite(ctx, &report)
			w.markProcessed(ctx, report.ID, directory.ActionApproved)
		case "k", "keep":
			w.markProcessed(ctx, report.ID, directory.ActionRejected)
		case "s", "skip":
			continue
		case "q", "quit", "exit":
			return StateMainMenu
		default:
			w.printf("Invalid action. Skipping report.")

			continue
		}

		w.printf("")
	}

	w.printf("Finished reviewing all pending reports!")

	return StateMainMenu
}

func (w *Workflow) showReportDetails(ctx context.Context, report *directory.Report) {
	details := report.Details
	if details == "" {
		details = "No additional details"
	}

	w.printf("Report Details:")
	w.printf("   URL: %s", report.URL)
	w.printf("   Reason: %s", report.Reason)
	w.printf("   Details: %s", details)
	w.printf("   Reported: %s", report.ReportedAt.Format("2006-01-02 15:04:05"))

	site, err := directory.FindSiteByURL(ctx, w.sites, report.URL)
	if err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			w.logger.Error("site lookup failed", zap.String("url", report.URL), zap.Error(err))
		}

		w.printf("   Status: Site not found in index")
		w.printf("")

		return
	}

	description := site.Description
	if len(description) > 100 {
		description = description[:100] + "..."
	}

	w.printf("   Status: Site exists in index")
	w.printf("")
	w.printf("Site Information:")
	w.printf("   Title: %s", site.Title)
	w.printf("   Description: %s", description)
	w.printf("   Added: %s", site.SubmittedAt.Format("2006-01-02 15:04:05"))
	w.printf("")
}

// removeReportedSite deletes the site a report refers to, if it is still
// indexed, and writes the audit entry for the removal.
func (w *Workflow) removeReportedSite(ctx context.Context, report *directory.Report) {
	site, err := directory.FindSiteByURL(ctx, w.sites, report.URL)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			w.printf("Site not found in index (may have been already removed)")
		} else {
			w.printf("Failed to look up site: %v", err)
		}

		return
	}

	removed, err := w.sites.Remove(ctx, site.URL)
	if err != nil {
		w.printf("Failed to remove site: %v", err)

		return
	}

	if !removed {
		w.printf("Site not found in index (may have been already removed)")

		return
	}

	w.printf("Removed site: %s", site.Title)

	if err := w.audit.Append(auditActionSiteRemoved, map[string]string{
		"url":       report.URL,
		"title":     site.Title,
		"reason":    report.Reason,
		"report_id": report.ID,
	}); err != nil {
		w.logger.Error("failed to write audit entry",
			zap.String("report_id", report.ID),
			zap.Error(err),
		)
	}
}

func (w *Workflow) markProcessed(ctx context.Context, id string, action directory.ReportAction) {
	if _, err := w.reports.MarkProcessed(ctx, id, action); err != nil {
		w.printf("Failed to update report: %v", err)

		return
	}

	if action == directory.ActionApproved {
		w.printf("Report marked as: APPROVED (site removed)")
	} else {
		w.printf("Report marked as: REJECTED (site kept)")
	}
}
