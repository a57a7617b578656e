package moderation

import (
	"context"
	"strconv"
	"strings"

	"github.com/upsearch/upsearch/internal/directory"
)

func (w *Workflow) bulkActions(ctx context.Context) State {
	w.printf("Bulk Actions:")
	w.printf("1. Remove all sites reported for specific reason")
	w.printf("2. Reject all reports older than X days")
	w.printf("3. Remove all sites with multiple reports")
	w.printf("0. Back to main menu")

	switch w.prompt("Choose bulk action: ") {
	case "1":
		w.bulkApproveByReason(ctx)
	case "2":
		w.bulkRejectOld(ctx)
	case "3":
		w.bulkApproveMultiReported(ctx)
	case "0":
	default:
		w.printf("Invalid choice.")
	}

	return StateMainMenu
}

// bulkApproveByReason approves every pending report whose reason contains the
// operator's query, removing each reported site.
func (w *Workflow) bulkApproveByReason(ctx context.Context) {
	reason := w.promptRaw("Enter reason to target (e.g., 'Spam', 'Malware'): ")
	if reason == "" {
		return
	}

	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading pending reports: %v", err)

		return
	}

	matches := make([]directory.Report, 0, len(pending))

	for _, report := range pending {
		if containsFold(report.Reason, reason) {
			matches = append(matches, report)
		}
	}

	if len(matches) == 0 {
		w.printf("No pending reports found for reason: %s", reason)

		return
	}

	w.printf("Found %d reports for reason: %s", len(matches), reason)

	if !w.confirm("Remove all these sites? [y/N]: ") {
		return
	}

	for i := range matches {
		w.removeReportedSite(ctx, &matches[i])
		w.markProcessed(ctx, matches[i].ID, directory.ActionApproved)
	}

	w.printf("Processed %d reports", len(matches))
}

// bulkRejectOld rejects every pending report older than the given number of
// days. Sites are left untouched.
func (w *Workflow) bulkRejectOld(ctx context.Context) {
	days, err := strconv.Atoi(w.prompt("Reject reports older than how many days? "))
	if err != nil || days <= 0 {
		return
	}

	cutoff := w.now().AddDate(0, 0, -days)

	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading pending reports: %v", err)

		return
	}

	matches := make([]directory.Report, 0, len(pending))

	for _, report := range pending {
		if report.ReportedAt.Before(cutoff) {
			matches = append(matches, report)
		}
	}

	if len(matches) == 0 {
		w.printf("No reports older than %d days found.", days)

		return
	}

	w.printf("Found %d reports older than %d days", len(matches), days)

	if !w.confirm("Reject all these reports? [y/N]: ") {
		return
	}

	for _, report := range matches {
		w.markProcessed(ctx, report.ID, directory.ActionRejected)
	}

	w.printf("Rejected %d old reports", len(matches))
}

// bulkApproveMultiReported approves every pending report whose URL appears in
// more than one pending report, removing the reported sites.
func (w *Workflow) bulkApproveMultiReported(ctx context.Context) {
	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading pending reports: %v", err)

		return
	}

	counts := make(map[string]int)
	for _, report := range pending {
		counts[report.URL]++
	}

	multiple := 0

	for _, count := range counts {
		if count > 1 {
			multiple++
		}
	}

	if multiple == 0 {
		w.printf("No sites with multiple reports found.")

		return
	}

	w.printf("Sites with multiple reports:")

	listed := make(map[string]bool)

	for _, report := range pending {
		if counts[report.URL] > 1 && !listed[report.URL] {
			w.printf("  - %s (%d reports)", report.URL, counts[report.URL])
			listed[report.URL] = true
		}
	}

	if !w.confirm("Remove all sites with multiple reports? [y/N]: ") {
		return
	}

	removed := 0

	for i := range pending {
		if count := counts[pending[i].URL]; count > 1 {
			w.removeReportedSite(ctx, &pending[i])
			w.markProcessed(ctx, pending[i].ID, directory.ActionApproved)

			removed++
		}
	}

	w.printf("Processed %d reports for multiply-reported sites", removed)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
