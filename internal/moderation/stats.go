package moderation

import (
	"context"
	"sort"

	"github.com/upsearch/upsearch/internal/directory"
)

func (w *Workflow) showStats(ctx context.Context) State {
	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading reports: %v", err)

		return StateMainMenu
	}

	processed, err := w.reports.ListByStatus(ctx, directory.ReportStatusProcessed)
	if err != nil {
		w.printf("Error loading reports: %v", err)

		return StateMainMenu
	}

	approved := 0
	rejected := 0
	reasonCounts := make(map[string]int)

	for _, report := range processed {
		if report.ActionTaken == directory.ActionApproved {
			approved++
		} else {
			rejected++
		}

		reasonCounts[report.Reason]++
	}

	w.printf("Report Statistics")
	w.printf("========================================")
	w.printf("Total Reports: %d", len(pending)+len(processed))
	w.printf("Pending: %d", len(pending))
	w.printf("Processed: %d", len(processed))
	w.printf("  Approved (removed): %d", approved)
	w.printf("  Rejected (kept): %d", rejected)

	if len(reasonCounts) > 0 {
		w.printf("")
		w.printf("Reports by Reason:")

		reasons := make([]string, 0, len(reasonCounts))
		for reason := range reasonCounts {
			reasons = append(reasons, reason)
		}

		// Descending by count; alphabetical among equals so output is stable.
		sort.Slice(reasons, func(i, j int) bool {
			if reasonCounts[reasons[i]] != reasonCounts[reasons[j]] {
				return reasonCounts[reasons[i]] > reasonCounts[reasons[j]]
			}

			return reasons[i] < reasons[j]
		})

		for _, reason := range reasons {
			w.printf("  - %s: %d", reason, reasonCounts[reason])
		}
	}

	return StateMainMenu
}

func (w *Workflow) searchReports(ctx context.Context) State {
	query := w.promptRaw("Enter search term (URL, reason, or details): ")
	if query == "" {
		return StateMainMenu
	}

	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading reports: %v", err)

		return StateMainMenu
	}

	processed, err := w.reports.ListByStatus(ctx, directory.ReportStatusProcessed)
	if err != nil {
		w.printf("Error loading reports: %v", err)

		return StateMainMenu
	}

	all := append(pending, processed...)
	matches := make([]directory.Report, 0, len(all))

	for _, report := range all {
		if containsFold(report.URL, query) ||
			containsFold(report.Reason, query) ||
			containsFold(report.Details, query) {
			matches = append(matches, report)
		}
	}

	if len(matches) == 0 {
		w.printf("No reports found matching: %s", query)

		return StateMainMenu
	}

	w.printf("Found %d matching reports:", len(matches))
	w.printf("")

	for i, report := range matches {
		status := "Pending"
		if !report.IsPending() {
			status = "Processed"
		}

		w.printf("%d. %s", i+1, report.URL)
		w.printf("   Reason: %s", report.Reason)
		w.printf("   Status: %s", status)
		w.printf("   Date: %s", report.ReportedAt.Format("2006-01-02 15:04:05"))
		w.printf("")
	}

	return StateMainMenu
}

func (w *Workflow) cleanup(ctx context.Context) State {
	processed, err := w.reports.ListByStatus(ctx, directory.ReportStatusProcessed)
	if err != nil {
		w.printf("Error loading reports: %v", err)

		return StateMainMenu
	}

	if len(processed) == 0 {
		w.printf("No processed reports to clean up.")

		return StateMainMenu
	}

	w.printf("Found %d processed reports", len(processed))

	if !w.confirm("Delete all processed reports? [y/N]: ") {
		return StateMainMenu
	}

	deleted, err := w.reports.DeleteProcessed(ctx)
	if err != nil {
		w.printf("Cleanup failed: %v", err)

		return StateMainMenu
	}

	w.printf("Deleted %d processed reports", deleted)

	return StateMainMenu
}
