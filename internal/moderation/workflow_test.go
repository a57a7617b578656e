package moderation_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upsearch/upsearch/internal/directory"
	"github.com/upsearch/upsearch/internal/moderation"
	"github.com/upsearch/upsearch/internal/store"
	"go.uber.org/zap"
)

// recordingAuditor captures audit appends for assertions.
type recordingAuditor struct {
	entries []auditEntry
}

type auditEntry struct {
	action string
	data   map[string]string
}

func (a *recordingAuditor) Append(action string, data map[string]string) error {
	a.entries = append(a.entries, auditEntry{action: action, data: data})

	return nil
}

type fixture struct {
	sites   *store.MemorySiteStore
	reports *store.MemoryReportStore
	audit   *recordingAuditor
	out     *bytes.Buffer
}

// run executes a full scripted session, one operator input per line.
func (f *fixture) run(t *testing.T, script string) string {
	t.Helper()

	w := moderation.New(f.sites, f.reports, f.audit, strings.NewReader(script), f.out, zap.NewNop())
	require.NoError(t, w.Run(context.Background()))

	return f.out.String()
}

func newFixture() *fixture {
	next := 0

	return &fixture{
		sites: store.NewMemorySiteStore(0),
		reports: store.NewMemoryReportStore(func() string {
			next++

			return fmt.Sprintf("r%03d", next)
		}),
		audit: &recordingAuditor{},
		out:   &bytes.Buffer{},
	}
}

func (f *fixture) addSite(t *testing.T, url, title string) {
	t.Helper()

	_, err := f.sites.Submit(context.Background(), directory.SiteSubmission{
		URL:         url,
		Title:       title,
		Description: "A description.",
		Category:    "Technology",
	}, "203.0.113.7")
	require.NoError(t, err)
}

func (f *fixture) addReport(t *testing.T, url, reason string, age time.Duration) *directory.Report {
	t.Helper()

	report, err := f.reports.Submit(context.Background(), directory.ReportSubmission{
		URL:    url,
		Reason: reason,
	}, "198.51.100.9")
	require.NoError(t, err)

	if age > 0 {
		report.ReportedAt = time.Now().Add(-age)
		f.reports.Put(*report)
	}

	return report
}

func TestWorkflow_Run(t *testing.T) {
	t.Run("exits on choice 0", func(t *testing.T) {
		f := newFixture()

		out := f.run(t, "0\n")

		assert.Contains(t, out, "Main Menu:")
		assert.Contains(t, out, "Goodbye!")
	})

	t.Run("exits when input ends", func(t *testing.T) {
		f := newFixture()

		out := f.run(t, "")

		assert.Contains(t, out, "Goodbye!")
	})

	t.Run("reprompts on an invalid choice", func(t *testing.T) {
		f := newFixture()

		out := f.run(t, "9\n0\n")

		assert.Contains(t, out, "Invalid choice. Please try again.")
	})
}

func TestWorkflow_ReviewPending(t *testing.T) {
	t.Run("remove approves the report, removes the site and audits", func(t *testing.T) {
		f := newFixture()
		f.addSite(t, "https://bad.example", "Bad Site")
		report := f.addReport(t, "https://bad.example", "Spam", 0)

		out := f.run(t, "1\nr\n0\n")

		assert.Contains(t, out, "Site exists in index")
		assert.Contains(t, out, "Removed site: Bad Site")
		assert.Contains(t, out, "APPROVED (site removed)")

		exists, _ := f.sites.Exists(context.Background(), "https://bad.example")
		assert.False(t, exists)

		stored, err := f.reports.Get(context.Background(), report.ID)
		require.NoError(t, err)
		assert.Equal(t, directory.ActionApproved, stored.ActionTaken)

		require.Len(t, f.audit.entries, 1)
		assert.Equal(t, "site_removed", f.audit.entries[0].action)
		assert.Equal(t, map[string]string{
			"url":       "https://bad.example",
			"title":     "Bad Site",
			"reason":    "Spam",
			"report_id": report.ID,
		}, f.audit.entries[0].data)
	})

	t.Run("keep rejects the report and leaves the site indexed", func(t *testing.T) {
		f := newFixture()
		f.addSite(t, "https://fine.example", "Fine Site")
		report := f.addReport(t, "https://fine.example", "Spam", 0)

		out := f.run(t, "1\nk\n0\n")

		assert.Contains(t, out, "REJECTED (site kept)")

		exists, _ := f.sites.Exists(context.Background(), "https://fine.example")
		assert.True(t, exists)

		stored, err := f.reports.Get(context.Background(), report.ID)
		require.NoError(t, err)
		assert.Equal(t, directory.ActionRejected, stored.ActionTaken)
		assert.Empty(t, f.audit.entries)
	})

	t.Run("skip leaves the report pending", func(t *testing.T) {
		f := newFixture()
		report := f.addReport(t, "https://unsure.example", "Other", 0)

		f.run(t, "1\ns\n0\n")

		stored, err := f.reports.Get(context.Background(), report.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsPending())
	})

	t.Run("quit returns to the menu mid-review", func(t *testing.T) {
		f := newFixture()
		first := f.addReport(t, "https://a.example", "Spam", 2*time.Hour)
		second := f.addReport(t, "https://b.example", "Spam", time.Hour)

		out := f.run(t, "1\nq\n0\n")

		assert.Contains(t, out, "Report 1 of 2")
		assert.NotContains(t, out, "Report 2 of 2")

		for _, id := range []string{first.ID, second.ID} {
			stored, err := f.reports.Get(context.Background(), id)
			require.NoError(t, err)
			assert.True(t, stored.IsPending())
		}
	})

	t.Run("handles a report for an unindexed site", func(t *testing.T) {
		f := newFixture()
		report := f.addReport(t, "https://gone.example", "Broken Link", 0)

		out := f.run(t, "1\nr\n0\n")

		assert.Contains(t, out, "Site not found in index")
		assert.Empty(t, f.audit.entries)

		// The report is still resolved even though there was nothing to remove.
		stored, err := f.reports.Get(context.Background(), report.ID)
		require.NoError(t, err)
		assert.Equal(t, directory.ActionApproved, stored.ActionTaken)
	})

	t.Run("reports nothing to review when the queue is empty", func(t *testing.T) {
		f := newFixture()

		out := f.run(t, "1\n0\n")

		assert.Contains(t, out, "No pending reports to review!")
	})
}

func TestWorkflow_BulkActions(t *testing.T) {
	t.Run("approves all reports matching a reason", func(t *testing.T) {
		f := newFixture()
		f.addSite(t, "https://a.example", "Site A")
		f.addSite(t, "https://b.example", "Site B")
		f.addSite(t, "https://c.example", "Site C")
		f.addReport(t, "https://a.example", "Spam", 3*time.Hour)
		f.addReport(t, "https://b.example", "Spam", 2*time.Hour)
		keep := f.addReport(t, "https://c.example", "Malware", time.Hour)

		out := f.run(t, "4\n1\nspam\ny\n0\n")

		assert.Contains(t, out, "Found 2 reports for reason: spam")
		assert.Contains(t, out, "Processed 2 reports")

		for _, url := range []string{"https://a.example", "https://b.example"} {
			exists, _ := f.sites.Exists(context.Background(), url)
			assert.False(t, exists, url)
		}

		exists, _ := f.sites.Exists(context.Background(), "https://c.example")
		assert.True(t, exists)

		stored, err := f.reports.Get(context.Background(), keep.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsPending())
	})

	t.Run("declined confirmation mutates nothing", func(t *testing.T) {
		f := newFixture()
		f.addSite(t, "https://a.example", "Site A")
		report := f.addReport(t, "https://a.example", "Spam", 0)

		f.run(t, "4\n1\nspam\nn\n0\n")

		exists, _ := f.sites.Exists(context.Background(), "https://a.example")
		assert.True(t, exists)

		stored, err := f.reports.Get(context.Background(), report.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsPending())
	})

	t.Run("rejects reports older than the threshold without touching sites", func(t *testing.T) {
		f := newFixture()
		f.addSite(t, "https://old.example", "Old Target")
		old := f.addReport(t, "https://old.example", "Spam", 10*24*time.Hour)
		recent := f.addReport(t, "https://new.example", "Spam", 2*24*time.Hour)

		out := f.run(t, "4\n2\n5\ny\n0\n")

		assert.Contains(t, out, "Rejected 1 old reports")

		oldStored, err := f.reports.Get(context.Background(), old.ID)
		require.NoError(t, err)
		assert.Equal(t, directory.ActionRejected, oldStored.ActionTaken)

		recentStored, err := f.reports.Get(context.Background(), recent.ID)
		require.NoError(t, err)
		assert.True(t, recentStored.IsPending())

		exists, _ := f.sites.Exists(context.Background(), "https://old.example")
		assert.True(t, exists)
	})

	t.Run("removes sites reported more than once", func(t *testing.T) {
		f := newFixture()
		f.addSite(t, "https://multi.example", "Multi")
		f.addSite(t, "https://single.example", "Single")
		f.addReport(t, "https://multi.example", "Spam", 3*time.Hour)
		f.addReport(t, "https://multi.example", "Malware", 2*time.Hour)
		single := f.addReport(t, "https://single.example", "Spam", time.Hour)

		out := f.run(t, "4\n3\ny\n0\n")

		assert.Contains(t, out, "https://multi.example (2 reports)")
		assert.Contains(t, out, "Processed 2 reports for multiply-reported sites")

		exists, _ := f.sites.Exists(context.Background(), "https://multi.example")
		assert.False(t, exists)

		exists, _ = f.sites.Exists(context.Background(), "https://single.example")
		assert.True(t, exists)

		stored, err := f.reports.Get(context.Background(), single.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsPending())
	})
}

func TestWorkflow_Stats(t *testing.T) {
	t.Run("summarizes counts and reasons", func(t *testing.T) {
		f := newFixture()
		f.addReport(t, "https://a.example", "Spam", 0)
		done1 := f.addReport(t, "https://b.example", "Spam", 0)
		done2 := f.addReport(t, "https://c.example", "Malware", 0)

		_, err := f.reports.MarkProcessed(context.Background(), done1.ID, directory.ActionApproved)
		require.NoError(t, err)
		_, err = f.reports.MarkProcessed(context.Background(), done2.ID, directory.ActionRejected)
		require.NoError(t, err)

		out := f.run(t, "2\n0\n")

		assert.Contains(t, out, "Total Reports: 3")
		assert.Contains(t, out, "Pending: 1")
		assert.Contains(t, out, "Processed: 2")
		assert.Contains(t, out, "Approved (removed): 1")
		assert.Contains(t, out, "Rejected (kept): 1")
		assert.Contains(t, out, "- Malware: 1")
		assert.Contains(t, out, "- Spam: 1")
	})
}

func TestWorkflow_SearchReports(t *testing.T) {
	t.Run("matches url, reason or details across statuses", func(t *testing.T) {
		f := newFixture()
		f.addReport(t, "https://bad.example", "Spam", 0)
		done := f.addReport(t, "https://other.example", "Spam", 0)
		f.addReport(t, "https://clean.example", "Malware", 0)

		_, err := f.reports.MarkProcessed(context.Background(), done.ID, directory.ActionRejected)
		require.NoError(t, err)

		out := f.run(t, "3\nspam\n0\n")

		assert.Contains(t, out, "Found 2 matching reports:")
		assert.Contains(t, out, "https://bad.example")
		assert.Contains(t, out, "https://other.example")
		assert.NotContains(t, out, "https://clean.example")
	})

	t.Run("reports no matches", func(t *testing.T) {
		f := newFixture()
		f.addReport(t, "https://bad.example", "Spam", 0)

		out := f.run(t, "3\nnothing-here\n0\n")

		assert.Contains(t, out, "No reports found matching: nothing-here")
	})
}

func TestWorkflow_Cleanup(t *testing.T) {
	t.Run("deletes processed reports after confirmation", func(t *testing.T) {
		f := newFixture()
		pending := f.addReport(t, "https://a.example", "Spam", 0)
		done := f.addReport(t, "https://b.example", "Malware", 0)

		_, err := f.reports.MarkProcessed(context.Background(), done.ID, directory.ActionApproved)
		require.NoError(t, err)

		out := f.run(t, "5\ny\n0\n")

		assert.Contains(t, out, "Deleted 1 processed reports")

		_, err = f.reports.Get(context.Background(), done.ID)
		assert.ErrorIs(t, err, directory.ErrNotFound)

		stored, err := f.reports.Get(context.Background(), pending.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsPending())
	})

	t.Run("declined confirmation keeps processed reports", func(t *testing.T) {
		f := newFixture()
		done := f.addReport(t, "https://b.example", "Malware", 0)

		_, err := f.reports.MarkProcessed(context.Background(), done.ID, directory.ActionApproved)
		require.NoError(t, err)

		f.run(t, "5\nn\n0\n")

		_, err = f.reports.Get(context.Background(), done.ID)
		assert.NoError(t, err)
	})
}
