// Package moderation implements the single-operator review loop over the
// report and site stores. The loop is modeled as an explicit state machine:
// each state handler reads operator input and returns the next state, which
// keeps the workflow testable with scripted input and output buffers.
package moderation

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/upsearch/upsearch/internal/directory"
	"go.uber.org/zap"
)

// State names one node of the workflow state machine.
type State string

const (
	StateMainMenu      State = "main_menu"
	StateReviewPending State = "review_pending"
	StateStats         State = "stats"
	StateSearchReports State = "search_reports"
	StateBulkActions   State = "bulk_actions"
	StateCleanup       State = "cleanup"
	StateExit          State = "exit"
)

// Auditor records moderation actions to the append-only audit log.
type Auditor interface {
	Append(action string, data map[string]string) error
}

// Workflow is the interactive moderation control loop. It is single-threaded
// and blocking; all concurrency tolerance lives in the stores underneath.
type Workflow struct {
	sites   directory.SiteRepository
	reports directory.ReportRepository
	audit   Auditor
	in      *bufio.Scanner
	out     io.Writer
	now     func() time.Time
	logger  *zap.Logger
}

// New creates a workflow reading operator commands from in and echoing
// formatted status to out.
func New(
	sites directory.SiteRepository,
	reports directory.ReportRepository,
	audit Auditor,
	in io.Reader,
	out io.Writer,
	logger *zap.Logger,
) *Workflow {
	return &Workflow{
		sites:   sites,
		reports: reports,
		audit:   audit,
		in:      bufio.NewScanner(in),
		out:     out,
		now:     time.Now,
		logger:  logger,
	}
}

// SetClock overrides the workflow's clock. Intended for tests.
func (w *Workflow) SetClock(now func() time.Time) {
	w.now = now
}

// Run drives the state machine until the operator exits or input ends.
func (w *Workflow) Run(ctx context.Context) error {
	w.printf("UpSearch Report Manager")
	w.printf("=======================")
	w.printf("")

	state := StateMainMenu
	for state != StateExit {
		if err := ctx.Err(); err != nil {
			return err
		}

		state = w.Step(ctx, state)
	}

	w.printf("Goodbye!")

	return nil
}

// Step executes one state handler and returns the next state.
func (w *Workflow) Step(ctx context.Context, state State) State {
	switch state {
	case StateMainMenu:
		return w.mainMenu(ctx)
	case StateReviewPending:
		return w.reviewPending(ctx)
	case StateStats:
		return w.showStats(ctx)
	case StateSearchReports:
		return w.searchReports(ctx)
	case StateBulkActions:
		return w.bulkActions(ctx)
	case StateCleanup:
		return w.cleanup(ctx)
	default:
		return StateExit
	}
}

func (w *Workflow) mainMenu(ctx context.Context) State {
	pending, err := w.reports.ListByStatus(ctx, directory.ReportStatusPending)
	if err != nil {
		w.printf("Error loading reports: %v", err)
	}

	processed, err := w.reports.ListByStatus(ctx, directory.ReportStatusProcessed)
	if err != nil {
		w.printf("Error loading reports: %v", err)
	}

	w.printf("Main Menu:")
	w.printf("1. Review pending reports (%d pending)", len(pending))
	w.printf("2. Show report statistics")
	w.printf("3. Search reports")
	w.printf("4. Bulk actions")
	w.printf("5. Cleanup processed reports (%d processed)", len(processed))
	w.printf("0. Exit")

	switch w.prompt("Enter your choice: ") {
	case "1":
		return StateReviewPending
	case "2":
		return StateStats
	case "3":
		return StateSearchReports
	case "4":
		return StateBulkActions
	case "5":
		return StateCleanup
	case "0", "q", "quit", "exit":
		return StateExit
	default:
		w.printf("Invalid choice. Please try again.")

		return StateMainMenu
	}
}

// prompt reads one trimmed line of operator input. EOF yields "exit" so a
// closed input stream unwinds the loop instead of spinning.
func (w *Workflow) prompt(label string) string {
	fmt.Fprint(w.out, label)

	if !w.in.Scan() {
		return "exit"
	}

	return strings.ToLower(strings.TrimSpace(w.in.Text()))
}

// promptRaw is prompt without lowercasing, for free-text queries.
func (w *Workflow) promptRaw(label string) string {
	fmt.Fprint(w.out, label)

	if !w.in.Scan() {
		return ""
	}

	return strings.TrimSpace(w.in.Text())
}

// confirm asks for an explicit affirmative before a mutating bulk operation.
// Anything but "y" declines.
func (w *Workflow) confirm(label string) bool {
	return w.prompt(label) == "y"
}

func (w *Workflow) printf(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}
