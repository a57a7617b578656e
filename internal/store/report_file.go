package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/upsearch/upsearch/internal/directory"
	"go.uber.org/zap"
)

const reportPrefix = "report_"

// IDGenerator produces unique report ids.
type IDGenerator func() string

// FileReportStore is a file-backed implementation of directory.ReportRepository.
// Each report lives in its own report_<id>.json document.
type FileReportStore struct {
	dir        string
	generateID IDGenerator
	now        func() time.Time
	mu         sync.Mutex // guards the read-modify-write in MarkProcessed
	logger     *zap.Logger
}

// NewFileReportStore creates a report store rooted at dir, creating it if needed.
func NewFileReportStore(dir string, generateID IDGenerator, logger *zap.Logger) (*FileReportStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}

	return &FileReportStore{
		dir:        dir,
		generateID: generateID,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// SetClock overrides the store's clock. Intended for tests.
func (s *FileReportStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *FileReportStore) reportPath(id string) string {
	return filepath.Join(s.dir, reportPrefix+id+".json")
}

func (s *FileReportStore) Submit(_ context.Context, candidate directory.ReportSubmission, reporterAddr string) (*directory.Report, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	report := &directory.Report{
		ID:         s.generateID(),
		URL:        candidate.URL,
		Reason:     candidate.Reason,
		Details:    strings.TrimSpace(candidate.Details),
		ReportedAt: s.now(),
		ReportedBy: reporterAddr,
		Status:     directory.ReportStatusPending,
	}

	data, err := EncodeReport(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	f, err := os.OpenFile(s.reportPath(report.ID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create report document: %w", err)
	}

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(s.reportPath(report.ID))

		return nil, fmt.Errorf("write report document: %w", err)
	}

	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("close report document: %w", err)
	}

	return report, nil
}

func (s *FileReportStore) Get(_ context.Context, id string) (*directory.Report, error) {
	data, err := os.ReadFile(s.reportPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, directory.ErrNotFound
		}

		return nil, fmt.Errorf("read report document: %w", err)
	}

	return DecodeReport(data)
}

func (s *FileReportStore) ListByStatus(ctx context.Context, status directory.ReportStatus) ([]directory.Report, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]directory.Report, 0, len(all))

	for _, report := range all {
		if status == directory.ReportStatusPending && report.IsPending() {
			matched = append(matched, report)
		} else if status == directory.ReportStatusProcessed && !report.IsPending() {
			matched = append(matched, report)
		}
	}

	// Pending reports are reviewed oldest first.
	if status == directory.ReportStatusPending {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ReportedAt.Before(matched[j].ReportedAt)
		})
	}

	return matched, nil
}

func (s *FileReportStore) MarkProcessed(ctx context.Context, id string, action directory.ReportAction) (*directory.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.IsPending() {
		return nil, directory.ErrAlreadyProcessed
	}

	processedAt := s.now()
	report.Status = directory.ReportStatusProcessed
	report.ActionTaken = action
	report.ProcessedAt = &processedAt

	data, err := EncodeReport(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	if err = os.WriteFile(s.reportPath(id), data, 0o644); err != nil {
		return nil, fmt.Errorf("rewrite report document: %w", err)
	}

	return report, nil
}

func (s *FileReportStore) DeleteProcessed(ctx context.Context) (int, error) {
	processed, err := s.ListByStatus(ctx, directory.ReportStatusProcessed)
	if err != nil {
		return 0, err
	}

	deleted := 0

	for _, report := range processed {
		if err := os.Remove(s.reportPath(report.ID)); err != nil {
			s.logger.Warn("failed to delete processed report",
				zap.String("id", report.ID),
				zap.Error(err),
			)

			continue
		}

		deleted++
	}

	return deleted, nil
}

func (s *FileReportStore) all(_ context.Context) ([]directory.Report, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read reports dir: %w", err)
	}

	reports := make([]directory.Report, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reportPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("skipping unreadable report document",
				zap.String("file", name),
				zap.Error(err),
			)

			continue
		}

		report, err := DecodeReport(data)
		if err != nil {
			s.logger.Warn("skipping malformed report document",
				zap.String("file", name),
				zap.Error(err),
			)

			continue
		}

		reports = append(reports, *report)
	}

	return reports, nil
}
