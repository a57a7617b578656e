package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/upsearch/upsearch/internal/directory"
)

// MemorySiteStore is an in-memory implementation of directory.SiteRepository,
// mirroring the file store's submission semantics. Useful for tests and for
// running the API without a data directory.
type MemorySiteStore struct {
	mu        sync.RWMutex
	sites     map[directory.SiteID]directory.Site
	order     []directory.SiteID
	cooldowns map[string]time.Time
	cooldown  time.Duration
	now       func() time.Time
}

// NewMemorySiteStore creates an empty in-memory site store.
func NewMemorySiteStore(cooldown time.Duration) *MemorySiteStore {
	return &MemorySiteStore{
		sites:     make(map[directory.SiteID]directory.Site),
		cooldowns: make(map[string]time.Time),
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// SetClock overrides the store's clock. Intended for tests.
func (m *MemorySiteStore) SetClock(now func() time.Time) {
	m.now = now
}

func (m *MemorySiteStore) Submit(_ context.Context, candidate directory.SiteSubmission, submitterAddr string) (*directory.Site, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if last, ok := m.cooldowns[submitterAddr]; ok {
		if remaining := last.Add(m.cooldown).Sub(m.now()); remaining > 0 {
			return nil, &directory.CooldownError{Remaining: remaining}
		}
	}

	id := directory.IdentityOf(candidate.URL)
	if _, ok := m.sites[id]; ok {
		return nil, directory.ErrDuplicateURL
	}

	site := directory.Site{
		ID:          id,
		URL:         candidate.URL,
		Title:       strings.TrimSpace(candidate.Title),
		Description: strings.TrimSpace(candidate.Description),
		Category:    candidate.Category,
		Screenshot:  candidate.Screenshot,
		SubmittedAt: m.now(),
		SubmittedBy: submitterAddr,
		Status:      directory.SiteStatusPending,
	}

	m.sites[id] = site
	m.order = append(m.order, id)
	m.cooldowns[submitterAddr] = m.now()

	return &site, nil
}

func (m *MemorySiteStore) Exists(_ context.Context, url string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sites[directory.IdentityOf(url)]

	return ok, nil
}

func (m *MemorySiteStore) GetByID(_ context.Context, id directory.SiteID) (*directory.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	site, ok := m.sites[id]
	if !ok {
		return nil, directory.ErrNotFound
	}

	return &site, nil
}

func (m *MemorySiteStore) Remove(_ context.Context, url string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := directory.IdentityOf(url)
	if _, ok := m.sites[id]; !ok {
		return false, nil
	}

	delete(m.sites, id)

	for i, stored := range m.order {
		if stored == id {
			m.order = append(m.order[:i], m.order[i+1:]...)

			break
		}
	}

	return true, nil
}

func (m *MemorySiteStore) All(_ context.Context) ([]directory.Site, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sites := make([]directory.Site, 0, len(m.order))
	for _, id := range m.order {
		sites = append(sites, m.sites[id])
	}

	return sites, nil
}

// MemoryReportStore is an in-memory implementation of directory.ReportRepository.
type MemoryReportStore struct {
	mu         sync.RWMutex
	reports    map[string]directory.Report
	generateID IDGenerator
	now        func() time.Time
}

// NewMemoryReportStore creates an empty in-memory report store.
func NewMemoryReportStore(generateID IDGenerator) *MemoryReportStore {
	return &MemoryReportStore{
		reports:    make(map[string]directory.Report),
		generateID: generateID,
		now:        time.Now,
	}
}

// SetClock overrides the store's clock. Intended for tests.
func (m *MemoryReportStore) SetClock(now func() time.Time) {
	m.now = now
}

// Put inserts a report as-is, bypassing submission rules. Intended for tests
// that need reports with specific timestamps or statuses.
func (m *MemoryReportStore) Put(report directory.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports[report.ID] = report
}

func (m *MemoryReportStore) Submit(_ context.Context, candidate directory.ReportSubmission, reporterAddr string) (*directory.Report, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	report := directory.Report{
		ID:         m.generateID(),
		URL:        candidate.URL,
		Reason:     candidate.Reason,
		Details:    strings.TrimSpace(candidate.Details),
		ReportedAt: m.now(),
		ReportedBy: reporterAddr,
		Status:     directory.ReportStatusPending,
	}

	m.reports[report.ID] = report

	return &report, nil
}

func (m *MemoryReportStore) Get(_ context.Context, id string) (*directory.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report, ok := m.reports[id]
	if !ok {
		return nil, directory.ErrNotFound
	}

	return &report, nil
}

func (m *MemoryReportStore) ListByStatus(_ context.Context, status directory.ReportStatus) ([]directory.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := make([]directory.Report, 0, len(m.reports))

	for _, report := range m.reports {
		if status == directory.ReportStatusPending && report.IsPending() {
			matched = append(matched, report)
		} else if status == directory.ReportStatusProcessed && !report.IsPending() {
			matched = append(matched, report)
		}
	}

	if status == directory.ReportStatusPending {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].ReportedAt.Before(matched[j].ReportedAt)
		})
	}

	return matched, nil
}

func (m *MemoryReportStore) MarkProcessed(_ context.Context, id string, action directory.ReportAction) (*directory.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	report, ok := m.reports[id]
	if !ok {
		return nil, directory.ErrNotFound
	}

	if !report.IsPending() {
		return nil, directory.ErrAlreadyProcessed
	}

	processedAt := m.now()
	report.Status = directory.ReportStatusProcessed
	report.ActionTaken = action
	report.ProcessedAt = &processedAt

	m.reports[id] = report

	return &report, nil
}

func (m *MemoryReportStore) DeleteProcessed(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0

	for id, report := range m.reports {
		if !report.IsPending() {
			delete(m.reports, id)

			deleted++
		}
	}

	return deleted, nil
}
