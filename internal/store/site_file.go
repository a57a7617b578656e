package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/upsearch/upsearch/internal/directory"
	"go.uber.org/zap"
)

// cooldownPrefix is the reserved filename prefix that distinguishes cooldown
// markers from site documents within the sites directory.
const cooldownPrefix = ".cooldown_"

// FileSiteStore is a file-backed implementation of directory.SiteRepository.
// Each site lives in its own document named by its identity, so unrelated
// records never contend; duplicate detection uses exclusive file creation so
// the check and the write are one atomic filesystem operation.
type FileSiteStore struct {
	dir      string
	cooldown time.Duration
	now      func() time.Time
	mu       sync.Mutex // guards cooldown marker refresh
	logger   *zap.Logger
}

// NewFileSiteStore creates a site store rooted at dir, creating it if needed.
func NewFileSiteStore(dir string, cooldown time.Duration, logger *zap.Logger) (*FileSiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sites dir: %w", err)
	}

	return &FileSiteStore{
		dir:      dir,
		cooldown: cooldown,
		now:      time.Now,
		logger:   logger,
	}, nil
}

// SetClock overrides the store's clock. Intended for tests.
func (s *FileSiteStore) SetClock(now func() time.Time) {
	s.now = now
}

func (s *FileSiteStore) sitePath(id directory.SiteID) string {
	return filepath.Join(s.dir, string(id)+".json")
}

func (s *FileSiteStore) markerPath(addr string) string {
	h := sha256.Sum256([]byte(addr))

	return filepath.Join(s.dir, cooldownPrefix+hex.EncodeToString(h[:]))
}

func (s *FileSiteStore) Submit(ctx context.Context, candidate directory.SiteSubmission, submitterAddr string) (*directory.Site, error) {
	if err := candidate.Validate(); err != nil {
		return nil, err
	}

	// Cooldown before duplicate check: a rate-limited submitter must not
	// learn whether the URL is already indexed.
	if remaining := s.cooldownRemaining(submitterAddr); remaining > 0 {
		return nil, &directory.CooldownError{Remaining: remaining}
	}

	site := &directory.Site{
		ID:          directory.IdentityOf(candidate.URL),
		URL:         candidate.URL,
		Title:       strings.TrimSpace(candidate.Title),
		Description: strings.TrimSpace(candidate.Description),
		Category:    candidate.Category,
		Screenshot:  candidate.Screenshot,
		SubmittedAt: s.now(),
		SubmittedBy: submitterAddr,
		Status:      directory.SiteStatusPending,
	}

	data, err := EncodeSite(site)
	if err != nil {
		return nil, fmt.Errorf("encode site: %w", err)
	}

	f, err := os.OpenFile(s.sitePath(site.ID), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, directory.ErrDuplicateURL
		}

		return nil, fmt.Errorf("create site document: %w", err)
	}

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(s.sitePath(site.ID))

		return nil, fmt.Errorf("write site document: %w", err)
	}

	if err = f.Close(); err != nil {
		return nil, fmt.Errorf("close site document: %w", err)
	}

	s.touchCooldown(submitterAddr)

	return site, nil
}

func (s *FileSiteStore) Exists(_ context.Context, url string) (bool, error) {
	_, err := os.Stat(s.sitePath(directory.IdentityOf(url)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat site document: %w", err)
	}

	return true, nil
}

func (s *FileSiteStore) GetByID(_ context.Context, id directory.SiteID) (*directory.Site, error) {
	data, err := os.ReadFile(s.sitePath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, directory.ErrNotFound
		}

		return nil, fmt.Errorf("read site document: %w", err)
	}

	return DecodeSite(data)
}

func (s *FileSiteStore) Remove(_ context.Context, url string) (bool, error) {
	err := os.Remove(s.sitePath(directory.IdentityOf(url)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("remove site document: %w", err)
	}

	return true, nil
}

func (s *FileSiteStore) All(_ context.Context) ([]directory.Site, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read sites dir: %w", err)
	}

	sites := make([]directory.Site, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			s.logger.Warn("skipping unreadable site document",
				zap.String("file", name),
				zap.Error(err),
			)

			continue
		}

		site, err := DecodeSite(data)
		if err != nil {
			s.logger.Warn("skipping malformed site document",
				zap.String("file", name),
				zap.Error(err),
			)

			continue
		}

		sites = append(sites, *site)
	}

	return sites, nil
}

// cooldownRemaining returns how long the submitter still has to wait, based
// on the modification time of their cooldown marker.
func (s *FileSiteStore) cooldownRemaining(addr string) time.Duration {
	info, err := os.Stat(s.markerPath(addr))
	if err != nil {
		return 0
	}

	remaining := info.ModTime().Add(s.cooldown).Sub(s.now())
	if remaining < 0 {
		return 0
	}

	return remaining
}

// touchCooldown refreshes the submitter's marker. The marker is superseded by
// the next touch and never independently deleted.
func (s *FileSiteStore) touchCooldown(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.markerPath(addr)
	if err := os.WriteFile(path, []byte(s.now().Format(time.RFC3339)+"\n"), 0o644); err != nil {
		s.logger.Error("failed to refresh cooldown marker", zap.Error(err))
	}
}
