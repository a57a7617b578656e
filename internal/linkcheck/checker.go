// Package linkcheck probes indexed sites and removes the ones that no longer
// respond. It owns its own timeout and pacing policy; the site store is only
// touched through the repository interface.
package linkcheck

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/upsearch/upsearch/internal/directory"
	"go.uber.org/zap"
)

const (
	userAgent      = "UpSearch-Bot/1.0 (Site Status Checker)"
	requestTimeout = 10 * time.Second
	connectTimeout = 5 * time.Second
)

// Prober issues HEAD requests against site URLs without following redirects.
type Prober struct {
	client *http.Client
}

// NewProber creates a prober with the checker's timeout policy.
func NewProber() *Prober {
	return &Prober{
		client: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Probe returns the HTTP status code for url, or an error when the site is
// unreachable.
func (p *Prober) Probe(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build probe request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", url, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// Summary aggregates the outcome of one checker run.
type Summary struct {
	Total   int
	Checked int
	Removed int
	Kept    int
}

// Runner walks the site index and purges dead sites.
type Runner struct {
	sites  directory.SiteRepository
	prober *Prober
	delay  time.Duration
	logger *zap.Logger
}

// NewRunner creates a checker run over the given site store. The delay paces
// probes so target servers are not hammered.
func NewRunner(sites directory.SiteRepository, prober *Prober, delay time.Duration, logger *zap.Logger) *Runner {
	return &Runner{
		sites:  sites,
		prober: prober,
		delay:  delay,
		logger: logger,
	}
}

// Run probes every indexed site once. Sites that fail to connect or answer
// with a 4xx/5xx status are removed; redirects and 2xx responses are kept.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sites, err := r.sites.All(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("enumerate sites: %w", err)
	}

	summary := Summary{Total: len(sites)}

	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		status, err := r.prober.Probe(ctx, site.URL)
		summary.Checked++

		switch {
		case err != nil:
			r.logger.Info("connection failed, removing site",
				zap.String("url", site.URL),
				zap.String("title", site.Title),
				zap.Error(err),
			)
			r.remove(ctx, &site, &summary)
		case status >= http.StatusBadRequest:
			r.logger.Info("error status, removing site",
				zap.String("url", site.URL),
				zap.String("title", site.Title),
				zap.Int("status", status),
			)
			r.remove(ctx, &site, &summary)
		default:
			r.logger.Debug("site ok",
				zap.String("url", site.URL),
				zap.Int("status", status),
			)

			summary.Kept++
		}

		if r.delay > 0 && i < len(sites)-1 {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			case <-time.After(r.delay):
			}
		}
	}

	return summary, nil
}

func (r *Runner) remove(ctx context.Context, site *directory.Site, summary *Summary) {
	removed, err := r.sites.Remove(ctx, site.URL)
	if err != nil {
		r.logger.Error("failed to remove site",
			zap.String("url", site.URL),
			zap.Error(err),
		)

		return
	}

	if removed {
		summary.Removed++
	}
}
