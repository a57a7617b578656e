package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists directory events to Postgres. The site and report
// records themselves live in JSON documents; Postgres only accumulates the
// event history.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed analytics store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) SaveSiteSubmitted(ctx context.Context, event *SiteSubmittedEvent) error {
	query := `
		INSERT INTO site_submissions (site_id, url, title, category, submitted_at, client_ip)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := p.pool.Exec(ctx, query,
		event.SiteID,
		event.URL,
		event.Title,
		event.Category,
		event.SubmittedAt,
		event.ClientIP,
	)

	return err
}

func (p *PostgresStore) SaveReportFiled(ctx context.Context, event *ReportFiledEvent) error {
	query := `
		INSERT INTO report_submissions (report_id, url, reason, reported_at, client_ip)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.ReportID,
		event.URL,
		event.Reason,
		event.ReportedAt,
		event.ClientIP,
	)

	return err
}
