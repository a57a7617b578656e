package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// AuditEntry is one append-only record of a moderation action.
type AuditEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	Data      map[string]string `json:"data"`
}

// AuditLog appends moderation actions to a newline-delimited JSON file. The
// log grows monotonically; nothing in the core ever mutates or deletes it.
type AuditLog struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewAuditLog creates an audit log writing to path.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{
		path: path,
		now:  time.Now,
	}
}

// Append writes one entry. The file-level mutex keeps concurrent appends from
// interleaving within a single line.
func (l *AuditLog) Append(action string, data map[string]string) error {
	entry := AuditEntry{
		Timestamp: l.now(),
		Action:    action,
		Data:      data,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	return nil
}
