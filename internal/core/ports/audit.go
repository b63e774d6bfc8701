package ports

import (
	"context"

	"github.com/taskhub/task-system/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}

// AuditRecorder accepts audit entries for asynchronous persistence. Recording
// is best-effort; implementations must never fail the calling request.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
