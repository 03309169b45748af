package ports

import (
	"context"

	"github.com/chooy/admin-console/internal/core/domain"
)

// AuditRepository persists and reads the operator mutation trail.
type AuditRepository interface {
	Record(ctx context.Context, entry *domain.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
