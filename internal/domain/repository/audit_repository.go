package repository

import (
	"context"

	"travelbook-service/internal/domain/entity"
)

// AuditRepository defines the interface for audit trail operations
type AuditRepository interface {
	Record(ctx context.Context, entry *entity.AuditEntry) error
}
