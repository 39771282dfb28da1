package repository

import (
	"context"
	"time"

	"travelbook-service/internal/domain/entity"
	"travelbook-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAuditRepository implements the AuditRepository interface
type GormAuditRepository struct {
	db *gorm.DB
}

// AuditRecords GORM model for database mapping
type AuditRecords struct {
	ID          uint   `gorm:"primaryKey"`
	Operation   string `gorm:"column:operation;index"`
	DocumentKey string `gorm:"column:document_key;index"`
	Narration   string `gorm:"column:narration"`
	CreatedAt   time.Time
}

// TableName overrides the default table name
func (AuditRecords) TableName() string {
	return "t_audit_records"
}

// NewGormAuditRepository creates a new GORM audit repository
func NewGormAuditRepository(db *gorm.DB) (repository.AuditRepository, error) {
	if err := db.AutoMigrate(&AuditRecords{}); err != nil {
		return nil, err
	}
	return &GormAuditRepository{
		db: db,
	}, nil
}

// Record appends one audit row for a mutating operation
func (r *GormAuditRepository) Record(ctx context.Context, entry *entity.AuditEntry) error {
	record := AuditRecords{
		Operation:   entry.Operation,
		DocumentKey: entry.DocumentKey,
		Narration:   entry.Narration,
		CreatedAt:   entry.CreatedAt,
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	result := r.db.WithContext(ctx).Create(&record)
	if result.Error != nil {
		return result.Error
	}

	entry.ID = record.ID
	return nil
}
