package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionApprove AuditAction = "APPROVE"
	AuditActionReject  AuditAction = "REJECT"
)

type AuditLog struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	TableName string      `json:"table_name"`
	RecordID  uuid.UUID   `gorm:"type:uuid;index" json:"record_id"`
	Action    AuditAction `json:"action"`
	OldData   *string     `json:"old_data,omitempty"`
	NewData   *string     `json:"new_data,omitempty"`
	ChangedBy *string     `json:"changed_by,omitempty"`
	ChangedAt time.Time   `json:"changed_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
