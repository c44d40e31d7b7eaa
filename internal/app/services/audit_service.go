package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/siamaraya/araya-core/internal/app/models"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogAudit records a change to any audited table. Audit failures are logged
// but never fail the operation that triggered them.
func (s *AuditService) LogAudit(tableName string, recordID uuid.UUID, action models.AuditAction, oldData, newData interface{}, changedBy *string) {
	entry := &models.AuditLog{
		TableName: tableName,
		RecordID:  recordID,
		Action:    action,
		OldData:   marshalAuditData(oldData),
		NewData:   marshalAuditData(newData),
		ChangedBy: changedBy,
		ChangedAt: time.Now(),
	}

	if err := s.db.Create(entry).Error; err != nil {
		logrus.Errorf("failed to write audit log for %s/%s: %v", tableName, recordID, err)
	}
}

func (s *AuditService) GetAuditLogs(pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	if pagination.Limit <= 0 {
		pagination.Limit = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}

	offset := (pagination.Page - 1) * pagination.Limit

	var totalItems int64
	if err := s.db.Model(&models.AuditLog{}).Count(&totalItems).Error; err != nil {
		return nil, err
	}

	var logs []models.AuditLog
	err := s.db.Order("changed_at DESC").Limit(pagination.Limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((totalItems + int64(pagination.Limit) - 1) / int64(pagination.Limit))

	return &models.Pagination[[]models.AuditLog]{
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: totalPages,
		TotalItems: int(totalItems),
		HasNext:    pagination.Page < totalPages,
		HasPrev:    pagination.Page > 1,
		Items:      logs,
	}, nil
}

func marshalAuditData(data interface{}) *string {
	if data == nil {
		return nil
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	str := string(jsonBytes)
	return &str
}
