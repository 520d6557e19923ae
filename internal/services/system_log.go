package services

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/logger"
)

// SystemLogService writes and queries the persistent audit trail.
type SystemLogService struct {
	db *gorm.DB
}

func NewSystemLogService(db *gorm.DB) *SystemLogService {
	return &SystemLogService{db: db}
}

// Log writes an audit record. Extra data is serialized to JSON; failures are
// logged but never propagated to the request path.
func (s *SystemLogService) Log(level, module, action, message string, userID *uint, ip, userAgent string, extra map[string]interface{}) {
	entry := &models.SystemLog{
		Level:     level,
		Module:    module,
		Action:    action,
		Message:   message,
		UserID:    userID,
		IP:        ip,
		UserAgent: userAgent,
	}

	if len(extra) > 0 {
		if data, err := json.Marshal(extra); err == nil {
			entry.Extra = string(data)
		}
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Warn().Err(err).Str("module", module).Str("action", action).Msg("failed to write audit log")
	}
}

func (s *SystemLogService) LogInfo(module, action, message string, userID *uint, ip, userAgent string, extra map[string]interface{}) {
	s.Log("info", module, action, message, userID, ip, userAgent, extra)
}

func (s *SystemLogService) LogWarning(module, action, message string, userID *uint, ip, userAgent string, extra map[string]interface{}) {
	s.Log("warning", module, action, message, userID, ip, userAgent, extra)
}

func (s *SystemLogService) LogError(module, action, message string, userID *uint, ip, userAgent string, extra map[string]interface{}) {
	s.Log("error", module, action, message, userID, ip, userAgent, extra)
}

// LogQuery filters the audit trail listing.
type LogQuery struct {
	Level    string
	Module   string
	UserID   *uint
	Page     int
	PageSize int
}

// List returns a page of audit records, newest first.
func (s *SystemLogService) List(q LogQuery) ([]models.SystemLog, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	query := s.db.Model(&models.SystemLog{})
	if q.Level != "" {
		query = query.Where("level = ?", q.Level)
	}
	if q.Module != "" {
		query = query.Where("module = ?", q.Module)
	}
	if q.UserID != nil {
		query = query.Where("user_id = ?", *q.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.SystemLog
	err := query.
		Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Cleanup deletes audit records older than the retention window and returns
// the number removed.
func (s *SystemLogService) Cleanup(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("created_at < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
