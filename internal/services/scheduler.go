package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/teamflow/backend/internal/config"
	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/logger"
)

// Scheduler runs periodic housekeeping: audit log retention and purging of
// dead refresh tokens.
type Scheduler struct {
	cron      *cron.Cron
	db        *gorm.DB
	cfg       *config.Config
	systemLog *SystemLogService
}

func NewScheduler(db *gorm.DB, cfg *config.Config, systemLog *SystemLogService) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		db:        db,
		cfg:       cfg,
		systemLog: systemLog,
	}
}

// Start registers the housekeeping jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Daily at 03:00: drop audit records past the retention window
	if _, err := s.cron.AddFunc("0 3 * * *", s.cleanupSystemLogs); err != nil {
		return err
	}

	// Hourly: purge expired and long-revoked refresh tokens
	if _, err := s.cron.AddFunc("@hourly", s.purgeRefreshTokens); err != nil {
		return err
	}

	s.cron.Start()
	logger.Infof("scheduler started")
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Infof("scheduler stopped")
}

func (s *Scheduler) cleanupSystemLogs() {
	removed, err := s.systemLog.Cleanup(s.cfg.Log.RetentionDays)
	if err != nil {
		logger.Errorf("audit log cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		logger.Infof("audit log cleanup removed %d records", removed)
	}
}

func (s *Scheduler) purgeRefreshTokens() {
	now := time.Now()

	// Revoked tokens are kept for a day so rotation chains stay inspectable.
	result := s.db.
		Where("expires_at < ?", now).
		Or("revoked_at IS NOT NULL AND revoked_at < ?", now.Add(-24*time.Hour)).
		Delete(&models.RefreshToken{})
	if result.Error != nil {
		logger.Errorf("refresh token purge failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Infof("refresh token purge removed %d records", result.RowsAffected)
	}
}
