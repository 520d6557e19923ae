package services

import (
	"testing"
	"time"

	"github.com/teamflow/backend/internal/models"
)

func TestSystemLogWriteAndList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSystemLogService(db)

	uid := uint(7)
	svc.LogInfo("invites", "POST /api/v1/workspaces/:workspaceID/invites", "/api/v1/workspaces/1/invites",
		&uid, "127.0.0.1", "test-agent", map[string]interface{}{"status": 201})
	svc.LogWarning("auth", "POST /api/v1/auth/login", "/api/v1/auth/login",
		nil, "127.0.0.1", "test-agent", nil)

	logs, total, err := svc.List(LogQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	if len(logs) != 2 {
		t.Fatalf("len = %d, want 2", len(logs))
	}

	byLevel, total, err := svc.List(LogQuery{Level: "warning"})
	if err != nil {
		t.Fatalf("List by level: %v", err)
	}
	if total != 1 || byLevel[0].Module != "auth" {
		t.Errorf("level filter returned %d rows, module %s", total, byLevel[0].Module)
	}

	byUser, total, err := svc.List(LogQuery{UserID: &uid})
	if err != nil {
		t.Fatalf("List by user: %v", err)
	}
	if total != 1 || byUser[0].Module != "invites" {
		t.Errorf("user filter returned %d rows", total)
	}
}

func TestSystemLogCleanup(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSystemLogService(db)

	old := models.SystemLog{Level: "info", Module: "auth", Message: "old"}
	if err := db.Create(&old).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	db.Model(&old).Update("created_at", time.Now().AddDate(0, 0, -60))

	recent := models.SystemLog{Level: "info", Module: "auth", Message: "recent"}
	if err := db.Create(&recent).Error; err != nil {
		t.Fatalf("create: %v", err)
	}

	removed, err := svc.Cleanup(30)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	// Zero retention disables cleanup entirely
	if n, err := svc.Cleanup(0); err != nil || n != 0 {
		t.Errorf("Cleanup(0) = %d, %v, want 0, nil", n, err)
	}
}
