package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamflow/backend/internal/models"
	"github.com/teamflow/backend/pkg/response"
)

// setupTestDB opens an in-memory sqlite database. The pool is pinned to a
// single connection because each sqlite :memory: connection is its own
// database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Workspace{},
		&models.WorkspaceMember{},
		&models.Invite{},
		&models.Release{},
		&models.Bug{},
		&models.Hotfix{},
		&models.Prd{},
		&models.DesignAsset{},
		&models.Task{},
		&models.RefreshToken{},
		&models.SystemLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

var userSeq int

// createUser inserts a user with a unique username and email.
func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()

	userSeq++
	user := &models.User{
		Username:    name,
		Email:       fmt.Sprintf("%s%d@example.com", name, userSeq),
		DisplayName: name,
		AuthType:    "local",
		IsActive:    true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

// createWorkspace inserts a workspace with the given user enrolled as manager.
func createWorkspace(t *testing.T, db *gorm.DB, name string, managerID uint) *models.Workspace {
	t.Helper()

	workspace := &models.Workspace{
		Name:      name,
		CreatedBy: managerID,
	}
	if err := db.Create(workspace).Error; err != nil {
		t.Fatalf("create workspace %s: %v", name, err)
	}

	addMember(t, db, workspace.ID, managerID, models.RoleManager)
	return workspace
}

// addMember inserts a membership row directly.
func addMember(t *testing.T, db *gorm.DB, workspaceID, userID uint, role string) *models.WorkspaceMember {
	t.Helper()

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("add member: %v", err)
	}
	return member
}

// assertAppError fails unless err is an AppError with the given status and code.
func assertAppError(t *testing.T, err error, status int, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %d %s, got nil", status, code)
	}

	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != status {
		t.Errorf("status = %d, want %d (%s)", appErr.HTTPStatus, status, appErr.Message)
	}
	if appErr.Code != code {
		t.Errorf("code = %s, want %s", appErr.Code, code)
	}
}
